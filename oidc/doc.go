// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package oidc configures workload identity federation so that GitHub Actions
// can authenticate to Azure without a stored secret. It creates (or reuses) an
// application identity and service principal through the Azure CLI, assigns a
// subscription role through the ARM authorization API, and registers exactly
// two federated credential trust subjects per repository: the default branch
// ref and the pull request event. The sequence is idempotent: identifiers of
// existing resources are reported rather than recreated.
package oidc
