// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package appsvclib provides the ability to work with App Service deployment
// template libraries. A library is a filesystem containing declarative ARM
// deployment templates and parameter sets describing an App Service Plan and
// a Web App.
//
// Libraries can be fetched from remote locations with go-getter URLs, or
// supplied as any fs.FS, including the embedded default library Lib.
// Use the deployment package to validate and submit a library template to
// Azure through the Azure CLI, and the oidc package to configure federated
// credentials for GitHub Actions workload identity.
package appsvclib
