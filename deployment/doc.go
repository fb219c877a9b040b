// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package deployment sequences the deployment of an App Service template
// library through the Azure CLI: prerequisite checks, local parameter
// validation, provider-side template validation, submission at subscription
// scope, and a local JSON receipt of the result.
//
// Execution is strictly sequential and stops on the first error. There is no
// retry or rollback; both are owned by the Azure Resource Manager deployment
// engine.
package deployment
