// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package assets provides the types used by the appsvclib library.
// It models ARM deployment templates and parameter files, validates
// parameter values against the declarations in a template, and composes
// the subscription scope template with the resource group scope web app
// template before deployment.
package assets
