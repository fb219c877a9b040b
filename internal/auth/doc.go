// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package auth creates Entra token credentials for the ARM SDK clients used
// alongside the Azure CLI pass-through operations.
package auth
