// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package auth

import (
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// NewCredential creates a new Entra token credential.
// When a client secret is configured through the well-known AZURE_* environment
// variables the environment credential is used, otherwise the token is obtained
// from the Azure CLI, matching the login state the rest of the tool relies on.
func NewCredential() (azcore.TokenCredential, error) {
	if useEnvironmentCredential() {
		return azidentity.NewEnvironmentCredential(nil)
	}
	return azidentity.NewAzureCLICredential(nil)
}

func useEnvironmentCredential() bool {
	return getFirstSetEnvVar("AZURE_CLIENT_SECRET", "AZURE_CLIENT_CERTIFICATE_PATH") != "" &&
		getFirstSetEnvVar("AZURE_CLIENT_ID") != "" &&
		getFirstSetEnvVar("AZURE_TENANT_ID") != ""
}

func getFirstSetEnvVar(vars ...string) string {
	for _, v := range vars {
		if val := os.Getenv(v); val != "" {
			return val
		}
	}
	return ""
}
