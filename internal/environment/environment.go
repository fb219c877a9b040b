// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package environment contains the types and methods for fetching configuration from the local environment.
package environment

import "os"

const (
	fetchDefaultBaseDir    = ".appsvclib"                         // fetchDefaultBaseDir is the default base directory for fetched libraries and receipts.
	fetchDefaultBaseDirEnv = "APPSVCLIB_DIR"                      // fetchDefaultBaseDirEnv is the environment variable to override the default base directory.
	libraryGitURL          = "github.com/Azure/appsvclib-library" // libraryGitURL is the URL of the App Service template library.
	libraryGitURLEnv       = "APPSVCLIB_LIBRARY_GIT_URL"          // libraryGitURLEnv is the environment variable to override the default git URL.
	defaultLocation        = "eastus"                             // defaultLocation is the default Azure location for deployments.
	defaultLocationEnv     = "APPSVCLIB_LOCATION"                 // defaultLocationEnv is the environment variable to override the default location.
	integrationTestEnv     = "APPSVCLIB_INTEGRATION_TEST"         // integrationTestEnv gates tests that call the Azure CLI.
)

// AppSvcLibDir contents of the `APPSVCLIB_DIR` environment variable, or the default which is `.appsvclib`.
func AppSvcLibDir() string {
	dir := fetchDefaultBaseDir
	if d := os.Getenv(fetchDefaultBaseDirEnv); d != "" {
		dir = d
	}
	return dir
}

// LibraryGitURL contents of the `APPSVCLIB_LIBRARY_GIT_URL` environment variable, or the default which is `github.com/Azure/appsvclib-library`.
func LibraryGitURL() string {
	url := libraryGitURL
	if u := os.Getenv(libraryGitURLEnv); u != "" {
		url = u
	}
	return url
}

// Location contents of the `APPSVCLIB_LOCATION` environment variable, or the default which is `eastus`.
func Location() string {
	loc := defaultLocation
	if l := os.Getenv(defaultLocationEnv); l != "" {
		loc = l
	}
	return loc
}

// IntegrationTest reports whether tests that call the Azure CLI are enabled.
func IntegrationTest() bool {
	return os.Getenv(integrationTestEnv) != ""
}
