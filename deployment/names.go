// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package deployment

import "time"

const nameTimestampFormat = "20060102-150405"

// DefaultDeploymentName returns the deployment name used when none is
// supplied. Names derive from the UTC timestamp so that invocations at
// different times produce distinct values.
func DefaultDeploymentName(t time.Time) string {
	return "appsvc-" + t.UTC().Format(nameTimestampFormat)
}

// DefaultResourceGroupName returns the resource group name used when none is supplied.
func DefaultResourceGroupName(t time.Time) string {
	return "rg-appsvc-" + t.UTC().Format(nameTimestampFormat)
}

// DefaultWebAppName returns the web app name used when none is supplied.
// Web app names must be globally unique, hence the timestamp suffix.
func DefaultWebAppName(t time.Time) string {
	return "webapp-" + t.UTC().Format(nameTimestampFormat)
}
