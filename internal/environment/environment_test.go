// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppSvcLibDir(t *testing.T) {
	t.Setenv("APPSVCLIB_DIR", "")
	assert.Equal(t, ".appsvclib", AppSvcLibDir())
	t.Setenv("APPSVCLIB_DIR", "/tmp/libdir")
	assert.Equal(t, "/tmp/libdir", AppSvcLibDir())
}

func TestLibraryGitURL(t *testing.T) {
	t.Setenv("APPSVCLIB_LIBRARY_GIT_URL", "")
	assert.Equal(t, "github.com/Azure/appsvclib-library", LibraryGitURL())
	t.Setenv("APPSVCLIB_LIBRARY_GIT_URL", "github.com/contoso/custom-library")
	assert.Equal(t, "github.com/contoso/custom-library", LibraryGitURL())
}

func TestLocation(t *testing.T) {
	t.Setenv("APPSVCLIB_LOCATION", "")
	assert.Equal(t, "eastus", Location())
	t.Setenv("APPSVCLIB_LOCATION", "westeurope")
	assert.Equal(t, "westeurope", Location())
}

func TestIntegrationTest(t *testing.T) {
	t.Setenv("APPSVCLIB_INTEGRATION_TEST", "")
	assert.False(t, IntegrationTest())
	t.Setenv("APPSVCLIB_INTEGRATION_TEST", "1")
	assert.True(t, IntegrationTest())
}
