// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package integrationtest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/deployment"
	"github.com/Azure/appsvclib/internal/azcli"
	"github.com/Azure/appsvclib/internal/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMultiLib tests that a library fetched later can override the
// embedded defaults when overwrite is allowed.
func TestInitMultiLib(t *testing.T) {
	lib := appsvclib.NewAppSvcLib(nil)
	lib.Options.AllowOverwrite = true
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := lib.Init(ctx, appsvclib.DefaultLibraryFS(), os.DirFS("testdata/override"))
	require.NoError(t, err)

	assert.Contains(t, lib.ParameterSets(), "dev")
	assert.Contains(t, lib.ParameterSets(), "premium")

	// the override pins the premium tiers
	main, err := lib.Template("main")
	require.NoError(t, err)
	assert.Equal(t, "P1v3", main.Parameters["skuName"].DefaultValue)
	assert.Contains(t, main.Parameters["skuName"].AllowedValues, "P2v3")
}

// TestFetchLocalLibrary tests the go-getter flow against a local directory source.
func TestFetchLocalLibrary(t *testing.T) {
	t.Setenv("APPSVCLIB_DIR", t.TempDir())

	src, err := filepath.Abs("testdata/override")
	require.NoError(t, err)
	ref := appsvclib.NewCustomLibraryReference(src)

	refs, err := ref.FetchWithDependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)

	fss, err := refs.FSs(context.Background())
	require.NoError(t, err)

	lib := appsvclib.NewAppSvcLib(nil)
	require.NoError(t, lib.Init(context.Background(), fss...))
	assert.Equal(t, []string{"main"}, lib.Templates())
	assert.Equal(t, []string{"premium"}, lib.ParameterSets())
}

// TestFetchRemoteLibrary tests fetching the template library from GitHub.
// It needs network access so it is gated behind the integration test env var.
func TestFetchRemoteLibrary(t *testing.T) {
	if !environment.IntegrationTest() {
		t.Skip("set APPSVCLIB_INTEGRATION_TEST to run")
	}
	t.Setenv("APPSVCLIB_DIR", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f, err := appsvclib.FetchAppServiceLibraryMember(ctx, "remote", "quickstarts/appservice", "2024.06.0")
	require.NoError(t, err)

	lib := appsvclib.NewAppSvcLib(nil)
	require.NoError(t, lib.Init(ctx, f))
	assert.NotEmpty(t, lib.Templates())
}

// TestValidateDeployment validates the default library against the provider.
// It needs a logged-in Azure CLI so it is gated behind the integration test env var.
func TestValidateDeployment(t *testing.T) {
	if !environment.IntegrationTest() {
		t.Skip("set APPSVCLIB_INTEGRATION_TEST to run")
	}

	cli, err := azcli.NewClientFromPath()
	require.NoError(t, err)

	lib := appsvclib.NewAppSvcLib(nil)
	require.NoError(t, lib.Init(context.Background(), appsvclib.DefaultLibraryFS()))

	d := deployment.NewDeployer(lib, cli)
	err = d.Validate(context.Background(), deployment.Request{ParameterSetName: "dev"})
	assert.NoError(t, err)
}
