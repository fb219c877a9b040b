// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package appsvclib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitEmbeddedLib tests that the embedded default library processes cleanly.
func TestInitEmbeddedLib(t *testing.T) {
	a := NewAppSvcLib(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := a.Init(ctx, DefaultLibraryFS())
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "webapp"}, a.Templates())
	assert.Equal(t, []string{"dev", "prod"}, a.ParameterSets())
}

// TestInitDuplicateLib tests that processing the same library twice fails
// unless overwrite is allowed.
func TestInitDuplicateLib(t *testing.T) {
	a := NewAppSvcLib(nil)
	err := a.Init(context.Background(), DefaultLibraryFS(), DefaultLibraryFS())
	assert.ErrorContains(t, err, "already exists")

	a = NewAppSvcLib(nil)
	a.Options.AllowOverwrite = true
	err = a.Init(context.Background(), DefaultLibraryFS(), DefaultLibraryFS())
	assert.NoError(t, err)
}

// TestTemplateReturnsCopy tests that mutating a returned template does not
// affect the library.
func TestTemplateReturnsCopy(t *testing.T) {
	a := NewAppSvcLib(nil)
	require.NoError(t, a.Init(context.Background(), DefaultLibraryFS()))

	first, err := a.Template("main")
	require.NoError(t, err)
	delete(first.Parameters, "skuName")

	second, err := a.Template("main")
	require.NoError(t, err)
	assert.Contains(t, second.Parameters, "skuName")
}

func TestTemplateNotFound(t *testing.T) {
	a := NewAppSvcLib(nil)
	require.NoError(t, a.Init(context.Background(), DefaultLibraryFS()))
	_, err := a.Template("doesnotexist")
	assert.ErrorContains(t, err, "not found")
	_, err = a.ParameterSet("doesnotexist")
	assert.ErrorContains(t, err, "not found")
}

// TestInitCancelledContext tests that Init respects context cancellation.
func TestInitCancelledContext(t *testing.T) {
	a := NewAppSvcLib(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := a.Init(ctx, DefaultLibraryFS())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetadataFromEmbeddedLib(t *testing.T) {
	a := NewAppSvcLib(nil)
	require.NoError(t, a.Init(context.Background(), DefaultLibraryFS()))
	meta := a.Metadata()
	require.Len(t, meta, 1)
	assert.Equal(t, "appservice", meta[0].Name())
	assert.Equal(t, "quickstarts/appservice", meta[0].Path())
	assert.Empty(t, meta[0].Dependencies())
}
