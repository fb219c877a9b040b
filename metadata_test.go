// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package appsvclib

import (
	"testing"

	"github.com/Azure/appsvclib/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	in := &processor.LibMetadata{
		Name:        "appservice",
		DisplayName: "App Service quickstart",
		Description: "desc",
		Path:        "quickstarts/appservice",
		Dependencies: []processor.LibMetadataDependency{
			{Path: "platform/base", Ref: "2024.03.0"},
			{CustomURL: "git::https://example.com/lib.git"},
		},
	}
	meta := NewMetadata(in)
	assert.Equal(t, "appservice", meta.Name())
	assert.Equal(t, "App Service quickstart", meta.DisplayName())
	assert.Equal(t, "desc", meta.Description())
	assert.Equal(t, "quickstarts/appservice", meta.Path())
	require.Len(t, meta.Dependencies(), 2)

	first, ok := meta.Dependencies()[0].(*AppSvcLibraryReference)
	require.True(t, ok)
	assert.Equal(t, "platform/base", first.Path())
	assert.Equal(t, "2024.03.0", first.Ref())
	assert.Equal(t, "platform/base@2024.03.0", first.String())

	second, ok := meta.Dependencies()[1].(*CustomLibraryReference)
	require.True(t, ok)
	assert.Equal(t, "git::https://example.com/lib.git", second.String())
}

func TestNewMetadataNil(t *testing.T) {
	meta := NewMetadata(nil)
	assert.Empty(t, meta.Name())
	assert.Empty(t, meta.Dependencies())
}

func TestAddLibraryReferenceToSlice(t *testing.T) {
	refs := make(LibraryReferences, 0, 2)
	a := NewCustomLibraryReference("lib-a")
	b := NewCustomLibraryReference("lib-b")
	refs = addLibraryReferenceToSlice(refs, a)
	refs = addLibraryReferenceToSlice(refs, b)
	refs = addLibraryReferenceToSlice(refs, NewCustomLibraryReference("lib-a"))
	assert.Len(t, refs, 2)
}
