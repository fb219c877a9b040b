// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package appsvclib

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Azure/appsvclib/internal/environment"
	getter "github.com/hashicorp/go-getter"
)

// FetchAppServiceLibraryMember fetches a library member from the App Service
// template library using the provided path and reference.
// The destination directory is appended to the library cache dir.
func FetchAppServiceLibraryMember(ctx context.Context, destinationDirectory, path, ref string) (fs.FS, error) {
	q := fmt.Sprintf("git::https://%s//%s?ref=%s/%s", environment.LibraryGitURL(), path, path, ref)
	return FetchLibraryByGetterString(ctx, q, destinationDirectory)
}

// FetchLibraryByGetterString fetches a library from a go-getter URL.
// The destination directory is appended to the library cache dir.
// To fetch a local directory, pass the path as the getter string.
func FetchLibraryByGetterString(ctx context.Context, getterString, destinationDirectory string) (fs.FS, error) {
	dst := filepath.Join(environment.AppSvcLibDir(), destinationDirectory)
	if err := os.RemoveAll(dst); err != nil {
		return nil, fmt.Errorf("FetchLibraryByGetterString: could not clean destination directory %s: %w", dst, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("FetchLibraryByGetterString: could not get working directory: %w", err)
	}
	client := &getter.Client{
		Ctx:  ctx,
		Src:  getterString,
		Dst:  dst,
		Pwd:  wd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("FetchLibraryByGetterString: could not fetch %s: %w", getterString, err)
	}
	return os.DirFS(dst), nil
}

// FetchAllLibrariesWithDependencies takes a library reference, fetches its
// metadata, and then fetches all of its dependencies recursively.
// The returned references are de-duplicated, dependencies first, so that the
// results can be passed directly to AppSvcLib.Init.
func FetchAllLibrariesWithDependencies(ctx context.Context, i int, lib LibraryReference, libs LibraryReferences) (LibraryReferences, error) {
	f, err := lib.Fetch(ctx, fmt.Sprintf("dep-%d", i))
	if err != nil {
		return nil, err
	}
	meta, err := metadataFromFS(f)
	if err != nil {
		return nil, err
	}
	for _, dep := range meta.Dependencies() {
		i++
		libs, err = FetchAllLibrariesWithDependencies(ctx, i, dep, libs)
		if err != nil {
			return nil, err
		}
	}
	return addLibraryReferenceToSlice(libs, lib), nil
}

// addLibraryReferenceToSlice adds a library reference to a slice if it does not already exist.
func addLibraryReferenceToSlice(libs LibraryReferences, lib LibraryReference) LibraryReferences {
	for _, l := range libs {
		if l.String() == lib.String() {
			return libs
		}
	}
	return append(libs, lib)
}
