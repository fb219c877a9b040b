// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package appsvclib

import (
	"context"
	"io/fs"
	"strconv"
	"strings"

	"github.com/Azure/appsvclib/processor"
)

// Metadata describes a template library member and its dependencies.
type Metadata struct {
	name         string
	displayName  string
	description  string
	dependencies []LibraryReference
	path         string
}

// LibraryReference is an interface that represents a dependency of a library member.
// It can be fetched from either a custom go-getter URL or from the App Service template library.
type LibraryReference interface {
	// Fetch fetches the library member into the supplied subdirectory of the library cache dir.
	Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error)
	String() string
}

var _ LibraryReference = (*AppSvcLibraryReference)(nil)
var _ LibraryReference = (*CustomLibraryReference)(nil)

// LibraryReferences is a slice of LibraryReference.
type LibraryReferences []LibraryReference

// AppSvcLibraryReference represents a library member fetched from the App Service template library.
type AppSvcLibraryReference struct {
	path string
	ref  string
}

func NewAppSvcLibraryReference(path, ref string) *AppSvcLibraryReference {
	return &AppSvcLibraryReference{
		path: path,
		ref:  ref,
	}
}

// Fetch fetches the library member from the App Service template library.
func (m *AppSvcLibraryReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	return FetchAppServiceLibraryMember(ctx, destinationDirectory, m.path, m.ref)
}

// String returns the formatted path and the tag of the library member.
func (m *AppSvcLibraryReference) String() string {
	return strings.Join([]string{m.path, m.ref}, "@")
}

// Path returns the relative path of the library member.
func (m *AppSvcLibraryReference) Path() string {
	return m.path
}

// Ref returns the tag of the library member.
func (m *AppSvcLibraryReference) Ref() string {
	return m.ref
}

// CustomLibraryReference represents a library member fetched from a custom go-getter URL.
type CustomLibraryReference struct {
	url string
}

func NewCustomLibraryReference(url string) *CustomLibraryReference {
	return &CustomLibraryReference{
		url: url,
	}
}

// Fetch fetches the library member from the custom go-getter URL.
func (m *CustomLibraryReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	return FetchLibraryByGetterString(ctx, m.url, destinationDirectory)
}

// String returns the URL of the custom go-getter.
func (m *CustomLibraryReference) String() string {
	return m.url
}

// FetchWithDependencies fetches the library member and all its dependencies,
// returning the references in dependency order (dependencies first).
func (m *CustomLibraryReference) FetchWithDependencies(ctx context.Context) (LibraryReferences, error) {
	return FetchAllLibrariesWithDependencies(ctx, 0, m, make(LibraryReferences, 0, 4))
}

func NewMetadata(in *processor.LibMetadata) *Metadata {
	if in == nil {
		return &Metadata{}
	}
	dependencies := make([]LibraryReference, len(in.Dependencies))
	for i, dep := range in.Dependencies {
		dependencies[i] = NewMetadataDependencyFromProcessor(dep)
	}
	return &Metadata{
		name:         in.Name,
		displayName:  in.DisplayName,
		description:  in.Description,
		dependencies: dependencies,
		path:         in.Path,
	}
}

func metadataFromFS(f fs.FS) (*Metadata, error) {
	pc := processor.NewProcessorClient(f)
	libmeta, err := pc.Metadata()
	if err != nil {
		return nil, err
	}
	return NewMetadata(libmeta), nil
}

func NewMetadataDependencyFromProcessor(in processor.LibMetadataDependency) LibraryReference {
	if in.CustomURL != "" {
		return &CustomLibraryReference{
			url: in.CustomURL,
		}
	}
	return &AppSvcLibraryReference{
		path: in.Path,
		ref:  in.Ref,
	}
}

func (m *Metadata) Name() string {
	return m.name
}

func (m *Metadata) DisplayName() string {
	return m.displayName
}

func (m *Metadata) Description() string {
	return m.description
}

func (m *Metadata) Dependencies() []LibraryReference {
	return m.dependencies
}

func (m *Metadata) Path() string {
	return m.path
}

// FSs returns the filesystems of all the library references, fetching each
// into the library cache dir.
func (l LibraryReferences) FSs(ctx context.Context) ([]fs.FS, error) {
	result := make([]fs.FS, len(l))
	for i, ref := range l {
		f, err := ref.Fetch(ctx, strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		result[i] = f
	}
	return result, nil
}
