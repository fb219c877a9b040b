// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package appsvclib

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/Azure/appsvclib/assets"
	"github.com/Azure/appsvclib/processor"
)

// Embed the Lib dir into the binary.
//
//go:embed lib
var Lib embed.FS

// DefaultLibraryPath is the path of the embedded default library within Lib.
const DefaultLibraryPath = "lib"

// DefaultLibraryFS returns the embedded default library rooted at its library dir.
func DefaultLibraryFS() fs.FS {
	f, err := fs.Sub(Lib, DefaultLibraryPath)
	if err != nil {
		// the embedded path is fixed at compile time
		panic(err)
	}
	return f
}

// AppSvcLib is the structure that gets built from the library files.
// Do not create this directly, use NewAppSvcLib instead.
type AppSvcLib struct {
	Options *AppSvcLibOptions

	templates     map[string]*assets.Template
	parameterSets map[string]*assets.ParameterFile
	metadata      []*Metadata
	mu            sync.RWMutex // mu protects the maps above across concurrent readers
}

// AppSvcLibOptions are options for the AppSvcLib.
// This is created by NewAppSvcLib.
type AppSvcLibOptions struct {
	// AllowOverwrite allows a library processed later in the Init call to
	// replace templates and parameter sets defined by an earlier one.
	AllowOverwrite bool
}

// NewAppSvcLib returns a new instance of the appsvclib library.
// Optionally pass options to override the defaults.
func NewAppSvcLib(opts *AppSvcLibOptions) *AppSvcLib {
	if opts == nil {
		opts = getDefaultAppSvcLibOptions()
	}
	return &AppSvcLib{
		Options:       opts,
		templates:     make(map[string]*assets.Template),
		parameterSets: make(map[string]*assets.ParameterFile),
		metadata:      make([]*Metadata, 0),
	}
}

func getDefaultAppSvcLibOptions() *AppSvcLibOptions {
	return &AppSvcLibOptions{
		AllowOverwrite: false,
	}
}

// Init processes the supplied library filesystems in order and merges the
// results into the AppSvcLib. Use FetchAppServiceLibraryMember or
// FetchLibraryByGetterString to get remote libraries into a local directory
// first, or pass an fs.FS such as os.DirFS or the embedded Lib.
func (a *AppSvcLib) Init(ctx context.Context, libs ...fs.FS) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, lib := range libs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("AppSvcLib.Init: %w", err)
		}
		res := new(processor.Result)
		pc := processor.NewProcessorClient(lib)
		if err := pc.Process(res); err != nil {
			return fmt.Errorf("AppSvcLib.Init: error processing library: %w", err)
		}
		if err := a.addProcessedResult(res); err != nil {
			return fmt.Errorf("AppSvcLib.Init: %w", err)
		}
		a.metadata = append(a.metadata, NewMetadata(res.Metadata))
	}
	return nil
}

func (a *AppSvcLib) addProcessedResult(res *processor.Result) error {
	for name, t := range res.Templates {
		if _, exists := a.templates[name]; exists && !a.Options.AllowOverwrite {
			return fmt.Errorf("template %s already exists and overwrite is not allowed", name)
		}
		a.templates[name] = t
	}
	for name, p := range res.ParameterSets {
		if _, exists := a.parameterSets[name]; exists && !a.Options.AllowOverwrite {
			return fmt.Errorf("parameter set %s already exists and overwrite is not allowed", name)
		}
		a.parameterSets[name] = p
	}
	return nil
}

// Templates returns the names of the templates in the library, sorted.
func (a *AppSvcLib) Templates() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result := make([]string, 0, len(a.templates))
	for k := range a.templates {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// ParameterSets returns the names of the parameter sets in the library, sorted.
func (a *AppSvcLib) ParameterSets() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result := make([]string, 0, len(a.parameterSets))
	for k := range a.parameterSets {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// Template returns a deep copy of the requested template by name.
// The returned struct can be modified without affecting the library.
func (a *AppSvcLib) Template(name string) (*assets.Template, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.templates[name]
	if !ok {
		return nil, fmt.Errorf("AppSvcLib.Template: template %s not found in the library", name)
	}
	cp, err := t.Copy()
	if err != nil {
		return nil, fmt.Errorf("AppSvcLib.Template: copying template %s: %w", name, err)
	}
	return cp, nil
}

// ParameterSet returns a deep copy of the requested parameter set by name.
func (a *AppSvcLib) ParameterSet(name string) (*assets.ParameterFile, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.parameterSets[name]
	if !ok {
		return nil, fmt.Errorf("AppSvcLib.ParameterSet: parameter set %s not found in the library", name)
	}
	cp, err := p.Copy()
	if err != nil {
		return nil, fmt.Errorf("AppSvcLib.ParameterSet: copying parameter set %s: %w", name, err)
	}
	return cp, nil
}

// Metadata returns the metadata of the libraries processed by Init, in order.
func (a *AppSvcLib) Metadata() []*Metadata {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result := make([]*Metadata, len(a.metadata))
	copy(result, a.metadata)
	return result
}
