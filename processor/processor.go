// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/Azure/appsvclib/assets"
)

// These are the file suffixes for the library resource types.
const (
	templateSuffix     = ".+\\.appsvc_template\\.(?i:json|yaml|yml)$"
	parametersSuffix   = ".+\\.appsvc_parameters\\.(?i:json|yaml|yml)$"
	libraryMetadataRgx = "^appsvc_library_metadata\\.(?i:json|yaml|yml)$"
)

var supportedFileTypes = []string{".json", ".yaml", ".yml"}

var templateRegex = regexp.MustCompile(templateSuffix)
var parametersRegex = regexp.MustCompile(parametersSuffix)
var libraryMetadataRegex = regexp.MustCompile(libraryMetadataRgx)

// Result is the structure that gets built by scanning the library files.
type Result struct {
	Templates     map[string]*assets.Template
	ParameterSets map[string]*assets.ParameterFile
	Metadata      *LibMetadata
}

// ProcessorClient is the client that is used to process the library files.
type ProcessorClient struct {
	fs fs.FS
}

func NewProcessorClient(fs fs.FS) *ProcessorClient {
	return &ProcessorClient{
		fs: fs,
	}
}

// Metadata returns the library metadata without processing the whole library.
// If the library has no metadata file an empty metadata value is returned.
func (client *ProcessorClient) Metadata() (*LibMetadata, error) {
	res := new(Result)
	res.Metadata = new(LibMetadata)
	err := fs.WalkDir(client.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("ProcessorClient.Metadata: error walking directory %s: %w", path, err)
		}
		if d.IsDir() || !libraryMetadataRegex.MatchString(strings.ToLower(d.Name())) {
			return nil
		}
		file, err := client.fs.Open(path)
		if err != nil {
			return fmt.Errorf("ProcessorClient.Metadata: error opening file %s: %w", path, err)
		}
		return readAndProcessFile(res, file, d.Name(), processLibraryMetadata)
	})
	if err != nil {
		return nil, err
	}
	return res.Metadata, nil
}

// Process scans the library filesystem and builds the result.
func (client *ProcessorClient) Process(res *Result) error {
	res.Templates = make(map[string]*assets.Template)
	res.ParameterSets = make(map[string]*assets.ParameterFile)
	res.Metadata = new(LibMetadata)

	if err := fs.WalkDir(client.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("ProcessorClient.Process: error walking directory %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(supportedFileTypes, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		file, err := client.fs.Open(path)
		if err != nil {
			return fmt.Errorf("ProcessorClient.Process: error opening file %s: %w", path, err)
		}
		return classifyLibFile(res, file, d.Name())
	}); err != nil {
		return err
	}
	return nil
}

// classifyLibFile identifies the supplied file and calls the appropriate process function.
func classifyLibFile(res *Result, file fs.File, name string) error {
	err := error(nil)

	switch n := strings.ToLower(name); {
	case templateRegex.MatchString(n):
		err = readAndProcessFile(res, file, name, processTemplate)

	case parametersRegex.MatchString(n):
		err = readAndProcessFile(res, file, name, processParameterFile)

	case libraryMetadataRegex.MatchString(n):
		err = readAndProcessFile(res, file, name, processLibraryMetadata)
	}

	return err
}

// processFunc is the function signature that is used to process different types of lib file.
type processFunc func(res *Result, name string, data unmarshaler) error

func readAndProcessFile(res *Result, file fs.File, name string, process processFunc) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("processor.readAndProcessFile: error reading file %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("processor.readAndProcessFile: error closing file %s: %w", name, err)
	}
	u := newUnmarshaler(data, filepath.Ext(name))
	if err := process(res, name, u); err != nil {
		return fmt.Errorf("processor.readAndProcessFile: error processing file %s: %w", name, err)
	}
	return nil
}

func processTemplate(res *Result, name string, data unmarshaler) error {
	t := new(assets.Template)
	if err := data.unmarshal(t); err != nil {
		return fmt.Errorf("processTemplate: %w", err)
	}
	n := nameFromFileName(name)
	if _, exists := res.Templates[n]; exists {
		return fmt.Errorf("processTemplate: template %s already exists in the library", n)
	}
	res.Templates[n] = t
	return nil
}

func processParameterFile(res *Result, name string, data unmarshaler) error {
	// JSON parameter files are additionally checked against the deployment
	// parameters schema before being accepted.
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := assets.ValidateParameterFileJSON(data.data()); err != nil {
			return fmt.Errorf("processParameterFile: %w", err)
		}
	}
	p := new(assets.ParameterFile)
	if err := data.unmarshal(p); err != nil {
		return fmt.Errorf("processParameterFile: %w", err)
	}
	n := nameFromFileName(name)
	if _, exists := res.ParameterSets[n]; exists {
		return fmt.Errorf("processParameterFile: parameter set %s already exists in the library", n)
	}
	res.ParameterSets[n] = p
	return nil
}

func processLibraryMetadata(res *Result, _ string, data unmarshaler) error {
	meta := new(LibMetadata)
	if err := data.unmarshal(meta); err != nil {
		return fmt.Errorf("processLibraryMetadata: %w", err)
	}
	res.Metadata = meta
	return nil
}

// nameFromFileName strips the type suffix and extension from a library file
// name, e.g. "webapp.appsvc_template.json" becomes "webapp".
func nameFromFileName(name string) string {
	return strings.Split(strings.ToLower(name), ".")[0]
}
