// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package doc provides functions to generate documentation for App Service template libraries in Markdown format.
package doc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/assets"
	"github.com/nao1215/markdown"
)

var (
	ErrReadmeGenerationFailed = fmt.Errorf("failed to generate README")
)

// LibraryReadmeMd generates a Markdown formatted README for the given template libraries.
func LibraryReadmeMd(ctx context.Context, w io.Writer, libs ...fs.FS) error {
	lib := appsvclib.NewAppSvcLib(nil)
	if err := lib.Init(ctx, libs...); err != nil {
		return fmt.Errorf("doc.LibraryReadmeMd: failed to initialize library: %w", err)
	}

	metadataS := lib.Metadata()
	metad := metadataS[len(metadataS)-1]

	md := markdown.NewMarkdown(w)

	md = libraryReadmeMdTitle(md, metad)
	md = libraryReadmeMdDependencies(md, metad.Dependencies())
	md = libraryReadmeMdUsage(md, metad.Path())
	md, err := libraryReadmeMdTemplates(md, lib)
	if err != nil {
		return err
	}
	md, err = libraryReadmeMdParameterSets(md, lib)
	if err != nil {
		return err
	}

	if err := md.Build(); err != nil {
		return errors.Join(ErrReadmeGenerationFailed, err)
	}

	return nil
}

func libraryReadmeMdTitle(md *markdown.Markdown, metad *appsvclib.Metadata) *markdown.Markdown {
	name := metad.Name()
	if name == "" {
		name = "No name in metadata"
	}

	displayName := metad.DisplayName()
	if displayName == "" {
		displayName = "No display name in metadata"
	}

	description := metad.Description()
	if description == "" {
		description = "No description in metadata"
	}

	return md.H1f("%s (%s)", name, displayName).LF().
		PlainText(description).LF()
}

func libraryReadmeMdDependencies(md *markdown.Markdown, deps []appsvclib.LibraryReference) *markdown.Markdown {
	if len(deps) == 0 {
		return md
	}

	md = md.H2("Dependencies").LF()
	for _, dep := range deps {
		md = md.BulletList(dep.String())
	}

	return md.LF()
}

func libraryReadmeMdUsage(md *markdown.Markdown, path string) *markdown.Markdown {
	return md.H2("Usage").LF().
		CodeBlocks(markdown.SyntaxHighlight("shell"), fmt.Sprintf(`# validate the library templates offline
appsvctool check --library %[1]s

# deploy with a parameter set from the library
appsvctool deploy --library %[1]s --parameter-set dev`, path)).LF()
}

func libraryReadmeMdTemplates(md *markdown.Markdown, lib *appsvclib.AppSvcLib) (*markdown.Markdown, error) {
	names := lib.Templates()
	if len(names) == 0 {
		return md, nil
	}

	md = md.H2("Templates").LF()
	for _, name := range names {
		template, err := lib.Template(name)
		if err != nil {
			return nil, fmt.Errorf("doc.libraryReadmeMdTemplates: %w", err)
		}
		md = md.H3("template `" + name + "`").LF()
		if len(template.Parameters) > 0 {
			md = md.Table(templateParameterTable(template)).LF()
		}
		if len(template.Outputs) > 0 {
			outputs := make([]string, 0, len(template.Outputs))
			for o := range template.Outputs {
				outputs = append(outputs, "`"+o+"`")
			}
			sort.Strings(outputs)
			md = md.PlainText("Outputs: " + strings.Join(outputs, ", ")).LF()
		}
	}

	return md, nil
}

func libraryReadmeMdParameterSets(md *markdown.Markdown, lib *appsvclib.AppSvcLib) (*markdown.Markdown, error) {
	names := lib.ParameterSets()
	if len(names) == 0 {
		return md, nil
	}

	md = md.H2("Parameter sets").LF()
	for _, name := range names {
		ps, err := lib.ParameterSet(name)
		if err != nil {
			return nil, fmt.Errorf("doc.libraryReadmeMdParameterSets: %w", err)
		}
		t := markdown.TableSet{
			Header: []string{"Parameter", "Value"},
			Rows:   [][]string{},
		}
		values := ps.Values()
		params := make([]string, 0, len(values))
		for p := range values {
			params = append(params, p)
		}
		sort.Strings(params)
		for _, p := range params {
			t.Rows = append(t.Rows, []string{p, fmt.Sprintf("%v", values[p])})
		}
		md = md.H3("parameter set `" + name + "`").LF().Table(t).LF()
	}

	return md, nil
}

func templateParameterTable(template *assets.Template) markdown.TableSet {
	t := markdown.TableSet{
		Header: []string{"Parameter", "Type", "Default", "Allowed values"},
		Rows:   [][]string{},
	}
	names := make([]string, 0, len(template.Parameters))
	for name := range template.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		param := template.Parameters[name]
		def := ""
		if param.HasDefault() {
			def = fmt.Sprintf("%v", param.DefaultValue)
		}
		allowed := make([]string, 0, len(param.AllowedValues))
		for _, a := range param.AllowedValues {
			allowed = append(allowed, fmt.Sprintf("%v", a))
		}
		t.Rows = append(t.Rows, []string{name, param.Type, def, strings.Join(allowed, ", ")})
	}
	return t
}
