// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	_ "embed"

	"github.com/brunoga/deep"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ParameterFileSchema is the $schema value for deployment parameter files.
const ParameterFileSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#"

//go:embed schema/parameters.schema.json
var parameterFileSchemaJSON []byte

var (
	parameterSchemaOnce sync.Once
	parameterSchemaErr  error
	parameterSchema     *jsonschema.Schema
)

// ParameterFile is an ARM deployment parameter file.
type ParameterFile struct {
	Schema         string                    `json:"$schema"        yaml:"$schema"`
	ContentVersion string                    `json:"contentVersion" yaml:"contentVersion"`
	Parameters     map[string]ParameterValue `json:"parameters"     yaml:"parameters"`
}

// ParameterValue is the value wrapper used in parameter files.
type ParameterValue struct {
	Value any `json:"value" yaml:"value"`
}

// Copy returns a deep copy of the parameter file.
func (p *ParameterFile) Copy() (*ParameterFile, error) {
	return deep.Copy(p)
}

// Values unwraps the parameter file into a plain name to value map.
func (p *ParameterFile) Values() map[string]any {
	values := make(map[string]any, len(p.Parameters))
	for name, v := range p.Parameters {
		values[name] = v.Value
	}
	return values
}

// ValidateParameterFileJSON validates raw parameter file JSON against the
// deployment parameters schema. It must pass before the file is handed to
// the provider.
func ValidateParameterFileJSON(data []byte) error {
	sch, err := loadParameterSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("assets.ValidateParameterFileJSON: unmarshalling document: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("assets.ValidateParameterFileJSON: %w", err)
	}
	return nil
}

func loadParameterSchema() (*jsonschema.Schema, error) {
	parameterSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("parameters.schema.json", bytes.NewReader(parameterFileSchemaJSON)); err != nil {
			parameterSchemaErr = err
			return
		}
		parameterSchema, parameterSchemaErr = compiler.Compile("parameters.schema.json")
	})
	return parameterSchema, parameterSchemaErr
}
