// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"errors"
	"fmt"
	"slices"

	"github.com/brunoga/deep"
)

const (
	// SubscriptionSchema is the $schema value for subscription scope deployment templates.
	SubscriptionSchema = "https://schema.management.azure.com/schemas/2018-05-01/subscriptionDeploymentTemplate.json#"
	// ResourceGroupSchema is the $schema value for resource group scope deployment templates.
	ResourceGroupSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"

	nestedDeploymentType = "Microsoft.Resources/deployments"
)

// Template is an ARM deployment template.
// Resources are kept as raw maps so that templates round-trip without loss.
type Template struct {
	Schema         string                       `json:"$schema"                  yaml:"$schema"`
	ContentVersion string                       `json:"contentVersion"           yaml:"contentVersion"`
	Parameters     map[string]TemplateParameter `json:"parameters,omitempty"     yaml:"parameters,omitempty"`
	Variables      map[string]any               `json:"variables,omitempty"      yaml:"variables,omitempty"`
	Resources      []map[string]any             `json:"resources"                yaml:"resources"`
	Outputs        map[string]TemplateOutput    `json:"outputs,omitempty"        yaml:"outputs,omitempty"`
}

// TemplateParameter is a named input of a deployment template.
type TemplateParameter struct {
	Type          string         `json:"type"                    yaml:"type"`
	DefaultValue  any            `json:"defaultValue,omitempty"  yaml:"defaultValue,omitempty"`
	AllowedValues []any          `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
	MinLength     *int           `json:"minLength,omitempty"     yaml:"minLength,omitempty"`
	MaxLength     *int           `json:"maxLength,omitempty"     yaml:"maxLength,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
}

// TemplateOutput is a named output of a deployment template.
type TemplateOutput struct {
	Type  string `json:"type"  yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// HasDefault returns true when the parameter declares a default value.
func (p TemplateParameter) HasDefault() bool {
	return p.DefaultValue != nil
}

// IsSubscriptionScope returns true when the template deploys at subscription scope.
func (t *Template) IsSubscriptionScope() bool {
	return t.Schema == SubscriptionSchema
}

// Copy returns a deep copy of the template.
func (t *Template) Copy() (*Template, error) {
	return deep.Copy(t)
}

// ValidateParameterValues checks the supplied values against the template's
// parameter declarations: every parameter without a default must be supplied,
// every supplied value must be declared, and values must be within the
// allowedValues list where one is declared.
func (t *Template) ValidateParameterValues(values map[string]any) error {
	errs := make([]error, 0)
	for name, param := range t.Parameters {
		v, ok := values[name]
		if !ok {
			if !param.HasDefault() {
				errs = append(errs, fmt.Errorf("required parameter %q has no value and no default", name))
			}
			continue
		}
		if len(param.AllowedValues) != 0 && !slices.ContainsFunc(param.AllowedValues, func(a any) bool {
			return a == v
		}) {
			errs = append(errs, fmt.Errorf("parameter %q value %v is not in the allowed values %v", name, v, param.AllowedValues))
		}
		if s, ok := v.(string); ok {
			if param.MinLength != nil && len(s) < *param.MinLength {
				errs = append(errs, fmt.Errorf("parameter %q length %d is below the minimum %d", name, len(s), *param.MinLength))
			}
			if param.MaxLength != nil && len(s) > *param.MaxLength {
				errs = append(errs, fmt.Errorf("parameter %q length %d is above the maximum %d", name, len(s), *param.MaxLength))
			}
		}
	}
	for name := range values {
		if _, ok := t.Parameters[name]; !ok {
			errs = append(errs, fmt.Errorf("parameter %q is not declared by the template", name))
		}
	}
	if len(errs) != 0 {
		return fmt.Errorf("Template.ValidateParameterValues: %w", errors.Join(errs...))
	}
	return nil
}

// EffectiveParameterValues merges the supplied values over the template
// defaults, returning the full set of values the deployment will see.
func (t *Template) EffectiveParameterValues(values map[string]any) map[string]any {
	merged := make(map[string]any, len(t.Parameters))
	for name, param := range t.Parameters {
		if param.HasDefault() {
			merged[name] = param.DefaultValue
		}
	}
	for name, v := range values {
		merged[name] = v
	}
	return merged
}

// Compose embeds the supplied resource group scope template into this
// template's nested deployment resource. This is the contract between the
// subscription level document and the resource level document: the nested
// resource's parameters feed the inner template's named inputs, and the
// outer outputs reference the nested deployment's outputs.
func (t *Template) Compose(nested *Template) error {
	if !t.IsSubscriptionScope() {
		return errors.New("Template.Compose: outer template is not subscription scope")
	}
	if nested == nil || nested.Schema != ResourceGroupSchema {
		return errors.New("Template.Compose: nested template is not resource group scope")
	}
	for _, res := range t.Resources {
		if res["type"] != nestedDeploymentType {
			continue
		}
		props, ok := res["properties"].(map[string]any)
		if !ok {
			return errors.New("Template.Compose: nested deployment resource has no properties")
		}
		inner, err := nested.Copy()
		if err != nil {
			return fmt.Errorf("Template.Compose: copying nested template: %w", err)
		}
		props["template"] = inner
		return nil
	}
	return errors.New("Template.Compose: no nested deployment resource in outer template")
}
