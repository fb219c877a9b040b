// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"testing"

	"github.com/Azure/appsvclib/to"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscriptionTemplate() *Template {
	return &Template{
		Schema:         SubscriptionSchema,
		ContentVersion: "1.0.0.0",
		Parameters: map[string]TemplateParameter{
			"webAppName": {
				Type:      "string",
				MinLength: to.Ptr(2),
				MaxLength: to.Ptr(60),
			},
			"skuName": {
				Type:          "string",
				DefaultValue:  "F1",
				AllowedValues: []any{"F1", "B1", "S1"},
			},
		},
		Resources: []map[string]any{
			{
				"type": "Microsoft.Resources/deployments",
				"name": "webapp",
				"properties": map[string]any{
					"mode": "Incremental",
				},
			},
		},
		Outputs: map[string]TemplateOutput{
			"webAppName": {Type: "string", Value: "[parameters('webAppName')]"},
		},
	}
}

func resourceGroupTemplate() *Template {
	return &Template{
		Schema:         ResourceGroupSchema,
		ContentVersion: "1.0.0.0",
		Resources:      []map[string]any{},
	}
}

func TestValidateParameterValues(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()

	assert.NoError(t, tmpl.ValidateParameterValues(map[string]any{
		"webAppName": "hello",
		"skuName":    "B1",
	}))

	// default covers the missing skuName
	assert.NoError(t, tmpl.ValidateParameterValues(map[string]any{
		"webAppName": "hello",
	}))
}

func TestValidateParameterValuesMissingRequired(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()
	err := tmpl.ValidateParameterValues(map[string]any{})
	assert.ErrorContains(t, err, `required parameter "webAppName"`)
}

func TestValidateParameterValuesOutsideAllowList(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()
	err := tmpl.ValidateParameterValues(map[string]any{
		"webAppName": "hello",
		"skuName":    "P9",
	})
	assert.ErrorContains(t, err, "not in the allowed values")
}

func TestValidateParameterValuesUndeclared(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()
	err := tmpl.ValidateParameterValues(map[string]any{
		"webAppName": "hello",
		"bogus":      true,
	})
	assert.ErrorContains(t, err, `parameter "bogus" is not declared`)
}

func TestValidateParameterValuesLength(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()
	err := tmpl.ValidateParameterValues(map[string]any{
		"webAppName": "x",
	})
	assert.ErrorContains(t, err, "below the minimum")
}

func TestEffectiveParameterValues(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()
	values := tmpl.EffectiveParameterValues(map[string]any{"webAppName": "hello"})
	assert.Equal(t, "hello", values["webAppName"])
	assert.Equal(t, "F1", values["skuName"])

	values = tmpl.EffectiveParameterValues(map[string]any{"webAppName": "hello", "skuName": "S1"})
	assert.Equal(t, "S1", values["skuName"])
}

func TestCompose(t *testing.T) {
	t.Parallel()
	outer := subscriptionTemplate()
	require.NoError(t, outer.Compose(resourceGroupTemplate()))

	props, ok := outer.Resources[0]["properties"].(map[string]any)
	require.True(t, ok)
	inner, ok := props["template"].(*Template)
	require.True(t, ok)
	assert.Equal(t, ResourceGroupSchema, inner.Schema)
}

func TestComposeWrongScopes(t *testing.T) {
	t.Parallel()
	assert.ErrorContains(t, resourceGroupTemplate().Compose(resourceGroupTemplate()), "not subscription scope")
	assert.ErrorContains(t, subscriptionTemplate().Compose(subscriptionTemplate()), "not resource group scope")

	noNested := subscriptionTemplate()
	noNested.Resources = []map[string]any{}
	assert.ErrorContains(t, noNested.Compose(resourceGroupTemplate()), "no nested deployment resource")
}

func TestCopyIsIndependent(t *testing.T) {
	t.Parallel()
	tmpl := subscriptionTemplate()
	cp, err := tmpl.Copy()
	require.NoError(t, err)
	delete(cp.Parameters, "skuName")
	assert.Contains(t, tmpl.Parameters, "skuName")
}
