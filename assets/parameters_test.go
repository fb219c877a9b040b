// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validParameterFile = `{
  "$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#",
  "contentVersion": "1.0.0.0",
  "parameters": {
    "skuName": { "value": "F1" }
  }
}`

func TestValidateParameterFileJSON(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateParameterFileJSON([]byte(validParameterFile)))
}

func TestValidateParameterFileJSONRejectsMissingValue(t *testing.T) {
	t.Parallel()
	doc := `{
  "$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#",
  "contentVersion": "1.0.0.0",
  "parameters": {
    "skuName": { "notValue": "F1" }
  }
}`
	assert.Error(t, ValidateParameterFileJSON([]byte(doc)))
}

func TestValidateParameterFileJSONRejectsUnknownTopLevel(t *testing.T) {
	t.Parallel()
	doc := `{
  "$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#",
  "contentVersion": "1.0.0.0",
  "parameters": {},
  "extras": {}
}`
	assert.Error(t, ValidateParameterFileJSON([]byte(doc)))
}

func TestValidateParameterFileJSONRejectsBadContentVersion(t *testing.T) {
	t.Parallel()
	doc := `{
  "$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#",
  "contentVersion": "one",
  "parameters": {}
}`
	assert.Error(t, ValidateParameterFileJSON([]byte(doc)))
}

func TestValidateParameterFileJSONRejectsMalformed(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidateParameterFileJSON([]byte("{")))
}

func TestParameterFileValues(t *testing.T) {
	t.Parallel()
	pf := &ParameterFile{
		Schema:         ParameterFileSchema,
		ContentVersion: "1.0.0.0",
		Parameters: map[string]ParameterValue{
			"skuName":    {Value: "F1"},
			"webAppName": {Value: "hello"},
		},
	}
	values := pf.Values()
	assert.Equal(t, "F1", values["skuName"])
	assert.Equal(t, "hello", values["webAppName"])
}

func TestParameterFileCopy(t *testing.T) {
	t.Parallel()
	pf := &ParameterFile{
		Schema:         ParameterFileSchema,
		ContentVersion: "1.0.0.0",
		Parameters:     map[string]ParameterValue{"skuName": {Value: "F1"}},
	}
	cp, err := pf.Copy()
	require.NoError(t, err)
	cp.Parameters["skuName"] = ParameterValue{Value: "S1"}
	assert.Equal(t, "F1", pf.Parameters["skuName"].Value)
}
