// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package deployment

import (
	"fmt"

	"github.com/Azure/appsvclib/assets"
)

// provisioningStateSucceeded is the terminal success state reported by ARM.
const provisioningStateSucceeded = "Succeeded"

// armDeployment is the contract of `az deployment sub validate|create`.
type armDeployment struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Properties armDeploymentProperties `json:"properties"`
}

type armDeploymentProperties struct {
	ProvisioningState string                 `json:"provisioningState"`
	Outputs           map[string]OutputValue `json:"outputs"`
	OutputResources   []OutputResource       `json:"outputResources"`
}

// OutputValue is a single named output of a deployment.
type OutputValue struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// OutputResource is a resource created by a deployment.
type OutputResource struct {
	ID string `json:"id"`
}

// Result is the outcome of a successful deployment.
type Result struct {
	DeploymentName    string
	SubscriptionID    string
	ProvisioningState string
	Outputs           map[string]OutputValue
	OutputResources   []OutputResource
}

// StringOutput returns the named output as a string.
func (r *Result) StringOutput(name string) (string, error) {
	o, ok := r.Outputs[name]
	if !ok {
		return "", fmt.Errorf("deployment.Result.StringOutput: output %q not present", name)
	}
	s, ok := o.Value.(string)
	if !ok {
		return "", fmt.Errorf("deployment.Result.StringOutput: output %q is %T, not a string", name, o.Value)
	}
	return s, nil
}

// ResourceSummary describes one deployed resource, derived from its resource ID.
type ResourceSummary struct {
	Name string
	Type string
}

// Resources summarizes the deployed resources by parsing their resource IDs.
func (r *Result) Resources() ([]ResourceSummary, error) {
	summaries := make([]ResourceSummary, 0, len(r.OutputResources))
	for _, res := range r.OutputResources {
		name, err := assets.NameFromResourceID(res.ID)
		if err != nil {
			return nil, err
		}
		typ, err := assets.ResourceTypeFromResourceID(res.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ResourceSummary{Name: name, Type: typ})
	}
	return summaries, nil
}
