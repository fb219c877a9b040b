// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package deployment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/assets"
	"github.com/Azure/appsvclib/internal/azcli"
	"github.com/Azure/appsvclib/internal/environment"
)

// Output names forming the contract between the subscription level template
// and its consumers.
const (
	OutputWebAppURL     = "webAppUrl"
	OutputWebAppName    = "webAppName"
	OutputResourceGroup = "resourceGroupName"
)

// Parameter names of the subscription level template.
const (
	ParamResourceGroupName = "resourceGroupName"
	ParamLocation          = "location"
	ParamWebAppName        = "webAppName"
)

// Deployer validates and submits library templates through the Azure CLI.
type Deployer struct {
	lib *appsvclib.AppSvcLib
	cli *azcli.Client
	now func() time.Time
}

// NewDeployer creates a Deployer over the supplied library and CLI client.
func NewDeployer(lib *appsvclib.AppSvcLib, cli *azcli.Client) *Deployer {
	return &Deployer{
		lib: lib,
		cli: cli,
		now: time.Now,
	}
}

// Request describes a single deployment.
type Request struct {
	// TemplateName is the subscription scope template in the library. Defaults to "main".
	TemplateName string
	// WebAppTemplateName is the resource group scope template composed into
	// TemplateName's nested deployment resource. Defaults to "webapp".
	WebAppTemplateName string
	// ParameterSetName optionally names a parameter set in the library.
	ParameterSetName string
	// Parameters are merged over the parameter set values.
	Parameters map[string]any
	// Location of the deployment metadata and, by default, the resources.
	Location string
	// Name of the deployment. Defaults to a timestamp-derived name.
	Name string
}

func (r *Request) applyDefaults(now time.Time, location string) {
	if r.TemplateName == "" {
		r.TemplateName = "main"
	}
	if r.WebAppTemplateName == "" {
		r.WebAppTemplateName = "webapp"
	}
	if r.Location == "" {
		r.Location = location
	}
	if r.Name == "" {
		r.Name = DefaultDeploymentName(now)
	}
	if r.Parameters == nil {
		r.Parameters = make(map[string]any)
	}
}

// Validate runs the prerequisite checks, local validation and the provider
// side validation for the request, without submitting a deployment.
func (d *Deployer) Validate(ctx context.Context, req Request) error {
	_, _, err := d.prepare(ctx, &req)
	return err
}

// Deploy runs the full sequence: prerequisite checks, local validation,
// provider validation, submission, and receipt. It stops at the first error.
func (d *Deployer) Deploy(ctx context.Context, req Request) (*Result, error) {
	account, files, err := d.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}
	defer files.cleanup()

	depl := new(armDeployment)
	err = d.cli.RunJSON(ctx, depl,
		"deployment", "sub", "create",
		"--name", req.Name,
		"--location", req.Location,
		"--template-file", files.template,
		"--parameters", "@"+files.parameters,
	)
	if err != nil {
		return nil, fmt.Errorf("Deployer.Deploy: submitting deployment %s: %w", req.Name, err)
	}
	if depl.Properties.ProvisioningState != provisioningStateSucceeded {
		return nil, fmt.Errorf("Deployer.Deploy: deployment %s finished in state %s", req.Name, depl.Properties.ProvisioningState)
	}

	result := &Result{
		DeploymentName:    req.Name,
		SubscriptionID:    account.ID,
		ProvisioningState: depl.Properties.ProvisioningState,
		Outputs:           depl.Properties.Outputs,
		OutputResources:   depl.Properties.OutputResources,
	}
	return result, nil
}

// prepare performs every step of the sequence that precedes a provider
// mutation: prerequisite checks, template composition, parameter resolution,
// local validation, and `az deployment sub validate`.
func (d *Deployer) prepare(ctx context.Context, req *Request) (*azcli.Account, *materializedFiles, error) {
	account, err := d.cli.Account(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("Deployer: prerequisite check failed: %w", err)
	}

	req.applyDefaults(d.now(), environment.Location())

	template, err := d.composeTemplate(req.TemplateName, req.WebAppTemplateName)
	if err != nil {
		return nil, nil, err
	}

	params, err := d.resolveParameters(template, req)
	if err != nil {
		return nil, nil, err
	}

	files, err := materialize(template, params)
	if err != nil {
		return nil, nil, err
	}

	err = d.cli.RunJSON(ctx, nil,
		"deployment", "sub", "validate",
		"--name", req.Name,
		"--location", req.Location,
		"--template-file", files.template,
		"--parameters", "@"+files.parameters,
	)
	if err != nil {
		files.cleanup()
		return nil, nil, fmt.Errorf("Deployer: template validation failed: %w", err)
	}
	return account, files, nil
}

func (d *Deployer) composeTemplate(outerName, nestedName string) (*assets.Template, error) {
	template, err := d.lib.Template(outerName)
	if err != nil {
		return nil, fmt.Errorf("Deployer: %w", err)
	}
	nested, err := d.lib.Template(nestedName)
	if err != nil {
		return nil, fmt.Errorf("Deployer: %w", err)
	}
	if err := template.Compose(nested); err != nil {
		return nil, fmt.Errorf("Deployer: %w", err)
	}
	return template, nil
}

// resolveParameters builds the final parameter values: library parameter set,
// then request overrides, then generated defaults for the names the operator
// did not choose. The merged set must pass the template's declarations.
func (d *Deployer) resolveParameters(template *assets.Template, req *Request) (map[string]any, error) {
	values := make(map[string]any)
	if req.ParameterSetName != "" {
		ps, err := d.lib.ParameterSet(req.ParameterSetName)
		if err != nil {
			return nil, fmt.Errorf("Deployer: %w", err)
		}
		values = ps.Values()
	}
	for k, v := range req.Parameters {
		values[k] = v
	}
	now := d.now()
	if _, ok := values[ParamResourceGroupName]; !ok {
		values[ParamResourceGroupName] = DefaultResourceGroupName(now)
	}
	if _, ok := values[ParamWebAppName]; !ok {
		values[ParamWebAppName] = DefaultWebAppName(now)
	}
	if _, ok := values[ParamLocation]; !ok {
		values[ParamLocation] = req.Location
	}
	if err := template.ValidateParameterValues(values); err != nil {
		return nil, fmt.Errorf("Deployer: local validation failed: %w", err)
	}
	return values, nil
}

// materializedFiles are the on-disk documents handed to the Azure CLI.
type materializedFiles struct {
	dir        string
	template   string
	parameters string
}

func (m *materializedFiles) cleanup() {
	_ = os.RemoveAll(m.dir)
}

// materialize writes the composed template and the parameter file to a
// temporary directory, re-validating the parameter document against the
// deployment parameters schema before it leaves the process.
func materialize(template *assets.Template, values map[string]any) (*materializedFiles, error) {
	dir, err := os.MkdirTemp("", "appsvclib-deploy-")
	if err != nil {
		return nil, fmt.Errorf("deployment.materialize: %w", err)
	}
	files := &materializedFiles{
		dir:        dir,
		template:   filepath.Join(dir, "template.json"),
		parameters: filepath.Join(dir, "parameters.json"),
	}

	templateJSON, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		files.cleanup()
		return nil, fmt.Errorf("deployment.materialize: marshalling template: %w", err)
	}
	if err := os.WriteFile(files.template, templateJSON, 0o644); err != nil {
		files.cleanup()
		return nil, fmt.Errorf("deployment.materialize: writing template: %w", err)
	}

	paramFile := assets.ParameterFile{
		Schema:         assets.ParameterFileSchema,
		ContentVersion: "1.0.0.0",
		Parameters:     make(map[string]assets.ParameterValue, len(values)),
	}
	for k, v := range values {
		paramFile.Parameters[k] = assets.ParameterValue{Value: v}
	}
	paramJSON, err := json.MarshalIndent(paramFile, "", "  ")
	if err != nil {
		files.cleanup()
		return nil, fmt.Errorf("deployment.materialize: marshalling parameters: %w", err)
	}
	if err := assets.ValidateParameterFileJSON(paramJSON); err != nil {
		files.cleanup()
		return nil, fmt.Errorf("deployment.materialize: %w", err)
	}
	if err := os.WriteFile(files.parameters, paramJSON, 0o644); err != nil {
		files.cleanup()
		return nil, fmt.Errorf("deployment.materialize: writing parameters: %w", err)
	}
	return files, nil
}
