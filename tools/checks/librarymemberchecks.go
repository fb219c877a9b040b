// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package checks contains the validation checks run against an App Service
// template library before it is accepted for deployment.
package checks

import (
	"fmt"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/deployment"
	"github.com/Azure/appsvclib/tools/checker"
)

// CheckTemplatesCompose verifies that the subscription scope template and the
// web app template compose into a single deployable document.
var CheckTemplatesCompose = checker.NewValidatorCheck("templates compose", checkTemplatesCompose)

// CheckContractOutputs verifies that the subscription scope template declares
// the outputs its consumers rely on.
var CheckContractOutputs = checker.NewValidatorCheck("contract outputs declared", checkContractOutputs)

// CheckParameterSetsResolve verifies that every parameter set in the library
// passes the template's parameter declarations, including the pricing tier
// and runtime allow-lists.
var CheckParameterSetsResolve = checker.NewValidatorCheck("parameter sets resolve", checkParameterSetsResolve)

func checkTemplatesCompose(libany any) error {
	lib, err := asLib(libany)
	if err != nil {
		return err
	}
	main, err := lib.Template("main")
	if err != nil {
		return fmt.Errorf("checkTemplatesCompose: %w", err)
	}
	webapp, err := lib.Template("webapp")
	if err != nil {
		return fmt.Errorf("checkTemplatesCompose: %w", err)
	}
	if err := main.Compose(webapp); err != nil {
		return fmt.Errorf("checkTemplatesCompose: %w", err)
	}
	return nil
}

func checkContractOutputs(libany any) error {
	lib, err := asLib(libany)
	if err != nil {
		return err
	}
	main, err := lib.Template("main")
	if err != nil {
		return fmt.Errorf("checkContractOutputs: %w", err)
	}
	for _, name := range []string{deployment.OutputWebAppURL, deployment.OutputWebAppName, deployment.OutputResourceGroup} {
		if _, ok := main.Outputs[name]; !ok {
			return fmt.Errorf("checkContractOutputs: template 'main' does not declare output %q", name)
		}
	}
	return nil
}

func checkParameterSetsResolve(libany any) error {
	lib, err := asLib(libany)
	if err != nil {
		return err
	}
	main, err := lib.Template("main")
	if err != nil {
		return fmt.Errorf("checkParameterSetsResolve: %w", err)
	}
	for _, name := range lib.ParameterSets() {
		ps, err := lib.ParameterSet(name)
		if err != nil {
			return fmt.Errorf("checkParameterSetsResolve: %w", err)
		}
		values := main.EffectiveParameterValues(ps.Values())
		// names not pinned by the set are generated at deploy time
		for _, p := range []string{deployment.ParamResourceGroupName, deployment.ParamWebAppName, deployment.ParamLocation} {
			if _, ok := values[p]; !ok {
				values[p] = "placeholder"
			}
		}
		if err := main.ValidateParameterValues(values); err != nil {
			return fmt.Errorf("checkParameterSetsResolve: parameter set %q: %w", name, err)
		}
	}
	return nil
}

func asLib(libany any) (*appsvclib.AppSvcLib, error) {
	lib, ok := libany.(*appsvclib.AppSvcLib)
	if !ok {
		return nil, fmt.Errorf("checks: expected *appsvclib.AppSvcLib, got %T", libany)
	}
	return lib, nil
}
