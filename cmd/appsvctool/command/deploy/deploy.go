// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package deploy

import (
	"io/fs"
	"os"
	"time"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/deployment"
	"github.com/Azure/appsvclib/internal/azcli"
	"github.com/spf13/cobra"
)

// DeployCmd validates and submits the App Service templates through the Azure CLI.
var DeployCmd = cobra.Command{
	Use:   "deploy [flags]",
	Short: "Validate and deploy the App Service Plan and Web App templates.",
	Long: `Validate and deploy the App Service Plan and Web App templates.

The sequence is: check the Azure CLI is installed and logged in, validate the
composed template locally and with the provider, submit the deployment at
subscription scope, then write a JSON receipt of the outputs.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cli, err := azcli.NewClientFromPath()
		if err != nil {
			cmd.PrintErrf("%s prerequisite check failed: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		lib, err := initLibrary(cmd)
		if err != nil {
			cmd.PrintErrf("%s could not initialize library: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		req := requestFromFlags(cmd)
		deployer := deployment.NewDeployer(lib, cli)

		if validateOnly, _ := cmd.Flags().GetBool("validate-only"); validateOnly {
			if err := deployer.Validate(cmd.Context(), req); err != nil {
				cmd.PrintErrf("%s validation failed: %v\n", cmd.ErrPrefix(), err)
				os.Exit(1)
			}
			cmd.Println("Validation succeeded.")
			return
		}

		result, err := deployer.Deploy(cmd.Context(), req)
		if err != nil {
			cmd.PrintErrf("%s deployment failed: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		receipt, err := deployment.NewReceipt(result, time.Now())
		if err != nil {
			cmd.PrintErrf("%s could not build receipt: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
		if err := receipt.Save(); err != nil {
			cmd.PrintErrf("%s could not save receipt: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		printSummary(cmd, result, receipt)
	},
}

func initLibrary(cmd *cobra.Command) (*appsvclib.AppSvcLib, error) {
	libraryPath, _ := cmd.Flags().GetString("library")
	var libFS fs.FS = appsvclib.DefaultLibraryFS()
	if libraryPath != "" {
		libFS = os.DirFS(libraryPath)
	}
	lib := appsvclib.NewAppSvcLib(nil)
	if err := lib.Init(cmd.Context(), libFS); err != nil {
		return nil, err
	}
	return lib, nil
}

func requestFromFlags(cmd *cobra.Command) deployment.Request {
	location, _ := cmd.Flags().GetString("location")
	resourceGroup, _ := cmd.Flags().GetString("resource-group")
	webAppName, _ := cmd.Flags().GetString("webapp-name")
	parameterSet, _ := cmd.Flags().GetString("parameter-set")
	name, _ := cmd.Flags().GetString("name")
	templateName, _ := cmd.Flags().GetString("template")

	params := make(map[string]any)
	if resourceGroup != "" {
		params[deployment.ParamResourceGroupName] = resourceGroup
	}
	if webAppName != "" {
		params[deployment.ParamWebAppName] = webAppName
	}
	return deployment.Request{
		TemplateName:     templateName,
		ParameterSetName: parameterSet,
		Parameters:       params,
		Location:         location,
		Name:             name,
	}
}

func printSummary(cmd *cobra.Command, result *deployment.Result, receipt *deployment.Receipt) {
	cmd.Println("Deployment succeeded.")
	cmd.Println("  Deployment:     " + receipt.DeploymentName)
	cmd.Println("  Resource group: " + receipt.ResourceGroup)
	cmd.Println("  Web app:        " + receipt.WebAppName)
	cmd.Println("  URL:            " + receipt.WebAppURL)
	resources, err := result.Resources()
	if err != nil {
		return
	}
	for _, r := range resources {
		cmd.Println("  Deployed:       " + r.Type + "/" + r.Name)
	}
}

func init() {
	DeployCmd.Flags().StringP("location", "l", "", "The location of the deployment and resources. Defaults to the APPSVCLIB_LOCATION environment variable, or eastus.")
	DeployCmd.Flags().StringP("resource-group", "g", "", "The resource group name. Defaults to a timestamp-derived name.")
	DeployCmd.Flags().StringP("webapp-name", "w", "", "The web app name. Defaults to a timestamp-derived name.")
	DeployCmd.Flags().StringP("parameter-set", "p", "", "The name of a parameter set in the library, e.g. dev or prod.")
	DeployCmd.Flags().StringP("name", "n", "", "The deployment name. Defaults to a timestamp-derived name.")
	DeployCmd.Flags().StringP("template", "t", "", "The name of the subscription scope template in the library. Defaults to main.")
	DeployCmd.Flags().String("library", "", "Path to a template library directory. Defaults to the embedded library.")
	DeployCmd.Flags().Bool("validate-only", false, "Validate the templates and parameters without deploying.")
}
