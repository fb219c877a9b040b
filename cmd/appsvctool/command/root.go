// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"context"
	"os"

	"github.com/Azure/appsvclib/cmd/appsvctool/command/check"
	"github.com/Azure/appsvclib/cmd/appsvctool/command/deploy"
	"github.com/Azure/appsvclib/cmd/appsvctool/command/document"
	"github.com/Azure/appsvclib/cmd/appsvctool/command/oidc"
	"github.com/Azure/appsvclib/cmd/appsvctool/command/report"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "appsvctool",
	Version: version,
	Short:   "A cli tool for deploying App Service template libraries",
	Long: `A cli tool for deploying App Service template libraries.

This tool can:

- Validate and deploy the App Service Plan and Web App templates through the Azure CLI.
- Configure GitHub Actions OIDC federation so that CI deploys without a stored secret.
- Check a template library member offline.
- Generate Markdown documentation for a library member.
- Report the receipts of the last deployment and OIDC setup.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(&deploy.DeployCmd)
	rootCmd.AddCommand(&oidc.OidcCmd)
	rootCmd.AddCommand(&check.CheckCmd)
	rootCmd.AddCommand(&document.DocumentCmd)
	rootCmd.AddCommand(&report.ReportCmd)
}
