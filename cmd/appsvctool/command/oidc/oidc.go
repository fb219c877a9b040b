// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package oidc

import (
	"os"

	"github.com/Azure/appsvclib/internal/azcli"
	"github.com/Azure/appsvclib/oidc"
	"github.com/spf13/cobra"
)

// OidcCmd configures GitHub Actions workload identity federation.
var OidcCmd = cobra.Command{
	Use:   "oidc [flags] organization repository",
	Short: "Configure GitHub Actions OIDC federation for a repository.",
	Long: `Configure GitHub Actions OIDC federation for a repository.

Creates (or reuses) an application identity and service principal, assigns a
subscription role, and registers federated credentials for the default branch
ref and for pull requests. Rerunning is safe: existing resources are reported,
not recreated.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cli, err := azcli.NewClientFromPath()
		if err != nil {
			cmd.PrintErrf("%s prerequisite check failed: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		appName, _ := cmd.Flags().GetString("application-name")
		branch, _ := cmd.Flags().GetString("branch")
		role, _ := cmd.Flags().GetString("role")

		configurator := oidc.NewConfigurator(cli)
		result, err := configurator.Setup(cmd.Context(), oidc.Request{
			Organization:    args[0],
			Repository:      args[1],
			ApplicationName: appName,
			Branch:          branch,
			Role:            role,
		})
		if err != nil {
			cmd.PrintErrf("%s oidc setup failed: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		receipt := oidc.NewReceipt(result)
		if err := receipt.Save(); err != nil {
			cmd.PrintErrf("%s could not save receipt: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		cmd.Println("OIDC federation configured.")
		cmd.Println("  Client id:       " + result.ClientID)
		cmd.Println("  Tenant id:       " + result.TenantID)
		cmd.Println("  Subscription id: " + result.SubscriptionID)
		cmd.Println("  Repository:      " + result.Repository)
		for _, s := range result.CreatedSubjects {
			cmd.Println("  Registered:      " + s)
		}
		for _, s := range result.ExistingSubjects {
			cmd.Println("  Already present: " + s)
		}
	},
}

func init() {
	OidcCmd.Flags().StringP("application-name", "a", "", "The display name of the application identity. Defaults to "+oidc.DefaultApplicationName+".")
	OidcCmd.Flags().StringP("branch", "b", "main", "The branch whose pushes are trusted.")
	OidcCmd.Flags().StringP("role", "r", "Contributor", "The subscription role granted to the identity.")
}
