// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package report

import (
	"errors"
	"os"

	"github.com/Azure/appsvclib/deployment"
	"github.com/Azure/appsvclib/oidc"
	"github.com/spf13/cobra"
)

// ReportCmd prints the receipts of the last deployment and OIDC setup.
var ReportCmd = cobra.Command{
	Use:   "report",
	Short: "Print the receipts of the last deployment and OIDC setup.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		depl, err := deployment.ReadReceipt()
		switch {
		case errors.Is(err, deployment.ErrNoReceipt):
			cmd.Println("No deployment receipt.")
		case err != nil:
			cmd.PrintErrf("%s could not read deployment receipt: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		default:
			cmd.Println("Last deployment:")
			cmd.Println("  Deployment:     " + depl.DeploymentName)
			cmd.Println("  Resource group: " + depl.ResourceGroup)
			cmd.Println("  Web app:        " + depl.WebAppName)
			cmd.Println("  URL:            " + depl.WebAppURL)
			cmd.Println("  At:             " + depl.Timestamp.Format("2006-01-02T15:04:05Z"))
		}

		setup, err := oidc.ReadReceipt()
		switch {
		case errors.Is(err, oidc.ErrNoReceipt):
			cmd.Println("No OIDC setup receipt.")
		case err != nil:
			cmd.PrintErrf("%s could not read oidc receipt: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		default:
			cmd.Println("OIDC setup:")
			cmd.Println("  Client id:       " + setup.ClientID)
			cmd.Println("  Tenant id:       " + setup.TenantID)
			cmd.Println("  Subscription id: " + setup.SubscriptionID)
			cmd.Println("  Repository:      " + setup.Repository)
		}
	},
}
