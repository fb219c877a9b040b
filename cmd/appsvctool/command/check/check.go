// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package check

import (
	"io/fs"
	"os"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/tools/checker"
	"github.com/Azure/appsvclib/tools/checks"
	"github.com/spf13/cobra"
)

// CheckCmd validates a template library member offline.
var CheckCmd = cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Check the validity of a template library member.",
	Long: `Check the validity of a template library member without calling the provider.

With no argument the embedded default library is checked.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var libFS fs.FS = appsvclib.DefaultLibraryFS()
		if len(args) == 1 {
			libFS = os.DirFS(args[0])
		}
		lib := appsvclib.NewAppSvcLib(nil)
		if err := lib.Init(cmd.Context(), libFS); err != nil {
			cmd.PrintErrf("%s could not initialize library: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		chk := checker.NewValidator(
			checks.CheckTemplatesCompose,
			checks.CheckContractOutputs,
			checks.CheckParameterSetsResolve,
		)
		if err := chk.Validate(lib); err != nil {
			cmd.PrintErrf("%s library check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
		cmd.Println("Library check passed.")
	},
}
