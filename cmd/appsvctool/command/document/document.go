// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package document

import (
	"io/fs"
	"os"

	"github.com/Azure/appsvclib"
	"github.com/Azure/appsvclib/internal/doc"
	"github.com/spf13/cobra"
)

// DocumentCmd generates Markdown documentation for a template library member.
var DocumentCmd = cobra.Command{
	Use:   "document [flags] [dir]",
	Short: "Generate Markdown documentation for a template library member.",
	Long: `Generate Markdown documentation for a template library member and write it to stdout.

With no argument the embedded default library is documented.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var libFS fs.FS = appsvclib.DefaultLibraryFS()
		if len(args) == 1 {
			libFS = os.DirFS(args[0])
		}
		if err := doc.LibraryReadmeMd(cmd.Context(), os.Stdout, libFS); err != nil {
			cmd.PrintErrf("%s could not generate documentation: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}
