// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.Microgrid

// microgrid key
func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Create and manage signing keys",
		Long: `The key command suite provides a collection of tools for creating and managing
signing keys. Stored keys can be used with the --key flag of every command that
sends transactions.

To get started, use the key create command.`,
		RunE: cobrautils.CommandSuiteUsage,
	}

	// microgrid key create
	cmd.AddCommand(newCreateCmd())

	// microgrid key list
	cmd.AddCommand(newListCmd())

	// microgrid key export
	cmd.AddCommand(newExportCmd())

	// microgrid key delete
	cmd.AddCommand(newDeleteCmd())

	return cmd
}
