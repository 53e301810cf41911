// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.Microgrid

func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Modify configuration for Microgrid CLI",
		Long: `Customize configuration for Microgrid CLI. Settings are stored on
$HOME/.microgrid/config.json and can be overridden by flags or by
MICROGRID_ prefixed environment variables.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	// config set
	cmd.AddCommand(newSetCmd())
	// config print
	cmd.AddCommand(newPrintCmd())
	// config skip-confirm
	cmd.AddCommand(newSkipConfirmCmd())
	return cmd
}
