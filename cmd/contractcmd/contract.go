// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.Microgrid

// microgrid contract
func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Deploy and check smart contracts",
		Long: `The contract command suite provides a collection of tools for deploying
compiled contract artifacts and for checking previous deployments.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	// contract deploy
	cmd.AddCommand(newDeployCmd())
	// contract status
	cmd.AddCommand(newStatusCmd())
	return cmd
}
