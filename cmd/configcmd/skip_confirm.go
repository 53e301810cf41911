// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"errors"

	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
)

// microgrid config skip-confirm
func newSkipConfirmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skip-confirm [enable | disable]",
		Short: "opt in or out of transaction confirmations",
		Long:  "set whether commands ask for confirmation before sending transactions",
		RunE:  handleSkipConfirmSettings,
		Args:  cobrautils.ExactArgs(1),
	}

	return cmd
}

func handleSkipConfirmSettings(_ *cobra.Command, args []string) error {
	switch args[0] {
	case constants.Enable:
		ux.Logger.PrintToUser("Transactions will be sent without asking for confirmation")
		return saveSkipConfirmPreferences(true)
	case constants.Disable:
		ux.Logger.PrintToUser("Commands will ask for confirmation before sending transactions")
		return saveSkipConfirmPreferences(false)
	default:
		return errors.New("Invalid skip-confirm argument '" + args[0] + "'")
	}
}

func saveSkipConfirmPreferences(skip bool) error {
	return app.Conf.SetConfigValue(constants.ConfigSkipConfirm, skip)
}
