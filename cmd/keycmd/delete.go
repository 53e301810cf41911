// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"

	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
)

var forceDelete bool

// microgrid key delete
func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [keyName]",
		Short: "Delete a signing key",
		Long:  `The key delete command removes a stored signing key. The key can't be recovered.`,
		Args:  cobrautils.ExactArgs(1),
		RunE:  deleteKey,
	}
	cmd.Flags().BoolVarP(&forceDelete, forceFlag, "f", false, "delete without asking for confirmation")
	return cmd
}

func deleteKey(_ *cobra.Command, args []string) error {
	keyName := args[0]
	if !app.KeyExists(keyName) {
		return fmt.Errorf("%w: %s", application.ErrKeyNotFound, keyName)
	}
	ok, err := prompts.Confirm(app.Prompt, forceDelete, fmt.Sprintf("Delete key %s? This can't be undone", keyName))
	if err != nil {
		return err
	}
	if !ok {
		ux.Logger.PrintToUser("Key %s kept", keyName)
		return nil
	}
	if err := app.Fs.Remove(app.GetKeyPath(keyName)); err != nil {
		return err
	}
	ux.Logger.PrintToUser("Key %s deleted", keyName)
	return nil
}
