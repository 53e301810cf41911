// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"

	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/cobra"
)

var exportOutput string

// microgrid key export
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [keyName]",
		Short: "Export a signing key",
		Long: `The key export command prints the hex encoded private key of a stored key,
or writes it to the file given with --output.`,
		Args: cobrautils.ExactArgs(1),
		RunE: exportKey,
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the private key to the given file")
	return cmd
}

func exportKey(_ *cobra.Command, args []string) error {
	privateKey, err := app.LoadKey(args[0])
	if err != nil {
		return err
	}
	if exportOutput == "" {
		ux.Logger.PrintToUser("%s", privateKey)
		return nil
	}
	if utils.FileExists(app.Fs, exportOutput) {
		return fmt.Errorf("file %s already exists", exportOutput)
	}
	return utils.WriteFile(app.Fs, exportOutput, []byte(privateKey), constants.WriteReadUserOnlyPerms)
}
