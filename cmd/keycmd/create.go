// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"encoding/hex"
	"errors"

	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
)

const (
	forceFlag = "force"
)

var (
	forceCreate bool
	filename    string
)

// microgrid key create
func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [keyName]",
		Short: "Create a signing key",
		Long: `The key create command generates a new private key and stores it under the
given name. Use --file to import an existing hex encoded key instead.`,
		Args: cobrautils.MaximumNArgs(1),
		RunE: createKey,
	}
	cmd.Flags().StringVar(&filename, "file", "", "import the hex encoded key at the given path instead of generating one")
	cmd.Flags().BoolVarP(&forceCreate, forceFlag, "f", false, "overwrite an existing key with the same name")
	return cmd
}

func createKey(_ *cobra.Command, args []string) error {
	var keyName string
	if len(args) == 1 {
		keyName = args[0]
	} else {
		var err error
		keyName, err = app.Prompt.CaptureValidatedString("Enter a name for the key", application.ValidateKeyName)
		if err != nil {
			return err
		}
	}

	if app.KeyExists(keyName) && !forceCreate {
		return errors.New("key already exists. Use --" + forceFlag + " parameter to overwrite")
	}

	var privateKey string
	if filename == "" {
		// Create key from scratch
		ux.Logger.PrintToUser("Generating new key...")
		k, err := crypto.GenerateKey()
		if err != nil {
			return err
		}
		privateKey = hex.EncodeToString(crypto.FromECDSA(k))
	} else {
		// Load key from file
		ux.Logger.PrintToUser("Loading user key...")
		var err error
		privateKey, err = app.ReadKeyFile(filename)
		if err != nil {
			return err
		}
	}
	address, err := app.SaveKey(keyName, privateKey, forceCreate)
	if err != nil {
		if errors.Is(err, application.ErrKeyExists) {
			return errors.New("key already exists. Use --" + forceFlag + " parameter to overwrite")
		}
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Key %s created with address %s", keyName, address.Hex())
	return nil
}
