// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"errors"
	"fmt"

	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/spf13/cobra"

	cmdflags "github.com/microgrid-exchange/microgrid-cli/cmd/flags"
)

type PrivateKeyFlags struct {
	privateKeyFlagName string
	keyFlagName        string
	keyFileFlagName    string
	devKeyFlagName     string
	PrivateKey         string
	KeyName            string
	KeyFile            string
	DevKey             bool
}

const (
	defaultPrivateKeyFlagName = "private-key"
	defaultKeyFlagName        = "key"
	defaultKeyFileFlagName    = "key-file"
	defaultDevKeyFlagName     = "dev-key"
)

func (pkf *PrivateKeyFlags) fillDefaultFlagNames() {
	if pkf.privateKeyFlagName == "" {
		pkf.privateKeyFlagName = defaultPrivateKeyFlagName
	}
	if pkf.keyFlagName == "" {
		pkf.keyFlagName = defaultKeyFlagName
	}
	if pkf.keyFileFlagName == "" {
		pkf.keyFileFlagName = defaultKeyFileFlagName
	}
	if pkf.devKeyFlagName == "" {
		pkf.devKeyFlagName = defaultDevKeyFlagName
	}
}

func (pkf *PrivateKeyFlags) AddToCmd(
	cmd *cobra.Command,
	goal string,
) {
	pkf.fillDefaultFlagNames()
	cmd.Flags().StringVar(
		&pkf.PrivateKey,
		pkf.privateKeyFlagName,
		"",
		fmt.Sprintf("private key to use %s", goal),
	)
	cmd.Flags().StringVar(
		&pkf.KeyName,
		pkf.keyFlagName,
		"",
		fmt.Sprintf("stored key to use %s", goal),
	)
	cmd.Flags().StringVar(
		&pkf.KeyFile,
		pkf.keyFileFlagName,
		"",
		fmt.Sprintf("file holding the private key to use %s", goal),
	)
	cmd.Flags().BoolVar(
		&pkf.DevKey,
		pkf.devKeyFlagName,
		false,
		fmt.Sprintf("use the local development key %s", goal),
	)
}

// GetPrivateKey resolves the signing key. Flags win over the config file
// (private-key first, then key-file). Returns an empty key when nothing is set.
func (pkf *PrivateKeyFlags) GetPrivateKey(app *application.Microgrid) (string, error) {
	pkf.fillDefaultFlagNames()
	if err := cmdflags.EnsureExclusive(
		[]string{pkf.privateKeyFlagName, pkf.keyFlagName, pkf.keyFileFlagName, pkf.devKeyFlagName},
		pkf.PrivateKey != "",
		pkf.KeyName != "",
		pkf.KeyFile != "",
		pkf.DevKey,
	); err != nil {
		return "", err
	}
	switch {
	case pkf.PrivateKey != "":
		return validatedKey(evm.TrimHexPrefix(pkf.PrivateKey))
	case pkf.KeyName != "":
		return app.LoadKey(pkf.KeyName)
	case pkf.KeyFile != "":
		return app.ReadKeyFile(pkf.KeyFile)
	case pkf.DevKey:
		return constants.DevPrivateKey, nil
	}
	if privateKey := app.Conf.GetPrivateKey(); privateKey != "" {
		return validatedKey(evm.TrimHexPrefix(privateKey))
	}
	if keyFile := app.Conf.GetKeyFile(); keyFile != "" {
		return app.ReadKeyFile(keyFile)
	}
	return "", nil
}

// GetPrivateKeyOrPrompt is GetPrivateKey, falling back to asking the user
// when no key is configured and prompting is allowed
func (pkf *PrivateKeyFlags) GetPrivateKeyOrPrompt(
	app *application.Microgrid,
	goal string,
	allowPrompt bool,
) (string, error) {
	privateKey, err := pkf.GetPrivateKey(app)
	if err != nil || privateKey != "" {
		return privateKey, err
	}
	if !allowPrompt || app.Prompt == nil {
		return "", constants.ErrNoPrivateKey
	}
	keyNames, err := app.KeyNames()
	if err != nil {
		return "", err
	}
	privateKey, err = prompts.PromptPrivateKey(
		app.Prompt,
		goal,
		keyNames,
		app.LoadKey,
		constants.DevAddress,
		constants.DevPrivateKey,
	)
	if errors.Is(err, prompts.ErrNoKeys) {
		return "", constants.ErrNoPrivateKey
	}
	return privateKey, err
}

func validatedKey(privateKey string) (string, error) {
	if _, err := evm.PrivateKeyToAddress(privateKey); err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}
	return privateKey, nil
}
