// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/spf13/cobra"
)

// parses and validates the value given for a config key
type valueParser func(string) (interface{}, error)

var settableKeys = map[string]valueParser{
	constants.ConfigRPCURLKey: func(s string) (interface{}, error) {
		if _, err := evm.HasScheme(s); err != nil {
			return nil, err
		}
		return s, nil
	},
	constants.ConfigBuildDirKey: nonEmpty,
	constants.ConfigKeyFileKey:  nonEmpty,
	constants.ConfigGasLimitKey: func(s string) (interface{}, error) {
		return strconv.ParseUint(s, 10, 64)
	},
	constants.ConfigPrivateKeyKey: func(s string) (interface{}, error) {
		if _, err := evm.PrivateKeyToAddress(s); err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		return evm.TrimHexPrefix(s), nil
	},
	constants.ConfigSkipConfirm: func(s string) (interface{}, error) {
		return strconv.ParseBool(s)
	},
}

func nonEmpty(s string) (interface{}, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("value can't be empty")
	}
	return s, nil
}

func settableKeyNames() []string {
	keys := make([]string, 0, len(settableKeys))
	for key := range settableKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// microgrid config set
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Persist a configuration value",
		Long: fmt.Sprintf(`The config set command stores a value on the configuration file.

Known keys: %s`, strings.Join(settableKeyNames(), ", ")),
		RunE: setConfigValue,
		Args: cobrautils.ExactArgs(2),
	}
}

func setConfigValue(_ *cobra.Command, args []string) error {
	key, rawValue := args[0], args[1]
	parse, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q, known keys are %s", key, strings.Join(settableKeyNames(), ", "))
	}
	value, err := parse(rawValue)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := app.Conf.SetConfigValue(key, value); err != nil {
		return err
	}
	ux.Logger.PrintToUser("%s set on %s", key, app.Conf.GetConfigPath())
	return nil
}

// microgrid config print
func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration",
		RunE:  printConfig,
		Args:  cobrautils.ExactArgs(0),
	}
}

func printConfig(_ *cobra.Command, _ []string) error {
	t := ux.DefaultTable("Configuration", table.Row{"Key", "Value"})
	for _, key := range settableKeyNames() {
		value := app.Conf.GetConfigStringValue(key)
		if key == constants.ConfigPrivateKeyKey && value != "" {
			value = "********"
		}
		t.AppendRow(table.Row{key, value})
	}
	ux.PrintTable(t)
	if path := app.Conf.GetConfigPath(); path != "" {
		ux.Logger.PrintToUser("Config file: %s", path)
	}
	return nil
}
