// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"context"

	"github.com/ava-labs/libevm/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployment"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/spf13/cobra"
)

var showBalances bool

// microgrid key list
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored signing keys",
		Long: `The key list command prints the name and address of every stored signing key,
plus the local development key. Use --balances to also query their balances
on the configured rpc endpoint.`,
		RunE: listKeys,
		Args: cobrautils.ExactArgs(0),
	}
	cmd.Flags().BoolVar(&showBalances, "balances", false, "query the balance of each key")
	return cmd
}

type keyRow struct {
	name    string
	address common.Address
}

func listKeys(_ *cobra.Command, _ []string) error {
	keyNames, err := app.KeyNames()
	if err != nil {
		return err
	}
	rows := []keyRow{{name: "dev (--dev-key)", address: common.HexToAddress(constants.DevAddress)}}
	for _, keyName := range keyNames {
		privateKey, err := app.LoadKey(keyName)
		if err != nil {
			return err
		}
		address, err := evm.PrivateKeyToAddress(privateKey)
		if err != nil {
			return err
		}
		rows = append(rows, keyRow{name: keyName, address: address})
	}

	header := table.Row{"Name", "Address"}
	var client evm.Client
	if showBalances {
		header = append(header, "Balance")
		client, err = app.GetEVMClient(context.Background())
		if err != nil {
			return err
		}
		defer client.Close()
	}
	t := ux.DefaultTable("Keys", header)
	for _, r := range rows {
		row := table.Row{r.name, r.address.Hex()}
		if showBalances {
			balance, err := client.GetAddressBalance(context.Background(), r.address)
			if err != nil {
				return err
			}
			row = append(row, deployment.FormatEther(balance))
		}
		t.AppendRow(row)
	}
	ux.PrintTable(t)
	return nil
}
