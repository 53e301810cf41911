// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package exchangecmd

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/microgrid"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"

	cmdflags "github.com/microgrid-exchange/microgrid-cli/cmd/flags"
)

// microgrid exchange ceo
func newCEOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ceo",
		Short: "Print the exchange CEO address",
		RunE:  printCEO,
		Args:  cobrautils.ExactArgs(0),
	}
	addReadFlags(cmd)
	return cmd
}

func printCEO(_ *cobra.Command, _ []string) error {
	return withExchange(func(ctx context.Context, exchange *microgrid.Exchange) error {
		ceo, err := exchange.CEOAddress(ctx)
		if err != nil {
			return err
		}
		ux.Logger.PrintToUser("Exchange %s CEO: %s", exchange.Address().Hex(), ceo.Hex())
		return nil
	})
}

// microgrid exchange device
func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device [deviceAddress]",
		Short: "Print the exchange record of a device",
		Long: `The exchange device command prints the watt hours a device produced, consumed,
has available for trade and owes for settlement, together with the roles it
was designated for.`,
		RunE: printDevice,
		Args: cobrautils.ExactArgs(1),
	}
	addReadFlags(cmd)
	return cmd
}

func printDevice(_ *cobra.Command, args []string) error {
	device, err := cmdflags.ParseAddressArg("device", args[0])
	if err != nil {
		return err
	}
	return withExchange(func(ctx context.Context, exchange *microgrid.Exchange) error {
		d, err := exchange.GetDevice(ctx, device)
		if err != nil {
			return err
		}
		t := ux.DefaultTable(fmt.Sprintf("Device %s", device.Hex()), nil)
		t.AppendRow(table.Row{"Produced", fmt.Sprintf("%s Wh", d.WhProduced)})
		t.AppendRow(table.Row{"Consumed", fmt.Sprintf("%s Wh", d.WhConsumed)})
		t.AppendRow(table.Row{"Available", fmt.Sprintf("%s Wh", d.WhAvailable)})
		t.AppendRow(table.Row{"Deficit", fmt.Sprintf("%s Wh", d.WhDeficit)})
		t.AppendRow(table.Row{"Producer", yesNo(d.ValidProducer)})
		t.AppendRow(table.Row{"Consumer", yesNo(d.ValidConsumer)})
		ux.PrintTable(t)
		return nil
	})
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
