// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package agreementcmd

import (
	"context"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployment"
	"github.com/microgrid-exchange/microgrid-cli/pkg/microgrid"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"

	cmdflags "github.com/microgrid-exchange/microgrid-cli/cmd/flags"
)

// microgrid agreement set-exchange
func newSetExchangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-exchange [exchangeAddress]",
		Short: "Set the exchange the agreement reports to",
		Long: `The agreement set-exchange command records on the OperatorsAgreement the
address of the MicrogridExchange. When no address is given, the exchange is
taken from the deployment report. It must be signed by the agreement owner.`,
		RunE: setExchange,
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the agreement owner")
	return cmd
}

func setExchange(_ *cobra.Command, args []string) error {
	var (
		exchange common.Address
		err      error
	)
	if len(args) == 1 {
		exchange, err = cmdflags.ParseAddressArg("exchange", args[0])
	} else {
		exchangeFlags := cmdflags.ContractAddressFlags{ReportPath: addressFlags.ReportPath}
		exchange, err = exchangeFlags.GetAddress(app.Fs, constants.MicrogridExchangeContract)
	}
	if err != nil {
		return err
	}
	return sendTx(
		fmt.Sprintf("Set agreement exchange to %s", exchange.Hex()),
		"as the agreement owner",
		func(ctx context.Context, agreement *microgrid.OperatorsAgreement) (*types.Receipt, error) {
			return agreement.SetExchange(ctx, exchange)
		},
	)
}

// microgrid agreement whitelist
func newWhitelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist [assetAddress]",
		Short: "Whitelist a grid asset",
		Long: `The agreement whitelist command allows an asset to report through the
OperatorsAgreement. It must be signed by the agreement owner.`,
		RunE: func(_ *cobra.Command, args []string) error {
			asset, err := cmdflags.AddressArgOrPrompt(app.Prompt, args, "asset")
			if err != nil {
				return err
			}
			return sendTx(
				fmt.Sprintf("Whitelist asset %s", asset.Hex()),
				"as the agreement owner",
				func(ctx context.Context, agreement *microgrid.OperatorsAgreement) (*types.Receipt, error) {
					return agreement.WhitelistAsset(ctx, asset)
				},
			)
		},
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the agreement owner")
	return cmd
}

// microgrid agreement generate-kwh
func newGenerateKwhCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-kwh [kwh]",
		Short: "Report generated kWh",
		Long: `The agreement generate-kwh command reports the kWh generated by the signing
asset, that must be whitelisted.`,
		RunE: func(_ *cobra.Command, args []string) error {
			kwh, err := cmdflags.AmountArgOrPrompt(app.Prompt, args, "kWh")
			if err != nil {
				return err
			}
			return sendTx(
				fmt.Sprintf("Report %s kWh generated", kwh),
				"as the whitelisted asset",
				func(ctx context.Context, agreement *microgrid.OperatorsAgreement) (*types.Receipt, error) {
					return agreement.GenerateKwh(ctx, kwh)
				},
			)
		},
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the whitelisted asset")
	return cmd
}

// microgrid agreement device
func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device [deviceAddress]",
		Short: "Print the agreement record of a device",
		RunE:  printDevice,
		Args:  cobrautils.ExactArgs(1),
	}
	addressFlags.AddToCmd(cmd, constants.OperatorsAgreementContract)
	return cmd
}

func printDevice(_ *cobra.Command, args []string) error {
	device, err := cmdflags.ParseAddressArg("device", args[0])
	if err != nil {
		return err
	}
	ctx := context.Background()
	target, err := deployment.OpenTarget(ctx, app, constants.OperatorsAgreementContract, &addressFlags, nil, "")
	if err != nil {
		return err
	}
	defer target.Close()
	agreement := microgrid.NewOperatorsAgreement(app.Log, target.Client, target.Address, "")
	meter, err := agreement.GetDevice(ctx, device)
	if err != nil {
		return err
	}
	t := ux.DefaultTable(fmt.Sprintf("Device %s", device.Hex()), nil)
	t.AppendRow(table.Row{"Produced", fmt.Sprintf("%s Wh", meter.WhProduced)})
	t.AppendRow(table.Row{"Consumed", fmt.Sprintf("%s Wh", meter.WhConsumed)})
	ux.PrintTable(t)
	return nil
}
