// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package exchangecmd

import (
	"context"
	"fmt"

	"github.com/ava-labs/libevm/core/types"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/microgrid"
	"github.com/spf13/cobra"

	cmdflags "github.com/microgrid-exchange/microgrid-cli/cmd/flags"
)

type role string

const (
	producerRole role = "producer"
	consumerRole role = "consumer"
)

// microgrid exchange set-ceo
func newSetCEOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-ceo [newCEOAddress]",
		Short: "Transfer the exchange CEO title",
		Long: `The exchange set-ceo command transfers the CEO title to a new address.
It must be signed by the current CEO.`,
		RunE: setCEO,
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the current exchange CEO")
	return cmd
}

func setCEO(_ *cobra.Command, args []string) error {
	newCEO, err := cmdflags.AddressArgOrPrompt(app.Prompt, args, "CEO")
	if err != nil {
		return err
	}
	return sendTx(
		fmt.Sprintf("Set exchange CEO to %s", newCEO.Hex()),
		"as the current exchange CEO",
		func(ctx context.Context, exchange *microgrid.Exchange) (*types.Receipt, error) {
			return exchange.SetCEO(ctx, newCEO)
		},
	)
}

// microgrid exchange designate-producer|designate-consumer
func newDesignateCmd(r role) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("designate-%s [deviceAddress]", r),
		Short: fmt.Sprintf("Allow a device to post %s data", r),
		Long: fmt.Sprintf(`The exchange designate-%s command allows a device to post %s data
to the exchange. It must be signed by the exchange CEO.`, r, r),
		RunE: func(_ *cobra.Command, args []string) error {
			return designate(r, args)
		},
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the exchange CEO")
	return cmd
}

func designate(r role, args []string) error {
	device, err := cmdflags.AddressArgOrPrompt(app.Prompt, args, "device")
	if err != nil {
		return err
	}
	return sendTx(
		fmt.Sprintf("Designate %s as %s", device.Hex(), r),
		"as the exchange CEO",
		func(ctx context.Context, exchange *microgrid.Exchange) (*types.Receipt, error) {
			if r == producerRole {
				return exchange.DesignateProducer(ctx, device)
			}
			return exchange.DesignateConsumer(ctx, device)
		},
	)
}

// microgrid exchange generate
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [wattHours]",
		Short: "Post generated watt hours",
		Long: `The exchange generate command posts the watt hours generated by the signing
device, that must be a designated producer.`,
		RunE: func(_ *cobra.Command, args []string) error {
			wattHours, err := cmdflags.AmountArgOrPrompt(app.Prompt, args, "watt hours")
			if err != nil {
				return err
			}
			return sendTx(
				fmt.Sprintf("Post %s Wh generated", wattHours),
				"as the producing device",
				func(ctx context.Context, exchange *microgrid.Exchange) (*types.Receipt, error) {
					return exchange.GenerateWattHours(ctx, wattHours)
				},
			)
		},
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the producing device")
	return cmd
}

// microgrid exchange consume
func newConsumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consume [wattHours]",
		Short: "Post consumed watt hours",
		Long: `The exchange consume command posts the watt hours used by the signing
device, that must be a designated consumer.`,
		RunE: func(_ *cobra.Command, args []string) error {
			wattHours, err := cmdflags.AmountArgOrPrompt(app.Prompt, args, "watt hours")
			if err != nil {
				return err
			}
			return sendTx(
				fmt.Sprintf("Post %s Wh consumed", wattHours),
				"as the consuming device",
				func(ctx context.Context, exchange *microgrid.Exchange) (*types.Receipt, error) {
					return exchange.ConsumeWattHours(ctx, wattHours)
				},
			)
		},
		Args: cobrautils.MaximumNArgs(1),
	}
	addWriteFlags(cmd, "as the consuming device")
	return cmd
}
