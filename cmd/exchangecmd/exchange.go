// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package exchangecmd

import (
	"context"

	"github.com/ava-labs/libevm/core/types"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/contract"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployment"
	"github.com/microgrid-exchange/microgrid-cli/pkg/microgrid"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"

	cmdflags "github.com/microgrid-exchange/microgrid-cli/cmd/flags"
)

var (
	app *application.Microgrid

	addressFlags cmdflags.ContractAddressFlags
	keyFlags     contract.PrivateKeyFlags
)

// microgrid exchange
func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Interact with the MicrogridExchange contract",
		Long: `The exchange command suite reads and updates the MicrogridExchange ledger,
where designated producers post the watt hours they generate and designated
consumers post the watt hours they use.

The exchange address is taken from the deployment report, unless --address
is given.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	// exchange ceo
	cmd.AddCommand(newCEOCmd())
	// exchange device
	cmd.AddCommand(newDeviceCmd())
	// exchange set-ceo
	cmd.AddCommand(newSetCEOCmd())
	// exchange designate-producer
	cmd.AddCommand(newDesignateCmd(producerRole))
	// exchange designate-consumer
	cmd.AddCommand(newDesignateCmd(consumerRole))
	// exchange generate
	cmd.AddCommand(newGenerateCmd())
	// exchange consume
	cmd.AddCommand(newConsumeCmd())
	return cmd
}

func addReadFlags(cmd *cobra.Command) {
	addressFlags.AddToCmd(cmd, constants.MicrogridExchangeContract)
}

func addWriteFlags(cmd *cobra.Command, goal string) {
	addressFlags.AddToCmd(cmd, constants.MicrogridExchangeContract)
	keyFlags.AddToCmd(cmd, goal)
}

// withExchange runs [f] on a read only exchange client
func withExchange(f func(context.Context, *microgrid.Exchange) error) error {
	ctx := context.Background()
	target, err := deployment.OpenTarget(ctx, app, constants.MicrogridExchangeContract, &addressFlags, nil, "")
	if err != nil {
		return err
	}
	defer target.Close()
	return f(ctx, microgrid.NewExchange(app.Log, target.Client, target.Address, ""))
}

// sendTx confirms and sends the exchange transaction done by [send]
func sendTx(
	description string,
	goal string,
	send func(context.Context, *microgrid.Exchange) (*types.Receipt, error),
) error {
	ctx := context.Background()
	target, err := deployment.OpenTarget(ctx, app, constants.MicrogridExchangeContract, &addressFlags, &keyFlags, goal)
	if err != nil {
		return err
	}
	defer target.Close()
	if ok, err := deployment.ConfirmTx(app, description); err != nil {
		return err
	} else if !ok {
		ux.Logger.PrintToUser("Cancelled")
		return nil
	}
	exchange := microgrid.NewExchange(app.Log, target.Client, target.Address, target.PrivateKey)
	receipt, err := send(ctx, exchange)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser(
		"%s (tx %s, block %s)",
		description,
		receipt.TxHash.Hex(),
		receipt.BlockNumber,
	)
	return nil
}
