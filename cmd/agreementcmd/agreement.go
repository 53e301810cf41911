// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package agreementcmd

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

// microgrid agreement
func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agreement",
		Short: "Interact with the OperatorsAgreement contract",
		Long: `The agreement command suite operates the OperatorsAgreement contract, through
which whitelisted grid assets report their production to the exchange.

The agreement address is taken from the deployment report, unless --address
is given.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	// agreement set-exchange
	cmd.AddCommand(newSetExchangeCmd())
	// agreement whitelist
	cmd.AddCommand(newWhitelistCmd())
	// agreement generate-kwh
	cmd.AddCommand(newGenerateKwhCmd())
	// agreement device
	cmd.AddCommand(newDeviceCmd())
	return cmd
}

func addWriteFlags(cmd *cobra.Command, goal string) {
	addressFlags.AddToCmd(cmd, constants.OperatorsAgreementContract)
	keyFlags.AddToCmd(cmd, goal)
}

// sendTx confirms and sends the agreement transaction done by [send]
func sendTx(
	description string,
	goal string,
	send func(context.Context, *microgrid.OperatorsAgreement) (*types.Receipt, error),
) error {
	ctx := context.Background()
	target, err := deployment.OpenTarget(ctx, app, constants.OperatorsAgreementContract, &addressFlags, &keyFlags, goal)
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
	agreement := microgrid.NewOperatorsAgreement(app.Log, target.Client, target.Address, target.PrivateKey)
	receipt, err := send(ctx, agreement)
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
