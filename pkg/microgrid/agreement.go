// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package microgrid

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
)

// OperatorsAgreement is a client of a deployed OperatorsAgreement contract.
// The owner must set the exchange address before whitelisted assets can
// reach the exchange through it.
type OperatorsAgreement struct {
	binding
}

func NewOperatorsAgreement(log logging.Logger, client evm.Client, address common.Address, privateKey string) *OperatorsAgreement {
	return &OperatorsAgreement{binding{
		log:        log,
		client:     client,
		address:    address,
		privateKey: privateKey,
	}}
}

// SetExchange records on chain the address of the microgrid exchange
func (o *OperatorsAgreement) SetExchange(ctx context.Context, exchange common.Address) (*types.Receipt, error) {
	if exchange == (common.Address{}) {
		return nil, fmt.Errorf("exchange address can't be zero")
	}
	return o.tx(ctx, "set exchange", "setExchange(address)", exchange)
}

// WhitelistAsset allows [asset] to use the agreement public methods
func (o *OperatorsAgreement) WhitelistAsset(ctx context.Context, asset common.Address) (*types.Receipt, error) {
	return o.tx(ctx, "whitelist asset", "whitelistAsset(address)", asset)
}

// GenerateKwh requests an update of the signing asset production on the exchange ledger
func (o *OperatorsAgreement) GenerateKwh(ctx context.Context, kwh *big.Int) (*types.Receipt, error) {
	if err := checkPositive("kwh", kwh); err != nil {
		return nil, err
	}
	return o.tx(ctx, fmt.Sprintf("generate %s kWh", kwh), "generateKwh(uint256)", kwh)
}

// GetDevice returns the agreement record of [device]
func (o *OperatorsAgreement) GetDevice(ctx context.Context, device common.Address) (Meter, error) {
	const methodName = "devices"
	out, err := o.call(ctx, "devices(address)->(uint256,uint256)", device)
	if err != nil {
		return Meter{}, err
	}
	if err := checkOutputs(methodName, out, 2); err != nil {
		return Meter{}, err
	}
	m := Meter{}
	if m.WhProduced, err = bigIntAt(methodName, out, 0); err != nil {
		return Meter{}, err
	}
	if m.WhConsumed, err = bigIntAt(methodName, out, 1); err != nil {
		return Meter{}, err
	}
	return m, nil
}
