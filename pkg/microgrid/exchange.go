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
	"github.com/microgrid-exchange/microgrid-cli/pkg/contract"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
)

// Exchange is a client of a deployed MicrogridExchange contract. Admin
// operations can only be done by the current CEO, production and consumption
// are posted by the meters themselves.
type Exchange struct {
	binding
}

// NewExchange binds the exchange at [address]. [privateKey] may be empty
// when only view methods are used.
func NewExchange(log logging.Logger, client evm.Client, address common.Address, privateKey string) *Exchange {
	return &Exchange{binding{
		log:        log,
		client:     client,
		address:    address,
		privateKey: privateKey,
	}}
}

func (e *Exchange) CEOAddress(ctx context.Context) (common.Address, error) {
	out, err := e.call(ctx, "ceo_address()->(address)")
	if err != nil {
		return common.Address{}, err
	}
	return contract.GetSmartContractCallResult[common.Address]("ceo_address", out)
}

// GetDevice returns the exchange record of [device]
func (e *Exchange) GetDevice(ctx context.Context, device common.Address) (Device, error) {
	const methodName = "device_index"
	out, err := e.call(ctx, "device_index(address)->(uint256,uint256,uint256,uint256,bool,bool)", device)
	if err != nil {
		return Device{}, err
	}
	if err := checkOutputs(methodName, out, 6); err != nil {
		return Device{}, err
	}
	d := Device{}
	for i, dst := range []**big.Int{&d.WhProduced, &d.WhConsumed, &d.WhAvailable, &d.WhDeficit} {
		if *dst, err = bigIntAt(methodName, out, i); err != nil {
			return Device{}, err
		}
	}
	if d.ValidConsumer, err = boolAt(methodName, out, 4); err != nil {
		return Device{}, err
	}
	if d.ValidProducer, err = boolAt(methodName, out, 5); err != nil {
		return Device{}, err
	}
	return d, nil
}

// SetCEO transfers the CEO title to [newCEO]
func (e *Exchange) SetCEO(ctx context.Context, newCEO common.Address) (*types.Receipt, error) {
	return e.tx(ctx, "set exchange ceo", "setCEO(address)", newCEO)
}

func (e *Exchange) DesignateProducer(ctx context.Context, producer common.Address) (*types.Receipt, error) {
	return e.tx(ctx, "designate producer", "designateProducer(address)", producer)
}

func (e *Exchange) DesignateConsumer(ctx context.Context, consumer common.Address) (*types.Receipt, error) {
	return e.tx(ctx, "designate consumer", "designateConsumer(address)", consumer)
}

// GenerateWattHours posts [wattHours] of production for the signing meter
func (e *Exchange) GenerateWattHours(ctx context.Context, wattHours *big.Int) (*types.Receipt, error) {
	if err := checkPositive("watt hours", wattHours); err != nil {
		return nil, err
	}
	return e.tx(ctx, fmt.Sprintf("generate %s Wh", wattHours), "generateWattHours(uint256)", wattHours)
}

// ConsumeWattHours posts [wattHours] of consumption for the signing meter
func (e *Exchange) ConsumeWattHours(ctx context.Context, wattHours *big.Int) (*types.Receipt, error) {
	if err := checkPositive("watt hours", wattHours); err != nil {
		return nil, err
	}
	return e.tx(ctx, fmt.Sprintf("consume %s Wh", wattHours), "consumeWattHours(uint256)", wattHours)
}
