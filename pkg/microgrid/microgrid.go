// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package microgrid provides typed clients for the microgrid exchange and
// operators agreement contracts.
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

// Device is the exchange record of a meter
type Device struct {
	WhProduced    *big.Int // totalized Wh export
	WhConsumed    *big.Int // totalized Wh import
	WhAvailable   *big.Int // Wh available for trade
	WhDeficit     *big.Int // Wh required for settlement
	ValidConsumer bool     // device can post consumption
	ValidProducer bool     // device can post production
}

// Meter is the operators agreement record of a device
type Meter struct {
	WhProduced *big.Int
	WhConsumed *big.Int
}

// binding is the part shared by both contract clients
type binding struct {
	log     logging.Logger
	client  evm.Client
	address common.Address
	// signing key, only needed for transactions
	privateKey string
}

func (b binding) Address() common.Address {
	return b.address
}

func (b binding) call(ctx context.Context, methodEsp string, params ...interface{}) ([]interface{}, error) {
	return contract.CallToMethod(ctx, b.client, b.address, methodEsp, params...)
}

func (b binding) tx(ctx context.Context, description string, methodEsp string, params ...interface{}) (*types.Receipt, error) {
	_, receipt, err := contract.TxToMethod(
		ctx,
		b.log,
		b.client,
		b.privateKey,
		b.address,
		nil,
		description,
		methodEsp,
		params...,
	)
	return receipt, err
}

func bigIntAt(methodName string, out []interface{}, i int) (*big.Int, error) {
	v, ok := out[i].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("error at %s call, expected *big.Int at position %d, got %T", methodName, i, out[i])
	}
	return v, nil
}

func boolAt(methodName string, out []interface{}, i int) (bool, error) {
	v, ok := out[i].(bool)
	if !ok {
		return false, fmt.Errorf("error at %s call, expected bool at position %d, got %T", methodName, i, out[i])
	}
	return v, nil
}

func checkOutputs(methodName string, out []interface{}, expected int) error {
	if len(out) != expected {
		return fmt.Errorf("error at %s call, expected %d values, got %d", methodName, expected, len(out))
	}
	return nil
}

func checkPositive(what string, v *big.Int) error {
	if v == nil || v.Sign() <= 0 {
		return fmt.Errorf("%s must be positive", what)
	}
	return nil
}
