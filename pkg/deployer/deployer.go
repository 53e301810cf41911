// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployer submits contract creation transactions for resolved artifacts.
package deployer

import (
	"context"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
)

// Deployer deploys an artifact with the given constructor arguments
type Deployer interface {
	Deploy(ctx context.Context, a *artifact.Artifact, args ...interface{}) (*Result, error)
}

// Result of a single contract deployment
type Result struct {
	ContractName string
	Address      common.Address
	TxHash       common.Hash
	BlockNumber  uint64
	GasUsed      uint64
	DryRun       bool
}

func (r *Result) String() string {
	if r.DryRun {
		return fmt.Sprintf("%s would be deployed at %s", r.ContractName, r.Address.Hex())
	}
	return fmt.Sprintf("%s deployed at %s (tx %s, block %d)", r.ContractName, r.Address.Hex(), r.TxHash.Hex(), r.BlockNumber)
}
