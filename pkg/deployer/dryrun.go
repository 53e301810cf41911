// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
)

// DryRunDeployer sends nothing. It reports the address each contract would get,
// assuming every deployment consumes the next nonce of [from].
type DryRunDeployer struct {
	client    evm.Client
	from      common.Address
	nonce     uint64
	nonceRead bool
}

func NewDryRunDeployer(client evm.Client, from common.Address) *DryRunDeployer {
	return &DryRunDeployer{
		client: client,
		from:   from,
	}
}

func (d *DryRunDeployer) Deploy(
	ctx context.Context,
	a *artifact.Artifact,
	args ...interface{},
) (*Result, error) {
	if err := a.Deployable(); err != nil {
		return nil, err
	}
	if _, err := a.ABI.Pack("", args...); err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", a.ContractName, err)
	}
	if !d.nonceRead {
		nonce, err := d.client.PendingNonceAt(ctx, d.from)
		if err != nil {
			return nil, err
		}
		d.nonce = nonce
		d.nonceRead = true
	}
	address := crypto.CreateAddress(d.from, d.nonce)
	d.nonce++
	return &Result{
		ContractName: a.ContractName,
		Address:      address,
		DryRun:       true,
	}, nil
}
