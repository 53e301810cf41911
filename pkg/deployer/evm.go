// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"math/big"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"go.uber.org/zap"
)

// EVMDeployer signs and submits creation transactions through an evm client.
// Each deployment waits for its receipt, so deployments are sequential and
// nonces are taken from the pending state of the node.
type EVMDeployer struct {
	client   evm.Client
	txOpts   *bind.TransactOpts
	chainID  *big.Int
	gasLimit uint64
	log      logging.Logger
}

// NewEVMDeployer creates a deployer signing with [privateKey]. A zero [gasLimit]
// means the gas limit is estimated for each deployment.
func NewEVMDeployer(
	ctx context.Context,
	log logging.Logger,
	client evm.Client,
	privateKey string,
	gasLimit uint64,
) (*EVMDeployer, error) {
	if privateKey == "" {
		return nil, constants.ErrNoPrivateKey
	}
	txOpts, err := client.GetTxOptsWithSigner(ctx, privateKey)
	if err != nil {
		return nil, err
	}
	chainID, err := client.GetChainID(ctx)
	if err != nil {
		return nil, err
	}
	return &EVMDeployer{
		client:   client,
		txOpts:   txOpts,
		chainID:  chainID,
		gasLimit: gasLimit,
		log:      log,
	}, nil
}

func (d *EVMDeployer) From() common.Address {
	return d.txOpts.From
}

func (d *EVMDeployer) ChainID() *big.Int {
	return new(big.Int).Set(d.chainID)
}

func (d *EVMDeployer) Deploy(
	ctx context.Context,
	a *artifact.Artifact,
	args ...interface{},
) (*Result, error) {
	if err := a.Deployable(); err != nil {
		return nil, err
	}
	opts := *d.txOpts
	opts.Context = ctx
	opts.GasLimit = d.gasLimit
	d.log.Info("deploying contract",
		zap.String("contract", a.ContractName),
		zap.Stringer("from", opts.From),
		zap.Uint64("gasLimit", opts.GasLimit),
		zap.Int("args", len(args)),
	)
	address, tx, _, err := bind.DeployContract(&opts, a.ABI, a.Bytecode, d.client.EthClient, args...)
	if err != nil {
		return nil, evm.TransactionError(tx, err, "failure deploying %s", a.ContractName)
	}
	receipt, success, err := d.client.WaitForTransaction(ctx, tx)
	if err != nil {
		return nil, evm.TransactionError(tx, err, "failure waiting for %s deployment", a.ContractName)
	}
	if !success {
		return nil, evm.TransactionError(tx, constants.ErrFailedReceipt, "failure deploying %s", a.ContractName)
	}
	if receipt.ContractAddress != (common.Address{}) && receipt.ContractAddress != address {
		d.log.Warn("receipt contract address differs from computed one",
			zap.String("contract", a.ContractName),
			zap.Stringer("computed", address),
			zap.Stringer("receipt", receipt.ContractAddress),
		)
		address = receipt.ContractAddress
	}
	result := &Result{
		ContractName: a.ContractName,
		Address:      address,
		TxHash:       tx.Hash(),
		GasUsed:      receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	d.log.Info("contract deployed",
		zap.String("contract", a.ContractName),
		zap.Stringer("address", result.Address),
		zap.Stringer("txHash", result.TxHash),
		zap.Uint64("gasUsed", result.GasUsed),
	)
	return result, nil
}
