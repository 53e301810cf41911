// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/internal/mocks"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/stretchr/testify/mock"
)

const FakeRPCURL = "http://127.0.0.1:8545"

var fakeRuntimeCode = []byte{0x60, 0x80, 0x60, 0x40}

// FakeChain is an in memory chain served through a mocked eth client.
// Sent transactions are mined immediately.
type FakeChain struct {
	mu       sync.Mutex
	chainID  *big.Int
	nonces   map[common.Address]uint64
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
	code     map[common.Address][]byte
	balances map[common.Address]*big.Int
	block    uint64

	// receipt status given to the next mined transactions
	Status uint64
	// when set, SendTransaction fails with it
	SendErr error
	// serves eth_call, nil answers with empty output
	CallHandler func(msg ethereum.CallMsg) ([]byte, error)
}

func NewFakeChain() *FakeChain {
	return &FakeChain{
		chainID:  big.NewInt(1337),
		nonces:   map[common.Address]uint64{},
		receipts: map[common.Hash]*types.Receipt{},
		code:     map[common.Address][]byte{},
		balances: map[common.Address]*big.Int{},
		block:    9,
		Status:   types.ReceiptStatusSuccessful,
	}
}

func (c *FakeChain) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// SetNonce sets the pending nonce of [addr]
func (c *FakeChain) SetNonce(addr common.Address, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonces[addr] = nonce
}

// SetCode installs runtime [code] at [addr]
func (c *FakeChain) SetCode(addr common.Address, code []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code[addr] = code
}

// SetBalance sets the balance of [addr]
func (c *FakeChain) SetBalance(addr common.Address, balance *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[addr] = new(big.Int).Set(balance)
}

// Sent returns the mined transactions, in order
func (c *FakeChain) Sent() []*types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.Transaction{}, c.sent...)
}

// Sender recovers the signer of [tx]
func (c *FakeChain) Sender(tx *types.Transaction) (common.Address, error) {
	return types.Sender(types.LatestSignerForChainID(c.chainID), tx)
}

func (c *FakeChain) sendTransaction(_ context.Context, tx *types.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return c.SendErr
	}
	from, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return err
	}
	if tx.Nonce() != c.nonces[from] {
		return errors.New("invalid nonce")
	}
	c.block++
	receipt := &types.Receipt{
		Status:      c.Status,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(c.block),
		GasUsed:     21_000 + uint64(len(tx.Data()))*16,
	}
	if tx.To() == nil && c.Status == types.ReceiptStatusSuccessful {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		c.code[receipt.ContractAddress] = fakeRuntimeCode
	}
	c.nonces[from]++
	c.sent = append(c.sent, tx)
	c.receipts[tx.Hash()] = receipt
	return nil
}

func (c *FakeChain) codeAt(_ context.Context, addr common.Address) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code[addr], nil
}

// Client returns an evm client whose calls are served by the fake chain
func (c *FakeChain) Client(t *testing.T) evm.Client {
	ethClient := mocks.NewEthClient(t)
	ethClient.On("ChainID", mock.Anything).Return(c.ChainID(), nil).Maybe()
	ethClient.On("HeaderByNumber", mock.Anything, (*big.Int)(nil)).Return(
		func(context.Context, *big.Int) (*types.Header, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			return &types.Header{
				Number:  new(big.Int).SetUint64(c.block),
				BaseFee: big.NewInt(25_000_000_000),
			}, nil
		},
	).Maybe()
	ethClient.On("SuggestGasTipCap", mock.Anything).Return(big.NewInt(1_000_000_000), nil).Maybe()
	ethClient.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(26_000_000_000), nil).Maybe()
	ethClient.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(100_000), nil).Maybe()
	ethClient.On("PendingNonceAt", mock.Anything, mock.Anything).Return(
		func(_ context.Context, addr common.Address) (uint64, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.nonces[addr], nil
		},
	).Maybe()
	ethClient.On("SendTransaction", mock.Anything, mock.Anything).Return(c.sendTransaction).Maybe()
	ethClient.On("TransactionReceipt", mock.Anything, mock.Anything).Return(
		func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			receipt, ok := c.receipts[hash]
			if !ok {
				return nil, ethereum.NotFound
			}
			return receipt, nil
		},
	).Maybe()
	ethClient.On("PendingCodeAt", mock.Anything, mock.Anything).Return(c.codeAt).Maybe()
	ethClient.On("CodeAt", mock.Anything, mock.Anything, mock.Anything).Return(
		func(ctx context.Context, addr common.Address, _ *big.Int) ([]byte, error) {
			return c.codeAt(ctx, addr)
		},
	).Maybe()
	ethClient.On("CallContract", mock.Anything, mock.Anything, mock.Anything).Return(
		func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			if c.CallHandler == nil {
				return nil, nil
			}
			return c.CallHandler(msg)
		},
	).Maybe()
	ethClient.On("BalanceAt", mock.Anything, mock.Anything, mock.Anything).Return(
		func(_ context.Context, addr common.Address, _ *big.Int) (*big.Int, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if balance, ok := c.balances[addr]; ok {
				return new(big.Int).Set(balance), nil
			}
			return big.NewInt(0), nil
		},
	).Maybe()
	ethClient.On("BlockNumber", mock.Anything).Return(
		func(context.Context) (uint64, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.block, nil
		},
	).Maybe()
	ethClient.On("Close").Return().Maybe()
	return evm.Client{EthClient: ethClient, URL: FakeRPCURL}
}
