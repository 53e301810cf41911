// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/ava-labs/libevm/ethclient"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
)

const repeatsOnFailure = 3

var sleepBetweenRepeats = 1 * time.Second

// EthClient is the subset of the ethclient API used by the CLI.
// It satisfies both bind.ContractBackend and bind.DeployBackend.
type EthClient interface {
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)
	SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Close()
}

// used to mock the connection function
var ethclientDialContext = func(ctx context.Context, rawurl string) (EthClient, error) {
	return ethclient.DialContext(ctx, rawurl)
}

// wraps over ethclient for calls used by the CLI. features:
// - finds out url scheme in case it is missing, to connect to ws/wss/http/https
// - repeats to try to recover from failures, generating its own context for each call
// - logs rpc url in case of failure
type Client struct {
	EthClient EthClient
	URL       string
}

// indicates if the given rpc url has schema or not
func HasScheme(rpcURL string) (bool, error) {
	if parsedURL, err := url.Parse(rpcURL); err != nil {
		if !strings.Contains(err.Error(), "first path segment in URL cannot contain colon") {
			return false, err
		}
		return false, nil
	} else {
		return strings.Contains(rpcURL, "://") && parsedURL.Scheme != "", nil
	}
}

// tries to connect an ethclient to a rpc url without scheme,
// by trying out different possible schemes: ws, wss, https, http
func GetClientWithoutScheme(ctx context.Context, rpcURL string) (EthClient, string, error) {
	if b, err := HasScheme(rpcURL); err != nil {
		return nil, "", err
	} else if b {
		return nil, "", fmt.Errorf("url does have scheme")
	}
	notDeterminedErr := fmt.Errorf("url %s has no scheme and protocol could not be determined", rpcURL)
	// let's start with ws it always give same error for http/https/wss
	scheme := "ws://"
	client, err := ethclientDialContext(ctx, scheme+rpcURL)
	if err == nil {
		return client, scheme, nil
	} else if !strings.Contains(err.Error(), "websocket: bad handshake") {
		return nil, "", notDeterminedErr
	}
	// wss give specific errors for http/http
	scheme = "wss://"
	client, err = ethclientDialContext(ctx, scheme+rpcURL)
	if err == nil {
		return client, scheme, nil
	} else if !strings.Contains(err.Error(), "websocket: bad handshake") && // may be https
		!strings.Contains(err.Error(), "first record does not look like a TLS handshake") { // may be http
		return nil, "", notDeterminedErr
	}
	// https/http discrimination based on sending a specific query
	scheme = "https://"
	client, err = ethclientDialContext(ctx, scheme+rpcURL)
	if err == nil {
		callCtx, cancel := utils.GetAPIContext(ctx)
		_, err = client.ChainID(callCtx)
		cancel()
		switch {
		case err == nil:
			return client, scheme, nil
		case strings.Contains(err.Error(), "server gave HTTP response to HTTPS client"):
			scheme = "http://"
			client, err = ethclientDialContext(ctx, scheme+rpcURL)
			if err == nil {
				return client, scheme, nil
			}
		}
	}
	return nil, "", notDeterminedErr
}

// connects an evm client to the given [rpcURL]
// supports [repeatsOnFailure] failures
func GetClient(ctx context.Context, rpcURL string) (Client, error) {
	client := Client{
		URL: rpcURL,
	}
	hasScheme, err := HasScheme(rpcURL)
	if err != nil {
		return client, fmt.Errorf("failure determining the scheme of url %s: %w", rpcURL, err)
	}
	client.EthClient, err = utils.RetryWithContextGen(
		ctx,
		utils.GetAPILargeContext,
		func(ctx context.Context) (EthClient, error) {
			if hasScheme {
				return ethclientDialContext(ctx, rpcURL)
			}
			client, _, err := GetClientWithoutScheme(ctx, rpcURL)
			return client, err
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure connecting to %s: %w", rpcURL, err)
	}
	return client, err
}

// closes underlying ethclient connection
func (client Client) Close() {
	client.EthClient.Close()
}

// indicates wether a contract is deployed on [contractAddress]
// supports [repeatsOnFailure] failures
func (client Client) ContractAlreadyDeployed(
	ctx context.Context,
	contractAddress common.Address,
) (bool, error) {
	code, err := utils.RetryWithContextGen(
		ctx,
		utils.GetAPILargeContext,
		func(ctx context.Context) ([]byte, error) {
			return client.EthClient.CodeAt(ctx, contractAddress, nil)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failure obtaining code from %s at address %s: %w",
			client.URL,
			contractAddress.Hex(),
			err,
		)
	}
	return len(code) != 0, nil
}

// returns the balance for [address]
// supports [repeatsOnFailure] failures
func (client Client) GetAddressBalance(
	ctx context.Context,
	address common.Address,
) (*big.Int, error) {
	balance, err := utils.RetryWithContextGen(
		ctx,
		utils.GetAPILargeContext,
		func(ctx context.Context) (*big.Int, error) {
			return client.EthClient.BalanceAt(ctx, address, nil)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure obtaining balance for %s on %s: %w", address.Hex(), client.URL, err)
	}
	return balance, err
}

// returns the pending nonce at [address]
// supports [repeatsOnFailure] failures
func (client Client) PendingNonceAt(
	ctx context.Context,
	address common.Address,
) (uint64, error) {
	nonce, err := utils.RetryWithContextGen(
		ctx,
		utils.GetAPILargeContext,
		func(ctx context.Context) (uint64, error) {
			return client.EthClient.PendingNonceAt(ctx, address)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure obtaining nonce for %s on %s: %w", address.Hex(), client.URL, err)
	}
	return nonce, err
}

// returns the chain ID
// supports [repeatsOnFailure] failures
func (client Client) GetChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := utils.RetryWithContextGen(
		ctx,
		utils.GetAPILargeContext,
		func(ctx context.Context) (*big.Int, error) {
			return client.EthClient.ChainID(ctx)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure getting chain id from %s: %w", client.URL, err)
	}
	return chainID, err
}

// waits for [tx]'s receipt to have successful state
// supports [repeatsOnFailure] failures
func (client Client) WaitForTransaction(
	ctx context.Context,
	tx *types.Transaction,
) (*types.Receipt, bool, error) {
	receipt, err := utils.RetryWithContextGen(
		ctx,
		utils.GetAPILargeContext,
		func(ctx context.Context) (*types.Receipt, error) {
			return bind.WaitMined(ctx, client.EthClient, tx)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure waiting for tx %s on %s: %w", tx.Hash().Hex(), client.URL, err)
	}
	var success bool
	if receipt != nil {
		success = receipt.Status == types.ReceiptStatusSuccessful
	}
	return receipt, success, err
}

// returns tx options that include signer for [privateKeyStr]
// supports [repeatsOnFailure] failures when gathering chain info
func (client Client) GetTxOptsWithSigner(
	ctx context.Context,
	privateKeyStr string,
) (*bind.TransactOpts, error) {
	privateKey, err := crypto.HexToECDSA(TrimHexPrefix(privateKeyStr))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	chainID, err := client.GetChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failure generating signer: %w", err)
	}
	txOpts, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, err
	}
	txOpts.Context = ctx
	return txOpts, nil
}
