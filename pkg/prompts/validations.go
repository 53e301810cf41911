// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"math/big"

	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
)

func validatePositiveBigInt(input string) error {
	n := new(big.Int)
	n, ok := n.SetString(input, 10)
	if !ok {
		return errors.New("invalid number")
	}
	if n.Sign() <= 0 {
		return errors.New("invalid number")
	}
	return nil
}

func ValidateAddress(input string) error {
	if !common.IsHexAddress(input) {
		return errors.New("invalid address")
	}
	return nil
}

func ValidatePrivateKey(input string) error {
	if _, err := evm.PrivateKeyToAddress(input); err != nil {
		return errors.New("invalid private key: expected 64 hex characters")
	}
	return nil
}
