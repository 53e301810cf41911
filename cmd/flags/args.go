// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
)

// ParseAddressArg parses a hex address given as the [what] argument
func ParseAddressArg(what string, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", what, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmountArg parses a positive decimal integer given as the [what] argument
func ParseAmountArg(what string, s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s amount %q", what, s)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%s amount must be positive, got %s", what, s)
	}
	return amount, nil
}

// AddressArgOrPrompt parses the optional address argument, asking for it
// when missing
func AddressArgOrPrompt(prompter prompts.Prompter, args []string, what string) (common.Address, error) {
	if len(args) == 0 {
		return prompter.CaptureAddress(fmt.Sprintf("Enter the %s address", what))
	}
	return ParseAddressArg(what, args[0])
}

// AmountArgOrPrompt parses the optional amount argument, asking for it when
// missing
func AmountArgOrPrompt(prompter prompts.Prompter, args []string, what string) (*big.Int, error) {
	if len(args) == 0 {
		return prompter.CapturePositiveBigInt(fmt.Sprintf("Enter the %s amount", what))
	}
	return ParseAmountArg(what, args[0])
}

// EnsureExclusive fails when more than one flag of [names] is set. [set]
// follows the order of [names].
func EnsureExclusive(names []string, set ...bool) error {
	given := []string{}
	for i, isSet := range set {
		if isSet {
			given = append(given, "--"+names[i])
		}
	}
	if len(given) > 1 {
		return fmt.Errorf("%s are mutually exclusive flags", strings.Join(given, ", "))
	}
	return nil
}
