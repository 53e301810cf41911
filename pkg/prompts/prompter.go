// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ava-labs/libevm/common"
	"github.com/manifoldco/promptui"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
)

const (
	Yes = "Yes"
	No  = "No"
)

type Prompter interface {
	CapturePositiveBigInt(promptStr string) (*big.Int, error)
	CaptureAddress(promptStr string) (common.Address, error)
	CaptureYesNo(promptStr string) (bool, error)
	CaptureList(promptStr string, options []string) (string, error)
	CaptureValidatedString(promptStr string, validator func(string) error) (string, error)
	CapturePrivateKey(promptStr string) (string, error)
}

type realPrompter struct{}

// Global variable that can be replaced during testing
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// Global variable for Select operations that can be replaced during testing
var promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
	return prompt.Run()
}

func NewPrompter() Prompter {
	return &realPrompter{}
}

func (*realPrompter) CapturePositiveBigInt(promptStr string) (*big.Int, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validatePositiveBigInt,
	}

	amountStr, err := promptUIRunner(prompt)
	if err != nil {
		return nil, err
	}

	amountInt := new(big.Int)
	amountInt, ok := amountInt.SetString(amountStr, 10)
	if !ok {
		return nil, errors.New("SetString: error")
	}
	return amountInt, nil
}

func (*realPrompter) CaptureAddress(promptStr string) (common.Address, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: ValidateAddress,
	}

	addressStr, err := promptUIRunner(prompt)
	if err != nil {
		return common.Address{}, err
	}

	return common.HexToAddress(addressStr), nil
}

func (*realPrompter) CaptureYesNo(promptStr string) (bool, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: []string{Yes, No},
	}
	_, decision, err := promptUISelectRunner(prompt)
	if err != nil {
		return false, err
	}
	return decision == Yes, nil
}

func (*realPrompter) CaptureList(promptStr string, options []string) (string, error) {
	prompt := promptui.Select{
		Label: promptStr,
		Items: options,
	}
	_, listDecision, err := promptUISelectRunner(prompt)
	if err != nil {
		return "", err
	}
	return listDecision, nil
}

func (*realPrompter) CaptureValidatedString(promptStr string, validator func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: validator,
	}

	return promptUIRunner(prompt)
}

// CapturePrivateKey reads a hex private key without echoing it
func (*realPrompter) CapturePrivateKey(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Validate: ValidatePrivateKey,
		Mask:     '*',
	}

	str, err := promptUIRunner(prompt)
	if err != nil {
		return "", err
	}
	return evm.TrimHexPrefix(strings.TrimSpace(str)), nil
}
