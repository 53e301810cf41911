// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"fmt"

	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
)

const customOption = "Custom"

var ErrNoKeys = errors.New("no keys")

// Confirm asks [promptMsg] unless [skip] is set
func Confirm(prompter Prompter, skip bool, promptMsg string) (bool, error) {
	if skip {
		return true, nil
	}
	return prompter.CaptureYesNo(promptMsg)
}

func CaptureKeyName(prompter Prompter, goal string, keyNames []string) (string, error) {
	if len(keyNames) == 0 {
		return "", ErrNoKeys
	}
	return prompter.CaptureList(fmt.Sprintf("Which stored key should be used %s?", goal), keyNames)
}

// PromptPrivateKey asks the user where to take the signing key from: a stored
// key (read through [loadKey]), the local development key, or a custom one
func PromptPrivateKey(
	prompter Prompter,
	goal string,
	keyNames []string,
	loadKey func(string) (string, error),
	devAddress string,
	devPrivateKey string,
) (string, error) {
	storedKeyOpt := "Use a stored key"
	devKeyOpt := fmt.Sprintf("Use the local development key of address %s", devAddress)
	keyOptions := []string{customOption}
	if len(keyNames) > 0 {
		keyOptions = append([]string{storedKeyOpt}, keyOptions...)
	}
	if devPrivateKey != "" {
		keyOptions = append([]string{devKeyOpt}, keyOptions...)
	}
	keyOption, err := prompter.CaptureList(
		fmt.Sprintf("Which private key do you want to use %s?", goal),
		keyOptions,
	)
	if err != nil {
		return "", err
	}
	switch keyOption {
	case storedKeyOpt:
		keyName, err := CaptureKeyName(prompter, goal, keyNames)
		if err != nil {
			if errors.Is(err, ErrNoKeys) {
				ux.Logger.PrintToUser("No private keys have been found")
			}
			return "", err
		}
		return loadKey(keyName)
	case devKeyOpt:
		return devPrivateKey, nil
	default:
		return prompter.CapturePrivateKey("Private Key")
	}
}
