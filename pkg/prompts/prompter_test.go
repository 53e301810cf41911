// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/libevm/common"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

const (
	devKey     = "56289e99c94b6912bfc12adc093c9b51124f0dc54ac7a766b2bc5ccf558d8027"
	devAddress = "0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC"
)

// stubPrompt makes every text prompt answer [answer], after checking it
// against the prompt validator
func stubPrompt(t *testing.T, answer string) {
	originalRunner := promptUIRunner
	t.Cleanup(func() {
		promptUIRunner = originalRunner
	})
	promptUIRunner = func(prompt promptui.Prompt) (string, error) {
		if prompt.Validate != nil {
			if err := prompt.Validate(answer); err != nil {
				return "", err
			}
		}
		return answer, nil
	}
}

// stubSelect makes every select prompt pick [answer]
func stubSelect(t *testing.T, answer string) {
	originalRunner := promptUISelectRunner
	t.Cleanup(func() {
		promptUISelectRunner = originalRunner
	})
	promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
		items, ok := prompt.Items.([]string)
		if !ok {
			return 0, "", errors.New("unexpected items")
		}
		for i, item := range items {
			if item == answer {
				return i, item, nil
			}
		}
		return 0, "", promptui.ErrAbort
	}
}

func TestNewPrompter(t *testing.T) {
	prompter := NewPrompter()
	_, ok := prompter.(*realPrompter)
	require.True(t, ok, "NewPrompter should return a *realPrompter")
}

func TestCaptureAddress(t *testing.T) {
	stubPrompt(t, devAddress)
	addr, err := NewPrompter().CaptureAddress("Address")
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress(devAddress), addr)

	stubPrompt(t, "0x1234")
	_, err = NewPrompter().CaptureAddress("Address")
	require.ErrorContains(t, err, "invalid address")
}

func TestCapturePositiveBigInt(t *testing.T) {
	stubPrompt(t, "1500")
	n, err := NewPrompter().CapturePositiveBigInt("Watt hours")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1500), n)

	stubPrompt(t, "-1")
	_, err = NewPrompter().CapturePositiveBigInt("Watt hours")
	require.ErrorContains(t, err, "invalid number")

	stubPrompt(t, "0")
	_, err = NewPrompter().CapturePositiveBigInt("Watt hours")
	require.ErrorContains(t, err, "invalid number")
}

func TestCapturePrivateKey(t *testing.T) {
	stubPrompt(t, "0x"+devKey)
	pk, err := NewPrompter().CapturePrivateKey("Private Key")
	require.NoError(t, err)
	require.Equal(t, devKey, pk)

	stubPrompt(t, "not a key")
	_, err = NewPrompter().CapturePrivateKey("Private Key")
	require.ErrorContains(t, err, "invalid private key")
}

func TestCaptureYesNo(t *testing.T) {
	stubSelect(t, Yes)
	yes, err := NewPrompter().CaptureYesNo("Continue?")
	require.NoError(t, err)
	require.True(t, yes)

	stubSelect(t, No)
	yes, err = NewPrompter().CaptureYesNo("Continue?")
	require.NoError(t, err)
	require.False(t, yes)
}

func TestCaptureValidatedString(t *testing.T) {
	validator := func(s string) error {
		if s == "" {
			return errors.New("name cannot be empty")
		}
		return nil
	}
	stubPrompt(t, "meter-1")
	got, err := NewPrompter().CaptureValidatedString("Name", validator)
	require.NoError(t, err)
	require.Equal(t, "meter-1", got)

	stubPrompt(t, "")
	_, err = NewPrompter().CaptureValidatedString("Name", validator)
	require.ErrorContains(t, err, "name cannot be empty")
}
