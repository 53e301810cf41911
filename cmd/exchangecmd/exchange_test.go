// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package exchangecmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/big"
	"testing"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	promptsmocks "github.com/microgrid-exchange/microgrid-cli/pkg/prompts/mocks"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	exchangeAddress = common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")
	deviceAddress   = common.HexToAddress("0x0000000000000000000000000000000000001234")
)

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

func newTestApp(t *testing.T, chain *testutils.FakeChain, prompt prompts.Prompter) *application.Microgrid {
	testApp := application.NewTestApp(t, prompt)
	testApp.NewEVMClient = func(context.Context, string) (evm.Client, error) {
		return chain.Client(t), nil
	}
	chain.SetCode(exchangeAddress, []byte{0x60, 0x80})
	report := deployer.NewReport(testutils.FakeRPCURL, chain.ChainID().Uint64(), common.Address{}, false)
	report.Add(2, &deployer.Result{ContractName: constants.MicrogridExchangeContract, Address: exchangeAddress})
	require.NoError(t, report.Write(testApp.Fs, constants.DeploymentReport, deployer.FormatJSON))
	return testApp
}

func runExchange(t *testing.T, testApp *application.Microgrid, args ...string) (string, error) {
	var out bytes.Buffer
	testutils.SetUserOutput(&out)
	t.Cleanup(func() { testutils.SetUserOutput(io.Discard) })
	cmd := NewCmd(testApp)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func mustArgs(t *testing.T, types ...string) abi.Arguments {
	args := abi.Arguments{}
	for _, typeName := range types {
		typ, err := abi.NewType(typeName, "", nil)
		require.NoError(t, err)
		args = append(args, abi.Argument{Type: typ})
	}
	return args
}

func TestExchangeCEO(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	ceo := common.HexToAddress(constants.DevAddress)
	chain.CallHandler = func(msg ethereum.CallMsg) ([]byte, error) {
		require.Equal(exchangeAddress, *msg.To)
		require.Equal(selector("ceo_address()"), msg.Data[:4])
		return mustArgs(t, "address").Pack(ceo)
	}
	testApp := newTestApp(t, chain, nil)

	out, err := runExchange(t, testApp, "ceo")
	require.NoError(err)
	require.Contains(out, "CEO: "+ceo.Hex())
}

func TestExchangeDevice(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	chain.CallHandler = func(msg ethereum.CallMsg) ([]byte, error) {
		if !bytes.Equal(msg.Data[:4], selector("device_index(address)")) {
			return nil, fmt.Errorf("unexpected call %x", msg.Data)
		}
		return mustArgs(t, "uint256", "uint256", "uint256", "uint256", "bool", "bool").Pack(
			big.NewInt(4200), big.NewInt(1100), big.NewInt(3100), big.NewInt(75), false, true,
		)
	}
	testApp := newTestApp(t, chain, nil)

	out, err := runExchange(t, testApp, "device", deviceAddress.Hex())
	require.NoError(err)
	require.Contains(out, "4200 Wh")
	require.Contains(out, "3100 Wh")
	require.Contains(out, "75 Wh")

	_, err = runExchange(t, testApp, "device", "meter-1")
	require.ErrorContains(err, `invalid device address "meter-1"`)
}

func TestExchangeDesignateProducer(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	_, err := runExchange(t, testApp, "designate-producer", deviceAddress.Hex(), "--dev-key")
	require.NoError(err)

	sent := chain.Sent()
	require.Len(sent, 1)
	require.Equal(exchangeAddress, *sent[0].To())
	require.Equal(selector("designateProducer(address)"), sent[0].Data()[:4])
	from, err := chain.Sender(sent[0])
	require.NoError(err)
	require.Equal(common.HexToAddress(constants.DevAddress), from)
}

func TestExchangeConsumeWithExplicitAddress(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)
	other := common.HexToAddress("0x00000000000000000000000000000000000000e2")
	chain.SetCode(other, []byte{0x60, 0x80})

	_, err := runExchange(t, testApp, "consume", "250", "--address", other.Hex(), "--dev-key")
	require.NoError(err)

	sent := chain.Sent()
	require.Len(sent, 1)
	require.Equal(other, *sent[0].To())
	require.Equal(selector("consumeWattHours(uint256)"), sent[0].Data()[:4])
	require.Zero(new(big.Int).SetBytes(sent[0].Data()[4:]).Cmp(big.NewInt(250)))
}

func TestExchangeTxErrors(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	_, err := runExchange(t, testApp, "generate", "0", "--dev-key")
	require.ErrorContains(err, "must be positive")

	nowhere := common.HexToAddress("0x00000000000000000000000000000000000000e3")
	_, err = runExchange(t, testApp, "generate", "10", "--address", nowhere.Hex(), "--dev-key")
	require.ErrorContains(err, "has no code")

	_, err = runExchange(t, testApp, "set-ceo", deviceAddress.Hex(), "--report", "missing.json", "--dev-key")
	require.ErrorContains(err, "use --address")

	require.Empty(chain.Sent())
}

func TestExchangeTxCancelled(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	prompter := promptsmocks.NewPrompter(t)
	prompter.On("CaptureYesNo", mock.Anything).Return(false, nil).Once()
	testApp := newTestApp(t, chain, prompter)

	_, err := runExchange(t, testApp, "generate", "10", "--dev-key")
	require.NoError(err)
	require.Empty(chain.Sent())
}

func TestExchangeGeneratePromptsForAmount(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	prompter := promptsmocks.NewPrompter(t)
	prompter.On("CapturePositiveBigInt", "Enter the watt hours amount").Return(big.NewInt(640), nil).Once()
	prompter.On("CaptureYesNo", "Post 640 Wh generated. Do you want to proceed?").Return(true, nil).Once()
	testApp := newTestApp(t, chain, prompter)

	_, err := runExchange(t, testApp, "generate", "--dev-key")
	require.NoError(err)

	sent := chain.Sent()
	require.Len(sent, 1)
	require.Equal(selector("generateWattHours(uint256)"), sent[0].Data()[:4])
	require.Zero(new(big.Int).SetBytes(sent[0].Data()[4:]).Cmp(big.NewInt(640)))
}
