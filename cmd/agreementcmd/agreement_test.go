// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package agreementcmd

import (
	"bytes"
	"context"
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
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/stretchr/testify/require"
)

var (
	exchangeAddress  = common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25")
	agreementAddress = common.HexToAddress("0x4Ac1d98D9cEF99EC6546dEd4Bd550b0b287aaD6D")
	assetAddress     = common.HexToAddress("0x0000000000000000000000000000000000001234")
)

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

func newTestApp(t *testing.T, chain *testutils.FakeChain) *application.Microgrid {
	testApp := application.NewTestApp(t, nil)
	testApp.NewEVMClient = func(context.Context, string) (evm.Client, error) {
		return chain.Client(t), nil
	}
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)
	chain.SetCode(exchangeAddress, []byte{0x60, 0x80})
	chain.SetCode(agreementAddress, []byte{0x60, 0x80})
	report := deployer.NewReport(testutils.FakeRPCURL, chain.ChainID().Uint64(), common.Address{}, false)
	report.Add(2, &deployer.Result{ContractName: constants.MicrogridExchangeContract, Address: exchangeAddress})
	report.Add(2, &deployer.Result{ContractName: constants.OperatorsAgreementContract, Address: agreementAddress})
	require.NoError(t, report.Write(testApp.Fs, constants.DeploymentReport, deployer.FormatJSON))
	return testApp
}

func runAgreement(t *testing.T, testApp *application.Microgrid, args ...string) (string, error) {
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

func TestSetExchangeFromReport(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain)

	out, err := runAgreement(t, testApp, "set-exchange", "--dev-key")
	require.NoError(err)
	require.Contains(out, "Set agreement exchange to "+exchangeAddress.Hex())

	sent := chain.Sent()
	require.Len(sent, 1)
	require.Equal(agreementAddress, *sent[0].To())
	require.Equal(selector("setExchange(address)"), sent[0].Data()[:4])
	require.True(bytes.HasSuffix(sent[0].Data(), exchangeAddress.Bytes()))
}

func TestSetExchangeExplicit(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain)
	other := common.HexToAddress("0x00000000000000000000000000000000000000e1")

	_, err := runAgreement(t, testApp, "set-exchange", other.Hex(), "--dev-key")
	require.NoError(err)
	sent := chain.Sent()
	require.Len(sent, 1)
	require.True(bytes.HasSuffix(sent[0].Data(), other.Bytes()))

	_, err = runAgreement(t, testApp, "set-exchange", common.Address{}.Hex(), "--dev-key")
	require.ErrorContains(err, "exchange address can't be zero")
	require.Len(chain.Sent(), 1)
}

func TestWhitelistAndGenerate(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain)

	_, err := runAgreement(t, testApp, "whitelist", assetAddress.Hex(), "--dev-key")
	require.NoError(err)
	_, err = runAgreement(t, testApp, "generate-kwh", "12", "--dev-key")
	require.NoError(err)
	_, err = runAgreement(t, testApp, "generate-kwh", "twelve", "--dev-key")
	require.ErrorContains(err, "invalid kWh amount")

	sent := chain.Sent()
	require.Len(sent, 2)
	require.Equal(selector("whitelistAsset(address)"), sent[0].Data()[:4])
	require.Equal(selector("generateKwh(uint256)"), sent[1].Data()[:4])
	require.Zero(new(big.Int).SetBytes(sent[1].Data()[4:]).Cmp(big.NewInt(12)))
	require.Equal(uint64(0), sent[0].Nonce())
	require.Equal(uint64(1), sent[1].Nonce())
}

func TestAgreementDevice(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	uint256, err := abi.NewType("uint256", "", nil)
	require.NoError(err)
	chain.CallHandler = func(msg ethereum.CallMsg) ([]byte, error) {
		require.Equal(agreementAddress, *msg.To)
		require.Equal(selector("devices(address)"), msg.Data[:4])
		return abi.Arguments{{Type: uint256}, {Type: uint256}}.Pack(big.NewInt(640), big.NewInt(215))
	}
	testApp := newTestApp(t, chain)

	out, err := runAgreement(t, testApp, "device", assetAddress.Hex())
	require.NoError(err)
	require.Contains(out, "640 Wh")
	require.Contains(out, "215 Wh")
}
