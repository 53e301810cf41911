// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migratecmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	promptsmocks "github.com/microgrid-exchange/microgrid-cli/pkg/prompts/mocks"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var devAddress = common.HexToAddress(constants.DevAddress)

func newTestApp(t *testing.T, chain *testutils.FakeChain, prompt prompts.Prompter) *application.Microgrid {
	testApp := application.NewTestApp(t, prompt)
	testApp.NewEVMClient = func(context.Context, string) (evm.Client, error) {
		return chain.Client(t), nil
	}
	return testApp
}

func runMigrate(testApp *application.Microgrid, args ...string) error {
	cmd := NewCmd(testApp)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestMigrateDeploysContracts(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	require.NoError(runMigrate(testApp, "--dev-key"))

	sent := chain.Sent()
	require.Len(sent, 2)
	for _, tx := range sent {
		require.Nil(tx.To())
	}
	report, err := deployer.LoadReport(testApp.Fs, constants.DeploymentReport)
	require.NoError(err)
	require.False(report.DryRun)
	require.Equal(uint64(1337), report.ChainID)
	require.Equal(devAddress.Hex(), report.Deployer)
	require.Len(report.Deployments, 2)
	require.Equal(constants.MicrogridExchangeContract, report.Deployments[0].ContractName)
	require.Equal(constants.OperatorsAgreementContract, report.Deployments[1].ContractName)
	require.Equal(crypto.CreateAddress(devAddress, 0).Hex(), report.Deployments[0].Address)
	require.Equal(crypto.CreateAddress(devAddress, 1).Hex(), report.Deployments[1].Address)
	for _, entry := range report.Deployments {
		require.Equal(2, entry.Migration)
	}
}

func TestMigrateAsksForConfirmation(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	prompter := promptsmocks.NewPrompter(t)
	prompter.On("CaptureYesNo", mock.Anything).Return(false, nil).Once()
	testApp := newTestApp(t, chain, prompter)

	require.NoError(runMigrate(testApp, "--dev-key"))
	require.Empty(chain.Sent())
	require.False(utils.FileExists(testApp.Fs, constants.DeploymentReport))
	prompter.AssertExpectations(t)
}

func TestMigrateDryRun(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	chain.SetNonce(devAddress, 7)
	testApp := newTestApp(t, chain, nil)

	require.NoError(runMigrate(testApp, "--dev-key", "--dry-run", "--output", "plan.yaml"))

	require.Empty(chain.Sent())
	report, err := deployer.LoadReport(testApp.Fs, "plan.yaml")
	require.NoError(err)
	require.True(report.DryRun)
	require.Len(report.Deployments, 2)
	require.Equal(crypto.CreateAddress(devAddress, 7).Hex(), report.Deployments[0].Address)
	require.Equal(crypto.CreateAddress(devAddress, 8).Hex(), report.Deployments[1].Address)
	require.Empty(report.Deployments[0].TxHash)
}

func TestMigrateLink(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	require.NoError(runMigrate(testApp, "--dev-key", "--link"))

	sent := chain.Sent()
	require.Len(sent, 3)
	agreement := crypto.CreateAddress(devAddress, 1)
	link := sent[2]
	require.NotNil(link.To())
	require.Equal(agreement, *link.To())
	require.Equal(crypto.Keccak256([]byte("setExchange(address)"))[:4], link.Data()[:4])
	exchange := crypto.CreateAddress(devAddress, 0)
	require.True(bytes.HasSuffix(link.Data(), exchange.Bytes()))
}

func TestMigrateOutputFormatOverridesExtension(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	require.NoError(runMigrate(testApp, "--dev-key", "--output-format", "yaml"))

	bs, err := afero.ReadFile(testApp.Fs, constants.DeploymentReport)
	require.NoError(err)
	require.Equal(deployer.FormatYAML, deployer.FormatFromContent(bs))
	report, err := deployer.LoadReport(testApp.Fs, constants.DeploymentReport)
	require.NoError(err)
	address, ok := report.Address(constants.OperatorsAgreementContract)
	require.True(ok)
	require.Equal(crypto.CreateAddress(devAddress, 1), address)
}

func TestMigrateKeepsLiveReport(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	require.NoError(runMigrate(testApp, "--dev-key"))
	require.NoError(runMigrate(testApp, "--dev-key", "--dry-run"))

	live, err := deployer.LoadReport(testApp.Fs, constants.DeploymentReport)
	require.NoError(err)
	require.False(live.DryRun)
	require.Len(live.Deployments, 2)
	dry, err := deployer.LoadReport(testApp.Fs, constants.DryRunReport)
	require.NoError(err)
	require.True(dry.DryRun)

	// a report of another chain is only replaced on request
	other := deployer.NewReport("http://10.0.0.1:8545", 43114, devAddress, false)
	require.NoError(other.Write(testApp.Fs, "other.json", deployer.FormatJSON))
	sent := len(chain.Sent())
	err = runMigrate(testApp, "--dev-key", "--output", "other.json")
	require.NoError(err)
	require.Len(chain.Sent(), sent+2)

	require.NoError(other.Write(testApp.Fs, constants.DeploymentReport, deployer.FormatJSON))
	err = runMigrate(testApp, "--dev-key")
	require.ErrorIs(err, constants.ErrReportInUse)
	require.Len(chain.Sent(), sent+2)
}

func TestMigrateOutOfRange(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)

	require.NoError(runMigrate(testApp, "--dev-key", "--from", "3"))
	require.Empty(chain.Sent())
	require.False(utils.FileExists(testApp.Fs, constants.DeploymentReport))
}

func TestMigrateFlagErrors(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)

	err := runMigrate(testApp, "--dev-key", "--from", "3", "--to", "2")
	require.ErrorContains(err, "--from 3 is greater than --to 2")

	err = runMigrate(testApp, "--dev-key", "--dry-run", "--link")
	require.ErrorContains(err, "--link can not be used together with --dry-run")

	err = runMigrate(testApp, "--dev-key", "--private-key", constants.DevPrivateKey)
	require.ErrorContains(err, "mutually exclusive")

	err = runMigrate(testApp, "extra")
	require.Error(err)
	require.Empty(chain.Sent())
}

func TestMigrateWritesPartialReport(t *testing.T) {
	require := testutils.SetupTest(t)
	chain := testutils.NewFakeChain()
	testApp := newTestApp(t, chain, nil)
	testApp.Conf.Set(constants.ConfigSkipConfirm, true)
	require.NoError(testApp.Fs.Remove("build/contracts/OperatorsAgreement.json"))

	err := runMigrate(testApp, "--dev-key")
	require.ErrorContains(err, "migration #2 failed")

	require.Len(chain.Sent(), 1)
	report, err := deployer.LoadReport(testApp.Fs, constants.DeploymentReport)
	require.NoError(err)
	require.Len(report.Deployments, 1)
	require.Equal(constants.MicrogridExchangeContract, report.Deployments[0].ContractName)
}

func TestMigrateList(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	testutils.SetUserOutput(&out)
	defer testutils.SetUserOutput(io.Discard)
	testApp := newTestApp(t, testutils.NewFakeChain(), nil)

	require.NoError(runMigrate(testApp, "--list"))
	require.Contains(out.String(), "deploy_contracts")
}
