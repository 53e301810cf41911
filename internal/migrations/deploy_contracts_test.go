// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migrations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	artifactmocks "github.com/microgrid-exchange/microgrid-cli/pkg/artifact/mocks"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	deployermocks "github.com/microgrid-exchange/microgrid-cli/pkg/deployer/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testArtifact(t *testing.T, name string) *artifact.Artifact {
	a, err := artifact.Parse(name, testutils.TruffleArtifact(name, testutils.MicrogridExchangeABI, testutils.DummyBytecode))
	require.NoError(t, err)
	return a
}

// recordingDeployer keeps every call it receives
type recordingDeployer struct {
	names []string
	args  [][]interface{}
}

func (d *recordingDeployer) Deploy(_ context.Context, a *artifact.Artifact, args ...interface{}) (*deployer.Result, error) {
	d.names = append(d.names, a.ContractName)
	d.args = append(d.args, args)
	return &deployer.Result{
		ContractName: a.ContractName,
		Address:      common.BigToAddress(common.Big1),
	}, nil
}

func TestDeployContractsCanonicalList(t *testing.T) {
	require.Equal(t, []string{"MicrogridExchange", "OperatorsAgreement"}, DeployContracts.Artifacts)
}

func TestDeployStepDeploysEachArtifactOnceWithoutArgs(t *testing.T) {
	require := require.New(t)
	resolver := artifactmocks.NewResolver(t)
	exchange := testArtifact(t, "MicrogridExchange")
	agreement := testArtifact(t, "OperatorsAgreement")
	resolver.On("Resolve", "MicrogridExchange").Return(exchange, nil).Once()
	resolver.On("Resolve", "OperatorsAgreement").Return(agreement, nil).Once()

	d := &recordingDeployer{}
	results, err := DeployContracts.Run(context.Background(), resolver, d)
	require.NoError(err)

	require.Equal([]string{"MicrogridExchange", "OperatorsAgreement"}, d.names)
	require.Len(d.args, 2)
	for _, args := range d.args {
		require.Empty(args)
	}
	require.Len(results, 2)
	require.Equal("MicrogridExchange", results[0].ContractName)
	require.Equal("OperatorsAgreement", results[1].ContractName)
	resolver.AssertNotCalled(t, "List")
}

func TestDeployStepWithMockedDeployer(t *testing.T) {
	resolver := artifactmocks.NewResolver(t)
	d := deployermocks.NewDeployer(t)
	exchange := testArtifact(t, "MicrogridExchange")
	agreement := testArtifact(t, "OperatorsAgreement")
	resolver.On("Resolve", "MicrogridExchange").Return(exchange, nil).Once()
	resolver.On("Resolve", "OperatorsAgreement").Return(agreement, nil).Once()
	// exactly two arguments: no constructor arguments are passed
	first := d.On("Deploy", mock.Anything, exchange).Return(&deployer.Result{ContractName: "MicrogridExchange"}, nil).Once()
	d.On("Deploy", mock.Anything, agreement).Return(&deployer.Result{ContractName: "OperatorsAgreement"}, nil).Once().NotBefore(first)

	_, err := DeployContracts.Run(context.Background(), resolver, d)
	require.NoError(t, err)
	d.AssertNumberOfCalls(t, "Deploy", 2)
}

func TestDeployStepStopsOnResolveError(t *testing.T) {
	resolver := artifactmocks.NewResolver(t)
	notFound := fmt.Errorf("%w: MicrogridExchange", artifact.ErrArtifactNotFound)
	resolver.On("Resolve", "MicrogridExchange").Return(nil, notFound).Once()

	d := &recordingDeployer{}
	results, err := DeployContracts.Run(context.Background(), resolver, d)
	require.ErrorIs(t, err, artifact.ErrArtifactNotFound)
	require.ErrorContains(t, err, "failure deploying MicrogridExchange: ")
	require.Empty(t, results)
	require.Empty(t, d.names)
}

func TestDeployStepStopsOnDeployError(t *testing.T) {
	resolver := artifactmocks.NewResolver(t)
	d := deployermocks.NewDeployer(t)
	exchange := testArtifact(t, "MicrogridExchange")
	resolver.On("Resolve", "MicrogridExchange").Return(exchange, nil).Once()
	d.On("Deploy", mock.Anything, exchange).Return(nil, errors.New("nonce too low")).Once()

	_, err := DeployContracts.Run(context.Background(), resolver, d)
	require.ErrorContains(t, err, "failure deploying MicrogridExchange: nonce too low")
	resolver.AssertNotCalled(t, "Resolve", "OperatorsAgreement")
}

func TestRunMigrationsFillsReport(t *testing.T) {
	require := require.New(t)
	out := &bytes.Buffer{}
	userOutput(out)

	resolver := artifactmocks.NewResolver(t)
	resolver.On("Resolve", "MicrogridExchange").Return(testArtifact(t, "MicrogridExchange"), nil).Once()
	resolver.On("Resolve", "OperatorsAgreement").Return(testArtifact(t, "OperatorsAgreement"), nil).Once()

	report := deployer.NewReport("http://127.0.0.1:8545", 1337, common.Address{}, false)
	env := &Env{
		Log:      logging.NoLog{},
		Resolver: resolver,
		Deployer: &recordingDeployer{},
		Report:   report,
	}
	require.NoError(RunMigrations(context.Background(), env, 0, NoUpperBound))
	require.Len(report.Deployments, 2)
	for _, entry := range report.Deployments {
		require.Equal(2, entry.Migration)
	}
	require.Equal("MicrogridExchange", report.Deployments[0].ContractName)
	require.Equal("OperatorsAgreement", report.Deployments[1].ContractName)
	require.Contains(out.String(), runMessage)
	require.Contains(out.String(), endMessage)
}

func TestRunMigrationsOutOfRangeDeploysNothing(t *testing.T) {
	userOutput(io.Discard)
	resolver := artifactmocks.NewResolver(t)
	d := &recordingDeployer{}
	env := &Env{Resolver: resolver, Deployer: d}
	require.NoError(t, RunMigrations(context.Background(), env, 3, NoUpperBound))
	require.Empty(t, d.names)
}
