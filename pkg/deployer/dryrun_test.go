// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"testing"

	"github.com/ava-labs/libevm/crypto"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/stretchr/testify/require"
)

func TestDryRunDeployer(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewFakeChain()
	chain.SetNonce(devAddress, 4)
	d := NewDryRunDeployer(chain.Client(t), devAddress)

	exchange := parseArtifact(t, "MicrogridExchange", testutils.MicrogridExchangeABI, testutils.DummyBytecode)
	agreement := parseArtifact(t, "OperatorsAgreement", testutils.OperatorsAgreementABI, testutils.DummyBytecode)

	r1, err := d.Deploy(context.Background(), exchange)
	require.NoError(err)
	r2, err := d.Deploy(context.Background(), agreement)
	require.NoError(err)

	require.True(r1.DryRun)
	require.Equal(crypto.CreateAddress(devAddress, 4), r1.Address)
	require.Equal(crypto.CreateAddress(devAddress, 5), r2.Address)
	require.Contains(r2.String(), "would be deployed at")
	require.Empty(chain.Sent())
}

func TestDryRunDeployerRejectsConstructorArgs(t *testing.T) {
	d := NewDryRunDeployer(testutils.NewFakeChain().Client(t), devAddress)
	exchange := parseArtifact(t, "MicrogridExchange", testutils.MicrogridExchangeABI, testutils.DummyBytecode)
	_, err := d.Deploy(context.Background(), exchange, "unexpected")
	require.ErrorContains(t, err, "invalid constructor arguments")
}
