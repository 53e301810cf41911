// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/config"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*application.Microgrid, string) {
	testApp := application.NewTestApp(t, nil)
	configPath := filepath.Join(t.TempDir(), constants.ConfigFileName)
	testApp.Conf.SetConfig(logging.NoLog{}, configPath)
	return testApp, configPath
}

func runConfig(t *testing.T, testApp *application.Microgrid, args ...string) (string, error) {
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

func reload(configPath string) *config.Config {
	conf := config.New()
	conf.SetConfig(logging.NoLog{}, configPath)
	return conf
}

func TestSetConfigValue(t *testing.T) {
	require := require.New(t)
	testApp, configPath := newTestApp(t)

	_, err := runConfig(t, testApp, "set", constants.ConfigGasLimitKey, "6000000")
	require.NoError(err)
	_, err = runConfig(t, testApp, "set", constants.ConfigRPCURLKey, "https://rpc.microgrid.example/ext/bc/C/rpc")
	require.NoError(err)

	conf := reload(configPath)
	require.Equal(uint64(6_000_000), conf.GetGasLimit())
	require.Equal("https://rpc.microgrid.example/ext/bc/C/rpc", conf.GetRPCURL())
	require.Equal(constants.DefaultBuildDir, conf.GetBuildDir())
}

func TestSetConfigValueErrors(t *testing.T) {
	require := require.New(t)
	testApp, _ := newTestApp(t)

	_, err := runConfig(t, testApp, "set", "metrics", "true")
	require.ErrorContains(err, `unknown config key "metrics"`)

	_, err = runConfig(t, testApp, "set", constants.ConfigGasLimitKey, "lots")
	require.ErrorContains(err, "invalid value for gas-limit")

	_, err = runConfig(t, testApp, "set", constants.ConfigPrivateKeyKey, "0x1234")
	require.ErrorContains(err, "invalid private key")
}

func TestSkipConfirm(t *testing.T) {
	require := require.New(t)
	testApp, configPath := newTestApp(t)

	_, err := runConfig(t, testApp, "skip-confirm", constants.Enable)
	require.NoError(err)
	require.True(reload(configPath).GetConfigBoolValue(constants.ConfigSkipConfirm))

	_, err = runConfig(t, testApp, "skip-confirm", constants.Disable)
	require.NoError(err)
	require.False(reload(configPath).GetConfigBoolValue(constants.ConfigSkipConfirm))

	_, err = runConfig(t, testApp, "skip-confirm", "maybe")
	require.ErrorContains(err, "Invalid skip-confirm argument")
}

func TestPrintConfigMasksPrivateKey(t *testing.T) {
	require := require.New(t)
	testApp, _ := newTestApp(t)
	testApp.Conf.Set(constants.ConfigPrivateKeyKey, constants.DevPrivateKey)

	out, err := runConfig(t, testApp, "print")
	require.NoError(err)
	require.Contains(out, "********")
	require.NotContains(out, constants.DevPrivateKey)
	require.Contains(out, constants.DefaultRPCURL)
}
