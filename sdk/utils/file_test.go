// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, "/tmp/testfile.txt", ExpandHome("/tmp/testfile.txt"))
	require.Equal(t, "build/contracts", ExpandHome("build/contracts"))
	require.Equal(t, filepath.Join(homeDir, "keys", "deployer.pk"), ExpandHome("~/keys/deployer.pk"))
	require.Equal(t, homeDir, ExpandHome(""))
}

func TestFileAndDirExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "build/contracts/MicrogridExchange.json", []byte("{}"), 0o644))

	require.True(t, FileExists(fs, "build/contracts/MicrogridExchange.json"))
	require.False(t, FileExists(fs, "build/contracts"))
	require.False(t, FileExists(fs, "non_existent_file.txt"))

	require.True(t, DirExists(fs, "build/contracts"))
	require.False(t, DirExists(fs, "build/contracts/MicrogridExchange.json"))
	require.False(t, DirExists(fs, "non_existent_dir"))
}

func TestWriteFileCreatesParent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteFile(fs, "reports/local/deployments.json", []byte("[]"), 0o644))
	bs, err := afero.ReadFile(fs, "reports/local/deployments.json")
	require.NoError(t, err)
	require.Equal(t, "[]", string(bs))
}
