// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/pkg/config"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	sdkconstants "github.com/microgrid-exchange/microgrid-cli/sdk/constants"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/afero"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyExists   = errors.New("key already exists")

	keyNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

type Microgrid struct {
	Log     logging.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
	Fs      afero.Fs
	// connects to an evm rpc endpoint, replaceable on tests
	NewEVMClient func(ctx context.Context, rpcURL string) (evm.Client, error)

	resolver *artifact.FSResolver
}

func New() *Microgrid {
	return &Microgrid{
		NewEVMClient: evm.GetClient,
	}
}

func (app *Microgrid) Setup(
	baseDir string,
	log logging.Logger,
	conf *config.Config,
	prompt prompts.Prompter,
	fs afero.Fs,
) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.Fs = fs
	app.resolver = nil
}

func (app *Microgrid) GetBaseDir() string {
	return app.baseDir
}

func (app *Microgrid) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *Microgrid) GetKeyDir() string {
	return filepath.Join(app.baseDir, constants.KeyDir)
}

func (app *Microgrid) GetKeyPath(keyName string) string {
	return filepath.Join(app.baseDir, constants.KeyDir, keyName+constants.KeySuffix)
}

func (app *Microgrid) GetBuildDir() string {
	return utils.ExpandHome(app.Conf.GetBuildDir())
}

// ArtifactResolver returns the resolver for the configured build dir.
// The same resolver is returned while the build dir does not change.
func (app *Microgrid) ArtifactResolver() *artifact.FSResolver {
	buildDir := app.GetBuildDir()
	if app.resolver == nil || app.resolver.Dir() != buildDir {
		app.resolver = artifact.NewFSResolver(app.Fs, buildDir)
	}
	return app.resolver
}

// GetEVMClient connects to the configured rpc endpoint
func (app *Microgrid) GetEVMClient(ctx context.Context) (evm.Client, error) {
	return app.NewEVMClient(ctx, app.Conf.GetRPCURL())
}

func (app *Microgrid) KeyExists(keyName string) bool {
	return utils.FileExists(app.Fs, app.GetKeyPath(keyName))
}

// KeyNames lists the stored keys, sorted
func (app *Microgrid) KeyNames() ([]string, error) {
	if !utils.DirExists(app.Fs, app.GetKeyDir()) {
		return nil, nil
	}
	entries, err := afero.ReadDir(app.Fs, app.GetKeyDir())
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.KeySuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), constants.KeySuffix))
	}
	sort.Strings(names)
	return names, nil
}

// LoadKey returns the hex private key stored as [keyName]
func (app *Microgrid) LoadKey(keyName string) (string, error) {
	return app.ReadKeyFile(app.GetKeyPath(keyName))
}

// ReadKeyFile reads a hex private key from [path]
func (app *Microgrid) ReadKeyFile(path string) (string, error) {
	bs, err := afero.ReadFile(app.Fs, utils.ExpandHome(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return "", err
	}
	privateKey := evm.TrimHexPrefix(string(bs))
	if _, err := evm.PrivateKeyToAddress(privateKey); err != nil {
		return "", fmt.Errorf("invalid private key at %s: %w", path, err)
	}
	return privateKey, nil
}

// ValidateKeyName checks [keyName] can be used as a key file name
func ValidateKeyName(keyName string) error {
	if !keyNameRegexp.MatchString(keyName) {
		return fmt.Errorf("invalid key name %q: only letters, digits, - and _ are allowed", keyName)
	}
	return nil
}

// SaveKey stores [privateKey] as [keyName], returning its address
func (app *Microgrid) SaveKey(keyName string, privateKey string, force bool) (common.Address, error) {
	if err := ValidateKeyName(keyName); err != nil {
		return common.Address{}, err
	}
	privateKey = evm.TrimHexPrefix(privateKey)
	address, err := evm.PrivateKeyToAddress(privateKey)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}
	if app.KeyExists(keyName) && !force {
		return common.Address{}, fmt.Errorf("%w: %s", ErrKeyExists, keyName)
	}
	if err := app.Fs.MkdirAll(app.GetKeyDir(), sdkconstants.WriteReadUserOnlyDirPerms); err != nil {
		return common.Address{}, err
	}
	return address, afero.WriteFile(app.Fs, app.GetKeyPath(keyName), []byte(privateKey), sdkconstants.WriteReadUserOnlyPerms)
}
