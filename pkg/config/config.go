// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	v *viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match
	v.SetDefault(constants.ConfigRPCURLKey, constants.DefaultRPCURL)
	v.SetDefault(constants.ConfigBuildDirKey, constants.DefaultBuildDir)
	v.SetDefault(constants.ConfigGasLimitKey, constants.DefaultGasLimit)
	return &Config{v: v}
}

// SetConfig uses [s] as config file, reading it if it exists
func (c *Config) SetConfig(log logging.Logger, s string) {
	c.v.AddConfigPath(filepath.Dir(s))
	c.v.SetConfigFile(s)
	if err := c.v.ReadInConfig(); err == nil {
		log.Info("Using config file", zap.String("config-file", s))
	} else {
		log.Info("No config file found", zap.String("config-file", s))
	}
}

func (c *Config) MergeConfig(log logging.Logger, s string) {
	prevS := c.v.ConfigFileUsed()
	c.v.SetConfigFile(s)
	log.Info("Merging configuration file", zap.String("config-file", s))
	if err := c.v.MergeInConfig(); err != nil {
		log.Info("Error loading configuration file", zap.String("config-file", s), zap.Error(err))
	}
	c.v.SetConfigFile(prevS)
}

// BindFlag makes [flag], when set on the command line, take precedence over [key]
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	return c.v.BindPFlag(key, flag)
}

func (c *Config) GetConfigPath() string {
	return c.v.ConfigFileUsed()
}

func (c *Config) ConfigFileExists() bool {
	return utils.FileExists(afero.NewOsFs(), c.GetConfigPath())
}

// Set overrides [key] for this run only
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// SetConfigValue sets the value of a configuration key and persists it.
func (c *Config) SetConfigValue(key string, value interface{}) error {
	c.v.Set(key, value)
	if c.ConfigFileExists() {
		return c.v.WriteConfig()
	}
	return c.v.SafeWriteConfigAs(c.GetConfigPath())
}

func (c *Config) ConfigValueIsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *Config) GetConfigBoolValue(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetConfigStringValue(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetRPCURL() string {
	return c.v.GetString(constants.ConfigRPCURLKey)
}

func (c *Config) GetBuildDir() string {
	return utils.ExpandHome(c.v.GetString(constants.ConfigBuildDirKey))
}

func (c *Config) GetGasLimit() uint64 {
	return c.v.GetUint64(constants.ConfigGasLimitKey)
}

func (c *Config) GetPrivateKey() string {
	return c.v.GetString(constants.ConfigPrivateKeyKey)
}

func (c *Config) GetKeyFile() string {
	keyFile := c.v.GetString(constants.ConfigKeyFileKey)
	if keyFile == "" {
		return ""
	}
	return utils.ExpandHome(keyFile)
}
