// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "time"

const (
	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	BaseDirName = ".microgrid"
	LogDir      = "logs"
	KeyDir      = "keys"
	KeySuffix   = ".pk"

	ConfigFileName = "config.json"
	EnvPrefix      = "MICROGRID"
	// looked up in the working directory
	ProjectConfigFileName = "microgrid.json"

	CLILogName       = "microgrid"
	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	DefaultBuildDir  = "build/contracts"
	ArtifactSuffix   = ".json"
	DefaultRPCURL    = "http://127.0.0.1:8545"
	DefaultGasLimit  = uint64(5_000_000)
	DefaultLogLevel  = "ERROR"
	DeploymentReport = "deployments.json"
	DryRunReport     = "deployments.dry-run.json"

	TimeParseLayout = "2006-01-02 15:04:05"

	// contract names deployed by the stock migrations
	MicrogridExchangeContract  = "MicrogridExchange"
	OperatorsAgreementContract = "OperatorsAgreement"

	// well known development key, prefunded on local dev chains
	DevPrivateKey = "56289e99c94b6912bfc12adc093c9b51124f0dc54ac7a766b2bc5ccf558d8027"
	DevAddress    = "0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC"

	Enable  = "enable"
	Disable = "disable"

	StatusCheckConcurrency = 8
	RequestTimeout         = 30 * time.Second
)

// config keys
const (
	ConfigRPCURLKey     = "rpc-url"
	ConfigPrivateKeyKey = "private-key"
	ConfigKeyFileKey    = "key-file"
	ConfigBuildDirKey   = "build-dir"
	ConfigGasLimitKey   = "gas-limit"
	ConfigLogLevelKey   = "log-level"
	ConfigSkipConfirm   = "skip-confirm"
)
