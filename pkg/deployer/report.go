// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml (case insensitive)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q: expected json or yaml", s)
}

// FormatFromPath infers the format from the file extension, defaulting to json
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

type ReportEntry struct {
	Migration    int    `json:"migration,omitempty" yaml:"migration,omitempty"`
	ContractName string `json:"contractName" yaml:"contractName"`
	Address      string `json:"address" yaml:"address"`
	TxHash       string `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	BlockNumber  uint64 `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	GasUsed      uint64 `json:"gasUsed,omitempty" yaml:"gasUsed,omitempty"`
}

// Report is the ordered list of deployments done by a single run
type Report struct {
	RPCURL      string        `json:"rpcURL" yaml:"rpcURL"`
	ChainID     uint64        `json:"chainID" yaml:"chainID"`
	Deployer    string        `json:"deployer" yaml:"deployer"`
	DryRun      bool          `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Timestamp   string        `json:"timestamp" yaml:"timestamp"`
	Deployments []ReportEntry `json:"deployments" yaml:"deployments"`
}

func NewReport(rpcURL string, chainID uint64, from common.Address, dryRun bool) *Report {
	return &Report{
		RPCURL:      rpcURL,
		ChainID:     chainID,
		Deployer:    from.Hex(),
		DryRun:      dryRun,
		Timestamp:   time.Now().UTC().Format(constants.TimeParseLayout),
		Deployments: []ReportEntry{},
	}
}

// Add appends [result], deployed by [migration] (0 when deployed outside migrations)
func (r *Report) Add(migration int, result *Result) {
	entry := ReportEntry{
		Migration:    migration,
		ContractName: result.ContractName,
		Address:      result.Address.Hex(),
		BlockNumber:  result.BlockNumber,
		GasUsed:      result.GasUsed,
	}
	if result.TxHash != (common.Hash{}) {
		entry.TxHash = result.TxHash.Hex()
	}
	r.Deployments = append(r.Deployments, entry)
}

// Address returns the address of the last deployment of [contractName]
func (r *Report) Address(contractName string) (common.Address, bool) {
	for i := len(r.Deployments) - 1; i >= 0; i-- {
		if r.Deployments[i].ContractName == contractName {
			return common.HexToAddress(r.Deployments[i].Address), true
		}
	}
	return common.Address{}, false
}

func (r *Report) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatJSON, "":
		return json.MarshalIndent(r, "", "  ")
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// Write stores the report at [path] on [fs]
func (r *Report) Write(fs afero.Fs, path string, format Format) error {
	bs, err := r.Marshal(format)
	if err != nil {
		return err
	}
	return utils.WriteFile(fs, path, bs, constants.WriteReadReadPerms)
}

// FormatFromContent tells json from yaml by the first non blank byte
func FormatFromContent(bs []byte) Format {
	trimmed := bytes.TrimSpace(bs)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// LoadReport reads a report written by Write in either format, whatever the
// extension of [path]
func LoadReport(fs afero.Fs, path string) (*Report, error) {
	bs, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failure reading deployment report %s: %w", path, err)
	}
	r := &Report{}
	switch FormatFromContent(bs) {
	case FormatYAML:
		err = yaml.Unmarshal(bs, r)
	default:
		err = json.Unmarshal(bs, r)
	}
	if err != nil {
		return nil, fmt.Errorf("failure parsing deployment report %s: %w", path, err)
	}
	return r, nil
}
