// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// minimal creation code: returns an empty runtime
	DummyBytecode = "0x6080604052348015600f57600080fd5b50603f80601d6000396000f3fe"

	MicrogridExchangeABI = `[
  {"inputs": [], "stateMutability": "nonpayable", "type": "constructor"},
  {"inputs": [], "name": "ceo_address", "outputs": [{"name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "", "type": "address"}], "name": "device_index", "outputs": [
    {"name": "wh_produced", "type": "uint256"},
    {"name": "wh_consumed", "type": "uint256"},
    {"name": "wh_available", "type": "uint256"},
    {"name": "wh_deficit", "type": "uint256"},
    {"name": "valid_consumer", "type": "bool"},
    {"name": "valid_producer", "type": "bool"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "new_ceo", "type": "address"}], "name": "setCEO", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "producer", "type": "address"}], "name": "designateProducer", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "consumer", "type": "address"}], "name": "designateConsumer", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "watt_hours", "type": "uint256"}], "name": "generateWattHours", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "watt_hours", "type": "uint256"}], "name": "consumeWattHours", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"anonymous": false, "inputs": [{"indexed": false, "name": "ceo", "type": "address"}], "name": "CEOChanged", "type": "event"}
]`

	OperatorsAgreementABI = `[
  {"inputs": [{"name": "exchange", "type": "address"}], "name": "setExchange", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "asset", "type": "address"}], "name": "whitelistAsset", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "kwh", "type": "uint256"}], "name": "generateKwh", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

	// interface style artifact: no creation code
	IMeterABI = `[
  {"inputs": [{"name": "kwh", "type": "uint256"}], "name": "generateKwh", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`
)

// TruffleArtifact renders a truffle style artifact for [name]
func TruffleArtifact(name string, abiJSON string, bytecode string) []byte {
	doc := map[string]interface{}{
		"contractName":     name,
		"abi":              json.RawMessage(abiJSON),
		"bytecode":         bytecode,
		"deployedBytecode": "0x",
		"sourcePath":       "/project/contracts/" + name + ".sol",
		"compiler": map[string]string{
			"name":    "solc",
			"version": "0.4.24+commit.e67f0147.Emscripten.clang",
		},
		"networks": map[string]interface{}{},
	}
	bs, _ := json.MarshalIndent(doc, "", "  ")
	return bs
}

// WriteArtifact stores a truffle style artifact at <dir>/<name>.json on [fs]
func WriteArtifact(fs afero.Fs, dir string, name string, abiJSON string, bytecode string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, filepath.Join(dir, name+".json"), TruffleArtifact(name, abiJSON, bytecode), 0o644)
}

// WriteMicrogridArtifacts stores artifacts for both microgrid contracts
func WriteMicrogridArtifacts(fs afero.Fs, dir string) error {
	if err := WriteArtifact(fs, dir, "MicrogridExchange", MicrogridExchangeABI, DummyBytecode); err != nil {
		return err
	}
	return WriteArtifact(fs, dir, "OperatorsAgreement", OperatorsAgreementABI, DummyBytecode)
}
