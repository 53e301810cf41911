// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package artifact resolves compiled contract artifacts by contract name.
//
// Two on-disk formats are understood: the Truffle build artifact
// (contractName, abi, bytecode, deployedBytecode, networks, ...) and the
// solc combined output for a single contract (abi, bin).
package artifact

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ava-labs/libevm/accounts/abi"
)

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrNoBytecode       = errors.New("artifact has no creation bytecode")
	ErrUnlinkedLibrary  = errors.New("artifact bytecode has unlinked library placeholders")
	ErrInvalidName      = errors.New("invalid contract name")

	contractNameRegexp = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// NetworkDeployment is a per network entry found on Truffle artifacts
type NetworkDeployment struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// Artifact is a compiled contract interface and bytecode bundle
type Artifact struct {
	ContractName     string
	ABI              abi.ABI
	RawABI           json.RawMessage
	Bytecode         []byte
	DeployedBytecode []byte
	SourcePath       string
	CompilerVersion  string
	Networks         map[string]NetworkDeployment
}

type fileFormat struct {
	ContractName     string          `json:"contractName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	Bin              string          `json:"bin"`
	DeployedBytecode string          `json:"deployedBytecode"`
	SourcePath       string          `json:"sourcePath"`
	Compiler         struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"compiler"`
	Networks map[string]NetworkDeployment `json:"networks"`
}

// ValidateName checks [name] is a plain contract identifier
func ValidateName(name string) error {
	if !contractNameRegexp.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Parse decodes the artifact file [data] for contract [name]. When the file declares
// its own contract name it must match [name].
func Parse(name string, data []byte) (*Artifact, error) {
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failure unmarshaling artifact %s: %w", name, err)
	}
	if f.ContractName != "" && f.ContractName != name {
		return nil, fmt.Errorf("artifact for %s declares contract name %s", name, f.ContractName)
	}
	rawABI, err := normalizeABI(f.ABI)
	if err != nil {
		return nil, fmt.Errorf("invalid abi on artifact %s: %w", name, err)
	}
	parsedABI, err := abi.JSON(bytes.NewReader(rawABI))
	if err != nil {
		return nil, fmt.Errorf("invalid abi on artifact %s: %w", name, err)
	}
	creationCode := f.Bytecode
	if creationCode == "" {
		creationCode = f.Bin
	}
	bytecode, err := decodeCode(creationCode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode on artifact %s: %w", name, err)
	}
	deployedBytecode, err := decodeCode(f.DeployedBytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid deployed bytecode on artifact %s: %w", name, err)
	}
	return &Artifact{
		ContractName:     name,
		ABI:              parsedABI,
		RawABI:           rawABI,
		Bytecode:         bytecode,
		DeployedBytecode: deployedBytecode,
		SourcePath:       f.SourcePath,
		CompilerVersion:  f.Compiler.Version,
		Networks:         f.Networks,
	}, nil
}

// solc combined output may carry the abi as a json encoded string
func normalizeABI(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("missing abi")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return json.RawMessage(s), nil
	}
	return raw, nil
}

func decodeCode(code string) ([]byte, error) {
	code = strings.TrimPrefix(strings.TrimSpace(code), "0x")
	if code == "" {
		return nil, nil
	}
	if strings.Contains(code, "__") {
		return nil, ErrUnlinkedLibrary
	}
	return hex.DecodeString(code)
}

// Deployable checks the artifact carries creation bytecode
func (a *Artifact) Deployable() error {
	if len(a.Bytecode) == 0 {
		return fmt.Errorf("%w: %s is abstract or an interface", ErrNoBytecode, a.ContractName)
	}
	return nil
}

// ConstructorInputs returns the constructor arguments, empty if there is no constructor
func (a *Artifact) ConstructorInputs() abi.Arguments {
	return a.ABI.Constructor.Inputs
}

// MethodSignatures returns the sorted method signatures, eg setCEO(address)
func (a *Artifact) MethodSignatures() []string {
	sigs := make([]string, 0, len(a.ABI.Methods))
	for _, m := range a.ABI.Methods {
		sigs = append(sigs, m.Sig)
	}
	sort.Strings(sigs)
	return sigs
}

// EventNames returns the sorted event names
func (a *Artifact) EventNames() []string {
	names := make([]string, 0, len(a.ABI.Events))
	for name := range a.ABI.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
