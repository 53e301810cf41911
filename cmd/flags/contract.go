// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	addressFlagName = "address"
	reportFlagName  = "report"
)

// ContractAddressFlags locate a deployed contract, either by explicit address
// or by its last entry on a deployment report
type ContractAddressFlags struct {
	Address    string
	ReportPath string
}

func (f *ContractAddressFlags) AddToCmd(cmd *cobra.Command, contractName string) {
	cmd.Flags().StringVar(
		&f.Address,
		addressFlagName,
		"",
		fmt.Sprintf("address of the %s contract", contractName),
	)
	cmd.Flags().StringVar(
		&f.ReportPath,
		reportFlagName,
		constants.DeploymentReport,
		fmt.Sprintf("deployment report to take the %s address from", contractName),
	)
}

// GetAddress returns the address given by flag, or else the address of the
// last deployment of [contractName] found on the report
func (f *ContractAddressFlags) GetAddress(fs afero.Fs, contractName string) (common.Address, error) {
	if f.Address != "" {
		if !common.IsHexAddress(f.Address) {
			return common.Address{}, fmt.Errorf("invalid %s address %q", contractName, f.Address)
		}
		return common.HexToAddress(f.Address), nil
	}
	report, err := deployer.LoadReport(fs, f.ReportPath)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w (use --%s to set the %s address)", err, addressFlagName, contractName)
	}
	address, ok := report.Address(contractName)
	if !ok {
		return common.Address{}, fmt.Errorf("%s is not deployed according to %s", contractName, f.ReportPath)
	}
	return address, nil
}
