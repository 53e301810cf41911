// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var ErrMissingCode = errors.New("contracts without code")

// microgrid contract status
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [reportFile]",
		Short: "Check the deployments of a report",
		Long: `The contract status command checks that every contract listed on a deployment
report (deployments.json by default) has code at its address on the target chain.`,
		RunE: contractsStatus,
		Args: cobrautils.MaximumNArgs(1),
	}
	return cmd
}

type deploymentStatus struct {
	entry    deployer.ReportEntry
	deployed bool
}

func contractsStatus(_ *cobra.Command, args []string) error {
	reportPath := constants.DeploymentReport
	if len(args) == 1 {
		reportPath = args[0]
	}
	report, err := deployer.LoadReport(app.Fs, reportPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	client, err := app.GetEVMClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()
	chainID, err := client.GetChainID(ctx)
	if err != nil {
		return err
	}
	if chainID.Uint64() != report.ChainID {
		return fmt.Errorf("report %s is for chain %d but %s is chain %s", reportPath, report.ChainID, client.URL, chainID)
	}

	statuses := make([]deploymentStatus, len(report.Deployments))
	bar := ux.StepProgressBar(ux.Logger.Writer, len(report.Deployments), "Checking contracts")
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(constants.StatusCheckConcurrency)
	for i, entry := range report.Deployments {
		eg.Go(func() error {
			deployed, err := client.ContractAlreadyDeployed(egCtx, common.HexToAddress(entry.Address))
			if err != nil {
				return fmt.Errorf("failure checking %s: %w", entry.ContractName, err)
			}
			// each goroutine owns its own slot
			statuses[i] = deploymentStatus{entry: entry, deployed: deployed}
			_ = bar.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	_ = bar.Finish()
	ux.Logger.PrintToUser("")

	missing := 0
	t := ux.DefaultTable(fmt.Sprintf("Deployments on chain %d", report.ChainID), table.Row{"Contract", "Address", "Status"})
	for _, status := range statuses {
		state := "Deployed"
		if !status.deployed {
			state = "No code"
			missing++
		}
		t.AppendRow(table.Row{status.entry.ContractName, status.entry.Address, state})
	}
	ux.PrintTable(t)
	switch {
	case missing == 0:
		ux.Logger.GreenCheckmarkToUser("All %d contracts are deployed", len(statuses))
	case report.DryRun:
		ux.Logger.PrintToUser("Report %s comes from a dry run, its contracts are not expected to exist", reportPath)
	default:
		ux.Logger.RedXToUser("%d of %d contracts have no code", missing, len(statuses))
		return fmt.Errorf("%w: %d of %d", ErrMissingCode, missing, len(statuses))
	}
	return nil
}
