// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/contract"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployment"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type deployFlags struct {
	dryRun          bool
	output          string
	outputFormat    string
	privateKeyFlags contract.PrivateKeyFlags
}

var deployFlagValues deployFlags

// microgrid contract deploy
func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [contractName]...",
		Short: "Deploy compiled contracts",
		Long: `The contract deploy command deploys the given contract artifacts, in order,
without constructor arguments.

Deployments are appended to the deployment report when it already holds
deployments for the same chain. Dry runs default to deployments.dry-run.json,
and a report of another chain is only replaced when --output names it.`,
		RunE: deployContracts,
		Args: cobrautils.MinimumNArgs(1),
	}
	cmd.Flags().BoolVar(&deployFlagValues.dryRun, "dry-run", false, "do not send transactions, only compute contract addresses")
	cmd.Flags().StringVarP(&deployFlagValues.output, "output", "o", constants.DeploymentReport, "file to write the deployment report to")
	cmd.Flags().StringVar(&deployFlagValues.outputFormat, "output-format", "", "report format [json, yaml] (default: from the output extension)")
	deployFlagValues.privateKeyFlags.AddToCmd(cmd, "to deploy the contracts")
	return cmd
}

func deployContracts(cmd *cobra.Command, args []string) error {
	names := utils.Unique(args)
	resolver := app.ArtifactResolver()
	// fail before connecting if anything is missing
	for _, name := range names {
		a, err := resolver.Resolve(name)
		if err != nil {
			return err
		}
		if err := a.Deployable(); err != nil {
			return err
		}
	}
	privateKey, err := deployFlagValues.privateKeyFlags.GetPrivateKeyOrPrompt(app, "to deploy the contracts", true)
	if err != nil {
		return err
	}
	ctx := context.Background()
	session, err := deployment.NewSession(ctx, app, privateKey, deployFlagValues.dryRun)
	if err != nil {
		return err
	}
	defer session.Close()
	explicitOutput := cmd.Flags().Changed("output")
	output := session.ReportPath(deployFlagValues.output, explicitOutput)
	previous, err := session.PreviousReport(app, output, explicitOutput)
	if err != nil {
		return err
	}
	if previous != nil {
		session.Report.Deployments = append(previous.Deployments, session.Report.Deployments...)
	}

	if err := session.PrintSummary(
		ctx,
		app,
		"Contract Deployment",
		table.Row{"Contracts", strings.Join(names, ", ")},
	); err != nil {
		return err
	}
	if ok, err := session.Confirm(app); err != nil {
		return err
	} else if !ok {
		ux.Logger.PrintToUser("Deployment cancelled")
		return nil
	}

	var deployErr error
	deployed := 0
	spinSession := ux.NewUserSpinner()
	for _, name := range names {
		a, err := resolver.Resolve(name)
		if err != nil {
			deployErr = err
			break
		}
		spinner := spinSession.SpinToUser("Deploying %s", name)
		result, err := session.Deployer.Deploy(ctx, a)
		if err != nil {
			ux.SpinFailWithError(spinner, "", err)
			deployErr = fmt.Errorf("failure deploying %s: %w", name, err)
			break
		}
		ux.SpinComplete(spinner)
		session.Report.Add(0, result)
		deployed++
	}
	spinSession.Stop()

	if deployed > 0 {
		if err := session.WriteReport(app, output, deployFlagValues.outputFormat); err != nil {
			if deployErr != nil {
				app.Log.Error("failure writing partial deployment report", zap.Error(err))
				return deployErr
			}
			return err
		}
		session.PrintReport()
	}
	return deployErr
}
