// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migratecmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/internal/migrations"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/contract"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployment"
	"github.com/microgrid-exchange/microgrid-cli/pkg/microgrid"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var app *application.Microgrid

type migrateFlags struct {
	from            int
	to              int
	dryRun          bool
	link            bool
	list            bool
	output          string
	outputFormat    string
	privateKeyFlags contract.PrivateKeyFlags
}

var flags migrateFlags

// microgrid migrate
func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the contract migrations",
		Long: `The migrate command runs, in order, the numbered contract migrations.

Migration #2 deploys the MicrogridExchange and the OperatorsAgreement
contracts, once each and without constructor arguments. Use --from and --to
to restrict the migrations to run, and --dry-run to only compute the addresses
the contracts would be deployed at.

Every deployment is written to a report (deployments.json by default, and
deployments.dry-run.json on dry runs) that the exchange and agreement
commands read contract addresses from. A report of another chain is only
replaced when --output names it.`,
		RunE: migrate,
		Args: cobrautils.ExactArgs(0),
	}
	app = injectedApp
	cmd.Flags().IntVar(&flags.from, "from", 0, "first migration to run")
	cmd.Flags().IntVar(&flags.to, "to", migrations.NoUpperBound, "last migration to run (default: all)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "do not send transactions, only compute contract addresses")
	cmd.Flags().BoolVar(&flags.link, "link", false, "register the deployed MicrogridExchange on the OperatorsAgreement")
	cmd.Flags().BoolVar(&flags.list, "list", false, "list the migrations and exit")
	cmd.Flags().StringVarP(&flags.output, "output", "o", constants.DeploymentReport, "file to write the deployment report to")
	cmd.Flags().StringVar(&flags.outputFormat, "output-format", "", "report format [json, yaml] (default: from the output extension)")
	flags.privateKeyFlags.AddToCmd(cmd, "to deploy the contracts")
	return cmd
}

func migrate(cmd *cobra.Command, _ []string) error {
	if flags.list {
		printMigrations()
		return nil
	}
	if flags.to >= 0 && flags.to < flags.from {
		return fmt.Errorf("--from %d is greater than --to %d", flags.from, flags.to)
	}
	if flags.link && flags.dryRun {
		return fmt.Errorf("--link can not be used together with --dry-run")
	}
	privateKey, err := flags.privateKeyFlags.GetPrivateKeyOrPrompt(app, "to deploy the contracts", true)
	if err != nil {
		return err
	}
	ctx := context.Background()
	session, err := deployment.NewSession(ctx, app, privateKey, flags.dryRun)
	if err != nil {
		return err
	}
	defer session.Close()
	explicitOutput := cmd.Flags().Changed("output")
	output := session.ReportPath(flags.output, explicitOutput)
	if _, err := session.PreviousReport(app, output, explicitOutput); err != nil {
		return err
	}

	if err := session.PrintSummary(
		ctx,
		app,
		"Contract Migrations",
		table.Row{"Migrations", migrationRange()},
		table.Row{"Artifacts", app.Conf.GetBuildDir()},
	); err != nil {
		return err
	}
	if ok, err := session.Confirm(app); err != nil {
		return err
	} else if !ok {
		ux.Logger.PrintToUser("Migrations cancelled")
		return nil
	}

	env := &migrations.Env{
		Log:      app.Log,
		Resolver: app.ArtifactResolver(),
		Deployer: session.Deployer,
		Report:   session.Report,
	}
	start := time.Now()
	migErr := migrations.RunMigrations(ctx, env, flags.from, flags.to)
	elapsed := time.Since(start)
	if len(session.Report.Deployments) > 0 {
		// deployments done before a failure are reported too
		if err := session.WriteReport(app, output, flags.outputFormat); err != nil {
			if migErr != nil {
				app.Log.Error("failure writing partial deployment report", zap.Error(err))
				return migErr
			}
			return err
		}
		session.PrintReport()
	}
	if migErr != nil {
		return migErr
	}
	if len(session.Report.Deployments) == 0 {
		ux.Logger.PrintToUser("No migrations to run")
	} else {
		ux.Logger.PrintToUser("Migrations finished in %s", ux.FormatElapsed(elapsed))
	}
	if flags.link {
		return linkContracts(ctx, session)
	}
	return nil
}

// linkContracts sets the exchange the operators agreement works with
func linkContracts(ctx context.Context, session *deployment.Session) error {
	exchangeAddress, ok := session.Report.Address(constants.MicrogridExchangeContract)
	if !ok {
		return fmt.Errorf("--link needs %s to be deployed on this run", constants.MicrogridExchangeContract)
	}
	agreementAddress, ok := session.Report.Address(constants.OperatorsAgreementContract)
	if !ok {
		return fmt.Errorf("--link needs %s to be deployed on this run", constants.OperatorsAgreementContract)
	}
	agreement := microgrid.NewOperatorsAgreement(app.Log, session.Client, agreementAddress, session.PrivateKey)
	if _, err := agreement.SetExchange(ctx, exchangeAddress); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser(
		"%s at %s linked to %s at %s",
		constants.OperatorsAgreementContract,
		agreementAddress.Hex(),
		constants.MicrogridExchangeContract,
		exchangeAddress.Hex(),
	)
	return nil
}

func migrationRange() string {
	to := "last"
	if flags.to >= 0 {
		to = fmt.Sprintf("#%d", flags.to)
	}
	return fmt.Sprintf("from #%d to %s", flags.from, to)
}

func printMigrations() {
	t := ux.DefaultTable("Migrations", table.Row{"Number", "Name"})
	for _, info := range migrations.List() {
		t.AppendRow(table.Row{info.Number, info.Name})
	}
	ux.PrintTable(t)
}
