// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployment wires a signing key, an rpc connection and a deployer
// into the state shared by the commands that deploy and operate contracts.
package deployment

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ava-labs/libevm/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/contract"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/microgrid-exchange/microgrid-cli/sdk/evm"
	"github.com/microgrid-exchange/microgrid-cli/sdk/utils"
	"go.uber.org/zap"

	cmdflags "github.com/microgrid-exchange/microgrid-cli/cmd/flags"
)

var weiPerEther = new(big.Float).SetInt(big.NewInt(1_000_000_000_000_000_000))

// Session is an open connection to the target chain plus the deployer and
// report used by a single command run
type Session struct {
	RPCURL   string
	Client   evm.Client
	ChainID  *big.Int
	From     common.Address
	Deployer deployer.Deployer
	Report   *deployer.Report
	DryRun   bool
	// signing key, empty on dry runs
	PrivateKey string
}

// NewSession connects to the configured rpc endpoint. On [dryRun], nothing
// is signed and the deployer only computes addresses.
func NewSession(
	ctx context.Context,
	app *application.Microgrid,
	privateKey string,
	dryRun bool,
) (*Session, error) {
	from, err := evm.PrivateKeyToAddress(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	client, err := app.GetEVMClient(ctx)
	if err != nil {
		return nil, err
	}
	chainID, err := client.GetChainID(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	s := &Session{
		RPCURL:  app.Conf.GetRPCURL(),
		Client:  client,
		ChainID: chainID,
		From:    from,
		DryRun:  dryRun,
	}
	if dryRun {
		s.Deployer = deployer.NewDryRunDeployer(client, from)
	} else {
		d, err := deployer.NewEVMDeployer(ctx, app.Log, client, privateKey, app.Conf.GetGasLimit())
		if err != nil {
			client.Close()
			return nil, err
		}
		s.Deployer = d
		s.PrivateKey = privateKey
	}
	s.Report = deployer.NewReport(s.RPCURL, chainID.Uint64(), from, dryRun)
	app.Log.Info("deployment session",
		zap.String("rpc", s.RPCURL),
		zap.Uint64("chainID", chainID.Uint64()),
		zap.String("from", from.Hex()),
		zap.Bool("dryRun", dryRun),
	)
	return s, nil
}

func (s *Session) Close() {
	s.Client.Close()
}

// PrintSummary shows where and how contracts are about to be deployed.
// [extra] rows are appended at the end.
func (s *Session) PrintSummary(ctx context.Context, app *application.Microgrid, title string, extra ...table.Row) error {
	balance, err := s.Client.GetAddressBalance(ctx, s.From)
	if err != nil {
		return err
	}
	mode := "Live"
	if s.DryRun {
		mode = "Dry run (no transactions are sent)"
	}
	gasLimit := "estimated"
	if limit := app.Conf.GetGasLimit(); limit != 0 {
		gasLimit = ux.ConvertToStringWithThousandSeparator(limit)
	}
	t := ux.DefaultTable(title, nil)
	t.AppendRow(table.Row{"RPC", s.RPCURL})
	t.AppendRow(table.Row{"Chain ID", s.ChainID.String()})
	t.AppendRow(table.Row{"Deployer", s.From.Hex()})
	t.AppendRow(table.Row{"Balance", FormatEther(balance)})
	t.AppendRow(table.Row{"Gas Limit", gasLimit})
	t.AppendRow(table.Row{"Mode", mode})
	for _, row := range extra {
		t.AppendRow(row)
	}
	ux.PrintTable(t)
	return nil
}

// Confirm asks the user to go on, unless skip-confirm is configured or
// nothing is going to be sent
func (s *Session) Confirm(app *application.Microgrid) (bool, error) {
	skip := s.DryRun || app.Conf.GetConfigBoolValue(constants.ConfigSkipConfirm)
	return prompts.Confirm(app.Prompt, skip, "Do you want to proceed?")
}

// PrintReport renders the deployments of the session as a table
func (s *Session) PrintReport() {
	header := table.Row{"Migration", "Contract", "Address", "Tx Hash", "Block", "Gas Used"}
	t := ux.DefaultTable("Deployments", header)
	for _, entry := range s.Report.Deployments {
		migration := "-"
		if entry.Migration != 0 {
			migration = fmt.Sprintf("%d", entry.Migration)
		}
		t.AppendRow(table.Row{
			migration,
			entry.ContractName,
			entry.Address,
			entry.TxHash,
			entry.BlockNumber,
			ux.ConvertToStringWithThousandSeparator(entry.GasUsed),
		})
	}
	ux.PrintTable(t)
}

// WriteReport stores the session report at [path], in [format] or else in
// the format implied by its extension
func (s *Session) WriteReport(app *application.Microgrid, path string, format string) error {
	f := deployer.FormatFromPath(path)
	if format != "" {
		var err error
		if f, err = deployer.ParseFormat(format); err != nil {
			return err
		}
	}
	if err := s.Report.Write(app.Fs, path, f); err != nil {
		return err
	}
	ux.Logger.PrintToUser("Deployment report written to %s", path)
	return nil
}

// ReportPath is [output] when set by the user, else the default report of
// live or dry runs
func (s *Session) ReportPath(output string, explicit bool) string {
	if !explicit && s.DryRun {
		return constants.DryRunReport
	}
	return output
}

// PreviousReport loads the report stored at [path], if any. A report of
// another chain or mode is an error unless [overwrite] is set, in which case
// it is dropped and nil is returned.
func (s *Session) PreviousReport(app *application.Microgrid, path string, overwrite bool) (*deployer.Report, error) {
	if !utils.FileExists(app.Fs, path) {
		return nil, nil
	}
	previous, err := deployer.LoadReport(app.Fs, path)
	if err != nil {
		return nil, err
	}
	if previous.ChainID == s.Report.ChainID && previous.DryRun == s.Report.DryRun {
		return previous, nil
	}
	if !overwrite {
		return nil, fmt.Errorf(
			"%w: %s holds deployments of chain %d (dry run: %t), use --output to choose the report file",
			constants.ErrReportInUse,
			path,
			previous.ChainID,
			previous.DryRun,
		)
	}
	app.Log.Info("replacing deployment report",
		zap.String("report", path),
		zap.Uint64("reportChainID", previous.ChainID),
		zap.Bool("reportDryRun", previous.DryRun),
	)
	return nil, nil
}

// FormatEther renders an amount of wei as ether with four decimals
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0000"
	}
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther)
	return ether.Text('f', 4)
}

// Target is a deployed contract commands interact with
type Target struct {
	Client  evm.Client
	Address common.Address
	// empty for read only targets
	PrivateKey string
}

// OpenTarget locates [contractName] through [addressFlags] and connects to
// the chain. A nil [keyFlags] opens the target read only.
func OpenTarget(
	ctx context.Context,
	app *application.Microgrid,
	contractName string,
	addressFlags *cmdflags.ContractAddressFlags,
	keyFlags *contract.PrivateKeyFlags,
	goal string,
) (*Target, error) {
	address, err := addressFlags.GetAddress(app.Fs, contractName)
	if err != nil {
		return nil, err
	}
	privateKey := ""
	if keyFlags != nil {
		if privateKey, err = keyFlags.GetPrivateKeyOrPrompt(app, goal, true); err != nil {
			return nil, err
		}
	}
	client, err := app.GetEVMClient(ctx)
	if err != nil {
		return nil, err
	}
	deployed, err := client.ContractAlreadyDeployed(ctx, address)
	if err != nil {
		client.Close()
		return nil, err
	}
	if !deployed {
		client.Close()
		return nil, fmt.Errorf("%s has no code at %s on %s", contractName, address.Hex(), client.URL)
	}
	return &Target{
		Client:     client,
		Address:    address,
		PrivateKey: privateKey,
	}, nil
}

func (t *Target) Close() {
	t.Client.Close()
}

// ConfirmTx asks the user before sending a transaction described by [msg],
// unless skip-confirm is configured
func ConfirmTx(app *application.Microgrid, msg string) (bool, error) {
	return prompts.Confirm(
		app.Prompt,
		app.Conf.GetConfigBoolValue(constants.ConfigSkipConfirm),
		fmt.Sprintf("%s. Do you want to proceed?", msg),
	)
}
