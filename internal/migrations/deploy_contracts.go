// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migrations

import (
	"context"
	"fmt"

	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
)

// DeployStep deploys each of its artifacts once, in order, with no
// constructor arguments
type DeployStep struct {
	Artifacts []string
}

// DeployContracts is migration #2
var DeployContracts = DeployStep{
	Artifacts: []string{
		constants.MicrogridExchangeContract,
		constants.OperatorsAgreementContract,
	},
}

// Run resolves and deploys the artifacts one after the other. It stops at
// the first failure, returning the deployments done so far.
func (s DeployStep) Run(
	ctx context.Context,
	resolver artifact.Resolver,
	d deployer.Deployer,
) ([]*deployer.Result, error) {
	results := make([]*deployer.Result, 0, len(s.Artifacts))
	for _, name := range s.Artifacts {
		a, err := resolver.Resolve(name)
		if err != nil {
			return results, fmt.Errorf("failure deploying %s: %w", name, err)
		}
		result, err := d.Deploy(ctx, a)
		if err != nil {
			return results, fmt.Errorf("failure deploying %s: %w", name, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s DeployStep) migrate(ctx context.Context, env *Env, runner *migrationRunner) error {
	if len(s.Artifacts) == 0 {
		return nil
	}
	runner.printMigrationMessage()
	results, err := s.Run(ctx, env.Resolver, env.Deployer)
	for _, result := range results {
		if env.Report != nil {
			env.Report.Add(runner.current, result)
		}
		ux.Logger.GreenCheckmarkToUser("%s", result)
	}
	return err
}
