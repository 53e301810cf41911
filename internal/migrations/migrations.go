// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package migrations runs the numbered deployment steps of the microgrid contracts.
package migrations

import (
	"context"
	"fmt"
	"sort"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/pkg/deployer"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"go.uber.org/zap"
)

// Env holds what a migration needs to run
type Env struct {
	Log      logging.Logger
	Resolver artifact.Resolver
	Deployer deployer.Deployer
	// deployments done by every migration are added here
	Report *deployer.Report
}

type migrationFunc func(context.Context, *Env, *migrationRunner) error

type migration struct {
	name string
	run  migrationFunc
}

type migrationRunner struct {
	showMsg    bool
	running    bool
	from       int
	to         int
	current    int
	migrations map[int]migration
}

const (
	runMessage       = "Running contract migrations..."
	endMessage       = "Migrations successfully completed"
	failedEndMessage = "Sadly some migrations succeeded - others failed. Check output for hints"
)

// NoUpperBound disables the --to filter
const NoUpperBound = -1

// all known migrations. add new ones here with a higher index
func registered() map[int]migration {
	return map[int]migration{
		2: {name: "deploy_contracts", run: DeployContracts.migrate},
	}
}

// Info describes a registered migration
type Info struct {
	Number int
	Name   string
}

// List returns the registered migrations in execution order
func List() []Info {
	migs := registered()
	infos := make([]Info, 0, len(migs))
	for _, i := range sortedKeys(migs) {
		infos = append(infos, Info{Number: i, Name: migs[i].name})
	}
	return infos
}

// RunMigrations executes, in ascending order, every registered migration
// numbered within [from, to]. A negative [to] means no upper bound.
// There are no rollbacks: deployments done before a failure stay in [env.Report].
func RunMigrations(ctx context.Context, env *Env, from int, to int) error {
	if to >= 0 && to < from {
		return fmt.Errorf("invalid migration range: from %d is greater than to %d", from, to)
	}
	runner := &migrationRunner{
		showMsg:    true,
		from:       from,
		to:         to,
		migrations: registered(),
	}
	return runner.run(ctx, env)
}

func sortedKeys(migs map[int]migration) []int {
	keys := make([]int, 0, len(migs))
	for i := range migs {
		keys = append(keys, i)
	}
	sort.Ints(keys)
	return keys
}

func (m *migrationRunner) inRange(i int) bool {
	if i < m.from {
		return false
	}
	return m.to < 0 || i <= m.to
}

func (m *migrationRunner) run(ctx context.Context, env *Env) error {
	for _, i := range sortedKeys(m.migrations) {
		if !m.inRange(i) {
			continue
		}
		mig := m.migrations[i]
		m.current = i
		if env.Log != nil {
			env.Log.Info("running migration", zap.Int("number", i), zap.String("name", mig.name))
		}
		if err := mig.run(ctx, env, m); err != nil {
			if m.running {
				ux.Logger.PrintToUser(failedEndMessage)
			}
			return fmt.Errorf("migration #%d failed: %w", i, err)
		}
	}
	if m.running {
		ux.Logger.PrintToUser(endMessage)
		m.running = false
	}
	return nil
}

// Every migration that is about to change chain state should
// run this function first, to print a message only once
func (m *migrationRunner) printMigrationMessage() {
	if m.showMsg {
		ux.Logger.PrintToUser(runMessage)
	}
	m.showMsg = false
	m.running = true
}
