// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package artifactcmd

import (
	"github.com/microgrid-exchange/microgrid-cli/pkg/application"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.Microgrid

// microgrid artifact
func NewCmd(injectedApp *application.Microgrid) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Inspect compiled contract artifacts",
		Long: `The artifact command suite lists and describes the compiled contract
artifacts found on the build dir (build/contracts by default).`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	// artifact list
	cmd.AddCommand(newListCmd())
	// artifact describe
	cmd.AddCommand(newDescribeCmd())
	return cmd
}
