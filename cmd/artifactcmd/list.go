// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package artifactcmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
)

// microgrid artifact list
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the compiled contract artifacts",
		Long: `The artifact list command prints, for every artifact on the build dir,
its compiler version, whether it can be deployed and its creation code size.`,
		RunE: listArtifacts,
		Args: cobrautils.ExactArgs(0),
	}
}

func listArtifacts(_ *cobra.Command, _ []string) error {
	resolver := app.ArtifactResolver()
	names, err := resolver.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		ux.Logger.PrintToUser("No artifacts found at %s", resolver.Dir())
		return nil
	}
	header := table.Row{"Contract", "Compiler", "Deployable", "Bytecode Size", "Methods"}
	t := ux.DefaultTable(fmt.Sprintf("Artifacts at %s", resolver.Dir()), header)
	for _, name := range names {
		a, err := resolver.Resolve(name)
		if err != nil {
			// keep listing, the broken artifact is flagged on its row
			t.AppendRow(table.Row{name, "-", "invalid: " + err.Error(), "-", "-"})
			continue
		}
		t.AppendRow(table.Row{
			a.ContractName,
			orDash(a.CompilerVersion),
			deployableText(a),
			fmt.Sprintf("%d bytes", len(a.Bytecode)),
			len(a.ABI.Methods),
		})
	}
	ux.PrintTable(t)
	return nil
}

func deployableText(a *artifact.Artifact) string {
	if a.Deployable() != nil {
		return "No (abstract)"
	}
	return "Yes"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
