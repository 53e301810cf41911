// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package artifactcmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microgrid-exchange/microgrid-cli/pkg/artifact"
	"github.com/microgrid-exchange/microgrid-cli/pkg/cobrautils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/spf13/cobra"
)

var printABI bool

// microgrid artifact describe
func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [contractName]",
		Short: "Describe a compiled contract artifact",
		Long: `The artifact describe command prints the constructor inputs, methods, events
and recorded network deployments of a contract artifact.`,
		RunE: describeArtifact,
		Args: cobrautils.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&printABI, "abi", false, "print the raw abi instead of the summary")
	return cmd
}

func describeArtifact(_ *cobra.Command, args []string) error {
	a, err := app.ArtifactResolver().Resolve(args[0])
	if err != nil {
		return err
	}
	if printABI {
		ux.Logger.PrintToUser("%s", string(a.RawABI))
		return nil
	}

	t := ux.DefaultTable(a.ContractName, nil)
	t.AppendRow(table.Row{"Source", orDash(a.SourcePath)})
	t.AppendRow(table.Row{"Compiler", orDash(a.CompilerVersion)})
	t.AppendRow(table.Row{"Deployable", deployableText(a)})
	t.AppendRow(table.Row{"Constructor", constructorText(a)})
	t.AppendRow(table.Row{"Methods", listText(a.MethodSignatures())})
	t.AppendRow(table.Row{"Events", listText(a.EventNames())})
	t.AppendRow(table.Row{"Networks", networksText(a)})
	ux.PrintTable(t)
	return nil
}

func constructorText(a *artifact.Artifact) string {
	inputs := a.ConstructorInputs()
	if len(inputs) == 0 {
		return "no arguments"
	}
	args := make([]string, 0, len(inputs))
	for _, input := range inputs {
		args = append(args, strings.TrimSpace(input.Type.String()+" "+input.Name))
	}
	return strings.Join(args, ", ")
}

func networksText(a *artifact.Artifact) string {
	if len(a.Networks) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(a.Networks))
	for id := range a.Networks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%s: %s", id, a.Networks[id].Address))
	}
	return strings.Join(lines, "\n")
}

func listText(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, "\n")
}
