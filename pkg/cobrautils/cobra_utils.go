// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"

	"github.com/spf13/cobra"
)

type UsageError struct {
	cmd *cobra.Command
	err error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("Usage error: %s", e.err)
}

func (e UsageError) Unwrap() error {
	return e.err
}

func NewUsageError(cmd *cobra.Command, err error) UsageError {
	return UsageError{
		cmd: cmd,
		err: err,
	}
}

// withUsage shows the command help when [check] rejects the positional args
func withUsage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			_ = cmd.Help()
			return NewUsageError(cmd, err)
		}
		return nil
	}
}

func ExactArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.ExactArgs(n))
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.MaximumNArgs(n))
}

func MinimumNArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.MinimumNArgs(n))
}

// PrintError reports [err] to the user. Usage errors also get the usage
// string of the failing command.
func PrintError(w io.Writer, err error) {
	var usageErr UsageError
	switch {
	case errors.As(err, &usageErr):
		usageErr.cmd.Println(usageErr.cmd.UsageString())
		usageErr.cmd.Println()
		usageErr.cmd.Println(usageErr)
	case ux.Logger != nil:
		ux.Logger.PrintToUser("Error: %s", err)
	default:
		// failed before the user logger was set up
		fmt.Fprintf(w, "Error: %s\n", err)
	}
}

func HandleErrors(err error) {
	if err != nil {
		PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func CommandSuiteUsage(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return NewUsageError(
			cmd,
			fmt.Errorf("invalid subcommand %q", strings.Join(args, " ")),
		)
	}
	err := cmd.Help()
	if err != nil {
		fmt.Println(err)
	}
	return nil
}

func ConfigureRootCmd(cmd *cobra.Command) {
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError(cmd, err)
	})
}
