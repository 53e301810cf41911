// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/microgrid-exchange/microgrid-cli/pkg/ux"
	"github.com/stretchr/testify/require"
)

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	SetUserOutput(io.Discard)
	return require.New(t)
}

// SetUserOutput sends everything printed to the user to [w]
func SetUserOutput(w io.Writer) {
	ux.NewUserLog(logging.NoLog{}, w)
	ux.Logger.Writer = w
}
