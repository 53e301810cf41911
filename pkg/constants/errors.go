// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrNoPrivateKey  = errors.New("\n\nNo private key found. To resolve this:\n- Use --private-key, --key, --key-file or --dev-key to provide the signing key.\n- Or set private-key / key-file in the microgrid config file.\n") //nolint:stylecheck
	ErrFailedReceipt = errors.New("failed receipt status")
	ErrReportInUse   = errors.New("deployment report belongs to another chain or mode")
)
