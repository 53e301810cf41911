// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
)

const (
	DevPrivateKey = constants.DevPrivateKey
	DevAddress    = constants.DevAddress
)
