// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"bytes"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestPrintToUser(t *testing.T) {
	buf := &bytes.Buffer{}
	ul := &UserLog{log: logging.NoLog{}, Writer: buf}
	ul.PrintToUser("deployed %s at %s", "MicrogridExchange", "0x01")
	require.Equal(t, "deployed MicrogridExchange at 0x01\n", buf.String())
}

func TestConvertToStringWithThousandSeparator(t *testing.T) {
	require.Equal(t, "5_000_000", ConvertToStringWithThousandSeparator(5_000_000))
	require.Equal(t, "999", ConvertToStringWithThousandSeparator(999))
	require.Equal(t, "0", ConvertToStringWithThousandSeparator(0))
}

func TestFormatElapsed(t *testing.T) {
	require.Equal(t, "1.235s", FormatElapsed(1234567*time.Microsecond))
	require.Equal(t, "2m5s", FormatElapsed(2*time.Minute+4600*time.Millisecond))
}
