// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/microgrid-exchange/microgrid-cli/internal/testutils"
	"github.com/microgrid-exchange/microgrid-cli/pkg/config"
	"github.com/microgrid-exchange/microgrid-cli/pkg/prompts"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestApp returns an app backed by an in memory filesystem that holds the
// microgrid artifacts under the default build dir
func NewTestApp(t *testing.T, prompt prompts.Prompter) *Microgrid {
	fs := afero.NewMemMapFs()
	conf := config.New()
	require.NoError(t, testutils.WriteMicrogridArtifacts(fs, conf.GetBuildDir()))
	app := New()
	app.Setup(t.TempDir(), logging.NoLog{}, conf, prompt, fs)
	return app
}
