// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"io"

	ansi "github.com/k0kubun/go-ansi"
	progressbar "github.com/schollz/progressbar/v3"
)

// StepProgressBar returns a bar advancing once per finished step out of [steps].
// A nil [writer] means the ansi aware stdout.
func StepProgressBar(writer io.Writer, steps int, title string) *progressbar.ProgressBar {
	if writer == nil {
		writer = ansi.NewAnsiStdout()
	}
	return progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(title),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
