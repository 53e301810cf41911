// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileExists checks if a regular file exists on [fs].
func FileExists(fs afero.Fs, filename string) bool {
	info, err := fs.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists on [fs].
func DirExists(fs afero.Fs, dirName string) bool {
	ok, err := afero.DirExists(fs, dirName)
	return err == nil && ok
}

// ExpandHome expands ~ symbol to home directory
func ExpandHome(path string) string {
	if path == "" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// WriteFile writes [data] to [path] on [fs], creating the parent directory if needed.
func WriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(fs, path, data, perm)
}
