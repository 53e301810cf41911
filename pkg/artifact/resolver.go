// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/microgrid-exchange/microgrid-cli/pkg/constants"
	"github.com/spf13/afero"
)

// Resolver resolves artifacts by contract name
type Resolver interface {
	Resolve(name string) (*Artifact, error)
	List() ([]string, error)
}

// FSResolver reads <dir>/<ContractName>.json artifacts from an afero filesystem.
// Resolved artifacts are cached.
type FSResolver struct {
	fs    afero.Fs
	dir   string
	mu    sync.Mutex
	cache map[string]*Artifact
}

func NewFSResolver(fs afero.Fs, dir string) *FSResolver {
	return &FSResolver{
		fs:    fs,
		dir:   dir,
		cache: map[string]*Artifact{},
	}
}

func (r *FSResolver) Dir() string {
	return r.dir
}

func (r *FSResolver) path(name string) string {
	return filepath.Join(r.dir, name+constants.ArtifactSuffix)
}

func (r *FSResolver) Resolve(name string) (*Artifact, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.cache[name]; ok {
		return a, nil
	}
	data, err := afero.ReadFile(r.fs, r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not present at %s", ErrArtifactNotFound, name, r.dir)
		}
		return nil, fmt.Errorf("failure reading artifact %s: %w", name, err)
	}
	a, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	r.cache[name] = a
	return a, nil
}

// List returns the sorted names of the artifacts present on the build dir
func (r *FSResolver) List() ([]string, error) {
	entries, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("build dir %s not found: %w", r.dir, err)
		}
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constants.ArtifactSuffix {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), constants.ArtifactSuffix)
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
