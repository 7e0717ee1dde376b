// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrRedirectFailure indicates that path settings could not be redirected
// to, or restored from, an ephemeral location.
var ErrRedirectFailure = errors.New("persistence redirect failure")

const (
	// DirName is the default base directory name under the user's home.
	DirName = ".textbench"

	// DBName is the primary data store directory name.
	DBName = "textbench.db"

	// TagName is the tag store file name.
	TagName = "TAG"
)

// Paths locates the persistence layer on disk.
type Paths struct {
	// BaseDir holds everything else.
	BaseDir string `yaml:"base_dir"`

	// DBPath is the BadgerDB directory of the primary data store.
	DBPath string `yaml:"db_path"`

	// TagPath is the YAML tag store file.
	TagPath string `yaml:"tag_path"`
}

// PathsUnder lays out the standard store names inside dir.
func PathsUnder(dir string) Paths {
	return Paths{
		BaseDir: dir,
		DBPath:  filepath.Join(dir, DBName),
		TagPath: filepath.Join(dir, TagName),
	}
}

// DefaultPaths returns the paths under ~/.textbench.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return PathsUnder(filepath.Join(home, DirName)), nil
}

// Validate checks that all three paths are set.
func (p Paths) Validate() error {
	switch {
	case p.BaseDir == "":
		return errors.New("base dir is required")
	case p.DBPath == "":
		return errors.New("db path is required")
	case p.TagPath == "":
		return errors.New("tag path is required")
	}
	return nil
}

// Settings holds the path configuration handed to the data loader.
//
// Description:
//
//	Settings is an explicit value, not a package global: every component
//	that loads data receives a *Settings (or a Paths) at construction time.
//	Tests that need isolation create their own Settings, so concurrent tests
//	never share a mutable path configuration.
//
// Thread Safety: Safe for concurrent use.
type Settings struct {
	mu    sync.RWMutex
	paths Paths
}

// NewSettings creates Settings holding p.
func NewSettings(p Paths) *Settings {
	return &Settings{paths: p}
}

// Paths returns the current paths.
func (s *Settings) Paths() Paths {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paths
}

// Set replaces the current paths.
//
// Outputs:
//   - error: ErrRedirectFailure if p is incomplete; the settings are
//     left unchanged in that case.
func (s *Settings) Set(p Paths) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedirectFailure, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = p
	return nil
}

// Swap validates p, installs it and returns the paths it replaced.
// On error nothing changes.
func (s *Settings) Swap(p Paths) (Paths, error) {
	if err := p.Validate(); err != nil {
		return Paths{}, fmt.Errorf("%w: %v", ErrRedirectFailure, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.paths
	s.paths = p
	return prev, nil
}

// Reset installs p without validation. It exists to put back a snapshot
// taken earlier, which may legitimately be incomplete.
func (s *Settings) Reset(p Paths) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = p
}
