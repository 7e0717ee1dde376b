// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storagetest redirects storage.Settings to a throwaway directory
// for the duration of a test or benchmark.
//
// Usage:
//
//	settings := storage.NewSettings(storage.Paths{})
//	storagetest.Isolate(t, settings)
//	store, err := storage.Load(settings, storage.Options{})
//
// On exit the settings hold exactly what they held on entry and the
// directory is gone, even when the body panicked.
package storagetest

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/AleutianAI/textbench/pkg/logging"
	"github.com/AleutianAI/textbench/services/storage"
)

// dirPattern is the os.MkdirTemp pattern for isolation directories.
const dirPattern = "textbench-isolated-*"

// Context is an active redirection created by Enter.
//
// Thread Safety: Exit may be called from any goroutine; only the first
// call does any work.
type Context struct {
	settings *storage.Settings
	saved    storage.Paths
	dir      string
	logger   *logging.Logger
	remove   func(path string) error

	once    sync.Once
	exitErr error
}

// Option configures Enter.
type Option func(*Context)

// WithLogger routes teardown warnings to logger. The default is
// logging.Default.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRemover replaces os.RemoveAll as the function Exit uses to delete
// the isolation directory.
func WithRemover(remove func(path string) error) Option {
	return func(c *Context) {
		if remove != nil {
			c.remove = remove
		}
	}
}

// Enter creates a fresh directory under parent and points settings at it.
//
// Description:
//
//	The directory is created before anything else is touched, so a failure
//	there leaves settings exactly as they were. The prior values are
//	snapshotted and then replaced by storage.PathsUnder(dir).
//
// Inputs:
//   - settings: The path configuration to redirect. Must not be nil.
//   - parent: Where to create the directory. "" means os.TempDir.
//   - opts: Optional settings.
//
// Outputs:
//   - *Context: Call Exit to restore.
//   - error: Wraps storage.ErrRedirectFailure on any failure.
func Enter(settings *storage.Settings, parent string, opts ...Option) (*Context, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: settings must not be nil", storage.ErrRedirectFailure)
	}

	dir, err := os.MkdirTemp(parent, dirPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: create isolation directory: %v", storage.ErrRedirectFailure, err)
	}

	saved, err := settings.Swap(storage.PathsUnder(dir))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	c := &Context{
		settings: settings,
		saved:    saved,
		dir:      dir,
		logger:   logging.Default(),
		remove:   os.RemoveAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Debug("persistence redirected", "dir", dir)
	return c, nil
}

// Dir returns the isolation directory.
func (c *Context) Dir() string {
	return c.dir
}

// Paths returns the redirected paths.
func (c *Context) Paths() storage.Paths {
	return storage.PathsUnder(c.dir)
}

// Saved returns the paths that will be restored on Exit.
func (c *Context) Saved() storage.Paths {
	return c.saved
}

// Exit restores the saved paths and removes the isolation directory.
//
// Restoration always happens first. A removal failure is logged as a
// warning and returned; it never leaves the settings redirected.
// Subsequent calls return the first call's result.
func (c *Context) Exit() error {
	c.once.Do(func() {
		c.settings.Reset(c.saved)

		if err := c.remove(c.dir); err != nil {
			c.logger.Warn("could not remove isolation directory", "dir", c.dir, "error", err)
			c.exitErr = fmt.Errorf("remove isolation directory %s: %w", c.dir, err)
			return
		}
		c.logger.Debug("persistence restored", "dir", c.dir)
	})
	return c.exitErr
}

// With runs fn with settings redirected and restores them afterwards,
// including when fn panics. The panic is re-raised after cleanup.
//
// A teardown failure is logged as a warning by Exit and never changes
// the result.
//
// Outputs:
//   - error: The Enter error, or fn's error unchanged.
func With(settings *storage.Settings, fn func(storage.Paths) error, opts ...Option) error {
	c, err := Enter(settings, "", opts...)
	if err != nil {
		return err
	}
	defer func() { _ = c.Exit() }()
	return fn(c.Paths())
}

// Isolate redirects settings for the lifetime of tb.
//
// Description:
//
//	The directory is created under os.TempDir and restored with tb.Cleanup,
//	which runs after the test body even if it failed or panicked. Teardown
//	problems are reported with tb.Logf and do not fail the test.
func Isolate(tb testing.TB, settings *storage.Settings, opts ...Option) *Context {
	tb.Helper()

	c, err := Enter(settings, "", opts...)
	if err != nil {
		tb.Fatalf("isolate persistence: %v", err)
		return nil
	}
	tb.Cleanup(func() {
		if err := c.Exit(); err != nil {
			tb.Logf("warning: %v", err)
		}
	})
	return c
}
