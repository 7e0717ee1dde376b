// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storagetest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/textbench/pkg/logging"
	"github.com/AleutianAI/textbench/services/storage"
)

func realPaths() storage.Paths {
	return storage.PathsUnder("/home/someone/.textbench")
}

func assertGone(t *testing.T, dir string) {
	t.Helper()
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "isolation directory %s still exists", dir)
}

func TestEnterExit(t *testing.T) {
	settings := storage.NewSettings(realPaths())

	c, err := Enter(settings, t.TempDir(), WithLogger(logging.Nop()))
	require.NoError(t, err)

	assert.Equal(t, c.Paths(), settings.Paths())
	assert.Equal(t, realPaths(), c.Saved())
	assert.True(t, strings.HasPrefix(settings.Paths().DBPath, c.Dir()))
	assert.True(t, strings.HasPrefix(settings.Paths().TagPath, c.Dir()))
	info, err := os.Stat(c.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, c.Exit())
	assert.Equal(t, realPaths(), settings.Paths())
	assertGone(t, c.Dir())

	// Second exit is a no-op.
	assert.NoError(t, c.Exit())
	assert.Equal(t, realPaths(), settings.Paths())
}

func TestEnter_RemovesDirectoryContents(t *testing.T) {
	settings := storage.NewSettings(realPaths())
	c, err := Enter(settings, "", WithLogger(logging.Nop()))
	require.NoError(t, err)

	store, err := storage.Load(settings, storage.Options{})
	require.NoError(t, err)
	require.NoError(t, store.AddWords(context.Background(), "کتاب"))
	require.NoError(t, store.SetTags(map[string][]string{"t": {"p"}}))
	require.NoError(t, store.Close())

	require.NoError(t, c.Exit())
	assertGone(t, c.Dir())
}

func TestEnter_CreationFailureLeavesSettingsUntouched(t *testing.T) {
	// A regular file cannot hold a directory.
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, nil, 0600))

	settings := storage.NewSettings(realPaths())
	c, err := Enter(settings, parent)
	assert.ErrorIs(t, err, storage.ErrRedirectFailure)
	assert.Nil(t, c)
	assert.Equal(t, realPaths(), settings.Paths())
}

func TestEnter_NilSettings(t *testing.T) {
	_, err := Enter(nil, "")
	assert.ErrorIs(t, err, storage.ErrRedirectFailure)
}

func TestWith(t *testing.T) {
	t.Run("success path", func(t *testing.T) {
		settings := storage.NewSettings(realPaths())
		var seen storage.Paths

		err := With(settings, func(p storage.Paths) error {
			seen = p
			assert.Equal(t, p, settings.Paths())
			return nil
		}, WithLogger(logging.Nop()))
		require.NoError(t, err)

		assert.Equal(t, realPaths(), settings.Paths())
		assertGone(t, seen.BaseDir)
	})

	t.Run("error path", func(t *testing.T) {
		settings := storage.NewSettings(realPaths())
		boom := errors.New("boom")
		var seen storage.Paths

		err := With(settings, func(p storage.Paths) error {
			seen = p
			return boom
		}, WithLogger(logging.Nop()))
		assert.ErrorIs(t, err, boom)

		assert.Equal(t, realPaths(), settings.Paths())
		assertGone(t, seen.BaseDir)
	})

	t.Run("panic path", func(t *testing.T) {
		settings := storage.NewSettings(realPaths())
		var seen storage.Paths

		assert.PanicsWithValue(t, "aborted", func() {
			_ = With(settings, func(p storage.Paths) error {
				seen = p
				panic("aborted")
			}, WithLogger(logging.Nop()))
		})

		assert.Equal(t, realPaths(), settings.Paths())
		assertGone(t, seen.BaseDir)
	})
}

func TestIsolate_RestoresAfterTest(t *testing.T) {
	settings := storage.NewSettings(realPaths())
	var dir string

	t.Run("isolated", func(t *testing.T) {
		c := Isolate(t, settings, WithLogger(logging.Nop()))
		dir = c.Dir()
		assert.Equal(t, c.Paths(), settings.Paths())
	})

	assert.Equal(t, realPaths(), settings.Paths())
	assertGone(t, dir)
}

// TestIsolate_Parallel runs concurrent tests, each with its own settings
// and store, and checks that none of them sees another's data.
func TestIsolate_Parallel(t *testing.T) {
	for i := 0; i < 4; i++ {
		word := fmt.Sprintf("word-%d", i)
		t.Run(word, func(t *testing.T) {
			t.Parallel()

			settings := storage.NewSettings(realPaths())
			c := Isolate(t, settings, WithLogger(logging.Nop()))

			store, err := storage.Load(settings, storage.Options{})
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.AddWords(ctx, word))
			words, err := store.Words(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{word}, words)
			assert.Equal(t, c.Paths(), store.Paths())
		})
	}
}

// failingRemover returns a remover that refuses to delete anything and
// records the directory it was asked to remove. The directory is removed
// for real when the test ends.
func failingRemover(t *testing.T, dir *string) func(string) error {
	t.Helper()
	t.Cleanup(func() {
		if *dir != "" {
			_ = os.RemoveAll(*dir)
		}
	})
	return func(path string) error {
		*dir = path
		return os.ErrPermission
	}
}

func TestExit_RemovalFailure(t *testing.T) {
	settings := storage.NewSettings(realPaths())
	var buf strings.Builder
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Writer: &buf})
	var dir string

	c, err := Enter(settings, t.TempDir(), WithLogger(logger), WithRemover(failingRemover(t, &dir)))
	require.NoError(t, err)

	err = c.Exit()
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, c.Dir(), dir)
	assert.Equal(t, realPaths(), settings.Paths())

	logged := buf.String()
	assert.Contains(t, logged, "level=WARN")
	assert.Contains(t, logged, "could not remove isolation directory")
	assert.Contains(t, logged, c.Dir())

	// The failure is reported once.
	assert.ErrorIs(t, c.Exit(), os.ErrPermission)
	assert.Equal(t, 1, strings.Count(buf.String(), "could not remove isolation directory"))
}

func TestWith_RemovalFailureKeepsResult(t *testing.T) {
	t.Run("success is not overridden", func(t *testing.T) {
		settings := storage.NewSettings(realPaths())
		var buf strings.Builder
		logger := logging.New(logging.Config{Level: logging.LevelDebug, Writer: &buf})
		var dir string

		err := With(settings, func(storage.Paths) error { return nil },
			WithLogger(logger), WithRemover(failingRemover(t, &dir)))
		require.NoError(t, err)

		assert.NotEmpty(t, dir)
		assert.Equal(t, realPaths(), settings.Paths())
		assert.Contains(t, buf.String(), "could not remove isolation directory")
	})

	t.Run("fn error is returned unchanged", func(t *testing.T) {
		settings := storage.NewSettings(realPaths())
		boom := errors.New("boom")
		var dir string

		err := With(settings, func(storage.Paths) error { return boom },
			WithLogger(logging.Nop()), WithRemover(failingRemover(t, &dir)))
		assert.Same(t, boom, err)
		assert.Equal(t, realPaths(), settings.Paths())
	})
}

func TestIsolate_RemovalFailureDoesNotFailTest(t *testing.T) {
	settings := storage.NewSettings(realPaths())
	var buf strings.Builder
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Writer: &buf})
	var dir string
	remover := failingRemover(t, &dir)

	ok := t.Run("isolated", func(t *testing.T) {
		c := Isolate(t, settings, WithLogger(logger), WithRemover(remover))
		assert.Equal(t, c.Paths(), settings.Paths())
	})

	assert.True(t, ok)
	assert.NotEmpty(t, dir)
	assert.Equal(t, realPaths(), settings.Paths())
	assert.Contains(t, buf.String(), "could not remove isolation directory")
}
