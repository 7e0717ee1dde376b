// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/textbench/services/storage"
	"github.com/AleutianAI/textbench/services/storage/storagetest"
)

// openIsolated opens a persistent store inside a fresh isolation directory.
func openIsolated(t *testing.T) (*storage.Store, *storagetest.Context) {
	t.Helper()
	settings := storage.NewSettings(storage.Paths{})
	iso := storagetest.Isolate(t, settings)

	store, err := storage.Load(settings, storage.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, iso
}

func TestPathsUnder(t *testing.T) {
	p := storage.PathsUnder("/tmp/x")
	assert.Equal(t, "/tmp/x", p.BaseDir)
	assert.Equal(t, filepath.Join("/tmp/x", storage.DBName), p.DBPath)
	assert.Equal(t, filepath.Join("/tmp/x", storage.TagName), p.TagPath)
	assert.NoError(t, p.Validate())
}

func TestPaths_Validate(t *testing.T) {
	tests := []struct {
		name  string
		paths storage.Paths
	}{
		{"empty", storage.Paths{}},
		{"missing db", storage.Paths{BaseDir: "a", TagPath: "a/TAG"}},
		{"missing tag", storage.Paths{BaseDir: "a", DBPath: "a/db"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.paths.Validate())
		})
	}
}

func TestSettings_Set(t *testing.T) {
	orig := storage.PathsUnder("/orig")
	s := storage.NewSettings(orig)

	err := s.Set(storage.Paths{BaseDir: "/only-base"})
	assert.ErrorIs(t, err, storage.ErrRedirectFailure)
	assert.Equal(t, orig, s.Paths())

	next := storage.PathsUnder("/next")
	require.NoError(t, s.Set(next))
	assert.Equal(t, next, s.Paths())
}

func TestSettings_SwapAndReset(t *testing.T) {
	s := storage.NewSettings(storage.Paths{})

	prev, err := s.Swap(storage.PathsUnder("/a"))
	require.NoError(t, err)
	assert.Equal(t, storage.Paths{}, prev)

	_, err = s.Swap(storage.Paths{})
	assert.ErrorIs(t, err, storage.ErrRedirectFailure)
	assert.Equal(t, storage.PathsUnder("/a"), s.Paths())

	s.Reset(prev)
	assert.Equal(t, storage.Paths{}, s.Paths())
}

func TestOpen_InvalidPaths(t *testing.T) {
	_, err := storage.Open(storage.Paths{}, storage.Options{InMemory: true})
	assert.Error(t, err)
}

func TestStore_InMemory(t *testing.T) {
	ctx := context.Background()
	p := storage.PathsUnder(filepath.Join(t.TempDir(), "never-created"))

	store, err := storage.Open(p, storage.Options{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	assert.True(t, store.InMemory())
	require.NoError(t, store.AddWords(ctx, "سلام", "کتاب", ""))
	require.NoError(t, store.SetTags(map[string][]string{"slang": {"b", "a"}}))

	words, err := store.Words(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"سلام", "کتاب"}, words)

	tags, err := store.Tags()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"slang": {"a", "b"}}, tags)

	_, err = os.Stat(p.BaseDir)
	assert.True(t, os.IsNotExist(err), "in-memory store must not touch disk")
}

func TestStore_Persistent(t *testing.T) {
	ctx := context.Background()
	store, iso := openIsolated(t)

	assert.False(t, store.InMemory())
	assert.Equal(t, iso.Paths(), store.Paths())

	t.Run("words", func(t *testing.T) {
		require.NoError(t, store.AddWords(ctx, "b", "a", "a"))
		words, err := store.Words(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, words)
	})

	t.Run("missing tag file is empty", func(t *testing.T) {
		tags, err := store.Tags()
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("tags round trip through the tag file", func(t *testing.T) {
		want := map[string][]string{
			"formal": {"با احترام"},
			"slang":  {"خفن", "دمت گرم"},
		}
		require.NoError(t, store.SetTags(want))

		_, err := os.Stat(iso.Paths().TagPath)
		require.NoError(t, err)

		got, err := store.Tags()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestStore_CancelledContext(t *testing.T) {
	store, err := storage.Open(storage.PathsUnder("/unused"), storage.Options{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.AddWords(ctx, "x"), context.Canceled)
	_, err = store.Words(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_CorruptTagFile(t *testing.T) {
	store, iso := openIsolated(t)
	require.NoError(t, os.WriteFile(iso.Paths().TagPath, []byte("- just\n- a list\n"), 0640))

	_, err := store.Tags()
	assert.Error(t, err)
}
