// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage is the persistence layer the text subjects load their
// data from.
//
// Two stores live under one base directory:
//
//	<BaseDir>/
//	  textbench.db/   primary data store (BadgerDB): the word lexicon
//	  TAG             tag store (YAML): tag -> phrases
//
// Where they live is decided by an explicit Paths value passed to Open;
// nothing in this package reads or writes process-wide path variables.
// For benchmarks the store is opened in memory so that no run writes to
// disk.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"gopkg.in/yaml.v3"
)

// wordPrefix namespaces lexicon keys in the primary store.
var wordPrefix = []byte("word/")

// Options controls how Open prepares the stores.
type Options struct {
	// InMemory keeps both stores in memory. Paths are still validated but
	// nothing is created on disk.
	InMemory bool

	// SyncWrites enables synchronous BadgerDB writes.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. nil disables it.
	Logger *slog.Logger
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store gives access to the lexicon and tag stores.
//
// Thread Safety: Safe for concurrent use.
type Store struct {
	db       *badger.DB
	paths    Paths
	inMemory bool

	// tagMu guards the tag file, or memTags in memory mode.
	tagMu   sync.Mutex
	memTags map[string][]string
}

// Open opens the stores located by p.
//
// Description:
//
//	In persistent mode the base directory is created if needed and BadgerDB
//	is opened at p.DBPath. The tag file is created lazily on first write.
//
// Inputs:
//   - p: Store locations. All three fields are required.
//   - opts: Open options.
//
// Outputs:
//   - *Store: The opened stores. Caller must Close.
//   - error: Non-nil if p is incomplete or the database cannot be opened.
func Open(p Paths, opts Options) (*Store, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(p.BaseDir, 0750); err != nil {
			return nil, fmt.Errorf("create base directory %s: %w", p.BaseDir, err)
		}
		bopts = badger.DefaultOptions(p.DBPath)
	}
	bopts = bopts.WithSyncWrites(opts.SyncWrites).WithNumVersionsToKeep(1)
	if opts.Logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: opts.Logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	s := &Store{db: db, paths: p, inMemory: opts.InMemory}
	if opts.InMemory {
		s.memTags = make(map[string][]string)
	}
	return s, nil
}

// Load opens the stores at the paths currently held by settings.
func Load(settings *Settings, opts Options) (*Store, error) {
	return Open(settings.Paths(), opts)
}

// Paths returns the locations the store was opened with.
func (s *Store) Paths() Paths {
	return s.paths
}

// InMemory reports whether the store keeps nothing on disk.
func (s *Store) InMemory() bool {
	return s.inMemory
}

// Close closes the primary store.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddWords inserts words into the lexicon. Empty strings are skipped and
// duplicates are harmless.
func (s *Store) AddWords(ctx context.Context, words ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, w := range words {
		if w == "" {
			continue
		}
		if err := wb.Set(wordKey(w), nil); err != nil {
			return fmt.Errorf("stage word %q: %w", w, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush words: %w", err)
	}
	return nil
}

// Words returns the lexicon in key order.
func (s *Store) Words(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	var words []string
	err := s.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.PrefetchValues = false
		itOpts.Prefix = wordPrefix
		it := txn.NewIterator(itOpts)
		defer it.Close()

		for it.Seek(wordPrefix); it.ValidForPrefix(wordPrefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			words = append(words, string(bytes.TrimPrefix(key, wordPrefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return words, nil
}

// SetTags replaces the whole tag store.
func (s *Store) SetTags(tags map[string][]string) error {
	s.tagMu.Lock()
	defer s.tagMu.Unlock()

	if s.inMemory {
		s.memTags = copyTags(tags)
		return nil
	}

	data, err := yaml.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	if err := os.WriteFile(s.paths.TagPath, data, 0640); err != nil {
		return fmt.Errorf("write tag store %s: %w", s.paths.TagPath, err)
	}
	return nil
}

// Tags returns the tag store. A missing tag file yields an empty map.
// Phrases under each tag are returned sorted.
func (s *Store) Tags() (map[string][]string, error) {
	s.tagMu.Lock()
	defer s.tagMu.Unlock()

	if s.inMemory {
		return copyTags(s.memTags), nil
	}

	data, err := os.ReadFile(s.paths.TagPath)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tag store %s: %w", s.paths.TagPath, err)
	}

	tags := make(map[string][]string)
	if err := yaml.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("decode tag store %s: %w", s.paths.TagPath, err)
	}
	for _, phrases := range tags {
		sort.Strings(phrases)
	}
	return tags, nil
}

func wordKey(w string) []byte {
	key := make([]byte, 0, len(wordPrefix)+len(w))
	key = append(key, wordPrefix...)
	return append(key, w...)
}

func copyTags(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for tag, phrases := range in {
		cp := append([]string(nil), phrases...)
		sort.Strings(cp)
		out[tag] = cp
	}
	return out
}
