// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AleutianAI/textbench/pkg/logging"
	"github.com/AleutianAI/textbench/services/benchmark"
	"github.com/AleutianAI/textbench/services/benchmark/report"
	"github.com/AleutianAI/textbench/services/storage"
	"github.com/AleutianAI/textbench/services/textproc"
)

// outputMode selects what run writes to stdout.
type outputMode int

const (
	outputConsole outputMode = iota
	outputMetrics
)

// app runs benchmark suites for one command invocation.
type app struct {
	out    io.Writer
	logger *logging.Logger
}

// runPaths returns the paths the in-memory store is opened with. Nothing
// is written to them, so the temp directory stands in when the home
// directory cannot be resolved.
func runPaths() storage.Paths {
	if paths, err := storage.DefaultPaths(); err == nil {
		return paths
	}
	return storage.PathsUnder(filepath.Join(os.TempDir(), storage.DirName))
}

// run measures the named suites in order.
//
// Description:
//
//	The store is opened in memory and seeded with the embedded lexicon, so
//	a run never reads or writes the user's real data directory. Subjects
//	are then built from what the store returns, as they would be in
//	production.
func (a *app) run(suites []string, mode outputMode) error {
	ctx := context.Background()

	store, err := storage.Open(runPaths(), storage.Options{
		InMemory: true,
		Logger:   a.logger.Slog(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("close store", "error", err)
		}
	}()

	lex, err := loadLexicon(ctx, store)
	if err != nil {
		return err
	}

	subjects := benchmark.NewRegistry()
	if err := textproc.Register(subjects, lex); err != nil {
		return err
	}

	metrics := prometheus.NewRegistry()
	recorder := report.NewRecorder(metrics)
	console := report.NewConsole(a.out)
	runner := benchmark.NewRunner(subjects, a.logger)

	for _, name := range suites {
		suite, err := textproc.NewSuite(name)
		if err != nil {
			return err
		}
		err = runner.Run(suite, func(res benchmark.CorpusResult) error {
			recorder.RecordAll(res)
			if mode == outputConsole {
				return console.Render(res)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if mode == outputMetrics {
		return report.WriteText(a.out, metrics)
	}
	return nil
}

// loadLexicon seeds store with the embedded lexicon and reads it back.
func loadLexicon(ctx context.Context, store *storage.Store) (*textproc.Lexicon, error) {
	seed, err := textproc.DefaultLexicon()
	if err != nil {
		return nil, err
	}
	if err := textproc.Seed(ctx, store, seed); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}
	return textproc.LoadLexicon(ctx, store)
}
