// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package textproc holds the Persian text-processing subjects measured by
// the benchmark suites, and the suite definitions that measure them.
//
// The subjects are deliberately small. They exist to give the harness
// realistic construction and per-call costs, not to be a complete
// normalization or detection library.
package textproc

import (
	"fmt"

	"github.com/AleutianAI/textbench/services/benchmark"
	"github.com/AleutianAI/textbench/services/corpus"
)

// Subject names as they appear in reports.
const (
	WordDetectorName      = "WordDetector"
	WordDetectorRegexName = "WordDetectorRegex"
	ContextualCleanerName = "ContextualCleaner"
	WordNormalizerName    = "WordNormalizer"
)

// Compile-time checks that every subject satisfies benchmark.Subject.
var (
	_ benchmark.Subject = (*WordDetector)(nil)
	_ benchmark.Subject = (*WordDetectorRegex)(nil)
	_ benchmark.Subject = (*ContextualCleaner)(nil)
	_ benchmark.Subject = (*WordNormalizer)(nil)
)

// Factories returns a factory for every subject, each constructing from
// lex.
func Factories(lex *Lexicon) []benchmark.Factory {
	return []benchmark.Factory{
		{
			Name:      WordDetectorName,
			SizeLabel: "Detected words",
			OpLabel:   "Detect",
			New:       func() benchmark.Subject { return NewWordDetector(lex) },
		},
		{
			Name:      WordDetectorRegexName,
			SizeLabel: "Detected words",
			OpLabel:   "Detect",
			New:       func() benchmark.Subject { return NewWordDetectorRegex(lex) },
		},
		{
			Name:      ContextualCleanerName,
			SizeLabel: "Cleaned length",
			OpLabel:   "Clean",
			New:       func() benchmark.Subject { return NewContextualCleaner(lex) },
		},
		{
			Name:      WordNormalizerName,
			SizeLabel: "Normalized length",
			OpLabel:   "Normalize",
			New:       func() benchmark.Subject { return NewWordNormalizer() },
		},
	}
}

// Register adds every subject built from lex to reg.
func Register(reg *benchmark.Registry, lex *Lexicon) error {
	for _, f := range Factories(lex) {
		if err := reg.Register(f); err != nil {
			return fmt.Errorf("register %s: %w", f.Name, err)
		}
	}
	return nil
}

// Suite names.
const (
	DetectorSuite   = "detector"
	CleanerSuite    = "cleaner"
	NormalizerSuite = "normalizer"
)

// SuiteNames lists the suites in the order "all" runs them.
func SuiteNames() []string {
	return []string{DetectorSuite, NormalizerSuite, CleanerSuite}
}

// NewSuite returns the named suite with its subjects, corpus and repeat
// counts.
//
// Outputs:
//   - benchmark.Suite: The suite definition.
//   - error: benchmark.ErrNotFound for an unknown name.
func NewSuite(name string) (benchmark.Suite, error) {
	var s benchmark.Suite
	switch name {
	case DetectorSuite:
		s = benchmark.Suite{
			Subjects: []string{WordDetectorName, WordDetectorRegexName},
			Config: benchmark.Config{
				RepeatInit: 50,
				RepeatOp:   50,
				Options:    benchmark.Options{Normalize: false, Contextual: false},
			},
		}
	case CleanerSuite:
		s = benchmark.Suite{
			Subjects: []string{ContextualCleanerName},
			Config:   benchmark.Config{RepeatInit: 50, RepeatOp: 100},
		}
	case NormalizerSuite:
		s = benchmark.Suite{
			Subjects: []string{WordNormalizerName},
			Config:   benchmark.Config{RepeatInit: 50, RepeatOp: 100},
		}
	default:
		return benchmark.Suite{}, fmt.Errorf("%w: suite %q", benchmark.ErrNotFound, name)
	}

	c, err := corpus.Load(name)
	if err != nil {
		return benchmark.Suite{}, err
	}
	s.Name = name
	s.Corpus = c
	return s, nil
}
