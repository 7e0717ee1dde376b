// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package benchmark

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/textbench/pkg/logging"
	"github.com/AleutianAI/textbench/services/corpus"
)

// Suite is one benchmark script: a set of subjects measured on every entry
// of one corpus with one Config.
type Suite struct {
	// Name identifies the suite, e.g. "detector".
	Name string

	// Subjects are registry names, measured in this order.
	Subjects []string

	// Corpus supplies the input texts.
	Corpus corpus.Corpus

	// Config is shared by every subject and every entry.
	Config Config
}

// CorpusResult groups the reports for one corpus entry.
type CorpusResult struct {
	Suite   string
	Entry   corpus.Entry
	Reports []Report
}

// Runner executes suites against a subject registry.
type Runner struct {
	registry *Registry
	logger   *logging.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(registry *Registry, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{registry: registry, logger: logger}
}

// Run measures every subject of s on every corpus entry, in order, and
// hands each entry's reports to emit as soon as they are complete.
//
// Outputs:
//   - error: The first error from subject resolution, measurement or emit.
//     Entries after the failing one are not measured.
func (r *Runner) Run(s Suite, emit func(CorpusResult) error) error {
	if len(s.Subjects) == 0 {
		return fmt.Errorf("%w: suite %q has no subjects", ErrInvalidArgument, s.Name)
	}
	if s.Corpus.Len() == 0 {
		return fmt.Errorf("%w: suite %q has an empty corpus", ErrInvalidArgument, s.Name)
	}
	if emit == nil {
		return errors.New("emit callback must not be nil")
	}

	factories, err := r.registry.Resolve(s.Subjects...)
	if err != nil {
		return fmt.Errorf("suite %s: %w", s.Name, err)
	}

	log := r.logger.With("suite", s.Name)
	session, err := NewSession(s.Config, log)
	if err != nil {
		return fmt.Errorf("suite %s: %w", s.Name, err)
	}

	log.Info("suite started", "subjects", len(factories), "entries", s.Corpus.Len())
	for _, entry := range s.Corpus.Entries() {
		reports, err := session.RunAll(factories, entry)
		if err != nil {
			return fmt.Errorf("suite %s: %w", s.Name, err)
		}
		for i := range reports {
			reports[i].Suite = s.Name
		}
		if err := emit(CorpusResult{Suite: s.Name, Entry: entry, Reports: reports}); err != nil {
			return fmt.Errorf("suite %s: emit %s: %w", s.Name, entry.Name, err)
		}
	}
	log.Info("suite finished")
	return nil
}
