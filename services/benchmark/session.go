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
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AleutianAI/textbench/pkg/logging"
	"github.com/AleutianAI/textbench/services/corpus"
)

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// configValidate checks Config struct tags.
var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the fixed parameters of a Session.
type Config struct {
	// RepeatInit is the number of timed constructions.
	// Default: 50
	RepeatInit int `validate:"min=1" yaml:"repeat_init"`

	// RepeatOp is the number of timed operation calls.
	// Default: 100
	RepeatOp int `validate:"min=1" yaml:"repeat_op"`

	// Options is passed unchanged to every operation call.
	Options Options `yaml:"options"`
}

// DefaultConfig returns 50 constructions and 100 operation calls with
// zero options.
func DefaultConfig() Config {
	return Config{
		RepeatInit: 50,
		RepeatOp:   100,
	}
}

// Validate checks that both repeat counts are positive.
//
// Outputs:
//   - error: ErrInvalidArgument naming the first offending field.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s must be >= %s, got %v", ErrInvalidArgument, fe.Field(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
}

// -----------------------------------------------------------------------------
// Report
// -----------------------------------------------------------------------------

// Report is the outcome of measuring one subject on one text.
// It is created once by Session.Run and not modified afterwards.
type Report struct {
	// RunID correlates the report with its log lines.
	RunID string `json:"run_id"`

	// Suite names the suite the report belongs to, if any.
	Suite string `json:"suite,omitempty"`

	// Corpus names the corpus entry that was measured, if any.
	Corpus string `json:"corpus,omitempty"`

	// TextLength is the rune count of the measured input.
	TextLength int `json:"text_length"`

	// Subject is the factory name.
	Subject string `json:"subject"`

	// SizeLabel describes ResultSize, e.g. "Detected words".
	SizeLabel string `json:"size_label"`

	// OpLabel names the timed operation, e.g. "Detect".
	OpLabel string `json:"op_label"`

	// Init summarizes the timed constructions.
	Init Summary `json:"init"`

	// Operation summarizes the timed operation calls.
	Operation Summary `json:"operation"`

	// ResultSize is the size of the one untimed result.
	ResultSize int `json:"result_size"`
}

// -----------------------------------------------------------------------------
// Session
// -----------------------------------------------------------------------------

// Session runs the five-step measurement protocol with a fixed Config.
//
// Thread Safety: Not safe for concurrent use. Measurement is sequential
// by design so that timings are not disturbed by scheduler contention.
type Session struct {
	config Config
	logger *logging.Logger
}

// NewSession validates cfg and creates a Session.
//
// Inputs:
//   - cfg: Repeat counts and operation options.
//   - logger: Receives debug traces. nil discards them.
//
// Outputs:
//   - *Session: Ready to run.
//   - error: ErrInvalidArgument if cfg is invalid.
func NewSession(cfg Config, logger *logging.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{config: cfg, logger: logger}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.config
}

// Run measures one subject on text.
//
// Description:
//
//  1. Times f.New RepeatInit times; each repetition builds a fresh
//     instance that is then discarded.
//  2. Builds exactly one persistent instance.
//  3. Times Process RepeatOp times on that instance, with text and the
//     session Options. No construction happens inside this loop.
//  4. Calls Process once more, untimed, and records the result size.
//  5. Summarizes both samples and assembles the Report.
//
// Any error aborts the run; no partial report is returned.
//
// Inputs:
//   - f: Subject factory. Must satisfy the subject contract.
//   - text: Input passed to every operation call.
//
// Outputs:
//   - Report: The assembled report.
//   - error: ErrContractViolation if f is invalid or New returns nil.
func (s *Session) Run(f Factory, text string) (Report, error) {
	if err := f.Validate(); err != nil {
		return Report{}, err
	}

	runID := uuid.NewString()
	log := s.logger.With("run_id", runID, "subject", f.Name)
	opts := s.config.Options

	log.Debug("init timing started", "repeat", s.config.RepeatInit)
	var built Subject
	initSample, err := Repeat(func() {
		built = f.New()
	}, s.config.RepeatInit)
	if err != nil {
		return Report{}, fmt.Errorf("time %s construction: %w", f.Name, err)
	}
	if built == nil {
		return Report{}, fmt.Errorf("%w: constructor of %q returned nil", ErrContractViolation, f.Name)
	}

	instance := f.New()
	if instance == nil {
		return Report{}, fmt.Errorf("%w: constructor of %q returned nil", ErrContractViolation, f.Name)
	}

	log.Debug("operation timing started", "repeat", s.config.RepeatOp)
	opSample, err := Repeat(func() {
		instance.Process(text, opts)
	}, s.config.RepeatOp)
	if err != nil {
		return Report{}, fmt.Errorf("time %s operation: %w", f.Name, err)
	}

	size := resultSize(instance.Process(text, opts))

	initSummary, err := SummarizeSample(initSample)
	if err != nil {
		return Report{}, fmt.Errorf("summarize %s construction: %w", f.Name, err)
	}
	opSummary, err := SummarizeSample(opSample)
	if err != nil {
		return Report{}, fmt.Errorf("summarize %s operation: %w", f.Name, err)
	}

	log.Debug("session finished",
		"init_median_s", initSummary.Median,
		"op_median_s", opSummary.Median,
		"result_size", size,
	)

	return Report{
		RunID:      runID,
		TextLength: utf8.RuneCountInString(text),
		Subject:    f.Name,
		SizeLabel:  f.sizeLabel(),
		OpLabel:    f.opLabel(),
		Init:       initSummary,
		Operation:  opSummary,
		ResultSize: size,
	}, nil
}

// RunAll measures every subject on the same entry, in order.
//
// All subjects receive the same text and the same Options value, so their
// reports are directly comparable.
func (s *Session) RunAll(subjects []Factory, entry corpus.Entry) ([]Report, error) {
	reports := make([]Report, 0, len(subjects))
	for _, f := range subjects {
		r, err := s.Run(f, entry.Text)
		if err != nil {
			return nil, fmt.Errorf("corpus %s: %w", entry.Name, err)
		}
		r.Corpus = entry.Name
		reports = append(reports, r)
	}
	return reports, nil
}
