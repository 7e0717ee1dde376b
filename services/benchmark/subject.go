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
	"fmt"
	"unicode/utf8"
)

// -----------------------------------------------------------------------------
// Subject contract
// -----------------------------------------------------------------------------

// Options is the explicit configuration passed to every operation call.
//
// A Session passes one Options value, unchanged, to every subject it
// measures, so compared subjects never see different flags.
type Options struct {
	// Normalize asks the subject to normalize its input first.
	Normalize bool `json:"normalize" yaml:"normalize"`

	// Contextual asks the subject to apply contextual cleanup first.
	Contextual bool `json:"contextual" yaml:"contextual"`
}

// Result is the value returned by a subject's operation.
type Result interface {
	// Size reports the regression signal for the result: a character count
	// for text results or an element count for collections.
	Size() int
}

// Subject is a text-processing capability under measurement.
//
// Implementations are used from a single goroutine at a time.
type Subject interface {
	// Process runs the subject's primary operation on text.
	Process(text string, opts Options) Result
}

// Factory pairs a subject name with its zero-argument constructor.
type Factory struct {
	// Name identifies the subject in reports, e.g. "WordDetector".
	Name string

	// SizeLabel describes Result.Size in reports, e.g. "Detected words".
	// Default: "Result size"
	SizeLabel string

	// OpLabel names the timed operation in reports, e.g. "Detect".
	// Default: "Operation"
	OpLabel string

	// New constructs a fresh subject. Called once per init repetition
	// and once more for the persistent instance.
	New func() Subject
}

// Validate checks that the factory satisfies the subject contract.
//
// Outputs:
//   - error: ErrContractViolation if Name is empty or New is nil.
func (f Factory) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: subject name must not be empty", ErrContractViolation)
	}
	if f.New == nil {
		return fmt.Errorf("%w: subject %q has no zero-argument constructor", ErrContractViolation, f.Name)
	}
	return nil
}

func (f Factory) sizeLabel() string {
	if f.SizeLabel == "" {
		return "Result size"
	}
	return f.SizeLabel
}

func (f Factory) opLabel() string {
	if f.OpLabel == "" {
		return "Operation"
	}
	return f.OpLabel
}

// -----------------------------------------------------------------------------
// Result kinds
// -----------------------------------------------------------------------------

// Text is a text result; its size is the number of characters (runes).
type Text string

// Size returns the rune count.
func (t Text) Size() int {
	return utf8.RuneCountInString(string(t))
}

// Words is a list of detected elements; its size is the element count.
type Words []string

// Size returns the number of elements.
func (w Words) Size() int {
	return len(w)
}

// resultSize treats a missing result as size 0.
func resultSize(r Result) int {
	if r == nil {
		return 0
	}
	return r.Size()
}
