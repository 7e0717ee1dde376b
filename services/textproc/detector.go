// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/AleutianAI/textbench/services/benchmark"
)

// zwnj joins parts of one Persian word, e.g. "می‌خواندند".
const zwnj = '\u200c'

// isWordRune reports whether r belongs inside a word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || r == zwnj
}

// prepare applies the optional pre-passes shared by both detectors.
// Contextual cleaning runs before normalization.
func prepare(text string, opts benchmark.Options, n *WordNormalizer, c *ContextualCleaner) string {
	if opts.Contextual {
		text = c.Clean(text)
	}
	if opts.Normalize {
		text = n.Normalize(text)
	}
	return text
}

// -----------------------------------------------------------------------------
// WordDetector
// -----------------------------------------------------------------------------

// WordDetector finds lexicon words by splitting text into tokens and
// looking each one up in a set.
//
// Only single-token entries can match; a lexicon entry containing a space
// is never detected. WordDetectorRegex handles those.
//
// Thread Safety: Safe for concurrent use.
type WordDetector struct {
	words      map[string]struct{}
	normalizer *WordNormalizer
	cleaner    *ContextualCleaner
}

// NewWordDetector builds the lookup set from lex.
func NewWordDetector(lex *Lexicon) *WordDetector {
	words := make(map[string]struct{}, len(lex.words))
	for _, w := range lex.words {
		words[w] = struct{}{}
	}
	return &WordDetector{
		words:      words,
		normalizer: NewWordNormalizer(),
		cleaner:    NewContextualCleaner(lex),
	}
}

// DetectWords returns every lexicon word in text, in order of appearance.
// Repeated occurrences are all returned.
func (d *WordDetector) DetectWords(text string, opts benchmark.Options) []string {
	text = prepare(text, opts, d.normalizer, d.cleaner)

	var found []string
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) }) {
		if _, ok := d.words[tok]; ok {
			found = append(found, tok)
		}
	}
	return found
}

// Process detects words. The result size is the number of detections.
func (d *WordDetector) Process(text string, opts benchmark.Options) benchmark.Result {
	return benchmark.Words(d.DetectWords(text, opts))
}

// -----------------------------------------------------------------------------
// WordDetectorRegex
// -----------------------------------------------------------------------------

// WordDetectorRegex finds lexicon words with one compiled alternation.
//
// Description:
//
//	Entries are tried longest first, so multi-word entries such as
//	"ژانر شناسی" are found. RE2 has no Unicode-aware \b, so word boundaries
//	are checked on the runes around each match instead.
//
// Thread Safety: Safe for concurrent use.
type WordDetectorRegex struct {
	// pattern is nil when the lexicon is empty.
	pattern    *regexp.Regexp
	normalizer *WordNormalizer
	cleaner    *ContextualCleaner
}

// NewWordDetectorRegex compiles the lexicon of lex.
func NewWordDetectorRegex(lex *Lexicon) *WordDetectorRegex {
	d := &WordDetectorRegex{
		normalizer: NewWordNormalizer(),
		cleaner:    NewContextualCleaner(lex),
	}
	if pattern := alternation(lex.words); pattern != "" {
		d.pattern = regexp.MustCompile(pattern)
	}
	return d
}

// DetectWords returns every lexicon entry in text, in order of appearance.
func (d *WordDetectorRegex) DetectWords(text string, opts benchmark.Options) []string {
	if d.pattern == nil {
		return nil
	}
	text = prepare(text, opts, d.normalizer, d.cleaner)

	var found []string
	for _, loc := range d.pattern.FindAllStringIndex(text, -1) {
		if atBoundary(text, loc[0], loc[1]) {
			found = append(found, text[loc[0]:loc[1]])
		}
	}
	return found
}

// Process detects words. The result size is the number of detections.
func (d *WordDetectorRegex) Process(text string, opts benchmark.Options) benchmark.Result {
	return benchmark.Words(d.DetectWords(text, opts))
}

// atBoundary reports whether text[start:end] is not glued to a word rune
// on either side.
func atBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}
