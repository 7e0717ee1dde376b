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
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AleutianAI/textbench/services/benchmark"
)

// ContextualCleaner strips tagged phrases (proper names and similar
// context-bound expressions) from text so that they do not reach word
// detection.
//
// Thread Safety: Safe for concurrent use.
type ContextualCleaner struct {
	// phrases is nil when the lexicon has no tagged phrases.
	phrases *regexp.Regexp
	spaces  *regexp.Regexp
}

// NewContextualCleaner compiles the tagged phrases of lex into one pattern.
// Longer phrases are tried first so that a phrase containing another is
// removed whole.
func NewContextualCleaner(lex *Lexicon) *ContextualCleaner {
	c := &ContextualCleaner{spaces: regexp.MustCompile(`[ \t]{2,}`)}
	if pattern := alternation(lex.Phrases()); pattern != "" {
		c.phrases = regexp.MustCompile(pattern)
	}
	return c
}

// Clean removes every tagged phrase and collapses the whitespace left
// behind.
func (c *ContextualCleaner) Clean(text string) string {
	if c.phrases == nil {
		return text
	}
	text = c.phrases.ReplaceAllString(text, "")
	return strings.TrimSpace(c.spaces.ReplaceAllString(text, " "))
}

// Process cleans text. Options are ignored.
func (c *ContextualCleaner) Process(text string, _ benchmark.Options) benchmark.Result {
	return benchmark.Text(c.Clean(text))
}

// alternation builds a pattern matching any of terms literally, longest
// first. It returns "" for no terms.
func alternation(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	sorted := append([]string(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})

	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}
