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

	"golang.org/x/text/unicode/norm"

	"github.com/AleutianAI/textbench/services/benchmark"
)

const tatweel = '\u0640'

// letterMap folds Arabic letter variants onto their Persian forms.
var letterMap = map[rune]rune{
	'\u0643': '\u06a9', // arabic kaf
	'\u06aa': '\u06a9', // swash kaf
	'\u064a': '\u06cc', // arabic yeh
	'\u0649': '\u06cc', // alef maksura
	'\u0629': '\u0647', // teh marbuta
	'\u0671': '\u0627', // alef wasla
	'\u0673': '\u0627', // alef with wavy hamza below
}

// WordNormalizer rewrites Persian text into a canonical form.
//
// Normalization applies, in order: NFKC (folds presentation forms such as
// U+FE8E onto base letters), Arabic-to-Persian letter folding, removal of
// tatweel and short-vowel diacritics, and collapsing of repeated spaces.
//
// Thread Safety: Safe for concurrent use.
type WordNormalizer struct {
	letters map[rune]rune
	spaces  *regexp.Regexp
}

// NewWordNormalizer creates a WordNormalizer.
func NewWordNormalizer() *WordNormalizer {
	letters := make(map[rune]rune, len(letterMap))
	for from, to := range letterMap {
		letters[from] = to
	}
	return &WordNormalizer{
		letters: letters,
		spaces:  regexp.MustCompile(`[ \t]{2,}`),
	}
}

// Normalize returns the canonical form of text.
func (n *WordNormalizer) Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.Map(n.mapRune, text)
	return n.spaces.ReplaceAllString(text, " ")
}

// Process normalizes text. Options are ignored.
func (n *WordNormalizer) Process(text string, _ benchmark.Options) benchmark.Result {
	return benchmark.Text(n.Normalize(text))
}

func (n *WordNormalizer) mapRune(r rune) rune {
	if r == tatweel || isDiacritic(r) {
		return -1
	}
	if to, ok := n.letters[r]; ok {
		return to
	}
	return r
}

// isDiacritic reports whether r is an Arabic short vowel or related mark
// (fathatan through sukun).
func isDiacritic(r rune) bool {
	return r >= '\u064b' && r <= '\u0652'
}
