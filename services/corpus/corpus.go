// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package corpus provides the fixed sample texts used as benchmark input.
//
// Each suite has its own corpus of three entries, always iterated in the
// order BigText, SmallText, PurePersian. The texts are embedded in the
// binary and never change at runtime.
package corpus

import (
	"embed"
	"fmt"
	"path"
	"unicode/utf8"
)

//go:embed data/*/*.txt
var dataFS embed.FS

// Entry names, in iteration order.
const (
	BigText     = "BigText"
	SmallText   = "SmallText"
	PurePersian = "PurePersian"
)

var entryOrder = []string{BigText, SmallText, PurePersian}

// Entry is one named sample text.
type Entry struct {
	Name string
	Text string
}

// Length returns the text length in characters (runes).
func (e Entry) Length() int {
	return utf8.RuneCountInString(e.Text)
}

// Corpus is an ordered, immutable set of entries.
type Corpus struct {
	name    string
	entries []Entry
}

// New builds a corpus from entries in the given order.
// The entries are copied; later changes to the argument do not leak in.
func New(name string, entries ...Entry) Corpus {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Corpus{name: name, entries: cp}
}

// Name returns the corpus name.
func (c Corpus) Name() string {
	return c.name
}

// Len returns the number of entries.
func (c Corpus) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in iteration order.
func (c Corpus) Entries() []Entry {
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

// Lookup returns the text of the named entry.
func (c Corpus) Lookup(name string) (string, bool) {
	for _, e := range c.entries {
		if e.Name == name {
			return e.Text, true
		}
	}
	return "", false
}

// Detector returns the corpus used by the word detector suite.
func Detector() Corpus { return mustLoad("detector") }

// Cleaner returns the corpus used by the contextual cleaner suite.
func Cleaner() Corpus { return mustLoad("cleaner") }

// Normalizer returns the corpus used by the normalizer suite.
func Normalizer() Corpus { return mustLoad("normalizer") }

// Load reads the embedded corpus for suite.
func Load(suite string) (Corpus, error) {
	entries := make([]Entry, 0, len(entryOrder))
	for _, name := range entryOrder {
		data, err := dataFS.ReadFile(path.Join("data", suite, name+".txt"))
		if err != nil {
			return Corpus{}, fmt.Errorf("load corpus %s/%s: %w", suite, name, err)
		}
		entries = append(entries, Entry{Name: name, Text: string(data)})
	}
	return Corpus{name: suite, entries: entries}, nil
}

// mustLoad panics on a missing embedded file, which is a build defect.
func mustLoad(suite string) Corpus {
	c, err := Load(suite)
	if err != nil {
		panic(err)
	}
	return c
}
