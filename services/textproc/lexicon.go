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
	"context"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var defaultLexiconYAML []byte

// Source is where subjects read their data from. *storage.Store
// satisfies it.
type Source interface {
	Words(ctx context.Context) ([]string, error)
	Tags() (map[string][]string, error)
}

// Sink is what Seed writes to. *storage.Store satisfies it.
type Sink interface {
	AddWords(ctx context.Context, words ...string) error
	SetTags(tags map[string][]string) error
}

// Lexicon is the immutable data the subjects are built from: the words the
// detectors look for and the tagged phrases the cleaner strips.
//
// Thread Safety: Safe for concurrent use; never modified after creation.
type Lexicon struct {
	words []string
	tags  map[string][]string
}

// lexiconFile is the on-disk layout of an embedded lexicon.
type lexiconFile struct {
	Words []string            `yaml:"words"`
	Tags  map[string][]string `yaml:"tags"`
}

// NewLexicon copies words and tags into a Lexicon. Empty entries are
// dropped and words are deduplicated.
func NewLexicon(words []string, tags map[string][]string) *Lexicon {
	seen := make(map[string]struct{}, len(words))
	lex := &Lexicon{tags: make(map[string][]string, len(tags))}
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		lex.words = append(lex.words, w)
	}
	sort.Strings(lex.words)

	for tag, phrases := range tags {
		var kept []string
		for _, p := range phrases {
			if p != "" {
				kept = append(kept, p)
			}
		}
		sort.Strings(kept)
		lex.tags[tag] = kept
	}
	return lex
}

// DefaultLexicon parses the lexicon embedded in the binary.
func DefaultLexicon() (*Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(defaultLexiconYAML, &f); err != nil {
		return nil, fmt.Errorf("decode embedded lexicon: %w", err)
	}
	return NewLexicon(f.Words, f.Tags), nil
}

// LoadLexicon reads a Lexicon from src.
func LoadLexicon(ctx context.Context, src Source) (*Lexicon, error) {
	words, err := src.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	tags, err := src.Tags()
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return NewLexicon(words, tags), nil
}

// Seed writes lex into dst.
func Seed(ctx context.Context, dst Sink, lex *Lexicon) error {
	if err := dst.AddWords(ctx, lex.Words()...); err != nil {
		return fmt.Errorf("seed words: %w", err)
	}
	if err := dst.SetTags(lex.Tags()); err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}
	return nil
}

// Words returns the sorted word list.
func (l *Lexicon) Words() []string {
	return append([]string(nil), l.words...)
}

// Tags returns a copy of the tag map.
func (l *Lexicon) Tags() map[string][]string {
	out := make(map[string][]string, len(l.tags))
	for tag, phrases := range l.tags {
		out[tag] = append([]string(nil), phrases...)
	}
	return out
}

// Phrases returns every tagged phrase, sorted, without duplicates.
func (l *Lexicon) Phrases() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, phrases := range l.tags {
		for _, p := range phrases {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
