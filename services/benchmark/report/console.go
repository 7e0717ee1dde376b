// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report turns benchmark results into console blocks and
// Prometheus gauges.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/textbench/services/benchmark"
)

// Palette shared with the rest of the CLI output.
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7")
	ColorTealPrimary = lipgloss.Color("#20B9B4")
	ColorSlate       = lipgloss.Color("#2C4A54")
)

// Console renders one block per corpus entry:
//
//	=== Benchmark on SmallText ===
//	Text length: 27 characters
//	Class: ContextualCleaner (Cleaned length: 15)
//	  Init  -> Avg: 0.000012s | Min: ... | StdDev: 0.000001s
//	  Clean -> Avg: 0.000003s | Min: ... | StdDev: 0.000000s
//
// Colors are only emitted when w is a terminal.
//
// Thread Safety: Not safe for concurrent use.
type Console struct {
	w      io.Writer
	header lipgloss.Style
	class  lipgloss.Style
	muted  lipgloss.Style
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(ColorTealBright),
		class:  r.NewStyle().Foreground(ColorTealPrimary),
		muted:  r.NewStyle().Foreground(ColorSlate),
	}
}

// Render writes the block for res.
func (c *Console) Render(res benchmark.CorpusResult) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(c.header.Render(fmt.Sprintf("=== Benchmark on %s ===", res.Entry.Name)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Text length: %d characters\n", res.Entry.Length())

	for _, r := range res.Reports {
		b.WriteString(c.class.Render(fmt.Sprintf("Class: %s", r.Subject)))
		b.WriteString(c.muted.Render(fmt.Sprintf(" (%s: %d)", r.SizeLabel, r.ResultSize)))
		b.WriteString("\n")

		width := max(len("Init"), len(r.OpLabel))
		b.WriteString(statsLine("Init", width, r.Init))
		b.WriteString(statsLine(r.OpLabel, width, r.Operation))
	}

	if _, err := io.WriteString(c.w, b.String()); err != nil {
		return fmt.Errorf("write report for %s: %w", res.Entry.Name, err)
	}
	return nil
}

// statsLine formats one summary with every value in seconds to six
// decimals.
func statsLine(label string, width int, s benchmark.Summary) string {
	return fmt.Sprintf("  %-*s -> Avg: %.6fs | Min: %.6fs | Max: %.6fs | Median: %.6fs | StdDev: %.6fs\n",
		width, label, s.Avg, s.Min, s.Max, s.Median, s.Std)
}
