// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/AleutianAI/textbench/services/benchmark"
)

// Phase label values.
const (
	PhaseInit      = "init"
	PhaseOperation = "operation"
)

// =============================================================================
// Prometheus Metrics for Benchmark Reports
// =============================================================================

// Recorder publishes reports as Prometheus gauges.
//
// Description:
//
//	Each report sets one duration gauge per (phase, stat) and one result
//	size gauge. Recording the same (suite, corpus, subject) again
//	overwrites the previous values.
//
// Thread Safety: Safe for concurrent use.
type Recorder struct {
	// duration holds summary statistics in seconds.
	// Labels: suite, corpus, subject, phase (init, operation),
	// stat (avg, min, max, median, std)
	duration *prometheus.GaugeVec

	// resultSize holds the size signal of the untimed call.
	// Labels: suite, corpus, subject
	resultSize *prometheus.GaugeVec

	// reports counts recorded reports.
	// Labels: suite, subject
	reports *prometheus.CounterVec
}

// NewRecorder registers the benchmark metrics with reg.
// It panics if they are already registered there, like promauto.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "textbench",
			Subsystem: "benchmark",
			Name:      "duration_seconds",
			Help:      "Benchmark summary statistic in seconds",
		}, []string{"suite", "corpus", "subject", "phase", "stat"}),
		resultSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "textbench",
			Subsystem: "benchmark",
			Name:      "result_size",
			Help:      "Size of the result of the untimed operation call",
		}, []string{"suite", "corpus", "subject"}),
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "textbench",
			Subsystem: "benchmark",
			Name:      "reports_total",
			Help:      "Total benchmark reports recorded",
		}, []string{"suite", "subject"}),
	}
}

// Record publishes r.
func (m *Recorder) Record(r benchmark.Report) {
	m.setSummary(r, PhaseInit, r.Init)
	m.setSummary(r, PhaseOperation, r.Operation)
	m.resultSize.WithLabelValues(r.Suite, r.Corpus, r.Subject).Set(float64(r.ResultSize))
	m.reports.WithLabelValues(r.Suite, r.Subject).Inc()
}

// RecordAll publishes every report of res.
func (m *Recorder) RecordAll(res benchmark.CorpusResult) {
	for _, r := range res.Reports {
		m.Record(r)
	}
}

func (m *Recorder) setSummary(r benchmark.Report, phase string, s benchmark.Summary) {
	stats := []struct {
		name  string
		value float64
	}{
		{"avg", s.Avg},
		{"min", s.Min},
		{"max", s.Max},
		{"median", s.Median},
		{"std", s.Std},
	}
	for _, st := range stats {
		m.duration.WithLabelValues(r.Suite, r.Corpus, r.Subject, phase, st.name).Set(st.value)
	}
}

// WriteText writes everything g gathers in the Prometheus text exposition
// format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
