// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package benchmark measures construction cost and steady-state per-call
// cost of text-processing subjects across fixed sample corpora.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                           Runner                                 │
//	│   Suite{Name, Subjects, Corpus, Config}  ──►  one Session/entry  │
//	├──────────────────────────────────────────────────────────────────┤
//	│                           Session                                │
//	│  1. Repeat(New, RepeatInit)        init Sample                   │
//	│  2. New() once                     persistent instance           │
//	│  3. Repeat(Process, RepeatOp)      operation Sample              │
//	│  4. Process() once, untimed        ResultSize                    │
//	│  5. SummarizeSample(init/op)       Report                        │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Usage
//
//	session, err := benchmark.NewSession(benchmark.Config{
//	    RepeatInit: 50,
//	    RepeatOp:   100,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	report, err := session.Run(benchmark.Factory{
//	    Name: "WordDetector",
//	    New:  func() benchmark.Subject { return textproc.NewWordDetector(lexicon) },
//	}, text)
//	fmt.Printf("op median: %.6fs\n", report.Operation.Median)
//
// # Subjects
//
// Any type implementing Subject can be measured. A Factory pairs a subject
// name with its zero-argument constructor; the same Config.Options and the
// same text are handed to every subject compared within a Session.
//
// # Thread Safety
//
// Measurement is sequential by construction. A Session must not be used
// from more than one goroutine at a time, and subject instances are never
// shared between sessions. Summarize and Repeat are stateless.
package benchmark
