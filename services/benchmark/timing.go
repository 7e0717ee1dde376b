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
	"time"
)

// Sample is an ordered sequence of per-invocation elapsed durations.
type Sample []time.Duration

// Seconds converts the sample to float64 seconds, preserving order.
func (s Sample) Seconds() []float64 {
	out := make([]float64, len(s))
	for i, d := range s {
		out[i] = d.Seconds()
	}
	return out
}

// Repeat runs op exactly count times, sequentially, timing each call on its
// own.
//
// Description:
//
//	Every invocation gets its own start/stop pair; calls are never batched,
//	so tail latency stays visible in Max and in the spread. Durations come
//	from the monotonic clock and are never negative.
//
//	Repeat does not isolate op's side effects between iterations. An op that
//	accumulates state measures cumulative cost; pass an idempotent op unless
//	that is what you want.
//
// Inputs:
//   - op: Operation to time. Must not be nil.
//   - count: Number of invocations. Must be >= 1.
//
// Outputs:
//   - Sample: Exactly count durations, in invocation order.
//   - error: ErrInvalidArgument if count < 1 or op is nil.
//
// Thread Safety: Stateless. Runs op on the calling goroutine only.
func Repeat(op func(), count int) (Sample, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: repeat count must be positive, got %d", ErrInvalidArgument, count)
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operation must not be nil", ErrInvalidArgument)
	}

	sample := make(Sample, count)
	for i := range sample {
		start := time.Now()
		op()
		sample[i] = time.Since(start)
	}
	return sample, nil
}
