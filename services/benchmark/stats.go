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
	"math"
	"sort"
)

// Summary is the five-number description of a sample, in seconds.
//
// Std is the population standard deviation (divisor N).
type Summary struct {
	Avg    float64 `json:"avg" yaml:"avg"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Median float64 `json:"median" yaml:"median"`
	Std    float64 `json:"std" yaml:"std"`
}

// Summarize computes mean, min, max, median and population standard
// deviation of values.
//
// Description:
//
//	Mean and variance are accumulated in a single pass (Welford), which keeps
//	a constant input exact: Avg equals the constant and Std is 0. The median
//	of an even-length input is the mean of the two middle values of the
//	sorted input. values itself is never reordered.
//
// Inputs:
//   - values: Must not be empty.
//
// Outputs:
//   - Summary: All five fields populated.
//   - error: ErrInvalidArgument if values is empty.
//
// Thread Safety: Pure function, safe for concurrent use.
//
// Example:
//
//	s, _ := Summarize([]float64{1, 2, 3, 4})
//	// s.Avg == 2.5, s.Median == 2.5, s.Std == math.Sqrt(1.25)
func Summarize(values []float64) (Summary, error) {
	n := len(values)
	if n == 0 {
		return Summary{}, fmt.Errorf("%w: cannot summarize an empty sample", ErrInvalidArgument)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var mean, m2 float64
	for i, x := range values {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	return Summary{
		Avg:    mean,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median(sorted),
		Std:    math.Sqrt(m2 / float64(n)),
	}, nil
}

// SummarizeSample summarizes a timing sample in seconds.
func SummarizeSample(s Sample) (Summary, error) {
	return Summarize(s.Seconds())
}

// median expects a sorted, non-empty slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
