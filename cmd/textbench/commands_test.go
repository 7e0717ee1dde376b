// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/textbench/services/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCleanerCommand(t *testing.T) {
	out, err := execute(t, "cleaner")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "=== Benchmark on"))
	big := strings.Index(out, "=== Benchmark on BigText ===")
	small := strings.Index(out, "=== Benchmark on SmallText ===")
	pure := strings.Index(out, "=== Benchmark on PurePersian ===")
	assert.True(t, big >= 0 && big < small && small < pure, "blocks out of order")

	assert.Contains(t, out, "Text length: 27 characters")
	assert.Contains(t, out, "Class: ContextualCleaner (Cleaned length: 15)")
	assert.Contains(t, out, "  Clean -> Avg: ")
}

func TestDetectorCommand(t *testing.T) {
	out, err := execute(t, "detector")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "Class: WordDetector (Detected words:"))
	assert.Equal(t, 3, strings.Count(out, "Class: WordDetectorRegex (Detected words:"))
	assert.Contains(t, out, "Class: WordDetectorRegex (Detected words: 18)")
	assert.Contains(t, out, "  Detect -> Avg: ")
}

func TestNormalizerCommand(t *testing.T) {
	out, err := execute(t, "normalizer")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "Class: WordNormalizer (Normalized length:"))
	assert.Contains(t, out, "  Normalize -> Avg: ")
}

func TestMetricsCommand(t *testing.T) {
	out, err := execute(t, "metrics")
	require.NoError(t, err)

	assert.NotContains(t, out, "=== Benchmark on")
	assert.Contains(t, out, `textbench_benchmark_result_size{corpus="SmallText",subject="ContextualCleaner",suite="cleaner"} 15`)
	assert.Contains(t, out, `suite="detector"`)
	assert.Contains(t, out, `suite="normalizer"`)
}

func TestUnknownArguments(t *testing.T) {
	_, err := execute(t, "bogus")
	assert.Error(t, err)

	_, err = execute(t, "cleaner", "extra")
	assert.Error(t, err)
}

func TestWithoutHomeDirectory(t *testing.T) {
	t.Setenv("HOME", "")

	assert.Equal(t, storage.PathsUnder(filepath.Join(os.TempDir(), storage.DirName)), runPaths())

	out, err := execute(t, "cleaner")
	require.NoError(t, err)
	assert.Contains(t, out, "Class: ContextualCleaner (Cleaned length: 15)")
}
