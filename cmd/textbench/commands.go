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
	"github.com/spf13/cobra"

	"github.com/AleutianAI/textbench/pkg/logging"
	"github.com/AleutianAI/textbench/services/textproc"
)

// newRootCmd builds the command tree. Each suite gets its own subcommand;
// the bare command runs all of them.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "textbench",
		Short:        "Benchmark the Persian text-processing subjects",
		Long:         "textbench times construction and steady-state operation calls of each subject over fixed sample texts and prints one report block per text.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).run(textproc.SuiteNames(), outputConsole)
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run every suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).run(textproc.SuiteNames(), outputConsole)
		},
	}

	detectorCmd := suiteCmd(textproc.DetectorSuite, "Compare WordDetector and WordDetectorRegex")
	normalizerCmd := suiteCmd(textproc.NormalizerSuite, "Benchmark WordNormalizer")
	cleanerCmd := suiteCmd(textproc.CleanerSuite, "Benchmark ContextualCleaner")

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "Run every suite and print the results as Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).run(textproc.SuiteNames(), outputMetrics)
		},
	}

	rootCmd.AddCommand(allCmd, detectorCmd, normalizerCmd, cleanerCmd, metricsCmd)
	return rootCmd
}

func suiteCmd(suite, short string) *cobra.Command {
	return &cobra.Command{
		Use:   suite,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).run([]string{suite}, outputConsole)
		},
	}
}

// newApp wires the command's writers into an app. Diagnostics go to
// stderr at warn level so stdout carries only the report.
func newApp(cmd *cobra.Command) *app {
	return &app{
		out: cmd.OutOrStdout(),
		logger: logging.New(logging.Config{
			Level:   logging.LevelWarn,
			Service: "textbench",
			Writer:  cmd.ErrOrStderr(),
		}),
	}
}
