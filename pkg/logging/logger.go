// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for textbench components.
//
// The logger is a thin layer over log/slog. Diagnostics go to stderr by
// default so that benchmark report blocks written to stdout stay clean and
// can be piped or diffed.
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("suite started", "suite", "detector")
//	logger.Warn("teardown failed", "dir", dir, "error", err)
//
// # Thread Safety
//
// Logger is safe for concurrent use. The underlying slog.Logger is
// thread-safe and the wrapper holds no mutable state after New.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity levels.
//
// Levels are ordered by severity: Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug is for per-phase benchmark tracing.
	LevelDebug Level = iota

	// LevelInfo is for suite and session lifecycle events.
	LevelInfo

	// LevelWarn is for recoverable problems such as a failed fixture teardown.
	LevelWarn

	// LevelError is for failures that abort a run.
	LevelError
)

// String returns the uppercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds logger configuration.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// Service is attached to every record as the "service" attribute.
	// Default: "" (no service attribute)
	Service string

	// JSON switches from the text handler to the JSON handler.
	JSON bool

	// Quiet discards all output.
	Quiet bool

	// Writer receives log output. Default: os.Stderr.
	Writer io.Writer
}

// =============================================================================
// Logger
// =============================================================================

// Logger provides structured logging on top of slog.
//
// Use With() to derive a logger carrying extra attributes:
//
//	sessionLog := logger.With("run_id", runID, "subject", name)
//	sessionLog.Debug("init timing started")
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a Logger with the given configuration.
//
// Inputs:
//   - config: Logger configuration. The zero value logs Info and above
//     as text to stderr.
//
// Outputs:
//   - *Logger: Ready to use. Never nil.
func New(config Config) *Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	if config.Quiet {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	return &Logger{
		slog:   slog.New(handler),
		config: config,
	}
}

// Default returns an Info-level text logger on stderr for service "textbench".
func Default() *Logger {
	return New(Config{
		Level:   LevelInfo,
		Service: "textbench",
	})
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(Config{Quiet: true})
}

// Debug logs a message at Debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs a message at Info level.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs a message at Error level.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// With returns a new Logger with additional attributes.
// The parent logger is not modified.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// Slog returns the underlying slog.Logger, e.g. for adapters such as the
// BadgerDB logger bridge.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Level returns the configured minimum level.
func (l *Logger) Level() Level {
	return l.config.Level
}
