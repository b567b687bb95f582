// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv enables debug logging when set to any non-empty value.
const DebugEnv = "ISOJS_DEBUG"

// Logger is the process-wide logger. It starts as slog.Default so packages can
// log before InitLogger runs.
var Logger = slog.Default()

// InitLogger initializes the global logger with appropriate log level.
// Set ISOJS_DEBUG=1 to enable debug logging. Logs go to stderr so that
// evaluation results on stdout stay machine readable.
func InitLogger() {
	Logger = NewLogger(os.Stderr, os.Getenv(DebugEnv) != "")
}

// NewLogger builds a text logger without timestamps writing to w.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo // Default: only show Info, Warn, Error
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		// Remove timestamp for cleaner CLI output
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	return slog.New(handler)
}

// Debug logs a debug message (only shown when ISOJS_DEBUG is set)
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
