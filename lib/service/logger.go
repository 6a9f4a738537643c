// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates the daemon logger: JSON records on stderr at the
// given level. The logger is also installed as the slog default.
func NewLogger(level slog.Level) *slog.Logger {
	logger := newJSONLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

func newJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel parses a level name ("debug", "info", "warn", "error").
// The empty string selects info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
