// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/mathfs/mathfs/lib/config"
	"github.com/mathfs/mathfs/lib/primeservice"
	"github.com/mathfs/mathfs/lib/process"
)

// connection holds the flags every command shares.
type connection struct {
	socketPath string
	outputJSON bool
	verbose    bool
}

func (c *connection) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.socketPath, "socket", defaultSocketPath(), "mathfsd socket")
	flagSet.BoolVar(&c.outputJSON, "json", false, "output as JSON")
	flagSet.BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")
}

// defaultSocketPath is the socket named by the MATHFS_CONFIG file,
// when that loads, and the daemon's built-in default otherwise.
func defaultSocketPath() string {
	if os.Getenv(config.EnvironmentVariable) != "" {
		if cfg, err := config.Load(); err == nil && cfg.Service.SocketPath != "" {
			return cfg.Service.SocketPath
		}
	}
	return config.DefaultSocketPath()
}

func (c *connection) client() *primeservice.Client {
	return primeservice.NewClient(c.socketPath)
}

func (c *connection) logger(name string) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return newCommandLogger(level).With("command", name, "socket", c.socketPath)
}

// emitJSON writes value as indented JSON when --json is set and
// reports whether it did.
func (c *connection) emitJSON(w io.Writer, value any) (bool, error) {
	if !c.outputJSON {
		return false, nil
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return true, encoder.Encode(value)
}

// diagnose adds a hint to errors that mean the daemon is not there.
func (c *connection) diagnose(err error) error {
	if errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w (is mathfsd running with --socket %s?)", err, c.socketPath)
	}
	return err
}

// parseFlags parses args into flagSet. Help is not an error; other
// parse failures exit with status 2.
func parseFlags(flagSet *pflag.FlagSet, args []string) (help bool, err error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, &process.ExitError{Code: 2, Err: err}
	}
	return false, nil
}

func usageError(format string, args ...any) error {
	return &process.ExitError{Code: 2, Err: fmt.Errorf(format, args...)}
}
