// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mathfs/mathfs/lib/config"
)

// flagValues holds the parsed command line.
type flagValues struct {
	configPath  string
	mountpoint  string
	socketPath  string
	sequencing  string
	initial     int64
	allowOther  bool
	logLevel    string
	showVersion bool
}

func newFlagSet(values *flagValues) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("mathfsd", pflag.ContinueOnError)
	flagSet.StringVar(&values.configPath, "config", "", "configuration file (default: $MATHFS_CONFIG, if set)")
	flagSet.StringVar(&values.mountpoint, "mountpoint", "", "FUSE mount directory (empty disables the mount)")
	flagSet.StringVar(&values.socketPath, "socket", "", "Unix socket for the mathfs CLI (default: "+config.DefaultSocketPath()+")")
	flagSet.StringVar(&values.sequencing, "sequencing", "", `counter sequencing: "exclusive" or "atomic"`)
	flagSet.Int64Var(&values.initial, "initial", 1, "initial counter value; the first read serves the next prime above it")
	flagSet.BoolVar(&values.allowOther, "allow-other", false, "let other users access the mount (needs user_allow_other)")
	flagSet.StringVar(&values.logLevel, "log-level", "", "debug, info, warn, or error")
	flagSet.BoolVar(&values.showVersion, "version", false, "print version information and exit")
	return flagSet
}

// resolveConfig loads the configuration file, if any, and applies the
// flags that were set on the command line over it.
func resolveConfig(flagSet *pflag.FlagSet, values *flagValues) (*config.Config, error) {
	cfg := config.Default()
	switch {
	case values.configPath != "":
		loaded, err := config.LoadFile(values.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case os.Getenv(config.EnvironmentVariable) != "":
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flagSet.Changed("mountpoint") {
		cfg.Mount.Mountpoint = values.mountpoint
	}
	if flagSet.Changed("socket") {
		cfg.Service.SocketPath = values.socketPath
	}
	if flagSet.Changed("sequencing") {
		cfg.Counter.Sequencing = values.sequencing
	}
	if flagSet.Changed("initial") {
		cfg.Counter.Initial = values.initial
	}
	if flagSet.Changed("allow-other") {
		cfg.Mount.AllowOther = values.allowOther
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = values.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
