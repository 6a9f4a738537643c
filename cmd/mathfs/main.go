// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// mathfs is the command-line client for mathfsd. It reads and writes
// the prime file over the daemon's socket, so it works whether or not
// the filesystem is mounted.
//
//	mathfs next               # serve the next prime
//	mathfs write 96           # set the counter; the next read serves 97
//	mathfs read --offset 1    # the rest of the last value served
//	mathfs watch              # stream primes in a terminal UI
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mathfs/mathfs/lib/process"
	"github.com/mathfs/mathfs/lib/version"
)

// command runs one subcommand with its arguments.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout io.Writer) error
}

var commands = []command{
	{name: "read", summary: "read the prime file (advances the counter at offset 0)", run: runRead},
	{name: "write", summary: "set the counter to VALUE", run: runWrite},
	{name: "next", summary: "print the next prime", run: runNext},
	{name: "status", summary: "show the counter without advancing it", run: runStatus},
	{name: "watch", summary: "stream primes in a terminal UI", run: runWatch},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		process.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return &process.ExitError{Code: 2}
	}

	switch args[0] {
	case "--version", "version":
		version.Print(stdout, "mathfs")
		return nil
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	}

	for _, candidate := range commands {
		if candidate.name == args[0] {
			return candidate.run(ctx, args[1:], stdout)
		}
	}
	printUsage(os.Stderr)
	return &process.ExitError{Code: 2, Err: fmt.Errorf("unknown command %q", args[0])}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "mathfs: client for the mathfsd prime file.\n\nUsage:\n  mathfs <command> [flags]\n\nCommands:\n")
	for _, candidate := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", candidate.name, candidate.summary)
	}
	fmt.Fprintf(w, "\nRun 'mathfs <command> --help' for command flags.\n")
}
