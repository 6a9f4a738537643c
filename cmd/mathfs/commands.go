// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/mathfs/mathfs/lib/primeservice"
)

// readOutput is the --json form of a read.
type readOutput struct {
	Offset int64  `json:"offset"`
	Data   string `json:"data"`
}

func runRead(ctx context.Context, args []string, stdout io.Writer) error {
	var conn connection
	var offset int64
	var length int
	flagSet := pflag.NewFlagSet("mathfs read", pflag.ContinueOnError)
	conn.addFlags(flagSet)
	flagSet.Int64Var(&offset, "offset", 0, "read offset; 0 advances the counter, >0 re-reads the last value")
	flagSet.IntVar(&length, "length", primeservice.DefaultReadLength, "maximum bytes for a single read")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return usageError("read takes no arguments, got %q", flagSet.Arg(0))
	}

	logger := conn.logger("read")
	client := conn.client()

	// Without --offset or --length, read the whole file the way cat
	// does: one value, one advance.
	var data []byte
	var err error
	if flagSet.Changed("offset") || flagSet.Changed("length") {
		logger.Debug("reading", "offset", offset, "length", length)
		data, err = client.Read(ctx, offset, length)
	} else {
		logger.Debug("reading whole file")
		data, err = client.ReadAll(ctx, length)
	}
	if err != nil {
		return conn.diagnose(err)
	}

	if done, err := conn.emitJSON(stdout, readOutput{Offset: offset, Data: string(data)}); done {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

// writeOutput is the --json form of a write.
type writeOutput struct {
	Written int   `json:"written"`
	Value   int64 `json:"value"`
}

func runWrite(ctx context.Context, args []string, stdout io.Writer) error {
	var conn connection
	var offset int64
	var raw bool
	flagSet := pflag.NewFlagSet("mathfs write", pflag.ContinueOnError)
	conn.addFlags(flagSet)
	flagSet.Int64Var(&offset, "offset", 0, "write offset; anything but 0 is rejected by the daemon")
	flagSet.BoolVar(&raw, "raw", false, "send VALUE exactly, without the trailing newline echo(1) adds")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return usageError("write takes exactly one VALUE argument")
	}

	payload := flagSet.Arg(0)
	if !raw {
		payload += "\n"
	}

	logger := conn.logger("write")
	client := conn.client()
	logger.Debug("writing", "offset", offset, "bytes", len(payload))

	written, err := client.Write(ctx, offset, []byte(payload))
	if err != nil {
		return conn.diagnose(err)
	}
	status, err := client.Status(ctx)
	if err != nil {
		return conn.diagnose(err)
	}

	if done, err := conn.emitJSON(stdout, writeOutput{Written: written, Value: status.Value}); done {
		return err
	}
	_, err = fmt.Fprintf(stdout, "counter set to %d (%d bytes written)\n", status.Value, written)
	return err
}

func runNext(ctx context.Context, args []string, stdout io.Writer) error {
	var conn connection
	var count int
	flagSet := pflag.NewFlagSet("mathfs next", pflag.ContinueOnError)
	conn.addFlags(flagSet)
	flagSet.IntVarP(&count, "count", "n", 1, "number of primes to serve")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return usageError("next takes no arguments, got %q", flagSet.Arg(0))
	}
	if count < 1 {
		return usageError("--count must be at least 1, got %d", count)
	}

	client := conn.client()
	values := make([]int64, 0, count)
	for range count {
		value, err := client.Next(ctx)
		if err != nil {
			return conn.diagnose(err)
		}
		values = append(values, value)
	}

	if done, err := conn.emitJSON(stdout, values); done {
		return err
	}
	for _, value := range values {
		if _, err := fmt.Fprintln(stdout, value); err != nil {
			return err
		}
	}
	return nil
}

func runStatus(ctx context.Context, args []string, stdout io.Writer) error {
	var conn connection
	flagSet := pflag.NewFlagSet("mathfs status", pflag.ContinueOnError)
	conn.addFlags(flagSet)
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}

	status, err := conn.client().Status(ctx)
	if err != nil {
		return conn.diagnose(err)
	}

	if done, err := conn.emitJSON(stdout, status); done {
		return err
	}
	_, err = fmt.Fprintf(stdout, "file:           %s\nvalue:          %d\nsequencing:     %s\nmax write size: %d\n",
		status.Name, status.Value, status.Sequencing, status.MaxWriteSize)
	return err
}
