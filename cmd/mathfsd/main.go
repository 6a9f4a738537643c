// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// mathfsd serves the prime file. It mounts a FUSE filesystem whose
// only entry, prime, yields the next prime number on every read, and
// serves the same file over a Unix socket for the mathfs CLI. Both
// surfaces share one counter.
//
// Configuration comes from --config (or MATHFS_CONFIG); flags given
// on the command line override the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/mathfs/mathfs/lib/counter"
	"github.com/mathfs/mathfs/lib/primefile"
	primefuse "github.com/mathfs/mathfs/lib/primefile/fuse"
	"github.com/mathfs/mathfs/lib/primeservice"
	"github.com/mathfs/mathfs/lib/process"
	"github.com/mathfs/mathfs/lib/service"
	"github.com/mathfs/mathfs/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	var values flagValues
	flagSet := newFlagSet(&values)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &process.ExitError{Code: 2, Err: err}
	}
	if flagSet.NArg() > 0 {
		return &process.ExitError{Code: 2, Err: fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))}
	}

	if values.showVersion {
		version.Print(os.Stdout, "mathfsd")
		return nil
	}

	cfg, err := resolveConfig(flagSet, &values)
	if err != nil {
		return err
	}

	// Validate has already accepted both names.
	level, _ := service.ParseLevel(cfg.Log.Level)
	sequencing, _ := primefile.ParseSequencing(cfg.Counter.Sequencing)
	logger := service.NewLogger(level)

	if err := cfg.EnsurePaths(); err != nil {
		return err
	}

	// One counter for the life of the process, shared by every mount
	// and the socket.
	file := primefile.New(
		counter.NewAtomic(cfg.Counter.Initial),
		primefile.WithSequencing(sequencing),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Mount.Mountpoint != "" {
		if err := primefuse.Available(); err != nil {
			return err
		}
		fuseServer, err := primefuse.Mount(primefuse.Options{
			Mountpoint: cfg.Mount.Mountpoint,
			File:       file,
			FsName:     cfg.Mount.FsName,
			AllowOther: cfg.Mount.AllowOther,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("mounting FUSE filesystem: %w", err)
		}
		// Deferred before the socket drains, so it runs after: the
		// mount goes away last.
		defer func() {
			if err := fuseServer.Unmount(); err != nil {
				logger.Error("failed to unmount FUSE filesystem", "error", err)
			} else {
				logger.Info("FUSE filesystem unmounted", "mountpoint", cfg.Mount.Mountpoint)
			}
		}()
	}

	socketDone := make(chan error, 1)
	if cfg.Service.SocketPath != "" {
		server := service.NewSocketServer(cfg.Service.SocketPath, logger)
		primeservice.Register(server, file, logger)
		go func() {
			socketDone <- server.Serve(ctx)
		}()
	} else {
		socketDone <- nil
	}

	logger.Info("mathfsd running",
		"version", version.Info(),
		"mountpoint", cfg.Mount.Mountpoint,
		"socket", cfg.Service.SocketPath,
		"initial", cfg.Counter.Initial,
		"sequencing", sequencing.String(),
	)

	<-ctx.Done()
	logger.Info("shutting down", "value", file.Value())

	if err := <-socketDone; err != nil {
		logger.Error("socket listener error", "error", err)
		return err
	}
	return nil
}
