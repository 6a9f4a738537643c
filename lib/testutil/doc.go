// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for mathfs packages.
//
// [SocketDir] creates a short temporary directory in /tmp for Unix
// domain sockets. Socket paths are limited to 108 bytes (sun_path in
// sockaddr_un), and t.TempDir() paths can exceed that under nested
// test runners.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests waiting on goroutines fail instead of hanging.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no mathfs-internal dependencies.
package testutil
