// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information for the mathfs
// binaries. Values are injected at build time with -ldflags:
//
//	go build -ldflags "-X github.com/mathfs/mathfs/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version
