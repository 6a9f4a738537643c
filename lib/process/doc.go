// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the exit path of the mathfs binaries: the one
// place that writes to stderr after main's run function returns,
// when the structured logger may not exist yet.
package process
