// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuse mounts the prime file as a FUSE filesystem.
//
// The mount is a single directory holding exactly one regular file,
// prime, owned by the mounting user with mode 0644. Every other name
// is absent (ENOENT). There is no way to create, remove, or rename
// entries.
//
// # Read Path
//
// The file is opened with FOPEN_DIRECT_IO so the kernel page cache
// never answers a read: every read(2) reaches [primefile.File], and
// a read at offset zero advances the shared counter. The reported
// size is zero, as for procfs files; readers such as cat(1) read
// until an empty result rather than trusting the size.
//
// # Write Path
//
// Writes are passed to [primefile.File.Write] unbuffered. Shell
// redirection (echo 10 > prime) opens with O_TRUNC; the resulting
// truncation is accepted as a no-op so the write that follows reaches
// offset zero. Writes at other offsets and payloads of
// [primefile.MaxWriteSize] bytes or more fail with EINVAL.
//
// # Lifecycle
//
// [Mount] does not create or reset the counter. The caller owns the
// File, creates it once per process, and may mount it repeatedly;
// every mount serves the same sequence.
package fuse
