// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package primeservice serves the prime file over the mathfs socket
// protocol, so the file can be used without a FUSE mount.
//
// [Register] installs four actions on a [service.SocketServer]:
//
//   - read {offset, length}: the bytes a read(2) of the prime file at
//     that offset would return. A read at offset zero advances the
//     counter. Length defaults to [DefaultReadLength].
//   - write {offset, data}: a write(2) of data at offset.
//   - next: an offset-zero read, returned as an integer.
//   - status: the counter value and sequencing mode, without
//     advancing the counter.
//
// Request and result types carry json tags: they are CBOR on the
// socket and JSON in CLI --json output.
//
// Failures from the prime file cross the socket as text. [Client]
// maps them back to the primefile sentinels, so
// errors.Is(err, primefile.ErrInvalidOffset) holds on both sides.
package primeservice
