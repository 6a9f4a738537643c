// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package primefile implements the read and write semantics of the
// prime file, the single entry exposed by mathfs.
//
// A [File] couples a host surface's byte offsets to mutations of a
// shared [counter.Counter]:
//
//   - A read at offset zero increments the counter until it lands on
//     a prime, then serves that prime as decimal digits followed by a
//     newline.
//   - A read at a nonzero offset does not touch the counter. It
//     re-serializes the current value and returns the bytes past the
//     offset, so a reader that consumes the file in several chunks
//     sees one consistent value.
//   - A write at offset zero parses a decimal integer and overwrites
//     the counter with it. The value need not be prime; the next
//     offset-zero read advances from it.
//
// # Sequencing
//
// Each counter primitive is atomic, but a read is a sequence of them
// (get, increment until prime). [SequenceExclusive], the default,
// holds one mutex across the whole sequence of every read and write,
// so concurrent offset-zero readers receive distinct consecutive
// primes. [SequenceAtomic] relies on the primitives alone: concurrent
// readers can interleave their increment loops and a concurrent write
// can change the value a nonzero-offset read re-serializes. Concurrent
// readers may then see the same prime twice or skip one.
//
// # Errors
//
// Failures are reported with the sentinels [ErrInvalidOffset],
// [ErrInvalidLength], [ErrBufferTooLarge], [ErrCopyFault] and
// [ErrNotFound]. [Errno] maps them to the errno a filesystem surface
// returns. Surfaces report [ErrCopyFault] when they cannot move bytes
// to or from their caller. For a read that happens after the counter
// has been advanced, and the advance is not rolled back.
//
// The package never logs. Logging belongs to the surfaces.
package primefile
