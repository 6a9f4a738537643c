// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package counter holds the single mutable integer behind the prime
// file.
//
// A [Counter] exposes four primitives, each atomic with respect to
// concurrent callers: [Counter.IncrementAndGet], [Counter.Set],
// [Counter.CompareAndSwap] and [Counter.Get]. Nothing here makes a
// sequence of primitives atomic; that is the caller's concern (see the
// primefile package's sequencing modes).
//
// The counter is created once per process with the value [Initial]
// and handed to every surface that serves the prime file. Remounting
// a surface reuses the same counter and does not reset it.
package counter

import "sync/atomic"

// Initial is the value a freshly created counter starts at. The first
// offset-zero read advances it to 2.
const Initial int64 = 1

// Counter is the shared counter state. Implementations must make each
// method atomic on its own.
type Counter interface {
	// IncrementAndGet adds one and returns the new value. Concurrent
	// increments are never lost.
	IncrementAndGet() int64

	// Set overwrites the value unconditionally.
	Set(value int64)

	// CompareAndSwap stores next only if the counter still holds
	// expected, and reports whether it did.
	CompareAndSwap(expected, next int64) bool

	// Get returns the current value without mutating it.
	Get() int64
}

// Atomic is a lock-free Counter backed by sync/atomic. The zero value
// holds 0; use NewAtomic to start at Initial.
type Atomic struct {
	value atomic.Int64
}

var _ Counter = (*Atomic)(nil)

// NewAtomic returns an Atomic counter holding initial.
func NewAtomic(initial int64) *Atomic {
	counter := &Atomic{}
	counter.value.Store(initial)
	return counter
}

func (a *Atomic) IncrementAndGet() int64 { return a.value.Add(1) }

func (a *Atomic) Set(value int64) { a.value.Store(value) }

func (a *Atomic) CompareAndSwap(expected, next int64) bool {
	return a.value.CompareAndSwap(expected, next)
}

func (a *Atomic) Get() int64 { return a.value.Load() }
