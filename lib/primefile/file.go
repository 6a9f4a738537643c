// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primefile

import (
	"fmt"
	"sync"

	"github.com/mathfs/mathfs/lib/counter"
	"github.com/mathfs/mathfs/lib/prime"
)

// Name is the name of the single entry every surface exposes.
const Name = "prime"

// MaxWriteSize is the size of the scratch buffer a write is copied
// into: enough for the decimal text of an integer plus a terminator.
// Payloads of MaxWriteSize bytes or more are rejected.
const MaxWriteSize = 20

// File serves reads and writes of the prime file against a shared
// counter. A File holds no per-caller state: every open of the prime
// file, on every surface, uses the same File.
type File struct {
	counter    counter.Counter
	sequencing Sequencing

	// mu serializes whole read and write sequences under
	// SequenceExclusive. Unused under SequenceAtomic.
	mu sync.Mutex
}

// Option configures a File.
type Option func(*File)

// WithSequencing selects how concurrent read and write sequences are
// serialized. The default is SequenceExclusive.
func WithSequencing(sequencing Sequencing) Option {
	return func(f *File) {
		f.sequencing = sequencing
	}
}

// New returns a File backed by c. The counter is used as is; callers
// create it once per process with counter.NewAtomic(counter.Initial).
func New(c counter.Counter, options ...Option) *File {
	f := &File{counter: c}
	for _, option := range options {
		option(f)
	}
	return f
}

// Sequencing returns the sequencing mode of f.
func (f *File) Sequencing() Sequencing {
	return f.sequencing
}

// Value returns the counter's current value without advancing it.
// After an offset-zero read this is the prime that read served.
func (f *File) Value() int64 {
	return f.counter.Get()
}

// Read returns up to maxLen bytes of the prime file starting at
// offset. A read at offset zero advances the counter to the next
// prime first. A read past the end of the serialized value returns
// no bytes and no error.
func (f *File) Read(offset int64, maxLen int) ([]byte, error) {
	if maxLen < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, maxLen)
	}
	encoded, err := f.encodedAt(offset)
	if err != nil {
		return nil, err
	}
	return window(encoded, offset, maxLen), nil
}

// ReadInto is Read with the destination supplied by the caller: it
// copies up to len(dest) bytes and returns the number copied.
func (f *File) ReadInto(dest []byte, offset int64) (int, error) {
	encoded, err := f.encodedAt(offset)
	if err != nil {
		return 0, err
	}
	return copy(dest, window(encoded, offset, len(dest))), nil
}

// Write sets the counter to the decimal integer at the start of data
// and returns len(data). Writes must start at offset zero and be
// shorter than MaxWriteSize; anything else is rejected without
// touching the counter. Input with no leading integer sets the
// counter to 0.
func (f *File) Write(offset int64, data []byte) (int, error) {
	if err := checkWrite(offset, len(data)); err != nil {
		return 0, err
	}
	f.store(ParseDecimal(data))
	return len(data), nil
}

func checkWrite(offset int64, count int) error {
	if offset != 0 {
		return fmt.Errorf("%w: writes must start at offset 0, got %d", ErrInvalidOffset, offset)
	}
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, count)
	}
	if count >= MaxWriteSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrBufferTooLarge, count, MaxWriteSize-1)
	}
	return nil
}

// encodedAt returns the serialized value a read at offset serves,
// advancing the counter for offset zero.
func (f *File) encodedAt(offset int64) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	unlock := f.lock()
	defer unlock()

	var value int64
	if offset > 0 {
		// The counter still holds the value the offset-zero read of
		// this pass served.
		value = f.counter.Get()
	} else {
		value = f.advance()
	}
	return Serialize(value), nil
}

// advance increments the counter until it holds a prime and returns
// that prime. A candidate below 1 jumps straight to 1: no prime lies
// below 2, and stepping up from a large negative value one at a time
// would not finish. The jump is a compare-and-swap so that under
// SequenceAtomic it never overwrites a concurrent write or another
// reader's progress.
func (f *File) advance() int64 {
	for {
		value := f.counter.IncrementAndGet()
		if prime.IsPrime(value) {
			return value
		}
		if value < 1 {
			f.counter.CompareAndSwap(value, 1)
		}
	}
}

func (f *File) store(value int64) {
	unlock := f.lock()
	defer unlock()
	f.counter.Set(value)
}

func (f *File) lock() func() {
	if f.sequencing == SequenceAtomic {
		return func() {}
	}
	f.mu.Lock()
	return f.mu.Unlock
}

// window returns the part of encoded a read at offset of at most
// maxLen bytes covers.
func window(encoded []byte, offset int64, maxLen int) []byte {
	if offset > int64(len(encoded)) {
		return nil
	}
	remaining := encoded[offset:]
	if maxLen < len(remaining) {
		remaining = remaining[:maxLen]
	}
	return remaining
}
