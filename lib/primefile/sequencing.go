// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primefile

import "fmt"

// Sequencing selects how a File serializes the composite counter
// sequences of concurrent reads and writes.
type Sequencing int

const (
	// SequenceExclusive holds one mutex across each whole read or
	// write sequence.
	SequenceExclusive Sequencing = iota

	// SequenceAtomic uses only the counter's atomic primitives.
	// Concurrent offset-zero reads can interleave their increment
	// loops, and a write racing a nonzero-offset read changes the
	// value that read re-serializes. The jump from a negative
	// candidate to 1 only lands if no other caller has moved the
	// counter since that candidate was drawn.
	SequenceAtomic
)

func (s Sequencing) String() string {
	switch s {
	case SequenceExclusive:
		return "exclusive"
	case SequenceAtomic:
		return "atomic"
	default:
		return fmt.Sprintf("Sequencing(%d)", int(s))
	}
}

// ParseSequencing parses the configuration name of a sequencing mode.
// The empty string selects SequenceExclusive.
func ParseSequencing(name string) (Sequencing, error) {
	switch name {
	case "", "exclusive":
		return SequenceExclusive, nil
	case "atomic":
		return SequenceAtomic, nil
	default:
		return 0, fmt.Errorf("unknown sequencing mode %q (want \"exclusive\" or \"atomic\")", name)
	}
}
