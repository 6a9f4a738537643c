// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primeservice

// Action names of the prime file protocol.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionNext   = "next"
	ActionStatus = "status"
)

// DefaultReadLength is the read length used when a read request omits
// one: a page, as read(2) callers typically request.
const DefaultReadLength = 4096

// ReadRequest is the body of a read action.
type ReadRequest struct {
	Offset int64 `json:"offset"`
	// Length is the maximum number of bytes to return. Nil selects
	// DefaultReadLength; an explicit zero returns no bytes (and still
	// advances the counter at offset zero).
	Length *int `json:"length,omitempty"`
}

// ReadResult is the response to a read action.
type ReadResult struct {
	Data []byte `json:"data"`
}

// WriteRequest is the body of a write action.
type WriteRequest struct {
	Offset int64  `json:"offset"`
	Data   []byte `json:"data"`
}

// WriteResult is the response to a write action.
type WriteResult struct {
	Written int `json:"written"`
}

// NextResult is the response to a next action.
type NextResult struct {
	Value int64 `json:"value"`
}

// StatusResult is the response to a status action.
type StatusResult struct {
	// Name is the name of the served entry.
	Name string `json:"name"`

	// Value is the counter's current value: the last prime served, or
	// the raw value of the last write if no read followed it.
	Value int64 `json:"value"`

	// Sequencing is "exclusive" or "atomic".
	Sequencing string `json:"sequencing"`

	// MaxWriteSize is the smallest payload size a write rejects.
	MaxWriteSize int `json:"max_write_size"`
}
