// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primefile

import (
	"errors"
	"strings"
	"syscall"
)

var (
	// ErrInvalidOffset is returned for a write at a nonzero offset and
	// for a negative read offset. The counter is left unchanged.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidLength is returned for a negative read length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrBufferTooLarge is returned for a write payload of
	// MaxWriteSize bytes or more. The payload is rejected, not
	// truncated, and the counter is left unchanged.
	ErrBufferTooLarge = errors.New("write exceeds buffer size")

	// ErrCopyFault is returned when bytes could not be moved to or
	// from the caller.
	ErrCopyFault = errors.New("copy fault")

	// ErrNotFound is returned by surfaces for any entry other than
	// the prime file.
	ErrNotFound = errors.New("no such entry")
)

// sentinels lists every error this package returns, in the order
// ErrorFromMessage tries them.
var sentinels = []error{
	ErrInvalidOffset,
	ErrInvalidLength,
	ErrBufferTooLarge,
	ErrCopyFault,
	ErrNotFound,
}

// Errno maps an error from this package to the errno a filesystem
// surface should return. Nil maps to 0 and unknown errors to EIO.
func Errno(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidOffset),
		errors.Is(err, ErrInvalidLength),
		errors.Is(err, ErrBufferTooLarge):
		return syscall.EINVAL
	case errors.Is(err, ErrCopyFault):
		return syscall.EFAULT
	case errors.Is(err, ErrNotFound):
		return syscall.ENOENT
	default:
		return syscall.EIO
	}
}

// ErrorFromMessage recovers a sentinel from an error message that
// crossed a process boundary as text. Returns nil if the message does
// not start with a known sentinel.
func ErrorFromMessage(message string) error {
	for _, sentinel := range sentinels {
		if strings.HasPrefix(message, sentinel.Error()) {
			return sentinel
		}
	}
	return nil
}
