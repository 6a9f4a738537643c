// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primefile

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestErrno(t *testing.T) {
	tests := []struct {
		err  error
		want syscall.Errno
	}{
		{nil, 0},
		{ErrInvalidOffset, syscall.EINVAL},
		{fmt.Errorf("%w: 3", ErrInvalidOffset), syscall.EINVAL},
		{ErrInvalidLength, syscall.EINVAL},
		{ErrBufferTooLarge, syscall.EINVAL},
		{ErrCopyFault, syscall.EFAULT},
		{ErrNotFound, syscall.ENOENT},
		{errors.New("something else"), syscall.EIO},
	}
	for _, test := range tests {
		if got := Errno(test.err); got != test.want {
			t.Errorf("Errno(%v) = %v, want %v", test.err, got, test.want)
		}
	}
}

func TestErrorFromMessage(t *testing.T) {
	file, _ := newTestFile(t)

	_, err := file.Write(5, []byte("1"))
	if got := ErrorFromMessage(err.Error()); got != ErrInvalidOffset {
		t.Errorf("ErrorFromMessage(%q) = %v, want ErrInvalidOffset", err.Error(), got)
	}

	_, err = file.Write(0, make([]byte, MaxWriteSize))
	if got := ErrorFromMessage(err.Error()); got != ErrBufferTooLarge {
		t.Errorf("ErrorFromMessage(%q) = %v, want ErrBufferTooLarge", err.Error(), got)
	}

	if got := ErrorFromMessage("connection refused"); got != nil {
		t.Errorf("ErrorFromMessage(unrelated) = %v, want nil", got)
	}
}
