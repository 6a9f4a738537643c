// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{
			name:     "plain error",
			err:      errors.New("mount failed"),
			wantCode: 1,
			wantText: "error: mount failed\n",
		},
		{
			name:     "exit error with cause",
			err:      &ExitError{Code: 2, Err: errors.New("unknown command")},
			wantCode: 2,
			wantText: "error: unknown command\n",
		},
		{
			name:     "silent exit error",
			err:      &ExitError{Code: 3},
			wantCode: 3,
			wantText: "",
		},
		{
			name:     "wrapped exit error",
			err:      fmt.Errorf("running: %w", &ExitError{Code: 4, Err: errors.New("daemon unreachable")}),
			wantCode: 4,
			wantText: "error: daemon unreachable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if code := report(&buffer, tt.err); code != tt.wantCode {
				t.Errorf("report() code = %d, want %d", code, tt.wantCode)
			}
			if buffer.String() != tt.wantText {
				t.Errorf("report() wrote %q, want %q", buffer.String(), tt.wantText)
			}
		})
	}
}
