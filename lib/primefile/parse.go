// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primefile

import (
	"bytes"
	"strconv"
)

// ParseDecimal parses the leading decimal integer of data the way
// strtol does in base 10: leading whitespace is skipped, one optional
// sign is accepted, and parsing stops at the first non-digit. Input
// without any digits parses as 0. Values outside the int64 range
// saturate at the nearest bound.
func ParseDecimal(data []byte) int64 {
	text := bytes.TrimLeft(data, " \t\n\v\f\r")

	negative := false
	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		negative = text[0] == '-'
		text = text[1:]
	}

	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	digits := string(text[:end])
	if negative {
		digits = "-" + digits
	}

	// On overflow ParseInt reports ErrRange and returns the saturated
	// bound, which is the value we want.
	value, _ := strconv.ParseInt(digits, 10, 64)
	return value
}

// Serialize encodes value in the prime file's wire format: ASCII
// decimal digits followed by a single newline.
func Serialize(value int64) []byte {
	return append(strconv.AppendInt(make([]byte, 0, MaxWriteSize), value, 10), '\n')
}
