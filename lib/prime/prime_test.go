// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package prime

import (
	"math"
	"testing"
)

func TestIsPrimeBelowTwo(t *testing.T) {
	for _, p := range []int64{1, 0, -1, -2, -5, -97, math.MinInt64} {
		if IsPrime(p) {
			t.Errorf("IsPrime(%d) = true, want false", p)
		}
	}
}

func TestIsPrimeSmallValues(t *testing.T) {
	primes := map[int64]bool{
		2: true, 3: true, 5: true, 7: true, 11: true, 13: true,
		17: true, 19: true, 23: true, 29: true, 31: true, 37: true,
		41: true, 43: true, 47: true,
	}
	for p := int64(2); p < 50; p++ {
		if got := IsPrime(p); got != primes[p] {
			t.Errorf("IsPrime(%d) = %v, want %v", p, got, primes[p])
		}
	}
}

func TestIsPrimeLargerValues(t *testing.T) {
	tests := []struct {
		value int64
		want  bool
	}{
		{97, true},
		{101, true},
		{7919, true},
		{7921, false}, // 89 * 89
		{10007, true},
		{10001, false}, // 73 * 137
		{65536, false},
	}
	for _, test := range tests {
		if got := IsPrime(test.value); got != test.want {
			t.Errorf("IsPrime(%d) = %v, want %v", test.value, got, test.want)
		}
	}
}

func TestIsPrimeNearInt64Range(t *testing.T) {
	tests := []struct {
		value int64
		want  bool
	}{
		{1<<32 - 5, true}, // 4294967291, largest prime below 2^32
		{1 << 32, false},
		{1<<32 + 15, true},           // 4294967311
		{4294967297, false},          // 641 * 6700417
		{1<<61 - 1, true},            // Mersenne prime
		{1000000000000000001, false}, // divisible by 101
		{1000000000000000002, false},
		{1000000000000000003, true},
		{math.MaxInt64, false}, // 7^2 * 73 * 127 * 337 * 92737 * 649657
	}
	for _, test := range tests {
		if got := IsPrime(test.value); got != test.want {
			t.Errorf("IsPrime(%d) = %v, want %v", test.value, got, test.want)
		}
	}
}

func TestIsPrimeAgreesWithHalfBound(t *testing.T) {
	halfBound := func(p int64) bool {
		if p < 2 {
			return false
		}
		for n := int64(2); n < p/2+1; n++ {
			if p%n == 0 {
				return false
			}
		}
		return true
	}
	for p := int64(-10); p < 5000; p++ {
		if got, want := IsPrime(p), halfBound(p); got != want {
			t.Fatalf("IsPrime(%d) = %v, want %v", p, got, want)
		}
	}
}
