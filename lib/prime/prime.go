// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package prime

import "math/big"

// trialLimit is the largest value IsPrime settles by trial division.
// Its square root bounds the loop at 65536 divisions.
const trialLimit = 1 << 32

// IsPrime reports whether p has no divisor n with 2 <= n <= p/2.
// Values below 2 are not prime.
func IsPrime(p int64) bool {
	if p < 2 {
		return false
	}
	if p >= trialLimit {
		// Exact for every input below 2^64.
		return big.NewInt(p).ProbablyPrime(0)
	}
	// A divisor above the square root pairs with one below it, so
	// stopping at n*n > p gives the same answer as stopping at p/2.
	for n := int64(2); n <= p/n; n++ {
		if p%n == 0 {
			return false
		}
	}
	return true
}
