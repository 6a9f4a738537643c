// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package prime is the primality oracle behind the prime file.
//
// [IsPrime] answers exactly the question "does p have a divisor n with
// 2 <= n <= p/2", but it never walks that whole range. Values below
// 2^32 use trial division up to the square root, which reaches the
// same verdict because every divisor above the root has a partner
// below it. Larger values go to [math/big.Int.ProbablyPrime] with
// zero Miller-Rabin rounds, whose Baillie-PSW test is exact for every
// int64. An offset-zero read therefore finishes in bounded time even
// after a write of a nineteen-digit value. There is no sieving and no
// memoization.
//
// Values below two are never prime. A literal reading of the p/2 loop
// bound would let zero, one, and every negative number through, which
// would make the counter stall on a non-prime after a write of a small
// or negative value.
//
// This package depends on no other mathfs packages.
package prime
