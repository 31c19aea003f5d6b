/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package bitsx provides power-of-two helpers shared by the arena and its
// backing-region providers.
package bitsx

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// IsPow2 reports whether n is a positive power of two.
func IsPow2[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// Pow2 returns 2^k as a T. k must be smaller than the bit size of T.
func Pow2[T constraints.Integer](k int) T {
	return T(1) << k
}

// Log2 returns the exponent of a power of two, or -1 if n is not one.
func Log2[T constraints.Integer](n T) int {
	if !IsPow2(n) {
		return -1
	}
	return bits.TrailingZeros64(uint64(n))
}

// CeilLog2 returns the smallest k such that 2^k >= n. It returns 0 for n <= 1.
func CeilLog2[T constraints.Integer](n T) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(uint64(n - 1))
}
