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

// Package buddy implements a fixed-capacity binary buddy allocator over a
// single contiguous arena of 2^K bytes.
//
// The arena starts as one free block of order K. Alloc rounds a request plus
// the block header up to the next power of two, takes the smallest free block
// that fits and splits it in halves until it has the right order; the upper
// halves go back to the free lists. Free marks the block free and merges it
// with its buddy, the other half of the block it was split from, for as long
// as the buddy is free too.
//
// Every block starts with a HeaderSize-byte header holding its state and
// order; free blocks also keep their free-list links there. Buddies are found
// by flipping bit k of a block's arena-relative offset, which works because
// every block of order k is aligned to 2^k within the arena.
//
//	a := buddy.NewArena(1 << 20)
//	defer a.Destroy()
//
//	b, err := a.Alloc(100) // a 128-byte block, 104 usable bytes
//	if err != nil {
//	    return err
//	}
//	a.Free(b)
//
// Backing memory comes from a region.Provider: anonymous mappings on unix
// systems by default. Failing to reserve or release it panics.
//
// Arenas are not safe for concurrent use. Use Locked, or one arena per
// goroutine.
package buddy
