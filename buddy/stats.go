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

package buddy

import (
	"encoding/binary"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/util/xxhash3"
)

type counters struct {
	allocs       uint64
	frees        uint64
	failedAllocs uint64
	ignoredFrees uint64
	splits       uint64
	merges       uint64
}

// Stats is a snapshot of arena occupancy.
//
// FreeBytes + UsedBytes + HeaderBytes == TotalBytes.
type Stats struct {
	TotalBytes int
	// FreeBytes is the size of all Available blocks, headers included.
	FreeBytes int
	// UsedBytes is the usable size of all Reserved blocks.
	UsedBytes int
	// HeaderBytes is the header overhead of all Reserved blocks.
	HeaderBytes int

	// FreeBlocks[k] is the length of the free list of order k.
	FreeBlocks     []int
	ReservedBlocks int

	Allocs       uint64
	Frees        uint64
	FailedAllocs uint64
	IgnoredFrees uint64
	Splits       uint64
	Merges       uint64
}

// Stats returns the current occupancy and lifetime counters. It walks every
// free list, so it costs O(free blocks).
func (a *Arena) Stats() Stats {
	if !a.usable() {
		return Stats{}
	}
	s := Stats{
		TotalBytes:     a.size,
		FreeBlocks:     make([]int, a.order+1),
		ReservedBlocks: len(a.live),
		Allocs:         a.stats.allocs,
		Frees:          a.stats.frees,
		FailedAllocs:   a.stats.failedAllocs,
		IgnoredFrees:   a.stats.ignoredFrees,
		Splits:         a.stats.splits,
		Merges:         a.stats.merges,
	}
	for k := range s.FreeBlocks {
		a.eachFree(k, func(int) {
			s.FreeBlocks[k]++
			s.FreeBytes += 1 << k
		})
	}
	for off := range a.live {
		s.UsedBytes += 1<<a.orderAt(off) - HeaderSize
		s.HeaderBytes += HeaderSize
	}
	return s
}

// Available returns the usable bytes of all free blocks, i.e. what could be
// handed out if every free block were allocated as is.
func (a *Arena) Available() int {
	if !a.usable() {
		return 0
	}
	total := 0
	for k := range a.avail {
		a.eachFree(k, func(int) { total += 1<<k - HeaderSize })
	}
	return total
}

// FreeCount returns the length of the free list of order k.
func (a *Arena) FreeCount(k int) int {
	if !a.usable() || k < 0 || k > a.order {
		return 0
	}
	n := 0
	a.eachFree(k, func(int) { n++ })
	return n
}

// FreeBlocks returns the offsets in the free list of order k, head first.
func (a *Arena) FreeBlocks(k int) []int {
	if !a.usable() || k < 0 || k > a.order {
		return nil
	}
	var offs []int
	a.eachFree(k, func(off int) { offs = append(offs, off) })
	return offs
}

// Fingerprint hashes the content and order of every free list. Two arenas of
// the same order with equal fingerprints hand out the same blocks for the same
// requests.
func (a *Arena) Fingerprint() uint64 {
	if !a.usable() {
		return 0
	}
	buf := dirtmake.Bytes(0, 8*(a.order+1)+64)
	for k := range a.avail {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(sentinel(k)))
		a.eachFree(k, func(off int) {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(off))
		})
	}
	return xxhash3.Hash(buf)
}
