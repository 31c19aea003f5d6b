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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFresh(t *testing.T) {
	a := newTestArena(t, 1<<20)
	s := a.Stats()
	assert.Equal(t, 1<<20, s.TotalBytes)
	assert.Equal(t, 1<<20, s.FreeBytes)
	assert.Zero(t, s.UsedBytes)
	assert.Zero(t, s.HeaderBytes)
	assert.Zero(t, s.ReservedBlocks)
	require.Len(t, s.FreeBlocks, 21)
	assert.Equal(t, 1, s.FreeBlocks[20])
	assert.Equal(t, 1<<20-HeaderSize, a.Available())
}

func TestStatsAfterAlloc(t *testing.T) {
	a := newTestArena(t, 1<<20)
	_, err := a.Alloc(1)
	require.NoError(t, err)
	b, err := a.Alloc(1000)
	require.NoError(t, err)

	s := a.Stats()
	assert.Equal(t, 2, s.ReservedBlocks)
	assert.Equal(t, 64+1024-2*HeaderSize, s.UsedBytes)
	assert.Equal(t, 2*HeaderSize, s.HeaderBytes)
	assert.Equal(t, 1<<20-64-1024, s.FreeBytes)
	assert.Equal(t, uint64(2), s.Allocs)
	assert.Equal(t, uint64(14), s.Splits) // the 1000-byte block reuses the free order-10 half

	for k, n := range s.FreeBlocks {
		assert.Equal(t, n, a.FreeCount(k), "order %d", k)
		assert.Len(t, a.FreeBlocks(k), n, "order %d", k)
	}
	assert.Zero(t, a.FreeCount(-1))
	assert.Zero(t, a.FreeCount(21))

	a.Free(b)
	assert.Equal(t, uint64(1), a.Stats().Frees)
}

func TestFingerprintRoundTrip(t *testing.T) {
	sizes := []int{1, 40, 41, 1000, 4096, 100000, 1<<20 - HeaderSize}
	for _, sz := range sizes {
		a := newTestArena(t, 1<<20)
		fresh := a.Fingerprint()
		b, err := a.Alloc(sz)
		require.NoError(t, err, "size=%d", sz)
		assert.NotEqual(t, fresh, a.Fingerprint(), "size=%d", sz)
		a.Free(b)
		assert.Equal(t, fresh, a.Fingerprint(), "size=%d", sz)
		requireFull(t, a)
	}

	// independent of the backing memory
	a, b := newTestArena(t, 1<<21), newTestArena(t, 1<<21)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), newTestArena(t, 1<<20).Fingerprint())
}

func TestFingerprintListOrder(t *testing.T) {
	a := newTestArena(t, 1<<20)
	b := newTestArena(t, 1<<20)
	as, bs := allocN(t, a, 4), allocN(t, b, 4)

	// same free blocks, different list order
	a.Free(as[1])
	a.Free(as[3])
	b.Free(bs[3])
	b.Free(bs[1])
	assert.ElementsMatch(t, a.FreeBlocks(6), b.FreeBlocks(6))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestCheckDetectsCorruption(t *testing.T) {
	tests := []struct {
		name   string
		damage func(a *Arena)
	}{
		{"state", func(a *Arena) { a.mem[0] = byte(Unused) }},
		{"order", func(a *Arena) { a.mem[orderOff] = 3 }},
		{"unmerged", func(a *Arena) {
			// free both halves of a pair without merging them
			delete(a.live, 0)
			a.writeHeader(0, Available, 6)
			a.push(6, 0)
			a.writeHeader(64, Available, 6)
			a.push(6, 64)
		}},
		{"lost_live", func(a *Arena) {
			for off := range a.live {
				delete(a.live, off)
			}
		}},
		{"sentinel", func(a *Arena) { a.avail[7].prev = link(12345) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArena(t, 1<<20)
			_, err := a.Alloc(1 << 12)
			require.NoError(t, err)
			require.NoError(t, a.Check())
			tt.damage(a)
			assert.ErrorIs(t, a.Check(), ErrCorrupt)
		})
	}
}
