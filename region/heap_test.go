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

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapReserve(t *testing.T) {
	var p Provider = Heap{}
	for _, size := range []int{64, 4096, 1 << 20} {
		mem, err := p.Reserve(size)
		require.NoError(t, err, "size=%d", size)
		assert.Equal(t, size, len(mem))
		for i := range mem {
			if mem[i] != 0 {
				t.Fatalf("size=%d: byte %d not zeroed", size, i)
			}
		}
		// dirty it so a recycled buffer would show up in the next round
		for i := range mem {
			mem[i] = 0xAA
		}
		require.NoError(t, p.Release(mem))
	}
}

func TestHeapReserveRecycledIsZeroed(t *testing.T) {
	p := Heap{}
	for i := 0; i < 8; i++ {
		mem, err := p.Reserve(8192)
		require.NoError(t, err)
		for j := range mem {
			require.Zero(t, mem[j])
			mem[j] = byte(j)
		}
		require.NoError(t, p.Release(mem))
	}
}

func TestHeapBadSize(t *testing.T) {
	p := Heap{}
	for _, size := range []int{-1, 0, 3, 1000, 1<<20 + 1} {
		_, err := p.Reserve(size)
		assert.ErrorIs(t, err, ErrBadSize, "size=%d", size)
	}
	_, err := p.Reserve(1 << (maxHeapOrder + 1))
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestHeapReleaseEmpty(t *testing.T) {
	p := Heap{}
	assert.ErrorIs(t, p.Release(nil), ErrNotReserved)
	assert.ErrorIs(t, p.Release([]byte{}), ErrNotReserved)
}

func TestDefaultProvider(t *testing.T) {
	require.NotNil(t, Default)
	mem, err := Default.Reserve(1 << 16)
	require.NoError(t, err)
	assert.Equal(t, 1<<16, len(mem))
	mem[0], mem[len(mem)-1] = 1, 2
	assert.NoError(t, Default.Release(mem))
}
