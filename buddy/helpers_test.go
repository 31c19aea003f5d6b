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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/buddyarena/region"
)

// testConfig keeps DefaultConfig's block and arena orders but allocates on
// the heap and shrinks the default arena to 2MB.
var testConfig = Config{
	SmallestOrder: 6,
	MinOrder:      20,
	MaxOrder:      48,
	DefaultOrder:  21,
	Provider:      region.Heap{},
}

func newTestArena(t testing.TB, size int) *Arena {
	t.Helper()
	cfg := testConfig
	a, err := NewArenaWithConfig(size, &cfg)
	require.NoError(t, err)
	t.Cleanup(a.Destroy)
	return a
}

// requireFull checks that a holds exactly one free block covering the arena.
func requireFull(t testing.TB, a *Arena) {
	t.Helper()
	for k := 0; k < a.order; k++ {
		require.Equal(t, sentinel(k), a.avail[k].next, "order %d", k)
		require.Equal(t, sentinel(k), a.avail[k].prev, "order %d", k)
	}
	require.Equal(t, []int{0}, a.FreeBlocks(a.order))
	require.Equal(t, sentinel(a.order), a.nextOf(link(0)))
	require.Equal(t, sentinel(a.order), a.prevOf(link(0)))
	require.Equal(t, Available, a.stateAt(0))
	require.Equal(t, a.order, a.orderAt(0))
	require.Empty(t, a.live)
	require.NoError(t, a.Check())
}

// requireEmpty checks that every free list is empty.
func requireEmpty(t testing.TB, a *Arena) {
	t.Helper()
	for k := 0; k <= a.order; k++ {
		require.True(t, a.listEmpty(k), "order %d", k)
		require.Equal(t, sentinel(k), a.avail[k].prev, "order %d", k)
	}
	require.Zero(t, a.Available())
}

// stubProvider hands out heap slices and fails on demand.
type stubProvider struct {
	reserveErr error
	releaseErr error
	short      bool
}

func (p stubProvider) Reserve(size int) ([]byte, error) {
	if p.reserveErr != nil {
		return nil, p.reserveErr
	}
	if p.short {
		return make([]byte, size/2), nil
	}
	return make([]byte, size), nil
}

func (p stubProvider) Release([]byte) error { return p.releaseErr }

var errStub = errors.New("stub failure")

// recoverError runs fn and returns the error it panicked with, if any.
func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

func dataOf(t testing.TB, a *Arena, b []byte) int {
	t.Helper()
	off, ok := a.dataOffset(b)
	require.True(t, ok)
	return off
}
