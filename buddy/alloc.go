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

import "fmt"

// Alloc returns size usable bytes from the arena. The returned slice has
// len == size and cap == 2^k - HeaderSize for the block's order k; bytes
// between len and cap belong to the caller too.
//
// Alloc fails with ErrOutOfMemory when size is not positive, exceeds the
// arena, the arena is inert, or no free block is large enough. A failed
// Alloc leaves the arena untouched.
func (a *Arena) Alloc(size int) ([]byte, error) {
	data, err := a.AllocOffset(size)
	if err != nil {
		return nil, err
	}
	off := data - HeaderSize
	return a.mem[data : data+size : off+1<<a.orderAt(off)], nil
}

// AllocOffset is like Alloc but returns the arena offset of the first usable
// byte instead of a slice.
func (a *Arena) AllocOffset(size int) (int, error) {
	if !a.usable() || size <= 0 || size > a.size {
		return 0, a.outOfMemory(size)
	}
	need := a.cfg.OrderFor(size + HeaderSize)

	// smallest sufficient order first
	found := need
	for found <= a.order && a.listEmpty(found) {
		found++
	}
	if found > a.order {
		return 0, a.outOfMemory(size)
	}

	off := a.pop(found)

	// split, keeping the lower half and freeing the upper one
	for found > need {
		found--
		half := off + 1<<found
		a.writeHeader(half, Available, found)
		a.push(found, half)
		a.stats.splits++
	}

	a.writeHeader(off, Reserved, need)
	a.live[off] = struct{}{}
	a.stats.allocs++
	return off + HeaderSize, nil
}

func (a *Arena) outOfMemory(size int) error {
	if a.usable() {
		a.stats.failedAllocs++
		a.log.Debug("buddy: out of memory", "size", size, "order", a.order)
	}
	return fmt.Errorf("%w: %d bytes", ErrOutOfMemory, size)
}

// Realloc resizes the reservation b to size bytes and returns the slice to
// use from now on. A nil b behaves like Alloc and a non-positive size like
// Free. If size fits in b's block the same block is returned; otherwise the
// contents move to a new block and b is released.
//
// On failure b stays valid and untouched.
func (a *Arena) Realloc(b []byte, size int) ([]byte, error) {
	if cap(b) == 0 {
		return a.Alloc(size)
	}
	if size <= 0 {
		a.Free(b)
		return nil, nil
	}
	blk, ok := a.BlockOf(b)
	if !ok {
		return nil, fmt.Errorf("%w: not a live reservation", ErrInvalidArgument)
	}
	data := blk.Offset + HeaderSize
	end := blk.Offset + 1<<blk.Order
	if data+size <= end {
		return a.mem[data : data+size : end], nil
	}
	nb, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	a.Free(b)
	return nb, nil
}
