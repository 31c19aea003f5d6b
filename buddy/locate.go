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

// Block references a block by its arena offset and order. Offset is where
// the header starts, not the data.
type Block struct {
	Offset int
	Order  int
}

// Size returns 2^Order.
func (b Block) Size() int { return 1 << b.Order }

func (b Block) String() string {
	return fmt.Sprintf("block(off=%d, order=%d)", b.Offset, b.Order)
}

// BuddyOf returns the block that b was split from together with, i.e. the
// block of the same order whose offset differs from b's only in bit Order.
//
// It fails with ErrInvalidArgument for a nil arena or block, an inert arena,
// and for references that break the layout invariants: an order outside
// [SmallestOrder, K), an offset outside the arena, or an offset not aligned
// to the block size. The block of order K spans the arena and has no buddy.
func (a *Arena) BuddyOf(b *Block) (*Block, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil arena or block", ErrInvalidArgument)
	}
	if !a.usable() {
		return nil, fmt.Errorf("%w: arena not initialized", ErrInvalidArgument)
	}
	if b.Order < a.cfg.SmallestOrder || b.Order >= a.order {
		return nil, fmt.Errorf("%w: order %d outside [%d, %d)",
			ErrInvalidArgument, b.Order, a.cfg.SmallestOrder, a.order)
	}
	size := 1 << b.Order
	if b.Offset < 0 || b.Offset >= a.size || b.Offset&(size-1) != 0 {
		return nil, fmt.Errorf("%w: offset %d is not a block of order %d",
			ErrInvalidArgument, b.Offset, b.Order)
	}
	return &Block{Offset: b.Offset ^ size, Order: b.Order}, nil
}

// BlockOf returns the block backing a slice returned by Alloc.
func (a *Arena) BlockOf(b []byte) (*Block, bool) {
	if !a.usable() || cap(b) == 0 {
		return nil, false
	}
	data, ok := a.dataOffset(b)
	if !ok {
		return nil, false
	}
	return a.BlockAt(data)
}

// BlockAt returns the block whose data starts at dataOffset, if it is a live
// reservation.
func (a *Arena) BlockAt(dataOffset int) (*Block, bool) {
	if !a.usable() {
		return nil, false
	}
	off := dataOffset - HeaderSize
	if _, ok := a.live[off]; !ok {
		return nil, false
	}
	return &Block{Offset: off, Order: a.orderAt(off)}, true
}
