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

import "encoding/binary"

// State tags a block header.
type State uint8

const (
	// Unused marks free-list sentinels and headers absorbed by a merge.
	Unused State = iota
	// Available marks a free block linked into the list of its order.
	Available
	// Reserved marks a block handed out by Alloc.
	Reserved
)

func (s State) String() string {
	switch s {
	case Unused:
		return "unused"
	case Available:
		return "available"
	case Reserved:
		return "reserved"
	}
	return "invalid"
}

// Header layout inside the arena, little-endian:
//
//	[0]      state
//	[1]      order
//	[2:8]    zero
//	[8:16]   next link (Available only)
//	[16:24]  prev link (Available only)
const (
	stateOff = 0
	orderOff = 1
	nextOff  = 8
	prevOff  = 16
)

// link addresses a free-list node: either the arena offset of a block or,
// with sentinelBit set, the sentinel of the order held in the low bits.
type link uint64

const sentinelBit link = 1 << 63

func sentinel(order int) link { return sentinelBit | link(order) }

func (l link) isSentinel() bool { return l&sentinelBit != 0 }

func (l link) order() int { return int(l &^ sentinelBit) }

func (l link) offset() int { return int(l) }

// header is the decoded form of a block header. next and prev are only
// decoded for Available blocks.
type header struct {
	state State
	order int
	next  link
	prev  link
}

func (a *Arena) readHeader(off int) header {
	h := header{state: a.stateAt(off), order: a.orderAt(off)}
	if h.state == Available {
		h.next = link(binary.LittleEndian.Uint64(a.mem[off+nextOff:]))
		h.prev = link(binary.LittleEndian.Uint64(a.mem[off+prevOff:]))
	}
	return h
}

func (a *Arena) stateAt(off int) State { return State(a.mem[off+stateOff]) }

func (a *Arena) orderAt(off int) int { return int(a.mem[off+orderOff]) }

// writeHeader stores state and order at off and zeroes the rest of the header.
func (a *Arena) writeHeader(off int, st State, order int) {
	h := a.mem[off : off+HeaderSize]
	clear(h)
	h[stateOff] = byte(st)
	h[orderOff] = byte(order)
}

// clearHeader marks the header at off as no longer starting a block.
func (a *Arena) clearHeader(off int) {
	clear(a.mem[off : off+HeaderSize])
}
