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

// Walk calls fn for every block in address order until fn returns false. It
// stops early if it meets a header that cannot start a block; Check reports
// those.
func (a *Arena) Walk(fn func(b Block, st State) bool) {
	if !a.usable() {
		return
	}
	for off := 0; off < a.size; {
		k := a.orderAt(off)
		if k < a.cfg.SmallestOrder || k > a.order {
			return
		}
		if !fn(Block{Offset: off, Order: k}, a.stateAt(off)) {
			return
		}
		off += 1 << k
	}
}

// Check verifies the arena bookkeeping and returns an error wrapping
// ErrCorrupt describing the first violation found:
//
//   - blocks tile the arena exactly, each aligned to its own size
//   - every Available block is in the list of its order exactly once, and
//     lists hold nothing else
//   - lists are consistently linked in both directions
//   - no two Available buddies of the same order coexist
//   - Reserved blocks are exactly the live reservations
//   - free, used and header bytes add up to the arena size
func (a *Arena) Check() error {
	if !a.usable() {
		return fmt.Errorf("%w: arena not initialized", ErrInvalidArgument)
	}
	listed, err := a.checkLists()
	if err != nil {
		return err
	}

	var free, used, headers, reserved int
	for off := 0; off < a.size; {
		h := a.readHeader(off)
		if h.order < a.cfg.SmallestOrder || h.order > a.order {
			return corrupt("block at %d has order %d", off, h.order)
		}
		size := 1 << h.order
		if off&(size-1) != 0 {
			return corrupt("block at %d misaligned for order %d", off, h.order)
		}
		if off+size > a.size {
			return corrupt("block at %d of order %d overruns the arena", off, h.order)
		}
		switch h.state {
		case Available:
			k, ok := listed[off]
			if !ok || k != h.order {
				return corrupt("available block at %d of order %d is not in its free list", off, h.order)
			}
			delete(listed, off)
			if h.order < a.order {
				b := off ^ size
				if a.stateAt(b) == Available && a.orderAt(b) == h.order {
					return corrupt("buddies at %d and %d of order %d were not merged", off, b, h.order)
				}
			}
			free += size
		case Reserved:
			if _, ok := a.live[off]; !ok {
				return corrupt("reserved block at %d is not a live reservation", off)
			}
			reserved++
			used += size - HeaderSize
			headers += HeaderSize
		default:
			return corrupt("block at %d is %s", off, h.state)
		}
		off += size
	}
	if len(listed) != 0 {
		return corrupt("%d free-list entries do not start a block", len(listed))
	}
	if reserved != len(a.live) {
		return corrupt("%d reserved blocks, %d live reservations", reserved, len(a.live))
	}
	if free+used+headers != a.size {
		return corrupt("free %d + used %d + headers %d != size %d", free, used, headers, a.size)
	}
	return nil
}

// checkLists walks every free list and returns offset -> order of the
// blocks it found.
func (a *Arena) checkLists() (map[int]int, error) {
	listed := make(map[int]int)
	limit := a.size >> a.cfg.SmallestOrder
	for k := range a.avail {
		head := sentinel(k)
		prev := head
		n := 0
		for l := a.nextOf(head); l != head; l = a.nextOf(l) {
			if l.isSentinel() {
				return nil, corrupt("list %d links to sentinel %d", k, l.order())
			}
			off := l.offset()
			if off < 0 || off+HeaderSize > a.size {
				return nil, corrupt("list %d links outside the arena (%d)", k, off)
			}
			if a.prevOf(l) != prev {
				return nil, corrupt("list %d: back link of %d is broken", k, off)
			}
			if st, ord := a.stateAt(off), a.orderAt(off); st != Available || ord != k {
				return nil, corrupt("list %d holds %s block at %d of order %d", k, st, off, ord)
			}
			if _, dup := listed[off]; dup {
				return nil, corrupt("block at %d listed twice", off)
			}
			listed[off] = k
			prev = l
			if n++; n > limit {
				return nil, corrupt("list %d does not terminate", k)
			}
		}
		if a.prevOf(head) != prev {
			return nil, corrupt("list %d: sentinel back link is broken", k)
		}
	}
	return listed, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
}
