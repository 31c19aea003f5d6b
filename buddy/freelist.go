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

// node is a free-list sentinel. Sentinels live outside the arena, are always
// Unused, and point at themselves while their list is empty.
type node struct {
	next link
	prev link
}

func (a *Arena) resetLists() {
	for k := range a.avail {
		a.avail[k] = node{next: sentinel(k), prev: sentinel(k)}
	}
}

func (a *Arena) nextOf(l link) link {
	if l.isSentinel() {
		return a.avail[l.order()].next
	}
	return link(binary.LittleEndian.Uint64(a.mem[l.offset()+nextOff:]))
}

func (a *Arena) prevOf(l link) link {
	if l.isSentinel() {
		return a.avail[l.order()].prev
	}
	return link(binary.LittleEndian.Uint64(a.mem[l.offset()+prevOff:]))
}

func (a *Arena) setNext(l, v link) {
	if l.isSentinel() {
		a.avail[l.order()].next = v
		return
	}
	binary.LittleEndian.PutUint64(a.mem[l.offset()+nextOff:], uint64(v))
}

func (a *Arena) setPrev(l, v link) {
	if l.isSentinel() {
		a.avail[l.order()].prev = v
		return
	}
	binary.LittleEndian.PutUint64(a.mem[l.offset()+prevOff:], uint64(v))
}

func (a *Arena) listEmpty(order int) bool {
	return a.avail[order].next == sentinel(order)
}

// push inserts the Available block at off at the head of its order's list.
func (a *Arena) push(order, off int) {
	head := sentinel(order)
	n := link(off)
	first := a.nextOf(head)
	a.setNext(n, first)
	a.setPrev(n, head)
	a.setPrev(first, n)
	a.setNext(head, n)
}

// unlink removes the block at off from whatever list holds it.
func (a *Arena) unlink(off int) {
	n := link(off)
	next, prev := a.nextOf(n), a.prevOf(n)
	a.setNext(prev, next)
	a.setPrev(next, prev)
}

// pop removes and returns the head of a non-empty list.
func (a *Arena) pop(order int) int {
	off := a.avail[order].next.offset()
	a.unlink(off)
	return off
}

// eachFree calls fn with the offset of every block in the list of order,
// head first.
func (a *Arena) eachFree(order int, fn func(off int)) {
	head := sentinel(order)
	for l := a.nextOf(head); l != head; l = a.nextOf(l) {
		fn(l.offset())
	}
}
