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

import "unsafe"

// Free returns a slice obtained from Alloc or Realloc to the arena and merges
// the block with its free buddies. b may be resliced as long as it still
// starts at the first byte Alloc returned.
//
// Free never fails. Anything that is not the start of a live reservation,
// including a second Free of the same slice, is ignored.
func (a *Arena) Free(b []byte) {
	if !a.usable() || cap(b) == 0 {
		return
	}
	data, ok := a.dataOffset(b)
	if !ok {
		a.ignoreFree(-1, "outside arena")
		return
	}
	a.FreeAt(data)
}

// FreeAt is like Free for an offset returned by AllocOffset.
func (a *Arena) FreeAt(dataOffset int) {
	if !a.usable() {
		return
	}
	off := dataOffset - HeaderSize
	if off < 0 || dataOffset >= a.size {
		a.ignoreFree(dataOffset, "outside arena")
		return
	}
	if _, ok := a.live[off]; !ok {
		a.ignoreFree(dataOffset, "not a live reservation")
		return
	}
	if a.stateAt(off) != Reserved {
		a.ignoreFree(dataOffset, "block not reserved")
		return
	}
	delete(a.live, off)
	a.stats.frees++

	order := a.orderAt(off)
	a.writeHeader(off, Available, order)
	for order < a.order {
		buddy := off ^ 1<<order
		if a.stateAt(buddy) != Available || a.orderAt(buddy) != order {
			break
		}
		a.unlink(buddy)
		if buddy < off {
			off, buddy = buddy, off
		}
		a.clearHeader(buddy)
		order++
		a.writeHeader(off, Available, order)
		a.stats.merges++
	}
	a.push(order, off)
}

func (a *Arena) ignoreFree(dataOffset int, reason string) {
	a.stats.ignoredFrees++
	a.log.Debug("buddy: free ignored", "offset", dataOffset, "reason", reason)
}

// dataOffset maps the first byte of b to an arena offset.
func (a *Arena) dataOffset(b []byte) (int, bool) {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.mem)))
	if p < base || p >= base+uintptr(a.size) {
		return 0, false
	}
	return int(p - base), true
}
