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
	"fmt"

	"github.com/bytedance/gopkg/lang/mcache"
)

// maxHeapOrder bounds Heap reservations to what mcache keeps size classes for.
const maxHeapOrder = 40

// Heap reserves regions from the Go heap. Buffers are recycled through
// mcache, so Reserve clears them before handing them out.
type Heap struct{}

// Reserve implements Provider.
func (Heap) Reserve(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if size > 1<<maxHeapOrder {
		return nil, fmt.Errorf("%w: %d exceeds heap limit of %d bytes", ErrBadSize, size, 1<<maxHeapOrder)
	}
	mem := mcache.Malloc(size)
	clear(mem)
	return mem, nil
}

// Release implements Provider.
func (Heap) Release(mem []byte) error {
	if len(mem) == 0 {
		return ErrNotReserved
	}
	mcache.Free(mem)
	return nil
}
