//go:build unix

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
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Default is the provider used when an arena is configured without one.
var Default Provider = Mmap{}

// Mmap reserves regions as private anonymous mappings. Pages are committed
// lazily by the kernel, so large arenas cost nothing until touched.
type Mmap struct{}

// Reserve implements Provider.
func (Mmap) Reserve(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", size, err)
	}
	return mem, nil
}

// Release implements Provider.
func (Mmap) Release(mem []byte) error {
	if len(mem) == 0 {
		return ErrNotReserved
	}
	if err := unix.Munmap(mem); err != nil {
		// unix tracks its own mappings and reports EINVAL for anything else
		if errors.Is(err, unix.EINVAL) {
			return ErrNotReserved
		}
		return fmt.Errorf("region: munmap %d bytes: %w", len(mem), err)
	}
	return nil
}
