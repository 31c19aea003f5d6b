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

// Package region reserves and releases the contiguous memory regions that
// back an arena. The allocator never talks to the operating system itself:
// it asks a Provider for exactly one region and hands it back as a unit.
package region

import (
	"errors"
	"fmt"

	"github.com/cloudwego/buddyarena/internal/bitsx"
)

var (
	// ErrBadSize indicates a reservation size that is not a positive power of two.
	ErrBadSize = errors.New("region: size must be a positive power of two")

	// ErrNotReserved indicates a release of memory the provider did not hand out.
	ErrNotReserved = errors.New("region: memory was not reserved by this provider")
)

// Provider reserves zero-initialized, readable and writable regions of an
// exact size and releases them later as a unit.
type Provider interface {
	// Reserve returns a region of exactly size bytes, all zero.
	Reserve(size int) ([]byte, error)

	// Release returns a region obtained from Reserve. The region must be
	// passed back with its original length.
	Release(mem []byte) error
}

func checkSize(size int) error {
	if !bitsx.IsPow2(size) {
		return fmt.Errorf("%w: got %d", ErrBadSize, size)
	}
	return nil
}
