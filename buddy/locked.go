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

import "sync"

// Locked serializes every operation on an Arena with one mutex.
type Locked struct {
	mu sync.Mutex
	a  *Arena
}

// NewLocked wraps a. The caller must not use a directly afterwards.
func NewLocked(a *Arena) *Locked {
	return &Locked{a: a}
}

// Alloc is Arena.Alloc under the lock.
func (l *Locked) Alloc(size int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size)
}

// Free is Arena.Free under the lock.
func (l *Locked) Free(b []byte) {
	l.mu.Lock()
	l.a.Free(b)
	l.mu.Unlock()
}

// Realloc is Arena.Realloc under the lock.
func (l *Locked) Realloc(b []byte, size int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Realloc(b, size)
}

// Stats is Arena.Stats under the lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Do runs fn with exclusive access to the arena.
func (l *Locked) Do(fn func(a *Arena)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.a)
}
