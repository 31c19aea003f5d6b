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

import "errors"

var (
	// ErrOutOfMemory indicates that no free block can satisfy a request. Zero
	// sizes, sizes above the arena capacity and requests against an inert
	// arena report it too.
	ErrOutOfMemory = errors.New("buddy: out of memory")

	// ErrInvalidArgument indicates a missing arena or block reference, or a
	// configuration that cannot describe an arena.
	ErrInvalidArgument = errors.New("buddy: invalid argument")

	// ErrEnvironment wraps failures of the region provider while reserving or
	// releasing the arena. These are fatal and surface as panics.
	ErrEnvironment = errors.New("buddy: environment failure")

	// ErrCorrupt is reported by Check when the arena bookkeeping is inconsistent.
	ErrCorrupt = errors.New("buddy: arena corrupted")
)
