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

import (
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/cloudwego/buddyarena/region"
)

// Arena manages one contiguous region of 2^K bytes with the buddy scheme.
//
// An Arena is not safe for concurrent use; wrap it in a Locked or give each
// goroutine its own arena. The zero Arena is inert: Alloc fails, Free is a
// no-op, until Init is called.
type Arena struct {
	cfg      Config
	provider region.Provider
	log      *slog.Logger

	// mem is the reserved region; nil while the arena is inert.
	mem   []byte
	size  int
	order int

	// avail holds one sentinel per order 0..order.
	avail []node

	// live holds the block offsets of every Reserved block. Free only
	// accepts data offsets that map back to one of them.
	live map[int]struct{}

	stats counters
}

// NewArena creates an arena with DefaultConfig. See NewArenaWithConfig.
func NewArena(sizeHint int) *Arena {
	a := &Arena{}
	if err := a.Init(sizeHint, nil); err != nil {
		// DefaultConfig always validates
		panic(err)
	}
	return a
}

// NewArenaWithConfig creates an arena sized for sizeHint bytes: the hint is
// rounded up to a power of two and clamped to [MinOrder, MaxOrder-1]; a zero
// hint selects DefaultOrder. A nil cfg means DefaultConfig.
//
// An invalid cfg is reported as an error. A provider that cannot reserve the
// region is fatal and panics with an error wrapping ErrEnvironment.
func NewArenaWithConfig(sizeHint int, cfg *Config) (*Arena, error) {
	a := &Arena{}
	if err := a.Init(sizeHint, cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// Init initializes an inert arena in place, as NewArenaWithConfig does.
func (a *Arena) Init(sizeHint int, cfg *Config) error {
	if a == nil {
		return fmt.Errorf("%w: nil arena", ErrInvalidArgument)
	}
	if a.mem != nil {
		return fmt.Errorf("%w: arena already initialized", ErrInvalidArgument)
	}
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return err
	}
	provider := c.Provider
	if provider == nil {
		provider = region.Default
	}
	l := c.Logger
	if l == nil {
		l = logger
	}

	order := c.arenaOrder(sizeHint)
	size := 1 << order
	mem, err := provider.Reserve(size)
	if err == nil && len(mem) != size {
		err = fmt.Errorf("provider returned %d bytes", len(mem))
	}
	if err != nil {
		fatal(l, fmt.Errorf("%w: reserve %d bytes: %w", ErrEnvironment, size, err))
	}

	*a = Arena{
		cfg:      c,
		provider: provider,
		log:      l,
		mem:      mem,
		size:     size,
		order:    order,
		avail:    make([]node, order+1),
	}
	a.bootstrap()
	l.Debug("buddy: arena created", "order", order, "size", size)
	return nil
}

// bootstrap empties every list and seeds one Available block covering the
// whole arena.
func (a *Arena) bootstrap() {
	a.resetLists()
	a.live = make(map[int]struct{})
	a.writeHeader(0, Available, a.order)
	a.push(a.order, 0)
}

// Destroy releases the backing region and clears the arena. Slices returned
// by Alloc must not be used afterwards. A provider that fails to release the
// region is fatal. Destroying an inert arena does nothing.
func (a *Arena) Destroy() {
	if !a.usable() {
		return
	}
	if err := a.provider.Release(a.mem); err != nil {
		fatal(a.log, fmt.Errorf("%w: release %d bytes: %w", ErrEnvironment, a.size, err))
	}
	a.log.Debug("buddy: arena destroyed", "order", a.order, "size", a.size)
	*a = Arena{}
}

// Reset drops every reservation and returns the arena to its freshly
// initialized layout. Contents of the region are left as they are.
func (a *Arena) Reset() {
	if !a.usable() {
		return
	}
	a.bootstrap()
	a.log.Debug("buddy: arena reset", "order", a.order)
}

// Size returns the number of bytes managed by the arena.
func (a *Arena) Size() int {
	if !a.usable() {
		return 0
	}
	return a.size
}

// Order returns K, the order of the whole arena.
func (a *Arena) Order() int {
	if !a.usable() {
		return 0
	}
	return a.order
}

// Config returns the configuration the arena was initialized with.
func (a *Arena) Config() Config {
	if a == nil {
		return Config{}
	}
	return a.cfg
}

func (a *Arena) usable() bool {
	return a != nil && a.mem != nil
}
