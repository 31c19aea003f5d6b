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

	"github.com/cloudwego/buddyarena/internal/bitsx"
	"github.com/cloudwego/buddyarena/region"
)

// HeaderSize is the number of bytes every block spends on its header. The
// usable size of a block of order k is 2^k - HeaderSize.
const HeaderSize = 24

// maxSupportedOrder bounds MaxOrder; offsets of larger arenas would not leave
// room for the sentinel bit in a free-list link.
const maxSupportedOrder = 48

// Config describes the orders an arena works with.
type Config struct {
	// SmallestOrder is the order of the smallest block ever produced.
	SmallestOrder int

	// MinOrder is the order of the smallest arena.
	MinOrder int

	// MaxOrder is the exclusive upper bound of arena orders: an arena never
	// exceeds 2^(MaxOrder-1) bytes.
	MaxOrder int

	// DefaultOrder is used when an arena is created with a zero size hint,
	// and by OrderFor(0).
	DefaultOrder int

	// Provider reserves the backing region. nil means region.Default.
	Provider region.Provider

	// Logger overrides the package logger. nil means the package logger.
	Logger *slog.Logger
}

// DefaultConfig is used by NewArena and OrderFor.
var DefaultConfig = Config{
	SmallestOrder: 6,  // 64B
	MinOrder:      20, // 1MB
	MaxOrder:      48,
	DefaultOrder:  30, // 1GB
}

// Validate reports whether the orders of c can describe an arena.
func (c *Config) Validate() error {
	switch {
	case c.SmallestOrder < 0 || bitsx.Pow2[int](c.SmallestOrder) <= HeaderSize:
		return fmt.Errorf("%w: smallest order %d leaves no room past the %d-byte header",
			ErrInvalidArgument, c.SmallestOrder, HeaderSize)
	case c.MinOrder < c.SmallestOrder:
		return fmt.Errorf("%w: min order (%d) must be >= smallest order (%d)",
			ErrInvalidArgument, c.MinOrder, c.SmallestOrder)
	case c.MaxOrder <= c.MinOrder || c.MaxOrder > maxSupportedOrder:
		return fmt.Errorf("%w: max order must be in (%d, %d], got %d",
			ErrInvalidArgument, c.MinOrder, maxSupportedOrder, c.MaxOrder)
	case c.DefaultOrder < c.MinOrder || c.DefaultOrder >= c.MaxOrder:
		return fmt.Errorf("%w: default order must be in [%d, %d), got %d",
			ErrInvalidArgument, c.MinOrder, c.MaxOrder, c.DefaultOrder)
	}
	return nil
}

// OrderFor returns the smallest order k >= SmallestOrder with 2^k >= bytes.
// A non-positive byte count maps to DefaultOrder. Requests that would need
// MaxOrder or more are answered with MaxOrder-1; the caller detects that the
// block does not fit.
func (c *Config) OrderFor(bytes int) int {
	if bytes <= 0 {
		return c.DefaultOrder
	}
	k := max(c.SmallestOrder, bitsx.CeilLog2(bytes))
	if k >= c.MaxOrder {
		return c.MaxOrder - 1
	}
	return k
}

// OrderFor is DefaultConfig.OrderFor.
func OrderFor(bytes int) int {
	return DefaultConfig.OrderFor(bytes)
}

// arenaOrder returns the order of an arena created with sizeHint.
func (c *Config) arenaOrder(sizeHint int) int {
	k := c.OrderFor(sizeHint)
	if k < c.MinOrder {
		k = c.MinOrder
	}
	if k > c.MaxOrder-1 {
		k = c.MaxOrder - 1
	}
	return k
}
