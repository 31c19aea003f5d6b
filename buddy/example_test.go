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

package buddy_test

import (
	"fmt"

	"github.com/cloudwego/buddyarena/buddy"
	"github.com/cloudwego/buddyarena/region"
)

func Example() {
	cfg := buddy.DefaultConfig
	cfg.Provider = region.Heap{}
	a, err := buddy.NewArenaWithConfig(1<<20, &cfg)
	if err != nil {
		panic(err)
	}
	defer a.Destroy()

	small, _ := a.Alloc(100)
	large, _ := a.Alloc(1000)
	fmt.Printf("len=%d cap=%d\n", len(small), cap(small))
	fmt.Printf("len=%d cap=%d\n", len(large), cap(large))

	blk, _ := a.BlockOf(small)
	buddyBlk, _ := a.BuddyOf(blk)
	fmt.Println(blk, "buddy", buddyBlk)

	a.Free(small)
	a.Free(large)
	fmt.Println(a.Available() == 1<<20-buddy.HeaderSize)

	// Output:
	// len=100 cap=104
	// len=1000 cap=1000
	// block(off=0, order=7) buddy block(off=128, order=7)
	// true
}

func ExampleOrderFor() {
	for _, n := range []int{0, 1, 64, 65, 1 << 20} {
		fmt.Println(n, buddy.OrderFor(n))
	}
	// Output:
	// 0 30
	// 1 6
	// 64 6
	// 65 7
	// 1048576 20
}
