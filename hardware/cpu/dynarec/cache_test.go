// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package dynarec_test

import (
	"testing"

	"github.com/gopher64/gopher64/hardware/cpu/dynarec"
	"github.com/gopher64/gopher64/test"
)

// hot returns the fragment for the address after reaching the hot threshold
func hot(t *testing.T, c *dynarec.Cache, pc uint32) *dynarec.Fragment {
	t.Helper()
	var f *dynarec.Fragment
	for range c.HotThreshold {
		f = c.Lookup(pc)
	}
	test.DemandEquality(t, f != nil, true)
	return f
}

// build a fragment of n ops starting at pc. each op increments the counter
func build(t *testing.T, c *dynarec.Cache, pc uint32, n int, counter *int) *dynarec.Fragment {
	t.Helper()
	f := hot(t, c, pc)
	c.Begin(f)
	for i := range n {
		addr := pc + uint32(i*4)
		c.Append(addr, func() bool {
			*counter++
			return true
		}, addr+4, false)
	}
	c.Seal()
	test.DemandEquality(t, f.Compiled(), true)
	return f
}

func TestHotThreshold(t *testing.T) {
	c := dynarec.NewCache(3, 10, 8)
	test.ExpectEquality(t, c.Lookup(0x80001000) == nil, true)
	test.ExpectEquality(t, c.Lookup(0x80001000) == nil, true)

	f := c.Lookup(0x80001000)
	test.DemandEquality(t, f != nil, true)
	test.ExpectEquality(t, f.EntryPC, uint32(0x80001000))
	test.ExpectEquality(t, f.State(), "pending")
	test.ExpectEquality(t, f.Compiled(), false)

	// the same fragment is returned on subsequent lookups
	test.ExpectEquality(t, c.Lookup(0x80001000), f)
	test.ExpectEquality(t, c.Stats.Created, 1)
}

func TestBuildAndRun(t *testing.T) {
	c := dynarec.NewCache(1, 4, 8)

	var counter int
	f := hot(t, c, 0x80001000)
	c.Begin(f)
	test.ExpectEquality(t, c.Building(), f)
	test.ExpectEquality(t, f.State(), "pending")

	for i := range 10 {
		pc := uint32(0x80001000 + i*4)
		c.Append(pc, func() bool {
			counter++
			return true
		}, pc+4, false)
	}

	// the fragment was sealed when the maximum number of ops was reached
	test.ExpectEquality(t, c.Building() == nil, true)
	test.ExpectEquality(t, f.Compiled(), true)
	test.ExpectEquality(t, f.OpsCompiled, 4)
	test.ExpectEquality(t, f.MinPC, uint32(0x80001000))
	test.ExpectEquality(t, f.MaxPC, uint32(0x8000100c))

	test.ExpectEquality(t, f.Run(), 4)
	test.ExpectEquality(t, counter, 4)
	test.ExpectEquality(t, f.ExecutionCount, 1)
}

func TestEarlyExit(t *testing.T) {
	c := dynarec.NewCache(1, 10, 8)

	var executed []int
	f := hot(t, c, 0x80002000)
	c.Begin(f)
	for i := range 5 {
		pc := uint32(0x80002000 + i*4)
		c.Append(pc, func() bool {
			executed = append(executed, i)
			return i != 1
		}, pc+4, false)
	}
	c.Seal()

	test.ExpectEquality(t, f.Run(), 2)
	test.ExpectEquality(t, len(executed), 2)
}

func TestOffFragmentBranch(t *testing.T) {
	c := dynarec.NewCache(1, 10, 8)
	f := hot(t, c, 0x80003000)
	c.Begin(f)

	op := func() bool { return true }
	c.Append(0x80003000, op, 0x80003004, false)

	// the instruction left the program counter somewhere other than the next
	// instruction. the fragment is sealed with the op included
	c.Append(0x80003004, op, 0x80004000, false)
	test.ExpectEquality(t, f.Compiled(), true)
	test.ExpectEquality(t, f.OpsCompiled, 2)

	// pending work also seals the fragment
	g := hot(t, c, 0x80005000)
	c.Begin(g)
	c.Append(0x80005000, op, 0x80005004, true)
	test.ExpectEquality(t, g.Compiled(), true)
	test.ExpectEquality(t, g.OpsCompiled, 1)

	// an op that doesn't follow on from the previous op is not appended
	h := hot(t, c, 0x80006000)
	c.Begin(h)
	c.Append(0x80006000, op, 0x80006004, false)
	c.Append(0x80000180, op, 0x80000184, false)
	test.ExpectEquality(t, h.Compiled(), true)
	test.ExpectEquality(t, h.OpsCompiled, 1)
}

func TestBarrier(t *testing.T) {
	c := dynarec.NewCache(2, 10, 8)
	f := hot(t, c, 0x80007000)
	c.Begin(f)
	c.Barrier()

	// a fragment with no ops is abandoned
	test.ExpectEquality(t, c.Stats.Abandoned, 1)
	test.ExpectEquality(t, len(c.Fragments()), 0)
	test.ExpectEquality(t, c.Lookup(0x80007000) == nil, true)
	test.ExpectEquality(t, c.Lookup(0x80007000) == nil, false)
}

func TestInvalidateRange(t *testing.T) {
	c := dynarec.NewCache(1, 100, 8)

	var counter int
	f := build(t, c, 0x1000, 16, &counter)
	test.ExpectEquality(t, f.MaxPC, uint32(0x103c))

	// a write immediately after the fragment
	test.ExpectEquality(t, c.InvalidateRange(0x1044, 4, "test"), 0)
	test.ExpectEquality(t, f.Compiled(), true)
	test.ExpectEquality(t, len(c.InvalidationLog()), 0)

	// a write inside the fragment
	test.ExpectEquality(t, c.InvalidateRange(0x1020, 4, "test"), 1)
	test.ExpectEquality(t, f.Compiled(), false)

	log := c.InvalidationLog()
	test.DemandEquality(t, len(log), 1)
	test.ExpectEquality(t, log[0], dynarec.Invalidation{Tag: "test", Addr: 0x1020, Length: 4, Count: 1})

	// the fragment is rebuilt when next reached
	g := c.Lookup(0x1000)
	test.ExpectEquality(t, g, f)
	test.ExpectEquality(t, g.State(), "pending")
}

func TestInvalidateICache(t *testing.T) {
	c := dynarec.NewCache(1, 100, 2)

	var counter int
	f0 := build(t, c, 0x80001000, 4, &counter)
	f1 := build(t, c, 0xa0001000, 4, &counter)
	f2 := build(t, c, 0x80200000, 4, &counter)

	f0.Run()
	f0.Run()
	test.ExpectEquality(t, f0.ExecutionCount, 2)

	// a write to a different page is ignored
	c.InvalidateICache(0x00100000, 4, "store")
	test.ExpectEquality(t, c.Stats.Invalidated, 0)

	// a physical address invalidates fragments in both KSEG0 and KSEG1
	c.InvalidateICache(0x00001008, 4, "store")
	test.ExpectEquality(t, f0.Compiled(), false)
	test.ExpectEquality(t, f1.Compiled(), false)
	test.ExpectEquality(t, f2.Compiled(), true)
	test.ExpectEquality(t, c.Stats.Invalidated, 2)

	// invalidated fragments keep only their entry point
	test.ExpectEquality(t, f0.ExecutionCount, 0)
	test.ExpectEquality(t, f0.OpsCompiled, 0)
	test.ExpectEquality(t, f0.MinPC, f0.EntryPC)
	test.ExpectEquality(t, f0.MaxPC, f0.EntryPC)

	// large writes such as DMA transfers
	c.InvalidateICache(0x00100000, 0x200000, "dma")
	test.ExpectEquality(t, f2.Compiled(), false)

	// the log is bounded
	test.ExpectEquality(t, len(c.InvalidationLog()), 2)
	test.ExpectEquality(t, c.InvalidationLog()[1].Tag, "dma")
}

func TestSelfInvalidation(t *testing.T) {
	c := dynarec.NewCache(1, 10, 8)

	var counter int
	f := hot(t, c, 0x80001000)
	c.Begin(f)
	for i := range 4 {
		pc := uint32(0x80001000 + i*4)
		c.Append(pc, func() bool {
			counter++
			if i == 1 {
				c.InvalidateICache(0x00001008, 4, "store")
			}
			return true
		}, pc+4, false)
	}
	c.Seal()

	// the routine stops after the op that invalidated the fragment
	test.ExpectEquality(t, f.Run(), 2)
	test.ExpectEquality(t, counter, 2)
	test.ExpectEquality(t, f.Compiled(), false)
}

func TestInvalidateWhileBuilding(t *testing.T) {
	c := dynarec.NewCache(1, 10, 8)
	f := hot(t, c, 0x80001000)
	c.Begin(f)
	op := func() bool { return true }
	c.Append(0x80001000, op, 0x80001004, false)
	c.Append(0x80001004, op, 0x80001008, false)

	c.InvalidateICache(0x00001004, 4, "store")
	test.ExpectEquality(t, c.Building() == nil, true)
	test.ExpectEquality(t, f.State(), "pending")
}

func TestBailOut(t *testing.T) {
	c := dynarec.NewCache(1, 10, 8)
	f := hot(t, c, 0x80001000)
	c.Begin(f)
	op := func() bool { return true }
	c.Append(0x80001000, op, 0x80001004, false)

	c.BailOut()
	test.ExpectEquality(t, c.Building() == nil, true)
	test.ExpectEquality(t, f.State(), "bailed out")
	test.ExpectEquality(t, c.Stats.BailedOut, 1)

	// lookup resets the fragment so that it can be built again
	g := c.Lookup(0x80001000)
	test.ExpectEquality(t, g, f)
	test.ExpectEquality(t, g.State(), "pending")
	test.ExpectEquality(t, g.BailedOut, false)
}

func TestNext(t *testing.T) {
	c := dynarec.NewCache(1, 100, 8)

	var counter int
	a := build(t, c, 0x80001000, 4, &counter)
	b := build(t, c, 0x80002000, 4, &counter)

	test.ExpectEquality(t, c.Next(a, 4, 0x80002000), b)

	// memo is checked against the live program counter
	test.ExpectEquality(t, c.Next(a, 4, 0x80003000) == nil, true)
	test.ExpectEquality(t, c.Next(a, 4, 0x80002000), b)

	// an invalidated fragment is never returned
	c.InvalidateICache(0x00002000, 4, "store")
	test.ExpectEquality(t, c.Next(a, 4, 0x80002000) == nil, true)

	// no previous fragment
	test.ExpectEquality(t, c.Next(nil, 0, 0x80001000), a)
}

func TestReset(t *testing.T) {
	c := dynarec.NewCache(1, 100, 8)
	var counter int
	build(t, c, 0x80001000, 4, &counter)
	build(t, c, 0x80002000, 4, &counter)
	test.ExpectEquality(t, len(c.Fragments()), 2)
	test.ExpectEquality(t, c.Fragments()[0].EntryPC, uint32(0x80001000))

	c.Reset()
	test.ExpectEquality(t, len(c.Fragments()), 0)
	test.ExpectEquality(t, c.Stats.Compiled, 0)
}
