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

package dynarec

import (
	"fmt"
	"slices"

	"github.com/gopher64/gopher64/logger"
)

// the size of the pages used by the page bitmap
const (
	pageShift = 12
	addrMask  = 0x1fffffff
	numPages  = (addrMask + 1) >> pageShift
)

// Invalidation is an entry in the invalidation log.
type Invalidation struct {
	Tag    string
	Addr   uint32
	Length uint32

	// number of fragments invalidated
	Count int
}

func (inv Invalidation) String() string {
	return fmt.Sprintf("%s: %08x+%d (%d fragments)", inv.Tag, inv.Addr, inv.Length, inv.Count)
}

// Stats are collected for debugging.
type Stats struct {
	Created     int
	Compiled    int
	Invalidated int
	BailedOut   int
	Abandoned   int
}

// Cache is the fragment cache.
type Cache struct {
	fragments map[uint32]*Fragment
	hits      map[uint32]int

	// fragment currently being built
	building *Fragment

	// the number of times an address must be reached before a fragment is
	// created for it
	HotThreshold int

	// maximum number of ops in a fragment
	MaxOps int

	// bitmap of pages that hold the code of at least one fragment, and the
	// fragments for each page
	pages     [numPages / 64]uint64
	pageIndex map[uint32][]*Fragment

	log     []Invalidation
	logSize int

	Stats Stats
}

// NewCache is the preferred method of initialisation for the Cache type.
func NewCache(hotThreshold int, maxOps int, logSize int) *Cache {
	c := &Cache{
		HotThreshold: hotThreshold,
		MaxOps:       maxOps,
		logSize:      logSize,
	}
	c.Reset()
	return c
}

// Reset removes all fragments and hit counts.
func (c *Cache) Reset() {
	c.fragments = make(map[uint32]*Fragment)
	c.hits = make(map[uint32]int)
	c.pageIndex = make(map[uint32][]*Fragment)
	c.pages = [numPages / 64]uint64{}
	c.building = nil
	c.log = c.log[:0]
	c.Stats = Stats{}
}

// Lookup the fragment for the address. Returns nil if the address is not yet
// hot. A fragment is returned in one of two states: compiled or pending. A
// pending fragment should be passed to Begin().
func (c *Cache) Lookup(pc uint32) *Fragment {
	if f, ok := c.fragments[pc]; ok {
		if f.routine == nil && f != c.building {
			f.reset()
		}
		return f
	}

	c.hits[pc]++
	if c.hits[pc] < c.HotThreshold {
		return nil
	}
	delete(c.hits, pc)

	f := &Fragment{
		EntryPC: pc,
		MinPC:   pc,
		MaxPC:   pc,
	}
	c.fragments[pc] = f
	c.Stats.Created++

	return f
}

// Next returns the compiled fragment for the address, using the memo for the
// exit point of the previous fragment where possible. Returns nil if there is
// no compiled fragment for the address. The hit count for the address is not
// affected.
func (c *Cache) Next(prev *Fragment, opsExecuted int, pc uint32) *Fragment {
	exit := opsExecuted - 1
	if prev != nil && exit >= 0 && exit < len(prev.nextFragments) {
		if m := prev.nextFragments[exit]; m != nil && m.EntryPC == pc && m.routine != nil {
			return m
		}
	}

	f, ok := c.fragments[pc]
	if !ok || f.routine == nil {
		return nil
	}

	if prev != nil && exit >= 0 && exit < len(prev.nextFragments) {
		prev.nextFragments[exit] = f
	}

	return f
}

// Building returns the fragment currently being built or nil.
func (c *Cache) Building() *Fragment {
	return c.building
}

// Begin building the fragment. Any fragment already being built is sealed
// first.
func (c *Cache) Begin(f *Fragment) {
	if c.building != nil {
		c.Seal()
	}
	if f.routine != nil {
		return
	}
	f.reset()
	c.building = f
}

// Append an op to the fragment being built. The pc argument is the address of
// the instruction and next is the program counter after the instruction was
// interpreted. If stop is true the fragment is sealed after the op is
// appended.
//
// If the instruction does not follow on from the previous op the fragment is
// sealed without the op.
func (c *Cache) Append(pc uint32, op Op, next uint32, stop bool) {
	f := c.building
	if f == nil {
		return
	}

	if len(f.ops) == 0 {
		if pc != f.EntryPC {
			c.Seal()
			return
		}
	} else if pc != f.lastNext {
		c.Seal()
		return
	}

	f.ops = append(f.ops, op)
	f.lastNext = next
	f.MinPC = min(f.MinPC, pc)
	f.MaxPC = max(f.MaxPC, pc)

	if stop || next != pc+4 || len(f.ops) >= c.MaxOps {
		c.Seal()
	}
}

// Barrier seals the fragment being built without appending anything. Used when
// the instruction at the current address must not be part of a fragment.
func (c *Cache) Barrier() {
	c.Seal()
}

// Seal the fragment being built. A fragment with no ops is abandoned and the
// address must become hot again before it is reconsidered.
func (c *Cache) Seal() {
	f := c.building
	if f == nil {
		return
	}
	c.building = nil

	if len(f.ops) == 0 {
		delete(c.fragments, f.EntryPC)
		c.Stats.Abandoned++
		return
	}

	f.seal()
	c.index(f)
	c.Stats.Compiled++
}

// Abort building the fragment. The fragment is reset to the pending state.
func (c *Cache) Abort() {
	if c.building != nil {
		c.building.reset()
		c.building = nil
	}
}

// BailOut marks the fragment being built as bailed out. Used when the CPU
// stops running before the fragment could be sealed. The fragment will be
// rebuilt when it is next reached.
func (c *Cache) BailOut() {
	if c.building != nil {
		c.building.BailedOut = true
		c.Stats.BailedOut++
		logger.Logf(logger.Allow, "dynarec", "bailed out of fragment at %08x", c.building.EntryPC)
		c.building = nil
	}
}

func pageRange(lo, hi uint32) (uint32, uint32) {
	return (lo & addrMask) >> pageShift, (hi & addrMask) >> pageShift
}

func (c *Cache) index(f *Fragment) {
	first, last := pageRange(f.MinPC, f.MaxPC)
	for p := first; p <= last; p++ {
		c.pages[p>>6] |= 1 << (p & 63)
		c.pageIndex[p] = append(c.pageIndex[p], f)
	}
}

func (c *Cache) unindex(f *Fragment) {
	first, last := pageRange(f.MinPC, f.MaxPC)
	for p := first; p <= last; p++ {
		l := slices.DeleteFunc(c.pageIndex[p], func(e *Fragment) bool {
			return e == f
		})
		if len(l) == 0 {
			delete(c.pageIndex, p)
			c.pages[p>>6] &^= 1 << (p & 63)
		} else {
			c.pageIndex[p] = l
		}
	}
}

// overlaps returns true if any instruction in the fragment overlaps the range
// [addr, end)
func overlaps(f *Fragment, addr uint32, end uint64) bool {
	return uint64(f.MinPC) < end && uint64(addr) < uint64(f.MaxPC)+4
}

// InvalidateRange invalidates every fragment containing an instruction that
// overlaps the address range. Returns the number of fragments invalidated.
func (c *Cache) InvalidateRange(addr uint32, length uint32, tag string) int {
	if length == 0 {
		return 0
	}

	end := uint64(addr) + uint64(length)
	first, last := pageRange(addr, uint32(end-1))

	var victims []*Fragment
	for p := first; p <= last; p++ {
		if c.pages[p>>6]&(1<<(p&63)) == 0 {
			continue
		}
		for _, f := range c.pageIndex[p] {
			if overlaps(f, addr, end) && !slices.Contains(victims, f) {
				victims = append(victims, f)
			}
		}
	}

	for _, f := range victims {
		c.unindex(f)
		f.reset()
	}

	// the fragment being built may already contain the written address
	if f := c.building; f != nil && len(f.ops) > 0 {
		if overlaps(f, addr, end) {
			f.reset()
			c.building = nil
			victims = append(victims, f)
		}
	}

	if len(victims) > 0 {
		c.Stats.Invalidated += len(victims)
		c.record(Invalidation{Tag: tag, Addr: addr, Length: length, Count: len(victims)})
	}

	return len(victims)
}

// InvalidateICache implements the memory.Invalidator interface. The address is
// a physical address and fragments are invalidated in both the KSEG0 and
// KSEG1 segments.
func (c *Cache) InvalidateICache(addr uint32, length uint32, tag string) {
	if length == 0 {
		return
	}

	addr &= addrMask

	// the fragment being built is not in the page bitmap
	if c.building == nil && length <= 1<<pageShift {
		p := addr >> pageShift
		q := ((addr + length - 1) & addrMask) >> pageShift
		if c.pages[p>>6]&(1<<(p&63)) == 0 && c.pages[q>>6]&(1<<(q&63)) == 0 {
			return
		}
	}

	c.InvalidateRange(0x80000000|addr, length, tag)
	c.InvalidateRange(0xa0000000|addr, length, tag)
}

func (c *Cache) record(inv Invalidation) {
	if c.logSize <= 0 {
		return
	}
	if len(c.log) >= c.logSize {
		c.log = append(c.log[:0], c.log[1:]...)
	}
	c.log = append(c.log, inv)
	logger.Log(logger.Allow, "dynarec", inv)
}

// InvalidationLog returns a copy of the most recent invalidations. Oldest
// first.
func (c *Cache) InvalidationLog() []Invalidation {
	return slices.Clone(c.log)
}

// Fragments returns a list of all fragments, sorted by entry address.
func (c *Cache) Fragments() []*Fragment {
	l := make([]*Fragment, 0, len(c.fragments))
	for _, f := range c.fragments {
		l = append(l, f)
	}
	slices.SortFunc(l, func(a, b *Fragment) int {
		switch {
		case a.EntryPC < b.EntryPC:
			return -1
		case a.EntryPC > b.EntryPC:
			return 1
		}
		return 0
	})
	return l
}

func (c *Cache) String() string {
	return fmt.Sprintf("fragments=%d compiled=%d invalidated=%d bailed=%d", len(c.fragments),
		c.Stats.Compiled, c.Stats.Invalidated, c.Stats.BailedOut)
}
