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

package tlb

import (
	"fmt"
	"strings"

	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/random"
)

// NumEntries is the number of entries in the TLB.
const NumEntries = 32

// ExceptionRaiser is implemented by the CPU. The TLB has loaded the relevant
// control registers before the function is called.
type ExceptionRaiser interface {
	RaiseTLBException(code uint32, vector uint32)
}

// Stats are collected for debugging.
type Stats struct {
	Lookups  int
	MRUHits  int
	Refills  int
	Invalids int
}

// TLB is the translation lookaside buffer.
type TLB struct {
	entries [NumEntries]Entry

	cop0 *registers.Cop0
	rand *random.Random
	exc  ExceptionRaiser

	// use the most-recently-used hint
	MRU bool
	mru int

	Stats Stats
}

// NewTLB is the preferred method of initialisation for the TLB type.
func NewTLB(cop0 *registers.Cop0, rand *random.Random, exc ExceptionRaiser) *TLB {
	tlb := &TLB{
		cop0: cop0,
		rand: rand,
		exc:  exc,
	}
	tlb.Reset()
	return tlb
}

// Reset the TLB. Each entry is pointed at a distinct page in the unmapped
// KSEG0 segment so that no entry can match an address that is translated
// through the TLB.
func (tlb *TLB) Reset() {
	for i := range tlb.entries {
		tlb.entries[i].update(0, 0x80000000+uint32(i)*0x2000, 0, 0)
	}
	tlb.mru = 0
	tlb.Stats = Stats{}
}

// Entries returns a copy of the TLB entries.
func (tlb *TLB) Entries() [NumEntries]Entry {
	return tlb.entries
}

func (tlb *TLB) String() string {
	s := strings.Builder{}
	for i, e := range tlb.entries {
		s.WriteString(fmt.Sprintf("%02d: %s\n", i, e))
	}
	return s.String()
}

// find returns the index of the first entry that matches the address for the
// current ASID, or -1 if there is no match.
func (tlb *TLB) find(addr uint32) int {
	tlb.Stats.Lookups++
	asid := tlb.cop0.ASID()

	if tlb.MRU && tlb.entries[tlb.mru].match(addr, asid) {
		i := 0
		for ; i < tlb.mru; i++ {
			if tlb.entries[i].match(addr, asid) {
				break
			}
		}
		if i == tlb.mru {
			tlb.Stats.MRUHits++
			return i
		}
		tlb.mru = i
		return i
	}

	for i := range tlb.entries {
		if tlb.entries[i].match(addr, asid) {
			tlb.mru = i
			return i
		}
	}

	return -1
}

// TranslateInternal translates a virtual address without raising an
// exception. Returns false if the address cannot be translated.
func (tlb *TLB) TranslateInternal(addr uint32) (uint32, bool) {
	if phys, ok := Unmapped(addr); ok {
		return phys, true
	}
	i := tlb.find(addr)
	if i < 0 {
		return 0, false
	}
	e := &tlb.entries[i]
	lo, base := e.half(addr)
	if lo&registers.EntryLoV == 0 {
		return 0, false
	}
	return base | (addr & e.mask2), true
}

// TranslateRead translates a virtual address for a load or an instruction
// fetch. If the translation fails an exception is raised and the function
// returns false.
func (tlb *TLB) TranslateRead(addr uint32) (uint32, bool) {
	return tlb.translate(addr, false)
}

// TranslateWrite translates a virtual address for a store. If the
// translation fails an exception is raised and the function returns false.
func (tlb *TLB) TranslateWrite(addr uint32) (uint32, bool) {
	return tlb.translate(addr, true)
}

func (tlb *TLB) translate(addr uint32, write bool) (uint32, bool) {
	code := uint32(registers.ExcTLBL)
	if write {
		code = registers.ExcTLBS
	}

	i := tlb.find(addr)
	if i < 0 {
		tlb.Stats.Refills++
		tlb.fault(addr, code, true)
		return 0, false
	}

	e := &tlb.entries[i]
	lo, base := e.half(addr)

	if lo&registers.EntryLoV == 0 {
		tlb.Stats.Invalids++
		tlb.fault(addr, code, false)
		return 0, false
	}

	return base | (addr & e.mask2), true
}

// fault loads the control registers with the faulting address and raises the
// exception.
func (tlb *TLB) fault(addr uint32, code uint32, refill bool) {
	c := tlb.cop0
	c.Reg[registers.BadVAddr] = addr
	c.Reg[registers.Context] = (c.Reg[registers.Context] & registers.ContextPTE) | ((addr >> 9) & registers.ContextBadVPN)
	c.Reg[registers.EntryHi] = (addr & registers.EntryHiVPN2) | c.ASID()

	vector := uint32(registers.VectorGeneral)
	if refill && c.Reg[registers.Status]&registers.StatusEXL == 0 {
		vector = registers.VectorTLBRefill
	}

	tlb.exc.RaiseTLBException(code, c.Vector(vector))
}

// WriteIndex writes the entry selected by the Index register with the
// contents of the PageMask, EntryHi, EntryLo0 and EntryLo1 registers. The
// TLBWI instruction.
func (tlb *TLB) WriteIndex() {
	tlb.write(int(tlb.cop0.Reg[registers.Index] & 0x1f))
}

// WriteRandom writes a randomly selected entry in the range [Wired, 31]. The
// TLBWR instruction.
func (tlb *TLB) WriteRandom() {
	tlb.write(int(tlb.RandomIndex()))
}

// RandomIndex selects an index in the range [Wired, 31] and loads it into the
// Random register. The index depends only on the emulated time.
func (tlb *TLB) RandomIndex() uint32 {
	wired := int(tlb.cop0.Reg[registers.Wired])
	i := registers.MaxTLBIndex
	if wired < registers.MaxTLBIndex {
		i = wired + tlb.rand.Rewindable(registers.MaxTLBIndex-wired+1)
	}
	tlb.cop0.SetRandom(uint32(i))
	return tlb.cop0.Reg[registers.Random]
}

func (tlb *TLB) write(i int) {
	c := tlb.cop0
	tlb.entries[i].update(c.Reg[registers.PageMask], c.Reg[registers.EntryHi],
		c.Reg[registers.EntryLo0], c.Reg[registers.EntryLo1])
	logger.Logf(logger.Allow, "tlb", "write %02d: %s", i, tlb.entries[i])
}

// Read loads the PageMask, EntryHi, EntryLo0 and EntryLo1 registers from the
// entry selected by the Index register. The TLBR instruction.
func (tlb *TLB) Read() {
	c := tlb.cop0
	e := &tlb.entries[c.Reg[registers.Index]&0x1f]

	var g uint32
	if e.Global {
		g = registers.EntryLoG
	}

	c.Reg[registers.PageMask] = e.PageMask
	c.Reg[registers.EntryHi] = e.EntryHi
	c.Reg[registers.EntryLo0] = e.EntryLo0 | g
	c.Reg[registers.EntryLo1] = e.EntryLo1 | g
}

// Probe searches for an entry that matches the EntryHi register. The Index
// register is loaded with the index of the entry or with the probe failure
// bit set. The TLBP instruction.
func (tlb *TLB) Probe() {
	c := tlb.cop0
	hi := c.Reg[registers.EntryHi]
	asid := hi & registers.EntryHiASID

	c.Reg[registers.Index] = registers.IndexProbe
	for i := range tlb.entries {
		e := &tlb.entries[i]
		if hi&e.vpnmask == e.addrcheck && (e.Global || e.EntryHi&registers.EntryHiASID == asid) {
			c.Reg[registers.Index] = uint32(i)
			return
		}
	}
}
