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

package tlb_test

import (
	"testing"

	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/cpu/tlb"
	"github.com/gopher64/gopher64/random"
	"github.com/gopher64/gopher64/test"
)

type raised struct {
	code   uint32
	vector uint32
}

type raiser struct {
	log []raised
}

func (r *raiser) RaiseTLBException(code uint32, vector uint32) {
	r.log = append(r.log, raised{code: code, vector: vector})
}

type clock uint64

func (c clock) Cycles() uint64 {
	return uint64(c)
}

func newTLB() (*tlb.TLB, *registers.Cop0, *raiser) {
	cop0 := &registers.Cop0{}
	cop0.Reset()
	cop0.Reg[registers.Status] = 0
	rnd := random.NewRandom(clock(0))
	rnd.ZeroSeed = true
	r := &raiser{}
	return tlb.NewTLB(cop0, rnd, r), cop0, r
}

func writeEntry(t *tlb.TLB, cop0 *registers.Cop0, index int, pagemask, hi, lo0, lo1 uint32) {
	cop0.Reg[registers.Index] = uint32(index)
	cop0.Reg[registers.PageMask] = pagemask
	cop0.Reg[registers.EntryHi] = hi
	cop0.Reg[registers.EntryLo0] = lo0
	cop0.Reg[registers.EntryLo1] = lo1
	t.WriteIndex()
}

// the pfn field of an EntryLo value for a physical address
func pfn(phys uint32) uint32 {
	return (phys >> 12) << 6
}

func TestRoundTrip(t *testing.T) {
	tl, cop0, _ := newTLB()

	writeEntry(tl, cop0, 5, 0x6000, 0x00410000|0x21, pfn(0x100000)|registers.EntryLoV|registers.EntryLoG,
		pfn(0x104000)|registers.EntryLoV|registers.EntryLoD|registers.EntryLoG)

	cop0.Reg[registers.PageMask] = 0
	cop0.Reg[registers.EntryHi] = 0
	cop0.Reg[registers.EntryLo0] = 0
	cop0.Reg[registers.EntryLo1] = 0

	cop0.Reg[registers.Index] = 5
	tl.Read()
	test.ExpectEquality(t, cop0.Reg[registers.PageMask], uint32(0x6000))
	test.ExpectEquality(t, cop0.Reg[registers.EntryHi], uint32(0x00410021))
	test.ExpectEquality(t, cop0.Reg[registers.EntryLo0], pfn(0x100000)|registers.EntryLoV|registers.EntryLoG)
	test.ExpectEquality(t, cop0.Reg[registers.EntryLo1], pfn(0x104000)|registers.EntryLoV|registers.EntryLoD|registers.EntryLoG)

	e := tl.Entries()[5]
	test.ExpectEquality(t, e.Global, true)
	test.ExpectEquality(t, e.Size(), uint32(0x4000))

	// global bit is only set if both halves are global
	writeEntry(tl, cop0, 6, 0, 0x00500000, pfn(0x200000)|registers.EntryLoG, pfn(0x201000))
	cop0.Reg[registers.Index] = 6
	tl.Read()
	test.ExpectEquality(t, cop0.Reg[registers.EntryLo0], pfn(0x200000))
	test.ExpectEquality(t, cop0.Reg[registers.EntryLo1], pfn(0x201000))

	// values are read back as written, including EntryHi bits covered by the
	// page mask and a global bit set in only one half
	tl, cop0, _ = newTLB()
	cop0.Write(registers.PageMask, 0x6000)
	cop0.Write(registers.EntryHi, 0x00416021)
	cop0.Write(registers.EntryLo0, pfn(0x100000)|registers.EntryLoV|registers.EntryLoG)
	cop0.Write(registers.EntryLo1, pfn(0x104000)|registers.EntryLoV)
	cop0.Reg[registers.Index] = 7
	tl.WriteIndex()

	cop0.Reg[registers.PageMask] = 0
	cop0.Reg[registers.EntryHi] = 0
	cop0.Reg[registers.EntryLo0] = 0
	cop0.Reg[registers.EntryLo1] = 0

	cop0.Reg[registers.Index] = 7
	tl.Read()
	test.ExpectEquality(t, cop0.Reg[registers.PageMask], uint32(0x6000))
	test.ExpectEquality(t, cop0.Reg[registers.EntryHi], uint32(0x00416021))
	test.ExpectEquality(t, cop0.Reg[registers.EntryLo0], pfn(0x100000)|registers.EntryLoV|registers.EntryLoG)
	test.ExpectEquality(t, cop0.Reg[registers.EntryLo1], pfn(0x104000)|registers.EntryLoV)
	test.ExpectEquality(t, tl.Entries()[7].Global, false)

	// the covered EntryHi bits take no part in matching
	cop0.Reg[registers.EntryHi] = 0x21
	phys, ok := tl.TranslateRead(0x00414abc)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x104abc))
}

func TestTranslate(t *testing.T) {
	tl, cop0, r := newTLB()

	// 4K pages at 0x00400000 (even) and 0x00401000 (odd)
	writeEntry(tl, cop0, 0, 0, 0x00400000, pfn(0x100000)|registers.EntryLoV|registers.EntryLoD,
		pfn(0x300000)|registers.EntryLoV)

	phys, ok := tl.TranslateRead(0x00400123)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x100123))

	phys, ok = tl.TranslateRead(0x00401ffc)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x300ffc))

	phys, ok = tl.TranslateWrite(0x00400010)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x100010))
	test.ExpectEquality(t, len(r.log), 0)

	// the odd page is valid but not dirty. stores still translate
	phys, ok = tl.TranslateWrite(0x00401040)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x300040))
	test.ExpectEquality(t, len(r.log), 0)

	// 16K pages
	writeEntry(tl, cop0, 1, 0x6000, 0x00410000, 0, pfn(0x200000)|registers.EntryLoV)
	phys, ok = tl.TranslateRead(0x00414abc)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x200abc))

	// the even half of the 16K entry is invalid
	_, ok = tl.TranslateRead(0x00410abc)
	test.ExpectEquality(t, ok, false)
	test.DemandEquality(t, len(r.log), 1)
	test.ExpectEquality(t, r.log[0], raised{code: registers.ExcTLBL, vector: registers.VectorGeneral})
	test.ExpectEquality(t, cop0.Reg[registers.BadVAddr], uint32(0x00410abc))

	// unmapped segments are not translated by the TLB
	phys, ok = tl.TranslateInternal(0xa4001000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x04001000))
}

func TestASID(t *testing.T) {
	tl, cop0, r := newTLB()

	writeEntry(tl, cop0, 0, 0, 0x00400000|0x10, pfn(0x100000)|registers.EntryLoV, 0)

	cop0.Reg[registers.EntryHi] = 0x10
	_, ok := tl.TranslateRead(0x00400000)
	test.ExpectEquality(t, ok, true)

	cop0.Reg[registers.EntryHi] = 0x11
	_, ok = tl.TranslateRead(0x00400000)
	test.ExpectEquality(t, ok, false)
	test.DemandEquality(t, len(r.log), 1)
	test.ExpectEquality(t, r.log[0], raised{code: registers.ExcTLBL, vector: registers.VectorTLBRefill})

	// the faulting address is loaded into EntryHi with the current ASID
	test.ExpectEquality(t, cop0.Reg[registers.EntryHi], uint32(0x00400011))
	test.ExpectEquality(t, cop0.Reg[registers.Context], uint32((0x00400000>>9)&registers.ContextBadVPN))
}

func TestMiss(t *testing.T) {
	tl, cop0, r := newTLB()

	_, ok := tl.TranslateWrite(0x12345678)
	test.ExpectEquality(t, ok, false)
	test.DemandEquality(t, len(r.log), 1)
	test.ExpectEquality(t, r.log[0], raised{code: registers.ExcTLBS, vector: registers.VectorTLBRefill})
	test.ExpectEquality(t, cop0.Reg[registers.BadVAddr], uint32(0x12345678))
	test.ExpectEquality(t, cop0.Reg[registers.EntryHi], uint32(0x12344000))

	// a miss while EXL is set uses the general vector
	cop0.Reg[registers.Status] = registers.StatusEXL
	_, ok = tl.TranslateRead(0x12345678)
	test.ExpectEquality(t, ok, false)
	test.DemandEquality(t, len(r.log), 1)
	test.ExpectEquality(t, r.log[0], raised{code: registers.ExcTLBL, vector: registers.VectorGeneral})

	// and with BEV set, the bootstrap vectors
	cop0.Reg[registers.Status] = registers.StatusBEV
	_, ok = tl.TranslateRead(0x12345678)
	test.ExpectEquality(t, ok, false)
	test.DemandEquality(t, len(r.log), 3)
	test.ExpectEquality(t, r.log[2], raised{code: registers.ExcTLBL, vector: registers.VectorBootTLB})

	// internal translation never raises an exception
	_, ok = tl.TranslateInternal(0x12345678)
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, len(r.log), 3)
}

// every address in the mapped segments either translates or raises exactly
// one exception
func TestTotality(t *testing.T) {
	tl, cop0, r := newTLB()
	writeEntry(tl, cop0, 3, 0, 0x00400000, pfn(0x100000)|registers.EntryLoV, 0)
	writeEntry(tl, cop0, 4, 0x1fe000, 0xc0000000, pfn(0x200000)|registers.EntryLoV|registers.EntryLoD, pfn(0x300000))

	for addr := uint64(0); addr < 0x100000000; addr += 0x1234567 {
		a := uint32(addr)
		if _, ok := tlb.Unmapped(a); ok {
			continue
		}
		before := len(r.log)
		_, ok := tl.TranslateRead(a)
		if ok {
			test.ExpectEquality(t, len(r.log), before, a)
		} else {
			test.ExpectEquality(t, len(r.log), before+1, a)
		}
	}
}

func TestProbe(t *testing.T) {
	tl, cop0, _ := newTLB()
	writeEntry(tl, cop0, 7, 0, 0x00400000|0x05, pfn(0x100000)|registers.EntryLoV, 0)

	cop0.Reg[registers.EntryHi] = 0x00400005
	tl.Probe()
	test.ExpectEquality(t, cop0.Reg[registers.Index], uint32(7))

	cop0.Reg[registers.EntryHi] = 0x00400006
	tl.Probe()
	test.ExpectEquality(t, cop0.Reg[registers.Index], uint32(registers.IndexProbe))
}

func TestWriteRandom(t *testing.T) {
	tl, cop0, _ := newTLB()
	cop0.Write(registers.Wired, 28)

	for range 20 {
		cop0.Reg[registers.PageMask] = 0
		cop0.Reg[registers.EntryHi] = 0x00400000
		cop0.Reg[registers.EntryLo0] = pfn(0x100000) | registers.EntryLoV
		cop0.Reg[registers.EntryLo1] = 0
		tl.WriteRandom()
		r := cop0.Reg[registers.Random]
		test.ExpectSuccess(t, r >= 28 && r <= 31)
		test.ExpectEquality(t, tl.Entries()[r].EntryHi, uint32(0x00400000))
	}

	// wired covers the entire TLB
	cop0.Write(registers.Wired, 40)
	tl.WriteRandom()
	test.ExpectEquality(t, cop0.Reg[registers.Random], uint32(31))
}

// the MRU hint must never change the result of a lookup
func TestMRU(t *testing.T) {
	tl, cop0, _ := newTLB()
	tl.MRU = true

	writeEntry(tl, cop0, 10, 0, 0x00400000, pfn(0x100000)|registers.EntryLoV, 0)

	phys, ok := tl.TranslateRead(0x00400000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x100000))

	phys, ok = tl.TranslateRead(0x00400004)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x100004))
	test.ExpectEquality(t, tl.Stats.MRUHits, 1)

	// an overlapping entry at a lower index takes precedence over the hint
	writeEntry(tl, cop0, 2, 0, 0x00400000, pfn(0x500000)|registers.EntryLoV, 0)
	phys, ok = tl.TranslateRead(0x00400008)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x500008))

	tl.MRU = false
	phys, ok = tl.TranslateRead(0x00400008)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, phys, uint32(0x500008))
}
