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

	"github.com/gopher64/gopher64/hardware/cpu/registers"
)

// Entry is a single TLB entry.
type Entry struct {
	PageMask uint32
	EntryHi  uint32
	EntryLo0 uint32
	EntryLo1 uint32
	Global   bool

	// derived fields. see update()
	mask      uint32
	mask2     uint32
	vpnmask   uint32
	addrcheck uint32
	pfnehi    uint32
	pfnohi    uint32
	checkbit  uint32
}

func (e Entry) String() string {
	g := ' '
	if e.Global {
		g = 'G'
	}
	return fmt.Sprintf("%c mask=%08x hi=%08x lo0=%08x lo1=%08x", g, e.PageMask, e.EntryHi, e.EntryLo0, e.EntryLo1)
}

// update the entry from register values. the values are kept as written so
// that Read() returns them unchanged. the global bit is the logical AND of
// the global bits in the two EntryLo values.
func (e *Entry) update(pagemask, hi, lo0, lo1 uint32) {
	e.PageMask = pagemask
	e.EntryHi = hi
	e.EntryLo0 = lo0
	e.EntryLo1 = lo1
	e.Global = lo0&lo1&registers.EntryLoG != 0

	pagemask &= 0x01ffe000
	e.mask = pagemask | ^uint32(registers.EntryHiVPN2)
	e.mask2 = e.mask >> 1
	e.vpnmask = ^e.mask
	e.addrcheck = hi & e.vpnmask
	e.pfnehi = ((lo0 &^ registers.EntryLoG) << 6) & (e.vpnmask >> 1)
	e.pfnohi = ((lo1 &^ registers.EntryLoG) << 6) & (e.vpnmask >> 1)

	switch pagemask {
	case 0x00000000:
		e.checkbit = 0x00001000 // 4K
	case 0x00006000:
		e.checkbit = 0x00004000 // 16K
	case 0x0001e000:
		e.checkbit = 0x00010000 // 64K
	case 0x0007e000:
		e.checkbit = 0x00040000 // 256K
	case 0x001fe000:
		e.checkbit = 0x00100000 // 1M
	case 0x007fe000:
		e.checkbit = 0x00400000 // 4M
	case 0x01ffe000:
		e.checkbit = 0x01000000 // 16M
	default:
		// undefined page mask. use the lowest bit above the mask so that the
		// odd/even selection is at least consistent with the vpnmask
		e.checkbit = (e.vpnmask & -e.vpnmask) >> 1
	}
}

// match returns true if the entry matches the virtual address for the ASID.
func (e *Entry) match(addr uint32, asid uint32) bool {
	if addr&e.vpnmask != e.addrcheck {
		return false
	}
	return e.Global || e.EntryHi&registers.EntryHiASID == asid
}

// half returns the EntryLo value and physical page base for the half of the
// entry that the address falls into.
func (e *Entry) half(addr uint32) (lo uint32, base uint32) {
	if addr&e.checkbit != 0 {
		return e.EntryLo1, e.pfnohi
	}
	return e.EntryLo0, e.pfnehi
}

// Size returns the size of one of the two pages mapped by the entry.
func (e *Entry) Size() uint32 {
	return e.checkbit
}
