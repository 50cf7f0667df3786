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

// Virtual address segments in 32bit mode.
const (
	KUSEG = 0x00000000
	KSEG0 = 0x80000000
	KSEG1 = 0xa0000000
	KSSEG = 0xc0000000
	KSEG3 = 0xe0000000

	segmentMask = 0x1fffffff
)

// Unmapped returns the physical address for addresses in the KSEG0 and KSEG1
// segments. These segments are not translated by the TLB. Returns false for
// all other addresses.
func Unmapped(addr uint32) (uint32, bool) {
	if addr >= KSEG0 && addr < KSSEG {
		return addr & segmentMask, true
	}
	return 0, false
}

// KSEG0Alias returns the KSEG0 virtual address for a physical address.
func KSEG0Alias(phys uint32) uint32 {
	return KSEG0 | (phys & segmentMask)
}

// KSEG1Alias returns the KSEG1 virtual address for a physical address.
func KSEG1Alias(phys uint32) uint32 {
	return KSEG1 | (phys & segmentMask)
}
