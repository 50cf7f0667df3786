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

package memory

// Bus is the byte-addressable interface to physical memory.
type Bus interface {
	ReadU8(addr uint32) uint8
	ReadU16(addr uint32) uint16
	ReadU32(addr uint32) uint32
	WriteU8(addr uint32, val uint8)
	WriteU16(addr uint32, val uint16)
	WriteU32(addr uint32, val uint32)
}

// Handler is implemented by memory-mapped devices. The address passed to the
// handler is the full physical address and not an offset into the device.
type Handler interface {
	Bus
}

// Invalidator is implemented by types that must be told when memory that may
// hold instructions has changed. The tag describes the source of the change
// and is used for logging only.
type Invalidator interface {
	InvalidateICache(addr uint32, length uint32, tag string)
}

// Area describes a mapped region of physical memory.
type Area struct {
	Label  string
	Origin uint32
	Memtop uint32
}

// Contains returns true if address is inside the area.
func (a Area) Contains(addr uint32) bool {
	return addr >= a.Origin && addr <= a.Memtop
}

// Overlaps returns true if the two areas share at least one address.
func (a Area) Overlaps(b Area) bool {
	return a.Origin <= b.Memtop && b.Origin <= a.Memtop
}
