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

import (
	"encoding/binary"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/logger"
)

// Sentinel error patterns.
const (
	UnmappedAddress = "memory: unmapped address: %08x"
	OverlappingArea = "memory: %s overlaps %s"
	ImageTooLarge   = "memory: image of %d bytes does not fit at %08x"
)

type mapping struct {
	area    Area
	handler Handler
}

// Dispatch maps physical addresses to RDRAM or to a device Handler. It
// implements the Bus interface.
type Dispatch struct {
	ram  *RDRAM
	maps []mapping

	subscribers []Invalidator

	// number of reads from unmapped addresses. logging is limited to the
	// first occurrence of a run of unmapped accesses
	unmapped int
}

// NewDispatch is the preferred method of initialisation for the Dispatch type.
// RDRAM is mapped from address zero.
func NewDispatch(ram *RDRAM) *Dispatch {
	return &Dispatch{
		ram: ram,
	}
}

// RAM returns the RDRAM instance. The CPU uses the backing slice directly for
// the fast path.
func (d *Dispatch) RAM() *RDRAM {
	return d.ram
}

// Map a Handler to the physical address range origin to memtop inclusive.
// Ranges must not overlap RDRAM or each other.
func (d *Dispatch) Map(label string, origin uint32, memtop uint32, h Handler) error {
	a := Area{Label: label, Origin: origin, Memtop: memtop}

	if d.ram != nil && d.ram.Size() > 0 {
		r := Area{Label: "RDRAM", Origin: 0, Memtop: uint32(d.ram.Size() - 1)}
		if a.Overlaps(r) {
			return curated.Errorf(OverlappingArea, label, r.Label)
		}
	}
	for _, m := range d.maps {
		if a.Overlaps(m.area) {
			return curated.Errorf(OverlappingArea, label, m.area.Label)
		}
	}

	d.maps = append(d.maps, mapping{area: a, handler: h})
	logger.Logf(logger.Allow, "memory", "mapped %s: %08x to %08x", label, origin, memtop)

	return nil
}

// Areas returns a list of mapped areas, including RDRAM.
func (d *Dispatch) Areas() []Area {
	var a []Area
	if d.ram != nil {
		a = append(a, Area{Label: "RDRAM", Origin: 0, Memtop: uint32(d.ram.Size() - 1)})
	}
	for _, m := range d.maps {
		a = append(a, m.area)
	}
	return a
}

// Subscribe adds an Invalidator to the list of types to be told about changes
// to memory that may hold instructions.
func (d *Dispatch) Subscribe(inv Invalidator) {
	d.subscribers = append(d.subscribers, inv)
}

// InvalidateICache forwards the invalidation notice to all subscribers. Devices
// that write to RDRAM by DMA should call this function for the written range.
func (d *Dispatch) InvalidateICache(addr uint32, length uint32, tag string) {
	for _, s := range d.subscribers {
		s.InvalidateICache(addr, length, tag)
	}
}

// LoadImage copies data into RDRAM at the physical address and invalidates
// the range.
func (d *Dispatch) LoadImage(addr uint32, data []byte) error {
	ram := d.ram.Bytes()
	if uint64(addr)+uint64(len(data)) > uint64(len(ram)) {
		return curated.Errorf(ImageTooLarge, len(data), addr)
	}
	copy(ram[addr:], data)
	d.InvalidateICache(addr, uint32(len(data)), "load")
	return nil
}

// inRAM returns true if the n bytes starting at addr are inside RDRAM.
func (d *Dispatch) inRAM(addr uint32, n uint32) bool {
	return d.ram != nil && uint64(addr)+uint64(n) <= uint64(d.ram.Size())
}

func (d *Dispatch) handler(addr uint32) Handler {
	for _, m := range d.maps {
		if m.area.Contains(addr) {
			return m.handler
		}
	}
	return nil
}

func (d *Dispatch) unmappedAccess(addr uint32) {
	if d.unmapped == 0 {
		logger.Log(logger.Allow, "memory", curated.Errorf(UnmappedAddress, addr))
	}
	d.unmapped++
}

// ReadU8 implements the Bus interface.
func (d *Dispatch) ReadU8(addr uint32) uint8 {
	if d.inRAM(addr, 1) {
		return d.ram.data[addr]
	}
	if h := d.handler(addr); h != nil {
		d.unmapped = 0
		return h.ReadU8(addr)
	}
	d.unmappedAccess(addr)
	return 0
}

// ReadU16 implements the Bus interface.
func (d *Dispatch) ReadU16(addr uint32) uint16 {
	if d.inRAM(addr, 2) {
		return binary.BigEndian.Uint16(d.ram.data[addr:])
	}
	if h := d.handler(addr); h != nil {
		d.unmapped = 0
		return h.ReadU16(addr)
	}
	d.unmappedAccess(addr)
	return 0
}

// ReadU32 implements the Bus interface.
func (d *Dispatch) ReadU32(addr uint32) uint32 {
	if d.inRAM(addr, 4) {
		return binary.BigEndian.Uint32(d.ram.data[addr:])
	}
	if h := d.handler(addr); h != nil {
		d.unmapped = 0
		return h.ReadU32(addr)
	}
	d.unmappedAccess(addr)
	return 0
}

// WriteU8 implements the Bus interface.
func (d *Dispatch) WriteU8(addr uint32, val uint8) {
	if d.inRAM(addr, 1) {
		d.ram.data[addr] = val
		d.InvalidateICache(addr, 1, "write")
		return
	}
	if h := d.handler(addr); h != nil {
		h.WriteU8(addr, val)
		return
	}
	d.unmappedAccess(addr)
}

// WriteU16 implements the Bus interface.
func (d *Dispatch) WriteU16(addr uint32, val uint16) {
	if d.inRAM(addr, 2) {
		binary.BigEndian.PutUint16(d.ram.data[addr:], val)
		d.InvalidateICache(addr, 2, "write")
		return
	}
	if h := d.handler(addr); h != nil {
		h.WriteU16(addr, val)
		return
	}
	d.unmappedAccess(addr)
}

// WriteU32 implements the Bus interface.
func (d *Dispatch) WriteU32(addr uint32, val uint32) {
	if d.inRAM(addr, 4) {
		binary.BigEndian.PutUint32(d.ram.data[addr:], val)
		d.InvalidateICache(addr, 4, "write")
		return
	}
	if h := d.handler(addr); h != nil {
		h.WriteU32(addr, val)
		return
	}
	d.unmappedAccess(addr)
}
