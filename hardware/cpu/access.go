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

package cpu

import (
	"encoding/binary"

	"github.com/gopher64/gopher64/hardware/cpu/tlb"
)

// translate a virtual address. If the translation fails an exception will
// have been raised.
func (c *CPU) translate(addr uint32, write bool) (uint32, bool) {
	if phys, ok := tlb.Unmapped(addr); ok {
		return phys, true
	}
	if write {
		return c.TLB.TranslateWrite(addr)
	}
	return c.TLB.TranslateRead(addr)
}

// dataAddress checks the alignment of the virtual address and translates it.
// If the function returns false an exception has been raised and the memory
// access should not take place.
func (c *CPU) dataAddress(addr uint32, size uint32, write bool) (uint32, bool) {
	if addr&(size-1) != 0 {
		c.addressError(addr, write)
		return 0, false
	}
	return c.translate(addr, write)
}

// fetch the instruction at the program counter.
func (c *CPU) fetch() (instruction, bool) {
	phys, ok := c.dataAddress(c.pc, 4, false)
	if !ok {
		return 0, false
	}
	c.fetchPhys = phys
	return instruction(c.readPhys32(phys)), true
}

// peek reads the instruction at the address without raising an exception.
func (c *CPU) peek(addr uint32) (instruction, bool) {
	phys, ok := c.TLB.TranslateInternal(addr)
	if !ok {
		return 0, false
	}
	return instruction(c.readPhys32(phys)), true
}

// physical memory access. the RDRAM fast path indexes the backing slice
// directly. all other addresses go through the memory dispatch

func (c *CPU) readPhys8(phys uint32) uint8 {
	if int(phys) < len(c.ram) {
		return c.ram[phys]
	}
	return c.mem.ReadU8(phys)
}

func (c *CPU) readPhys16(phys uint32) uint16 {
	if int(phys)+2 <= len(c.ram) {
		return binary.BigEndian.Uint16(c.ram[phys:])
	}
	return c.mem.ReadU16(phys)
}

func (c *CPU) readPhys32(phys uint32) uint32 {
	if int(phys)+4 <= len(c.ram) {
		return binary.BigEndian.Uint32(c.ram[phys:])
	}
	return c.mem.ReadU32(phys)
}

func (c *CPU) readPhys64(phys uint32) uint64 {
	if int(phys)+8 <= len(c.ram) {
		return binary.BigEndian.Uint64(c.ram[phys:])
	}
	return uint64(c.mem.ReadU32(phys))<<32 | uint64(c.mem.ReadU32(phys+4))
}

// stores to RDRAM tell the fragment cache about the write so that compiled
// code is invalidated when it is modified

func (c *CPU) writePhys8(phys uint32, v uint8) {
	if int(phys) < len(c.ram) {
		c.ram[phys] = v
		c.Cache.InvalidateICache(phys, 1, "store")
		return
	}
	c.mem.WriteU8(phys, v)
}

func (c *CPU) writePhys16(phys uint32, v uint16) {
	if int(phys)+2 <= len(c.ram) {
		binary.BigEndian.PutUint16(c.ram[phys:], v)
		c.Cache.InvalidateICache(phys, 2, "store")
		return
	}
	c.mem.WriteU16(phys, v)
}

func (c *CPU) writePhys32(phys uint32, v uint32) {
	if int(phys)+4 <= len(c.ram) {
		binary.BigEndian.PutUint32(c.ram[phys:], v)
		c.Cache.InvalidateICache(phys, 4, "store")
		return
	}
	c.mem.WriteU32(phys, v)
}

func (c *CPU) writePhys64(phys uint32, v uint64) {
	if int(phys)+8 <= len(c.ram) {
		binary.BigEndian.PutUint64(c.ram[phys:], v)
		c.Cache.InvalidateICache(phys, 8, "store")
		return
	}
	c.mem.WriteU32(phys, uint32(v>>32))
	c.mem.WriteU32(phys+4, uint32(v))
}

// virtual memory access. the boolean result is false if an exception was
// raised

func (c *CPU) load8(addr uint32) (uint8, bool) {
	phys, ok := c.dataAddress(addr, 1, false)
	if !ok {
		return 0, false
	}
	return c.readPhys8(phys), true
}

func (c *CPU) load16(addr uint32) (uint16, bool) {
	phys, ok := c.dataAddress(addr, 2, false)
	if !ok {
		return 0, false
	}
	return c.readPhys16(phys), true
}

func (c *CPU) load32(addr uint32) (uint32, bool) {
	phys, ok := c.dataAddress(addr, 4, false)
	if !ok {
		return 0, false
	}
	return c.readPhys32(phys), true
}

func (c *CPU) load64(addr uint32) (uint64, bool) {
	phys, ok := c.dataAddress(addr, 8, false)
	if !ok {
		return 0, false
	}
	return c.readPhys64(phys), true
}

func (c *CPU) store8(addr uint32, v uint8) {
	if phys, ok := c.dataAddress(addr, 1, true); ok {
		c.writePhys8(phys, v)
	}
}

func (c *CPU) store16(addr uint32, v uint16) {
	if phys, ok := c.dataAddress(addr, 2, true); ok {
		c.writePhys16(phys, v)
	}
}

func (c *CPU) store32(addr uint32, v uint32) {
	if phys, ok := c.dataAddress(addr, 4, true); ok {
		c.writePhys32(phys, v)
	}
}

func (c *CPU) store64(addr uint32, v uint64) {
	if phys, ok := c.dataAddress(addr, 8, true); ok {
		c.writePhys64(phys, v)
	}
}
