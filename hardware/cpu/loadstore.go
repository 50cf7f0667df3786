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
	"github.com/gopher64/gopher64/hardware/cpu/registers"
)

// effective address of a load or store
func (c *CPU) address(i instruction) uint32 {
	return c.GPR.Lo(i.rs()) + uint32(i.simm())
}

func (c *CPU) opLB(i instruction) {
	if v, ok := c.load8(c.address(i)); ok {
		c.GPR.Set(i.rt(), uint64(int64(int8(v))))
	}
}

func (c *CPU) opLBU(i instruction) {
	if v, ok := c.load8(c.address(i)); ok {
		c.GPR.Set(i.rt(), uint64(v))
	}
}

func (c *CPU) opLH(i instruction) {
	if v, ok := c.load16(c.address(i)); ok {
		c.GPR.Set(i.rt(), uint64(int64(int16(v))))
	}
}

func (c *CPU) opLHU(i instruction) {
	if v, ok := c.load16(c.address(i)); ok {
		c.GPR.Set(i.rt(), uint64(v))
	}
}

func (c *CPU) opLW(i instruction) {
	if v, ok := c.load32(c.address(i)); ok {
		c.GPR.SetSignExtended(i.rt(), v)
	}
}

func (c *CPU) opLWU(i instruction) {
	if v, ok := c.load32(c.address(i)); ok {
		c.GPR.SetZeroExtended(i.rt(), v)
	}
}

func (c *CPU) opLD(i instruction) {
	if v, ok := c.load64(c.address(i)); ok {
		c.GPR.Set(i.rt(), v)
	}
}

func (c *CPU) opSB(i instruction) {
	c.store8(c.address(i), uint8(c.GPR.Get(i.rt())))
}

func (c *CPU) opSH(i instruction) {
	c.store16(c.address(i), uint16(c.GPR.Get(i.rt())))
}

func (c *CPU) opSW(i instruction) {
	c.store32(c.address(i), c.GPR.Lo(i.rt()))
}

func (c *CPU) opSD(i instruction) {
	c.store64(c.address(i), c.GPR.Get(i.rt()))
}

// unaligned loads and stores. the aligned word (or doubleword) containing the
// address is read and merged with the register. memory is big-endian so LWL
// loads the most significant bytes of the register

func (c *CPU) opLWL(i instruction) {
	addr := c.address(i)
	v, ok := c.load32(addr &^ 3)
	if !ok {
		return
	}
	shift := (addr & 3) * 8
	r := (c.GPR.Lo(i.rt()) &^ (0xffffffff << shift)) | (v << shift)
	c.GPR.SetSignExtended(i.rt(), r)
}

func (c *CPU) opLWR(i instruction) {
	addr := c.address(i)
	v, ok := c.load32(addr &^ 3)
	if !ok {
		return
	}
	shift := (3 - addr&3) * 8
	r := (c.GPR.Lo(i.rt()) &^ (0xffffffff >> shift)) | (v >> shift)
	c.GPR.SetSignExtended(i.rt(), r)
}

func (c *CPU) opLDL(i instruction) {
	addr := c.address(i)
	v, ok := c.load64(addr &^ 7)
	if !ok {
		return
	}
	shift := (addr & 7) * 8
	c.GPR.Set(i.rt(), (c.GPR.Get(i.rt())&^(0xffffffffffffffff<<shift))|(v<<shift))
}

func (c *CPU) opLDR(i instruction) {
	addr := c.address(i)
	v, ok := c.load64(addr &^ 7)
	if !ok {
		return
	}
	shift := (7 - addr&7) * 8
	c.GPR.Set(i.rt(), (c.GPR.Get(i.rt())&^(0xffffffffffffffff>>shift))|(v>>shift))
}

func (c *CPU) opSWL(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr&^3, 4, true)
	if !ok {
		return
	}
	shift := (addr & 3) * 8
	v := (c.readPhys32(phys) &^ (0xffffffff >> shift)) | (c.GPR.Lo(i.rt()) >> shift)
	c.writePhys32(phys, v)
}

func (c *CPU) opSWR(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr&^3, 4, true)
	if !ok {
		return
	}
	shift := (3 - addr&3) * 8
	v := (c.readPhys32(phys) &^ (0xffffffff << shift)) | (c.GPR.Lo(i.rt()) << shift)
	c.writePhys32(phys, v)
}

func (c *CPU) opSDL(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr&^7, 8, true)
	if !ok {
		return
	}
	shift := (addr & 7) * 8
	v := (c.readPhys64(phys) &^ (0xffffffffffffffff >> shift)) | (c.GPR.Get(i.rt()) >> shift)
	c.writePhys64(phys, v)
}

func (c *CPU) opSDR(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr&^7, 8, true)
	if !ok {
		return
	}
	shift := (7 - addr&7) * 8
	v := (c.readPhys64(phys) &^ (0xffffffffffffffff << shift)) | (c.GPR.Get(i.rt()) << shift)
	c.writePhys64(phys, v)
}

// load linked and store conditional

func (c *CPU) opLL(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr, 4, false)
	if !ok {
		return
	}
	c.GPR.SetSignExtended(i.rt(), c.readPhys32(phys))
	c.Cop0.LLBit = true
	c.Cop0.Reg[registers.LLAddr] = phys >> 4
}

func (c *CPU) opLLD(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr, 8, false)
	if !ok {
		return
	}
	c.GPR.Set(i.rt(), c.readPhys64(phys))
	c.Cop0.LLBit = true
	c.Cop0.Reg[registers.LLAddr] = phys >> 4
}

func (c *CPU) opSC(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr, 4, true)
	if !ok {
		return
	}
	if c.Cop0.LLBit {
		c.writePhys32(phys, c.GPR.Lo(i.rt()))
	}
	c.GPR.Set(i.rt(), boolToReg(c.Cop0.LLBit))
}

func (c *CPU) opSCD(i instruction) {
	addr := c.address(i)
	phys, ok := c.dataAddress(addr, 8, true)
	if !ok {
		return
	}
	if c.Cop0.LLBit {
		c.writePhys64(phys, c.GPR.Get(i.rt()))
	}
	c.GPR.Set(i.rt(), boolToReg(c.Cop0.LLBit))
}

// CACHE instructions that operate on the instruction cache invalidate any
// fragment containing code in the cache line. Data cache operations have no
// effect.
func (c *CPU) opCACHE(i instruction) {
	if !c.Cop0.Usable(0) {
		c.raiseCpU(0)
		return
	}

	const instructionCache = 0
	const lineSize = 32

	if i.rt()&0x3 != instructionCache {
		return
	}

	phys, ok := c.TLB.TranslateInternal(c.address(i))
	if !ok {
		return
	}
	c.Cache.InvalidateICache(phys&^(lineSize-1), lineSize, "cache")
}

// floating point loads and stores. the coprocessor must be usable

func (c *CPU) opLWC1(i instruction) {
	if !c.Cop0.Usable(1) {
		c.raiseCpU(1)
		return
	}
	if v, ok := c.load32(c.address(i)); ok {
		c.FPU.WriteInt32(i.ft(), v)
	}
}

func (c *CPU) opLDC1(i instruction) {
	if !c.Cop0.Usable(1) {
		c.raiseCpU(1)
		return
	}
	if v, ok := c.load64(c.address(i)); ok {
		c.FPU.WriteInt64(i.ft(), v)
	}
}

func (c *CPU) opSWC1(i instruction) {
	if !c.Cop0.Usable(1) {
		c.raiseCpU(1)
		return
	}
	c.store32(c.address(i), c.FPU.ReadInt32(i.ft()))
}

func (c *CPU) opSDC1(i instruction) {
	if !c.Cop0.Usable(1) {
		c.raiseCpU(1)
		return
	}
	c.store64(c.address(i), c.FPU.ReadInt64(i.ft()))
}

// breakpoint marker. the original instruction is executed if the breakpoint
// has already been reported, otherwise the CPU stops with the program counter
// pointing at the instruction
func (c *CPU) opBreakpoint(i instruction) {
	c.barrier = true

	if c.bps == nil {
		c.unimplemented(i)
		return
	}

	orig, ok := c.bps.Original(c.fetchPhys)
	if !ok {
		c.unimplemented(i)
		return
	}

	if c.resuming && c.resumeFrom == c.pc {
		c.resuming = false
		c.execute(instruction(orig))
		return
	}

	c.nextPC = c.pc
	c.branchTarget = c.delayPC
	c.stalled = true
	c.breakpointHit = true
	c.resuming = true
	c.resumeFrom = c.pc
	c.stuffToDo = true
}

