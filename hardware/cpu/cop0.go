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

func (c *CPU) opCOP0(i instruction) {
	if !c.Cop0.Usable(0) {
		c.raiseCpU(0)
		return
	}
	cop0rs[i.rs()](c, i)
}

func (c *CPU) opCO0(i instruction) {
	cop0funct[i.funct()](c, i)
}

// readCop0 returns the value of the control register as seen by MFC0.
func (c *CPU) readCop0(r int) uint32 {
	switch r {
	case registers.Count:
		return c.Cop0.Reg[registers.Count] + uint32(c.opsInFlight)
	case registers.Random:
		return c.TLB.RandomIndex()
	}
	return c.Cop0.Reg[r]
}

// writeCop0 writes the control register as MTC0 would, including any effect
// the write has on the rest of the CPU.
func (c *CPU) writeCop0(r int, v uint32) {
	switch r {
	case registers.Status:
		c.Cop0.Reg[registers.Status] = v
		c.FPU.FR = v&registers.StatusFR != 0
		c.requestInterruptCheck()

	case registers.Cause:
		c.Cop0.Write(registers.Cause, v)
		c.requestInterruptCheck()

	case registers.Count:
		c.Cop0.Reg[registers.Count] = v
		c.scheduleCompare()
		c.barrier = true

	case registers.Compare:
		c.Cop0.Reg[registers.Compare] = v
		c.Cop0.Reg[registers.Cause] &^= registers.CauseIP7
		c.scheduleCompare()
		c.barrier = true

	default:
		c.Cop0.Write(r, v)
	}
}

func (c *CPU) opMFC0(i instruction) {
	c.GPR.SetSignExtended(i.rt(), c.readCop0(i.rd()))
}

// the VR4300 control registers are 32 bits wide in this implementation. the
// doubleword moves are sign extended
func (c *CPU) opDMFC0(i instruction) {
	c.GPR.SetSignExtended(i.rt(), c.readCop0(i.rd()))
}

func (c *CPU) opMTC0(i instruction) {
	c.writeCop0(i.rd(), c.GPR.Lo(i.rt()))
}

func (c *CPU) opDMTC0(i instruction) {
	c.writeCop0(i.rd(), c.GPR.Lo(i.rt()))
}

func (c *CPU) opTLBR(_ instruction) {
	c.TLB.Read()
}

func (c *CPU) opTLBWI(_ instruction) {
	c.TLB.WriteIndex()
}

func (c *CPU) opTLBWR(_ instruction) {
	c.TLB.WriteRandom()
}

func (c *CPU) opTLBP(_ instruction) {
	c.TLB.Probe()
}

// ERET has no delay slot. Returns to ErrorEPC if the error level is set,
// otherwise to EPC.
func (c *CPU) opERET(_ instruction) {
	cop0 := &c.Cop0

	var target uint32
	if cop0.Reg[registers.Status]&registers.StatusERL != 0 {
		target = cop0.Reg[registers.ErrorEPC]
		cop0.Reg[registers.Status] &^= registers.StatusERL
	} else {
		target = cop0.Reg[registers.EPC]
		cop0.Reg[registers.Status] &^= registers.StatusEXL
	}
	cop0.LLBit = false

	c.nextPC = target
	c.branchTarget = 0
	c.requestInterruptCheck()
}
