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

import "github.com/gopher64/gopher64/hardware/cpu/registers"

// link sets the register to the return address of a branch or jump. The
// return address is the instruction after the delay slot.
func (c *CPU) link(r int) {
	c.GPR.SetSignExtended(r, c.pc+8)
}

// branch to the offset in the instruction if cond is true. If the branch is
// not taken and likely is true the delay slot is skipped.
func (c *CPU) branch(i instruction, cond bool, likely bool) {
	if cond {
		c.branchTarget = c.pc + 4 + i.offset()
	} else if likely {
		c.nextPC += 4
	}
}

func (c *CPU) opJ(i instruction) {
	c.branchTarget = ((c.pc + 4) & 0xf0000000) | (i.target() << 2)
}

func (c *CPU) opJAL(i instruction) {
	c.link(31)
	c.branchTarget = ((c.pc + 4) & 0xf0000000) | (i.target() << 2)
}

func (c *CPU) opJR(i instruction) {
	c.branchTarget = c.GPR.Lo(i.rs())
}

func (c *CPU) opJALR(i instruction) {
	// the target is read before the link register is written in case they
	// are the same register
	t := c.GPR.Lo(i.rs())
	c.link(i.rd())
	c.branchTarget = t
}

// speedHack recognises a branch to itself with an empty delay slot. Nothing
// can happen until the next event so the time until the event is skipped.
// The Count register advances by the same number of cycles.
func (c *CPU) speedHack(i instruction) {
	if c.inFragment || i.rs() != i.rt() || i.simm() != -1 {
		return
	}
	if slot, ok := c.peek(c.pc + 4); !ok || slot != 0 {
		return
	}

	c.barrier = true

	skipped := c.Events.Skip()
	c.Cop0.Reg[registers.Count] += uint32(skipped)
	c.cycles += uint64(skipped)
}

func (c *CPU) opBEQ(i instruction) {
	cond := c.GPR.Get(i.rs()) == c.GPR.Get(i.rt())
	if cond {
		c.speedHack(i)
	}
	c.branch(i, cond, false)
}

func (c *CPU) opBNE(i instruction) {
	c.branch(i, c.GPR.Get(i.rs()) != c.GPR.Get(i.rt()), false)
}

func (c *CPU) opBLEZ(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) <= 0, false)
}

func (c *CPU) opBGTZ(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) > 0, false)
}

func (c *CPU) opBEQL(i instruction) {
	c.branch(i, c.GPR.Get(i.rs()) == c.GPR.Get(i.rt()), true)
}

func (c *CPU) opBNEL(i instruction) {
	c.branch(i, c.GPR.Get(i.rs()) != c.GPR.Get(i.rt()), true)
}

func (c *CPU) opBLEZL(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) <= 0, true)
}

func (c *CPU) opBGTZL(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) > 0, true)
}

func (c *CPU) opBLTZ(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) < 0, false)
}

func (c *CPU) opBGEZ(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) >= 0, false)
}

func (c *CPU) opBLTZL(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) < 0, true)
}

func (c *CPU) opBGEZL(i instruction) {
	c.branch(i, int64(c.GPR.Get(i.rs())) >= 0, true)
}

// the condition is evaluated before the link register is written in case rs
// is register 31

func (c *CPU) opBLTZAL(i instruction) {
	cond := int64(c.GPR.Get(i.rs())) < 0
	c.link(31)
	c.branch(i, cond, false)
}

func (c *CPU) opBGEZAL(i instruction) {
	cond := int64(c.GPR.Get(i.rs())) >= 0
	c.link(31)
	c.branch(i, cond, false)
}

func (c *CPU) opBLTZALL(i instruction) {
	cond := int64(c.GPR.Get(i.rs())) < 0
	c.link(31)
	c.branch(i, cond, true)
}

func (c *CPU) opBGEZALL(i instruction) {
	cond := int64(c.GPR.Get(i.rs())) >= 0
	c.link(31)
	c.branch(i, cond, true)
}
