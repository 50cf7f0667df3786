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
	"github.com/gopher64/gopher64/curated"
)

func (c *CPU) opCOP1(i instruction) {
	if !c.Cop0.Usable(1) {
		c.raiseCpU(1)
		return
	}
	cop1rs[i.rs()](c, i)
}

func (c *CPU) opMFC1(i instruction) {
	c.GPR.SetSignExtended(i.rt(), c.FPU.ReadInt32(i.fs()))
}

func (c *CPU) opDMFC1(i instruction) {
	c.GPR.Set(i.rt(), c.FPU.ReadInt64(i.fs()))
}

func (c *CPU) opCFC1(i instruction) {
	c.GPR.SetSignExtended(i.rt(), c.FPU.ReadControl(i.fs()))
}

func (c *CPU) opMTC1(i instruction) {
	c.FPU.WriteInt32(i.fs(), c.GPR.Lo(i.rt()))
}

func (c *CPU) opDMTC1(i instruction) {
	c.FPU.WriteInt64(i.fs(), c.GPR.Get(i.rt()))
}

func (c *CPU) opCTC1(i instruction) {
	c.FPU.WriteControl(i.fs(), c.GPR.Lo(i.rt()))
}

// BC1F, BC1T, BC1FL and BC1TL. bit 0 of the rt field selects the sense of
// the test and bit 1 selects the likely variant
func (c *CPU) opBC1(i instruction) {
	cond := c.FPU.Condition()
	if i.rt()&1 == 0 {
		cond = !cond
	}
	c.branch(i, cond, i.rt()&2 != 0)
}

func (c *CPU) opCOP1Arith(i instruction) {
	err := c.FPU.Execute(i.rs(), i.funct(), i.fs(), i.ft(), i.fd())
	if err != nil {
		c.nextPC = c.pc
		c.branchTarget = c.delayPC
		c.barrier = true
		c.stalled = true
		c.fail(curated.Errorf(UnimplementedInstruction, uint32(i), c.pc))
	}
}
