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
	"math/bits"

	"github.com/gopher64/gopher64/hardware/cpu/registers"
)

// shifts

func (c *CPU) opSLL(i instruction) {
	c.GPR.SetSignExtended(i.rd(), c.GPR.Lo(i.rt())<<i.sa())
}

func (c *CPU) opSRL(i instruction) {
	c.GPR.SetSignExtended(i.rd(), c.GPR.Lo(i.rt())>>i.sa())
}

// the VR4300 shifts the full 64bit register before truncating the result
func (c *CPU) opSRA(i instruction) {
	c.GPR.SetSignExtended(i.rd(), uint32(int64(c.GPR.Get(i.rt()))>>i.sa()))
}

func (c *CPU) opSLLV(i instruction) {
	c.GPR.SetSignExtended(i.rd(), c.GPR.Lo(i.rt())<<(c.GPR.Lo(i.rs())&0x1f))
}

func (c *CPU) opSRLV(i instruction) {
	c.GPR.SetSignExtended(i.rd(), c.GPR.Lo(i.rt())>>(c.GPR.Lo(i.rs())&0x1f))
}

func (c *CPU) opSRAV(i instruction) {
	c.GPR.SetSignExtended(i.rd(), uint32(int64(c.GPR.Get(i.rt()))>>(c.GPR.Lo(i.rs())&0x1f)))
}

func (c *CPU) opDSLLV(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rt())<<(c.GPR.Lo(i.rs())&0x3f))
}

func (c *CPU) opDSRLV(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rt())>>(c.GPR.Lo(i.rs())&0x3f))
}

func (c *CPU) opDSRAV(i instruction) {
	c.GPR.Set(i.rd(), uint64(int64(c.GPR.Get(i.rt()))>>(c.GPR.Lo(i.rs())&0x3f)))
}

func (c *CPU) opDSLL(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rt())<<i.sa())
}

func (c *CPU) opDSRL(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rt())>>i.sa())
}

func (c *CPU) opDSRA(i instruction) {
	c.GPR.Set(i.rd(), uint64(int64(c.GPR.Get(i.rt()))>>i.sa()))
}

func (c *CPU) opDSLL32(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rt())<<(i.sa()+32))
}

func (c *CPU) opDSRL32(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rt())>>(i.sa()+32))
}

func (c *CPU) opDSRA32(i instruction) {
	c.GPR.Set(i.rd(), uint64(int64(c.GPR.Get(i.rt()))>>(i.sa()+32)))
}

// system

func (c *CPU) opSYSCALL(_ instruction) {
	c.raiseGeneral(registers.ExcSys)
}

func (c *CPU) opBREAK(_ instruction) {
	c.raiseGeneral(registers.ExcBp)
}

func (c *CPU) opSYNC(_ instruction) {
}

// multiply and divide

func (c *CPU) opMFHI(i instruction) {
	c.GPR.Set(i.rd(), c.multHi)
}

func (c *CPU) opMTHI(i instruction) {
	c.multHi = c.GPR.Get(i.rs())
}

func (c *CPU) opMFLO(i instruction) {
	c.GPR.Set(i.rd(), c.multLo)
}

func (c *CPU) opMTLO(i instruction) {
	c.multLo = c.GPR.Get(i.rs())
}

func signExtend32(v uint32) uint64 {
	return uint64(int64(int32(v)))
}

func (c *CPU) opMULT(i instruction) {
	r := int64(int32(c.GPR.Lo(i.rs()))) * int64(int32(c.GPR.Lo(i.rt())))
	c.multLo = signExtend32(uint32(r))
	c.multHi = signExtend32(uint32(r >> 32))
}

func (c *CPU) opMULTU(i instruction) {
	r := uint64(c.GPR.Lo(i.rs())) * uint64(c.GPR.Lo(i.rt()))
	c.multLo = signExtend32(uint32(r))
	c.multHi = signExtend32(uint32(r >> 32))
}

func (c *CPU) opDIV(i instruction) {
	n := int32(c.GPR.Lo(i.rs()))
	d := int32(c.GPR.Lo(i.rt()))
	if d == 0 {
		// the result of division by zero is not undefined on the VR4300
		if n < 0 {
			c.multLo = 1
		} else {
			c.multLo = signExtend32(0xffffffff)
		}
		c.multHi = signExtend32(uint32(n))
		return
	}
	c.multLo = signExtend32(uint32(n / d))
	c.multHi = signExtend32(uint32(n % d))
}

func (c *CPU) opDIVU(i instruction) {
	n := c.GPR.Lo(i.rs())
	d := c.GPR.Lo(i.rt())
	if d == 0 {
		c.multLo = signExtend32(0xffffffff)
		c.multHi = signExtend32(n)
		return
	}
	c.multLo = signExtend32(n / d)
	c.multHi = signExtend32(n % d)
}

func (c *CPU) opDMULT(i instruction) {
	a := int64(c.GPR.Get(i.rs()))
	b := int64(c.GPR.Get(i.rt()))

	neg := (a < 0) != (b < 0)
	ua := uint64(a)
	if a < 0 {
		ua = uint64(-a)
	}
	ub := uint64(b)
	if b < 0 {
		ub = uint64(-b)
	}

	hi, lo := bits.Mul64(ua, ub)
	if neg {
		// two's complement of the 128bit result
		lo = ^lo + 1
		hi = ^hi
		if lo == 0 {
			hi++
		}
	}

	c.multHi = hi
	c.multLo = lo
}

func (c *CPU) opDMULTU(i instruction) {
	c.multHi, c.multLo = bits.Mul64(c.GPR.Get(i.rs()), c.GPR.Get(i.rt()))
}

func (c *CPU) opDDIV(i instruction) {
	n := int64(c.GPR.Get(i.rs()))
	d := int64(c.GPR.Get(i.rt()))
	if d == 0 {
		if n < 0 {
			c.multLo = 1
		} else {
			c.multLo = 0xffffffffffffffff
		}
		c.multHi = uint64(n)
		return
	}
	c.multLo = uint64(n / d)
	c.multHi = uint64(n % d)
}

func (c *CPU) opDDIVU(i instruction) {
	n := c.GPR.Get(i.rs())
	d := c.GPR.Get(i.rt())
	if d == 0 {
		c.multLo = 0xffffffffffffffff
		c.multHi = n
		return
	}
	c.multLo = n / d
	c.multHi = n % d
}

// arithmetic and logic

// overflow32 returns true if the 32bit signed addition a+b=r overflowed
func overflow32(a, b, r uint32) bool {
	return (a^r)&(b^r)&0x80000000 != 0
}

func overflow64(a, b, r uint64) bool {
	return (a^r)&(b^r)&0x8000000000000000 != 0
}

func (c *CPU) opADD(i instruction) {
	a := c.GPR.Lo(i.rs())
	b := c.GPR.Lo(i.rt())
	r := a + b
	if overflow32(a, b, r) {
		c.raiseGeneral(registers.ExcOv)
		return
	}
	c.GPR.SetSignExtended(i.rd(), r)
}

func (c *CPU) opADDU(i instruction) {
	c.GPR.SetSignExtended(i.rd(), c.GPR.Lo(i.rs())+c.GPR.Lo(i.rt()))
}

func (c *CPU) opSUB(i instruction) {
	a := c.GPR.Lo(i.rs())
	b := c.GPR.Lo(i.rt())
	r := a - b
	if (a^b)&(a^r)&0x80000000 != 0 {
		c.raiseGeneral(registers.ExcOv)
		return
	}
	c.GPR.SetSignExtended(i.rd(), r)
}

func (c *CPU) opSUBU(i instruction) {
	c.GPR.SetSignExtended(i.rd(), c.GPR.Lo(i.rs())-c.GPR.Lo(i.rt()))
}

func (c *CPU) opAND(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rs())&c.GPR.Get(i.rt()))
}

func (c *CPU) opOR(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rs())|c.GPR.Get(i.rt()))
}

func (c *CPU) opXOR(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rs())^c.GPR.Get(i.rt()))
}

func (c *CPU) opNOR(i instruction) {
	c.GPR.Set(i.rd(), ^(c.GPR.Get(i.rs()) | c.GPR.Get(i.rt())))
}

func boolToReg(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) opSLT(i instruction) {
	c.GPR.Set(i.rd(), boolToReg(int64(c.GPR.Get(i.rs())) < int64(c.GPR.Get(i.rt()))))
}

func (c *CPU) opSLTU(i instruction) {
	c.GPR.Set(i.rd(), boolToReg(c.GPR.Get(i.rs()) < c.GPR.Get(i.rt())))
}

func (c *CPU) opDADD(i instruction) {
	a := c.GPR.Get(i.rs())
	b := c.GPR.Get(i.rt())
	r := a + b
	if overflow64(a, b, r) {
		c.raiseGeneral(registers.ExcOv)
		return
	}
	c.GPR.Set(i.rd(), r)
}

func (c *CPU) opDADDU(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rs())+c.GPR.Get(i.rt()))
}

func (c *CPU) opDSUB(i instruction) {
	a := int64(c.GPR.Get(i.rs()))
	b := int64(c.GPR.Get(i.rt()))
	r := a - b
	if (a^b)&(a^r) < 0 {
		c.raiseGeneral(registers.ExcOv)
		return
	}
	c.GPR.Set(i.rd(), uint64(r))
}

func (c *CPU) opDSUBU(i instruction) {
	c.GPR.Set(i.rd(), c.GPR.Get(i.rs())-c.GPR.Get(i.rt()))
}

// traps

func (c *CPU) trap(cond bool) {
	if cond {
		c.raiseGeneral(registers.ExcTr)
	}
}

func (c *CPU) opTGE(i instruction) {
	c.trap(int64(c.GPR.Get(i.rs())) >= int64(c.GPR.Get(i.rt())))
}

func (c *CPU) opTGEU(i instruction) {
	c.trap(c.GPR.Get(i.rs()) >= c.GPR.Get(i.rt()))
}

func (c *CPU) opTLT(i instruction) {
	c.trap(int64(c.GPR.Get(i.rs())) < int64(c.GPR.Get(i.rt())))
}

func (c *CPU) opTLTU(i instruction) {
	c.trap(c.GPR.Get(i.rs()) < c.GPR.Get(i.rt()))
}

func (c *CPU) opTEQ(i instruction) {
	c.trap(c.GPR.Get(i.rs()) == c.GPR.Get(i.rt()))
}

func (c *CPU) opTNE(i instruction) {
	c.trap(c.GPR.Get(i.rs()) != c.GPR.Get(i.rt()))
}

func (c *CPU) opTGEI(i instruction) {
	c.trap(int64(c.GPR.Get(i.rs())) >= int64(i.simm64()))
}

func (c *CPU) opTGEIU(i instruction) {
	c.trap(c.GPR.Get(i.rs()) >= i.simm64())
}

func (c *CPU) opTLTI(i instruction) {
	c.trap(int64(c.GPR.Get(i.rs())) < int64(i.simm64()))
}

func (c *CPU) opTLTIU(i instruction) {
	c.trap(c.GPR.Get(i.rs()) < i.simm64())
}

func (c *CPU) opTEQI(i instruction) {
	c.trap(c.GPR.Get(i.rs()) == i.simm64())
}

func (c *CPU) opTNEI(i instruction) {
	c.trap(c.GPR.Get(i.rs()) != i.simm64())
}

// immediate

func (c *CPU) opADDI(i instruction) {
	a := c.GPR.Lo(i.rs())
	b := uint32(i.simm())
	r := a + b
	if overflow32(a, b, r) {
		c.raiseGeneral(registers.ExcOv)
		return
	}
	c.GPR.SetSignExtended(i.rt(), r)
}

func (c *CPU) opADDIU(i instruction) {
	c.GPR.SetSignExtended(i.rt(), c.GPR.Lo(i.rs())+uint32(i.simm()))
}

func (c *CPU) opSLTI(i instruction) {
	c.GPR.Set(i.rt(), boolToReg(int64(c.GPR.Get(i.rs())) < int64(i.simm64())))
}

func (c *CPU) opSLTIU(i instruction) {
	c.GPR.Set(i.rt(), boolToReg(c.GPR.Get(i.rs()) < i.simm64()))
}

func (c *CPU) opANDI(i instruction) {
	c.GPR.Set(i.rt(), c.GPR.Get(i.rs())&uint64(i.imm()))
}

func (c *CPU) opORI(i instruction) {
	c.GPR.Set(i.rt(), c.GPR.Get(i.rs())|uint64(i.imm()))
}

func (c *CPU) opXORI(i instruction) {
	c.GPR.Set(i.rt(), c.GPR.Get(i.rs())^uint64(i.imm()))
}

func (c *CPU) opLUI(i instruction) {
	c.GPR.SetSignExtended(i.rt(), i.imm()<<16)
}

func (c *CPU) opDADDI(i instruction) {
	a := c.GPR.Get(i.rs())
	b := i.simm64()
	r := a + b
	if overflow64(a, b, r) {
		c.raiseGeneral(registers.ExcOv)
		return
	}
	c.GPR.Set(i.rt(), r)
}

func (c *CPU) opDADDIU(i instruction) {
	c.GPR.Set(i.rt(), c.GPR.Get(i.rs())+i.simm64())
}
