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

package cop1

import (
	"fmt"
	"math"
)

// Sentinel error patterns.
const (
	UnimplementedFunction = "cop1: unimplemented function: %s.%d"
)

// Formats.
const (
	FmtS = 16
	FmtD = 17
	FmtW = 20
	FmtL = 21
)

func fmtName(f int) string {
	switch f {
	case FmtS:
		return "S"
	case FmtD:
		return "D"
	case FmtW:
		return "W"
	case FmtL:
		return "L"
	}
	return fmt.Sprintf("fmt%d", f)
}

// FCR31 bits.
const (
	FCR31Condition = 0x00800000
	FCR31RM        = 0x00000003
	fcr31WriteMask = 0x0183ffff
)

// Rounding modes.
const (
	RoundNearest = 0
	RoundZero    = 1
	RoundCeil    = 2
	RoundFloor   = 3
)

// implementation and revision number of the VR4300 FPU
const fcr0 = 0x00000a00

// FPU is the floating point register file and control registers.
type FPU struct {
	regs  [32]uint64
	fcr31 uint32

	// mirror of the FR bit in the Status register. the CPU updates this
	// field whenever Status is written
	FR bool
}

// Reset the FPU.
func (fpu *FPU) Reset() {
	fpu.regs = [32]uint64{}
	fpu.fcr31 = 0
}

// ReadInt32 returns the 32bit contents of the register.
func (fpu *FPU) ReadInt32(r int) uint32 {
	if !fpu.FR && r&1 == 1 {
		return uint32(fpu.regs[r&^1] >> 32)
	}
	return uint32(fpu.regs[r])
}

// WriteInt32 sets the 32bit contents of the register.
func (fpu *FPU) WriteInt32(r int, v uint32) {
	if !fpu.FR && r&1 == 1 {
		r &^= 1
		fpu.regs[r] = (fpu.regs[r] & 0x00000000ffffffff) | (uint64(v) << 32)
		return
	}
	fpu.regs[r] = (fpu.regs[r] & 0xffffffff00000000) | uint64(v)
}

// ReadInt64 returns the 64bit contents of the register. When FR is clear the
// odd bit of the register number is ignored.
func (fpu *FPU) ReadInt64(r int) uint64 {
	if !fpu.FR {
		r &^= 1
	}
	return fpu.regs[r]
}

// WriteInt64 sets the 64bit contents of the register. When FR is clear the
// odd bit of the register number is ignored.
func (fpu *FPU) WriteInt64(r int, v uint64) {
	if !fpu.FR {
		r &^= 1
	}
	fpu.regs[r] = v
}

// ReadFloat32 returns the register as a single precision value.
func (fpu *FPU) ReadFloat32(r int) float32 {
	return math.Float32frombits(fpu.ReadInt32(r))
}

// WriteFloat32 sets the register to a single precision value.
func (fpu *FPU) WriteFloat32(r int, v float32) {
	fpu.WriteInt32(r, math.Float32bits(v))
}

// ReadFloat64 returns the register as a double precision value.
func (fpu *FPU) ReadFloat64(r int) float64 {
	return math.Float64frombits(fpu.ReadInt64(r))
}

// WriteFloat64 sets the register to a double precision value.
func (fpu *FPU) WriteFloat64(r int, v float64) {
	fpu.WriteInt64(r, math.Float64bits(v))
}

// Condition returns the state of the condition bit in FCR31.
func (fpu *FPU) Condition() bool {
	return fpu.fcr31&FCR31Condition != 0
}

// SetCondition sets or clears the condition bit in FCR31.
func (fpu *FPU) SetCondition(c bool) {
	if c {
		fpu.fcr31 |= FCR31Condition
	} else {
		fpu.fcr31 &^= FCR31Condition
	}
}

// ReadControl returns the value of the control register. Only FCR0 and FCR31
// are implemented. The CFC1 instruction.
func (fpu *FPU) ReadControl(r int) uint32 {
	switch r {
	case 0:
		return fcr0
	case 31:
		return fpu.fcr31
	}
	return 0
}

// WriteControl sets the value of a control register. FCR0 is read-only. The
// CTC1 instruction.
func (fpu *FPU) WriteControl(r int, v uint32) {
	if r == 31 {
		fpu.fcr31 = v & fcr31WriteMask
	}
}

func (fpu *FPU) String() string {
	return fmt.Sprintf("FCR31=%08x", fpu.fcr31)
}
