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

package registers

import "fmt"

// Indexes of the COP0 registers.
const (
	Index       = 0
	Random      = 1
	EntryLo0    = 2
	EntryLo1    = 3
	Context     = 4
	PageMask    = 5
	Wired       = 6
	BadVAddr    = 8
	Count       = 9
	EntryHi     = 10
	Compare     = 11
	Status      = 12
	Cause       = 13
	EPC         = 14
	PRId        = 15
	Config      = 16
	LLAddr      = 17
	WatchLo     = 18
	WatchHi     = 19
	XContext    = 20
	ParityError = 26
	CacheError  = 27
	TagLo       = 28
	TagHi       = 29
	ErrorEPC    = 30
)

// NumCop0 is the number of COP0 register slots.
const NumCop0 = 32

var cop0Names = [NumCop0]string{
	"Index", "Random", "EntryLo0", "EntryLo1", "Context", "PageMask", "Wired", "Reserved7",
	"BadVAddr", "Count", "EntryHi", "Compare", "Status", "Cause", "EPC", "PRId",
	"Config", "LLAddr", "WatchLo", "WatchHi", "XContext", "Reserved21", "Reserved22", "Reserved23",
	"Reserved24", "Reserved25", "ParityError", "CacheError", "TagLo", "TagHi", "ErrorEPC", "Reserved31",
}

// Cop0Label returns the name of the COP0 register.
func Cop0Label(r int) string {
	return cop0Names[r&0x1f]
}

// Status register bits.
const (
	StatusIE  = 0x00000001
	StatusEXL = 0x00000002
	StatusERL = 0x00000004
	StatusKSU = 0x00000018
	StatusUX  = 0x00000020
	StatusSX  = 0x00000040
	StatusKX  = 0x00000080
	StatusIM  = 0x0000ff00
	StatusBEV = 0x00400000
	StatusFR  = 0x04000000
	StatusCU0 = 0x10000000
	StatusCU1 = 0x20000000

	// kernel/supervisor/user mode field
	KSUKernel     = 0x00000000
	KSUSupervisor = 0x00000008
	KSUUser       = 0x00000010
)

// Cause register bits.
const (
	CauseBD      = 0x80000000
	CauseCEMask  = 0x30000000
	CauseIPMask  = 0x0000ff00
	CauseExcMask = 0x0000007c

	CauseIP0 = 0x00000100
	CauseIP1 = 0x00000200
	CauseIP2 = 0x00000400
	CauseIP3 = 0x00000800
	CauseIP4 = 0x00001000
	CauseIP5 = 0x00002000
	CauseIP6 = 0x00004000
	CauseIP7 = 0x00008000

	// the software interrupt bits are the only bits writeable by MTC0
	causeWriteMask = CauseIP0 | CauseIP1

	// the exception code field and the coprocessor field are replaced on
	// every exception
	CauseExcClear = CauseExcMask | CauseCEMask
)

// Exception codes. The value stored in the Cause register is the code shifted
// left by two.
const (
	ExcInt   = 0 << 2
	ExcMod   = 1 << 2
	ExcTLBL  = 2 << 2
	ExcTLBS  = 3 << 2
	ExcAdEL  = 4 << 2
	ExcAdES  = 5 << 2
	ExcIBE   = 6 << 2
	ExcDBE   = 7 << 2
	ExcSys   = 8 << 2
	ExcBp    = 9 << 2
	ExcRI    = 10 << 2
	ExcCpU   = 11 << 2
	ExcOv    = 12 << 2
	ExcTr    = 13 << 2
	ExcFPE   = 15 << 2
	ExcWatch = 23 << 2
)

// ExcName returns a short name for an exception code (as stored in Cause).
func ExcName(code uint32) string {
	switch code & CauseExcMask {
	case ExcInt:
		return "Int"
	case ExcMod:
		return "Mod"
	case ExcTLBL:
		return "TLBL"
	case ExcTLBS:
		return "TLBS"
	case ExcAdEL:
		return "AdEL"
	case ExcAdES:
		return "AdES"
	case ExcIBE:
		return "IBE"
	case ExcDBE:
		return "DBE"
	case ExcSys:
		return "Sys"
	case ExcBp:
		return "Bp"
	case ExcRI:
		return "RI"
	case ExcCpU:
		return "CpU"
	case ExcOv:
		return "Ov"
	case ExcTr:
		return "Tr"
	case ExcFPE:
		return "FPE"
	case ExcWatch:
		return "Watch"
	}
	return fmt.Sprintf("Exc%d", (code&CauseExcMask)>>2)
}

// Exception vectors.
const (
	VectorTLBRefill    = 0x80000000
	VectorXTLBRefill   = 0x80000080
	VectorGeneral      = 0x80000180
	VectorBootTLB      = 0xbfc00200
	VectorBootGeneral  = 0xbfc00380
	VectorColdReset    = 0xbfc00000
	vectorBootDistance = VectorBootTLB - VectorTLBRefill
)

// Vector returns the exception vector, taking into account the bootstrap
// exception vector bit in the status register.
func (c *Cop0) Vector(v uint32) uint32 {
	if c.Reg[Status]&StatusBEV != 0 {
		return v + vectorBootDistance
	}
	return v
}

// TLB related bits.
const (
	EntryHiASID   = 0x000000ff
	EntryHiVPN2   = 0xffffe000
	EntryLoG      = 0x00000001
	EntryLoV      = 0x00000002
	EntryLoD      = 0x00000004
	IndexProbe    = 0x80000000
	ContextPTE    = 0xff800000
	ContextBadVPN = 0x007ffff0

	// Random is never less than the value in Wired and never more than
	// MaxTLBIndex
	MaxTLBIndex = 31
)

// Processor revision identifier for the VR4300.
const PRIdVR4300 = 0x00000b22

// Default Config value after reset.
const ConfigReset = 0x7006e463

// Cop0 holds the COP0 system control registers.
type Cop0 struct {
	Reg [NumCop0]uint32

	// the LL bit is not a register in its own right but is set by LL and
	// LLD and cleared by ERET
	LLBit bool
}

// Reset the control registers to their power-on values.
func (c *Cop0) Reset() {
	c.Reg = [NumCop0]uint32{}
	c.Reg[Random] = MaxTLBIndex
	c.Reg[Status] = StatusERL | StatusBEV
	c.Reg[PRId] = PRIdVR4300
	c.Reg[Config] = ConfigReset
	c.LLBit = false
}

// Write a value to the control register as the MTC0 instruction would. Count
// and Compare are written without side effects. The CPU is responsible for
// rescheduling the timer event.
func (c *Cop0) Write(r int, v uint32) {
	switch r {
	case Index:
		c.Reg[Index] = (c.Reg[Index] & IndexProbe) | (v & 0x3f)
	case Random, BadVAddr, PRId:
		// read-only
	case EntryLo0, EntryLo1:
		c.Reg[r] = v & 0x3fffffff
	case Context:
		c.Reg[Context] = (c.Reg[Context] & ContextBadVPN) | (v & ContextPTE)
	case PageMask:
		c.Reg[PageMask] = v & 0x01ffe000
	case Wired:
		c.Reg[Wired] = v & 0x3f
		c.Reg[Random] = MaxTLBIndex
	case EntryHi:
		c.Reg[EntryHi] = v & (EntryHiVPN2 | EntryHiASID)
	case Cause:
		c.Reg[Cause] = (c.Reg[Cause] &^ causeWriteMask) | (v & causeWriteMask)
	case Config:
		c.Reg[Config] = (c.Reg[Config] &^ 0x0f00800f) | (v & 0x0f00800f)
	default:
		c.Reg[r&0x1f] = v
	}
}

// SetRandom sets the Random register, clamped to the range [Wired, 31].
func (c *Cop0) SetRandom(v uint32) {
	w := c.Reg[Wired]
	if w > MaxTLBIndex {
		w = MaxTLBIndex
	}
	if v < w {
		v = w
	}
	if v > MaxTLBIndex {
		v = MaxTLBIndex
	}
	c.Reg[Random] = v
}

// ASID returns the address space identifier from the EntryHi register.
func (c *Cop0) ASID() uint32 {
	return c.Reg[EntryHi] & EntryHiASID
}

// KernelMode returns true if the processor is in kernel mode. Exception level
// and error level imply kernel mode regardless of the KSU field.
func (c *Cop0) KernelMode() bool {
	s := c.Reg[Status]
	return s&(StatusEXL|StatusERL) != 0 || s&StatusKSU == KSUKernel
}

// Usable returns true if the coprocessor is usable. Coprocessor zero is always
// usable in kernel mode.
func (c *Cop0) Usable(cop int) bool {
	switch cop {
	case 0:
		return c.KernelMode() || c.Reg[Status]&StatusCU0 != 0
	case 1:
		return c.Reg[Status]&StatusCU1 != 0
	}
	return false
}

func (c *Cop0) String() string {
	return fmt.Sprintf("Status=%08x Cause=%08x EPC=%08x Count=%08x Compare=%08x",
		c.Reg[Status], c.Reg[Cause], c.Reg[EPC], c.Reg[Count], c.Reg[Compare])
}
