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

import "fmt"

// instruction is a single 32bit instruction word. The methods return the
// fixed bit fields of the instruction.
type instruction uint32

func (i instruction) op() int {
	return int(i >> 26)
}

func (i instruction) rs() int {
	return int(i>>21) & 0x1f
}

func (i instruction) rt() int {
	return int(i>>16) & 0x1f
}

func (i instruction) rd() int {
	return int(i>>11) & 0x1f
}

func (i instruction) sa() uint32 {
	return uint32(i>>6) & 0x1f
}

func (i instruction) funct() int {
	return int(i) & 0x3f
}

// the immediate value zero extended
func (i instruction) imm() uint32 {
	return uint32(i) & 0xffff
}

// the immediate value sign extended
func (i instruction) simm() int32 {
	return int32(int16(i))
}

// the immediate value sign extended to 64bits
func (i instruction) simm64() uint64 {
	return uint64(int64(int16(i)))
}

// branch offset in bytes
func (i instruction) offset() uint32 {
	return uint32(i.simm() << 2)
}

func (i instruction) target() uint32 {
	return uint32(i) & 0x03ffffff
}

// the floating point register fields share bit positions with the integer
// fields
func (i instruction) fs() int {
	return i.rd()
}

func (i instruction) ft() int {
	return i.rt()
}

func (i instruction) fd() int {
	return int(i>>6) & 0x1f
}

func (i instruction) String() string {
	return fmt.Sprintf("%08x", uint32(i))
}

// handler executes a single decoded instruction.
type handler func(c *CPU, i instruction)

// dispatch tables. built once by init() because the tables contain handlers
// that refer back to the tables
var (
	primary   [64]handler
	special   [64]handler
	regimm    [32]handler
	cop0rs    [32]handler
	cop0funct [64]handler
	cop1rs    [32]handler
)

func init() {
	r := (*CPU).opReserved

	primary = [...]handler{
		(*CPU).opSPECIAL, (*CPU).opREGIMM, (*CPU).opJ, (*CPU).opJAL,
		(*CPU).opBEQ, (*CPU).opBNE, (*CPU).opBLEZ, (*CPU).opBGTZ,
		(*CPU).opADDI, (*CPU).opADDIU, (*CPU).opSLTI, (*CPU).opSLTIU,
		(*CPU).opANDI, (*CPU).opORI, (*CPU).opXORI, (*CPU).opLUI,
		(*CPU).opCOP0, (*CPU).opCOP1, r, r,
		(*CPU).opBEQL, (*CPU).opBNEL, (*CPU).opBLEZL, (*CPU).opBGTZL,
		(*CPU).opDADDI, (*CPU).opDADDIU, (*CPU).opLDL, (*CPU).opLDR,
		r, r, r, r,
		(*CPU).opLB, (*CPU).opLH, (*CPU).opLWL, (*CPU).opLW,
		(*CPU).opLBU, (*CPU).opLHU, (*CPU).opLWR, (*CPU).opLWU,
		(*CPU).opSB, (*CPU).opSH, (*CPU).opSWL, (*CPU).opSW,
		(*CPU).opSDL, (*CPU).opSDR, (*CPU).opSWR, (*CPU).opCACHE,
		(*CPU).opLL, (*CPU).opLWC1, r, r,
		(*CPU).opLLD, (*CPU).opLDC1, r, (*CPU).opLD,
		(*CPU).opSC, (*CPU).opSWC1, (*CPU).opBreakpoint, r,
		(*CPU).opSCD, (*CPU).opSDC1, r, (*CPU).opSD,
	}

	special = [...]handler{
		(*CPU).opSLL, r, (*CPU).opSRL, (*CPU).opSRA,
		(*CPU).opSLLV, r, (*CPU).opSRLV, (*CPU).opSRAV,
		(*CPU).opJR, (*CPU).opJALR, r, r,
		(*CPU).opSYSCALL, (*CPU).opBREAK, r, (*CPU).opSYNC,
		(*CPU).opMFHI, (*CPU).opMTHI, (*CPU).opMFLO, (*CPU).opMTLO,
		(*CPU).opDSLLV, r, (*CPU).opDSRLV, (*CPU).opDSRAV,
		(*CPU).opMULT, (*CPU).opMULTU, (*CPU).opDIV, (*CPU).opDIVU,
		(*CPU).opDMULT, (*CPU).opDMULTU, (*CPU).opDDIV, (*CPU).opDDIVU,
		(*CPU).opADD, (*CPU).opADDU, (*CPU).opSUB, (*CPU).opSUBU,
		(*CPU).opAND, (*CPU).opOR, (*CPU).opXOR, (*CPU).opNOR,
		r, r, (*CPU).opSLT, (*CPU).opSLTU,
		(*CPU).opDADD, (*CPU).opDADDU, (*CPU).opDSUB, (*CPU).opDSUBU,
		(*CPU).opTGE, (*CPU).opTGEU, (*CPU).opTLT, (*CPU).opTLTU,
		(*CPU).opTEQ, r, (*CPU).opTNE, r,
		(*CPU).opDSLL, r, (*CPU).opDSRL, (*CPU).opDSRA,
		(*CPU).opDSLL32, r, (*CPU).opDSRL32, (*CPU).opDSRA32,
	}

	regimm = [...]handler{
		(*CPU).opBLTZ, (*CPU).opBGEZ, (*CPU).opBLTZL, (*CPU).opBGEZL,
		r, r, r, r,
		(*CPU).opTGEI, (*CPU).opTGEIU, (*CPU).opTLTI, (*CPU).opTLTIU,
		(*CPU).opTEQI, r, (*CPU).opTNEI, r,
		(*CPU).opBLTZAL, (*CPU).opBGEZAL, (*CPU).opBLTZALL, (*CPU).opBGEZALL,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
	}

	cop0rs = [...]handler{
		(*CPU).opMFC0, (*CPU).opDMFC0, r, r,
		(*CPU).opMTC0, (*CPU).opDMTC0, r, r,
		r, r, r, r,
		r, r, r, r,
		(*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0,
		(*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0,
		(*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0,
		(*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0, (*CPU).opCO0,
	}

	cop0funct = [...]handler{
		r, (*CPU).opTLBR, (*CPU).opTLBWI, r,
		r, r, (*CPU).opTLBWR, r,
		(*CPU).opTLBP, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		(*CPU).opERET, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
		r, r, r, r,
	}

	cop1rs = [...]handler{
		(*CPU).opMFC1, (*CPU).opDMFC1, (*CPU).opCFC1, r,
		(*CPU).opMTC1, (*CPU).opDMTC1, (*CPU).opCTC1, r,
		(*CPU).opBC1, r, r, r,
		r, r, r, r,
		(*CPU).opCOP1Arith, (*CPU).opCOP1Arith, r, r,
		(*CPU).opCOP1Arith, (*CPU).opCOP1Arith, r, r,
		r, r, r, r,
		r, r, r, r,
	}
}

// decode returns the handler for the instruction. Instructions in the SPECIAL
// and REGIMM groups are resolved to the handler for the specific instruction.
func decode(i instruction) handler {
	switch i.op() {
	case 0:
		return special[i.funct()]
	case 1:
		return regimm[i.rt()]
	}
	return primary[i.op()]
}

// execute a single instruction.
func (c *CPU) execute(i instruction) {
	primary[i.op()](c, i)
}

func (c *CPU) opSPECIAL(i instruction) {
	special[i.funct()](c, i)
}

func (c *CPU) opREGIMM(i instruction) {
	regimm[i.rt()](c, i)
}

func (c *CPU) opReserved(i instruction) {
	c.unimplemented(i)
}
