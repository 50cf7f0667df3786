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

// Package registers implements the two register files of the VR4300 that are
// visible to the rest of the emulation: the general purpose registers and
// the system control coprocessor (COP0) registers.
//
// General purpose registers are genuinely 64 bits wide. Most instructions in
// 32bit mode operate on the lower half of a register and sign-extend the
// result into the upper half. The SetSignExtended() function should be used
// in those cases:
//
//	gpr.SetSignExtended(rd, gpr.Lo(rs)+gpr.Lo(rt))
//
// Register zero always reads as zero. Writes to it are discarded by Set() and
// SetSignExtended().
//
// The control registers are 32 bits wide and are indexed by the constants in
// this package (Index, Random, EntryLo0, etc.). Writes from the CPU should go
// through Cop0.Write(), which applies the write mask for the register. Direct
// access to the Reg array is for the CPU's own bookkeeping (setting
// BadVAddr, the exception code in Cause, etc.) and for the TLB.
package registers
