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
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/notifications"
)

// setException records an exception in the control registers. Bits in the
// mask are cleared from the Cause register before the code is added.
func (c *CPU) setException(mask uint32, code uint32) {
	cop0 := &c.Cop0
	cop0.Reg[registers.Cause] = (cop0.Reg[registers.Cause] &^ mask) | code
	cop0.Reg[registers.Status] |= registers.StatusEXL

	if c.delayPC != 0 {
		cop0.Reg[registers.Cause] |= registers.CauseBD
		cop0.Reg[registers.EPC] = c.pc - 4
	} else {
		cop0.Reg[registers.Cause] &^= registers.CauseBD
		cop0.Reg[registers.EPC] = c.pc
	}
}

// raise an exception during the execution of an instruction. Execution
// continues at the vector once the instruction has completed.
func (c *CPU) raise(code uint32, vector uint32) {
	c.setException(registers.CauseExcClear, code)
	c.nextPC = vector
	c.branchTarget = 0

	switch code {
	case registers.ExcInt, registers.ExcTLBL, registers.ExcTLBS, registers.ExcSys, registers.ExcCpU:
	default:
		logger.Logf(logger.Allow, "exception", "%s at %08x", registers.ExcName(code), c.pc)
	}
}

// raiseGeneral raises an exception that uses the general exception vector.
func (c *CPU) raiseGeneral(code uint32) {
	c.raise(code, c.Cop0.Vector(registers.VectorGeneral))
}

// RaiseTLBException implements the tlb.ExceptionRaiser interface.
func (c *CPU) RaiseTLBException(code uint32, vector uint32) {
	c.raise(code, vector)
}

// raise the coprocessor unusable exception for coprocessor n.
func (c *CPU) raiseCpU(n uint32) {
	c.setException(registers.CauseExcClear, registers.ExcCpU|(n<<28))
	c.nextPC = c.Cop0.Vector(registers.VectorGeneral)
	c.branchTarget = 0
}

// raise an address error for the virtual address.
func (c *CPU) addressError(addr uint32, write bool) {
	c.Cop0.Reg[registers.BadVAddr] = addr
	if write {
		c.raiseGeneral(registers.ExcAdES)
	} else {
		c.raiseGeneral(registers.ExcAdEL)
	}
}

// checkForUnmaskedInterrupts returns true if an interrupt is pending, enabled
// and the processor is not already handling an exception.
func (c *CPU) checkForUnmaskedInterrupts() bool {
	s := c.Cop0.Reg[registers.Status]
	if s&registers.StatusIE == 0 || s&(registers.StatusEXL|registers.StatusERL) != 0 {
		return false
	}
	return s&c.Cop0.Reg[registers.Cause]&registers.CauseIPMask != 0
}

// requestInterruptCheck causes the pending interrupts to be checked at the
// next instruction boundary.
func (c *CPU) requestInterruptCheck() {
	c.checkInterrupts = true
	c.stuffToDo = true
}

// handleInterrupt is called between instructions. Execution continues
// immediately at the exception vector.
func (c *CPU) handleInterrupt() {
	if !c.checkForUnmaskedInterrupts() {
		c.fail(curated.Errorf(ConsistencyFailure, "interrupt handler called without an unmasked interrupt"))
		return
	}

	// the cache is not told about the change in program counter. the next
	// Append() to a fragment being built will notice that the program counter
	// has changed
	c.setException(registers.CauseExcClear, registers.ExcInt)
	c.pc = c.Cop0.Vector(registers.VectorGeneral)
	c.delayPC = 0
}

// UpdateCause3 copies the state of the interrupt line into the IP3 bit of the
// Cause register. It should be called by the interrupt controller whenever
// the line changes.
func (c *CPU) UpdateCause3() {
	c.checkOwner("UpdateCause3")

	pending := c.line != nil && c.line.InterruptPending()
	if pending {
		c.Cop0.Reg[registers.Cause] |= registers.CauseIP3
	} else {
		c.Cop0.Reg[registers.Cause] &^= registers.CauseIP3
	}

	if (c.Cop0.Reg[registers.Cause]&registers.CauseIP3 != 0) != pending {
		c.fail(curated.Errorf(ConsistencyFailure, "Cause.IP3 does not match the interrupt line"))
		return
	}

	if c.notify != nil {
		if err := c.notify.Notify(notifications.NotifyUnmaskedInterruptsChanged); err != nil {
			logger.Logf(logger.Allow, "cpu", "unmasked interrupts notice: %v", err)
		}
	}

	c.requestInterruptCheck()
}

// fail stops the CPU with a fatal error. The CPU will not run again until it
// is reset.
func (c *CPU) fail(err error) {
	if c.fatal == nil {
		c.fatal = err
		logger.Log(logger.Allow, "cpu", err)
	}
	c.stuffToDo = true
}

// unimplemented stops the CPU because the instruction is not recognised. The
// program counter is left pointing at the instruction.
func (c *CPU) unimplemented(i instruction) {
	c.nextPC = c.pc
	c.branchTarget = c.delayPC
	c.barrier = true
	c.stalled = true
	c.fail(curated.Errorf(UnimplementedInstruction, uint32(i), c.pc))
}
