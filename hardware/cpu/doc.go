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

// Package cpu emulates the VR4300, the 64bit MIPS processor of the console.
//
// The CPU type bundles everything the processor needs: the general purpose
// and control registers, the TLB, the floating point coprocessor, the event
// scheduler and the fragment cache of the dynamic recompiler. There is no
// package level state and any number of CPU instances can exist at once.
//
// Execution is driven by the Run() function. Run() executes instructions until
// the cycle budget is exhausted, the vertical blank is reached, a halt is
// requested, a breakpoint is reached or a fatal error occurs. The Yield value
// returned by Run() says which:
//
//	y, err := cpu.Run(100000)
//	if err != nil {
//		// y is YieldFatal
//	}
//
// Instructions are executed either by the interpreter or, for addresses that
// have become hot, by a compiled fragment (see the dynarec package). A
// fragment is only run if the next event will not fire before the fragment
// has finished, so events are always handled at the same instruction
// boundary whichever method is used.
//
// Program counter update
//
// The CPU keeps four program counter values. The pc field is the address of
// the instruction being executed. Before each instruction nextPC is set to the
// pending branch target (delayPC) if there is one, or to pc+4. Branch
// instructions write the branchTarget field which becomes the new delayPC once
// the instruction has completed:
//
//	nextPC = delayPC or pc+4
//	branchTarget = 0
//	execute
//	pc = nextPC
//	delayPC = branchTarget
//
// A non-zero delayPC therefore means that the instruction at pc is in a branch
// delay slot. Exceptions raised by an instruction redirect nextPC to the
// exception vector and clear branchTarget.
//
// Concurrency
//
// The CPU is not safe for concurrent use. The only function that can be
// called from another goroutine is RequestHalt(). With the debug.assertOwner
// preference set, functions that change the state of the CPU will panic if
// they are called from another goroutine while Run() is active.
package cpu
