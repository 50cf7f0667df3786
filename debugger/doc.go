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

// Package debugger provides introspection of a running CPU. It is used by the
// command line harness and by tests and is never consulted by the CPU itself
// except through the BreakpointSource interface.
//
// Snapshot() copies the visible state of the CPU into a State value. The State
// can be printed or rendered as a Graphviz document with WriteGraph().
//
// Breakpoints are implemented by patching the reserved breakpoint instruction
// into RDRAM. The write goes through the memory dispatch so any fragment
// containing the address is invalidated. When the CPU executes the patched
// instruction it asks the Breakpoints type for the original instruction:
//
//	bps := debugger.NewBreakpoints(mem)
//	cpu.PlumbBreakpoints(bps)
//	err := bps.Set(0x00001000)
package debugger
