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

// Package memory is the boundary between the CPU core and the rest of the
// console. Everything the CPU reads or writes (other than its own registers)
// is addressed by a 32bit physical address and is serviced by the Dispatch
// type.
//
//	    CPU ---- fast path ---- RDRAM
//	     |
//	     \------ Dispatch ---- RDRAM
//	                  |
//	                  |---- Handler (eg. video interface registers)
//	                  |
//	                  \---- Handler (eg. peripheral interface, cartridge)
//
// The CPU has a fast path to RDRAM: when a physical address falls inside the
// RDRAM window it indexes the backing slice directly (see Dispatch.RAM()).
// Every other address goes through a Handler registered with Map().
//
// Memory-mapped devices are not part of the CPU core. They are represented
// only by the Handler interface.
//
// The Dispatch type also distributes instruction cache invalidation notices.
// DMA transfers into RDRAM and writes made through the Dispatch (rather than
// the CPU fast path) call InvalidateICache() so that subscribers, such as the
// dynamic recompiler, can discard compiled code for the range.
//
// All values are big-endian.
package memory
