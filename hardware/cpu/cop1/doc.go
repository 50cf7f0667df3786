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

// Package cop1 implements the floating point coprocessor of the VR4300. The
// package is the boundary between the CPU core and floating point arithmetic.
// The CPU moves values in and out of the register file (MFC1, MTC1, LWC1,
// SDC1, etc.) and hands arithmetic instructions to Execute().
//
// Arithmetic uses the host's floating point semantics. The rounding mode in
// FCR31 is honoured for conversions to integer formats only, and the
// exception flags are not maintained.
//
// The register file has two modes, selected by the FR bit in the Status
// register. When FR is clear, 64bit values occupy an even/odd register pair
// with the low word in the even register. When FR is set, each register holds
// a full 64bit value.
package cop1
