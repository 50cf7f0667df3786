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

import (
	"fmt"
	"strings"
)

// NumGPR is the number of general purpose registers.
const NumGPR = 32

// Conventional names for the general purpose registers.
var gprNames = [NumGPR]string{
	"r0", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "s8", "ra",
}

// GPR is the general purpose register file.
type GPR [NumGPR]uint64

// Label returns the conventional name of the register.
func Label(r int) string {
	return gprNames[r&0x1f]
}

// Get the full 64bit value of the register.
func (g *GPR) Get(r int) uint64 {
	return g[r]
}

// Set the full 64bit value of the register. Setting register zero has no
// effect.
func (g *GPR) Set(r int, v uint64) {
	if r == 0 {
		return
	}
	g[r] = v
}

// Lo returns the lower 32bits of the register.
func (g *GPR) Lo(r int) uint32 {
	return uint32(g[r])
}

// Hi returns the upper 32bits of the register.
func (g *GPR) Hi(r int) uint32 {
	return uint32(g[r] >> 32)
}

// SetSignExtended sets the lower half of the register to v and the upper half
// to the sign of v.
func (g *GPR) SetSignExtended(r int, v uint32) {
	if r == 0 {
		return
	}
	g[r] = uint64(int64(int32(v)))
}

// SetZeroExtended sets the lower half of the register to v and the upper half
// to zero.
func (g *GPR) SetZeroExtended(r int, v uint32) {
	if r == 0 {
		return
	}
	g[r] = uint64(v)
}

// Reset all registers to zero.
func (g *GPR) Reset() {
	*g = GPR{}
}

func (g *GPR) String() string {
	s := strings.Builder{}
	for r := range NumGPR {
		s.WriteString(fmt.Sprintf("%s=%016x", gprNames[r], g[r]))
		if r%4 == 3 {
			s.WriteString("\n")
		} else {
			s.WriteString(" ")
		}
	}
	return s.String()
}
