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

package hardware

import "strings"

// Source is a bit in the interrupt register of the MIPS interface.
type Source uint32

// List of interrupt sources. The values match the bits in the MI_INTR
// register.
const (
	SourceSP Source = 1 << iota
	SourceSI
	SourceAI
	SourceVI
	SourcePI
	SourceDP
)

var sourceNames = []string{"SP", "SI", "AI", "VI", "PI", "DP"}

func (s Source) String() string {
	var n []string
	for i, name := range sourceNames {
		if s&(1<<i) != 0 {
			n = append(n, name)
		}
	}
	if len(n) == 0 {
		return "none"
	}
	return strings.Join(n, "|")
}

// Interrupts is the interrupt line of the MIPS interface. The line is
// asserted while any source is pending. It implements the cpu.InterruptLine
// interface.
type Interrupts struct {
	pending Source
}

// Pending returns the sources that are currently raised.
func (mi *Interrupts) Pending() Source {
	return mi.pending
}

// InterruptPending implements the cpu.InterruptLine interface.
func (mi *Interrupts) InterruptPending() bool {
	return mi.pending != 0
}
