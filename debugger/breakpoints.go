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

package debugger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/logger"
)

// Sentinel error patterns.
const (
	BreakpointExists   = "breakpoints: already set at %08x"
	NoBreakpoint       = "breakpoints: not set at %08x"
	UnalignedAddress   = "breakpoints: unaligned address %08x"
	BreakpointNotInRAM = "breakpoints: %08x is not in RDRAM"
)

// Breakpoints implements the cpu.BreakpointSource interface.
type Breakpoints struct {
	mem *memory.Dispatch

	// original instructions indexed by physical address
	original map[uint32]uint32
}

// NewBreakpoints is the preferred method of initialisation for the
// Breakpoints type.
func NewBreakpoints(mem *memory.Dispatch) *Breakpoints {
	return &Breakpoints{
		mem:      mem,
		original: make(map[uint32]uint32),
	}
}

func (bps *Breakpoints) String() string {
	s := strings.Builder{}
	for _, a := range bps.List() {
		s.WriteString(fmt.Sprintf("%08x: %08x\n", a, bps.original[a]))
	}
	return s.String()
}

// Set a breakpoint at the physical address. The address must be in RDRAM.
func (bps *Breakpoints) Set(phys uint32) error {
	if phys&3 != 0 {
		return curated.Errorf(UnalignedAddress, phys)
	}
	if int(phys)+4 > bps.mem.RAM().Size() {
		return curated.Errorf(BreakpointNotInRAM, phys)
	}
	if _, ok := bps.original[phys]; ok {
		return curated.Errorf(BreakpointExists, phys)
	}

	bps.original[phys] = bps.mem.ReadU32(phys)
	bps.mem.WriteU32(phys, cpu.BreakpointInstruction)
	logger.Logf(logger.Allow, "debugger", "breakpoint set at %08x", phys)

	return nil
}

// Clear the breakpoint at the physical address. The original instruction is
// restored.
func (bps *Breakpoints) Clear(phys uint32) error {
	v, ok := bps.original[phys]
	if !ok {
		return curated.Errorf(NoBreakpoint, phys)
	}

	delete(bps.original, phys)
	bps.mem.WriteU32(phys, v)
	logger.Logf(logger.Allow, "debugger", "breakpoint cleared at %08x", phys)

	return nil
}

// ClearAll removes every breakpoint.
func (bps *Breakpoints) ClearAll() {
	for _, a := range bps.List() {
		_ = bps.Clear(a)
	}
}

// List returns the addresses of all breakpoints in ascending order.
func (bps *Breakpoints) List() []uint32 {
	l := make([]uint32, 0, len(bps.original))
	for a := range bps.original {
		l = append(l, a)
	}
	slices.Sort(l)
	return l
}

// Original implements the cpu.BreakpointSource interface.
func (bps *Breakpoints) Original(phys uint32) (uint32, bool) {
	v, ok := bps.original[phys]
	return v, ok
}
