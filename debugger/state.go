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
	"io"
	"strings"

	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/dynarec"
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/cpu/tlb"
)

// Fragment summarises a single fragment in the fragment cache.
type Fragment struct {
	EntryPC uint32
	MinPC   uint32
	MaxPC   uint32
	Ops     int
	Runs    int
	State   string
}

// State is a copy of the CPU state at the time Snapshot() was called.
type State struct {
	PC      uint32
	DelayPC uint32
	Cycles  uint64

	GPR    registers.GPR
	MultHi uint64
	MultLo uint64
	Cop0   registers.Cop0
	FPU    string

	TLB    [tlb.NumEntries]tlb.Entry
	Events []events.Event

	Fragments     []Fragment
	CacheStats    dynarec.Stats
	Invalidations []dynarec.Invalidation

	// empty if the CPU has not stopped with a fatal error
	Fatal string
}

// Snapshot the state of the CPU. Should not be called while the CPU is
// running.
func Snapshot(c *cpu.CPU) *State {
	s := &State{
		PC:            c.PC(),
		DelayPC:       c.DelayPC(),
		Cycles:        c.Cycles(),
		GPR:           c.GPR,
		MultHi:        c.MultHi(),
		MultLo:        c.MultLo(),
		Cop0:          c.Cop0,
		FPU:           c.FPU.String(),
		TLB:           c.TLB.Entries(),
		Events:        c.Events.Snapshot(),
		CacheStats:    c.Cache.Stats,
		Invalidations: c.Cache.InvalidationLog(),
	}

	for _, f := range c.Cache.Fragments() {
		s.Fragments = append(s.Fragments, Fragment{
			EntryPC: f.EntryPC,
			MinPC:   f.MinPC,
			MaxPC:   f.MaxPC,
			Ops:     f.OpsCompiled,
			Runs:    f.ExecutionCount,
			State:   f.State(),
		})
	}

	if err := c.Fatal(); err != nil {
		s.Fatal = err.Error()
	}

	return s
}

// String returns a register dump.
func (s *State) String() string {
	b := strings.Builder{}

	b.WriteString(fmt.Sprintf("PC=%08x", s.PC))
	if s.DelayPC != 0 {
		b.WriteString(fmt.Sprintf(" (delay slot, branch to %08x)", s.DelayPC))
	}
	b.WriteString(fmt.Sprintf(" cycles=%d\n", s.Cycles))

	b.WriteString(s.GPR.String())
	b.WriteString(fmt.Sprintf("HI=%016x LO=%016x\n", s.MultHi, s.MultLo))
	b.WriteString(s.Cop0.String())
	b.WriteString("\n")
	b.WriteString(s.FPU)
	b.WriteString("\n")

	if s.Fatal != "" {
		b.WriteString(fmt.Sprintf("fatal: %s\n", s.Fatal))
	}

	return b.String()
}

// WriteFragments writes a line for every fragment, a summary of the cache
// statistics and the invalidation log.
func (s *State) WriteFragments(w io.Writer) {
	for _, f := range s.Fragments {
		io.WriteString(w, fmt.Sprintf("%08x [%08x-%08x] ops=%-4d runs=%-8d %s\n",
			f.EntryPC, f.MinPC, f.MaxPC, f.Ops, f.Runs, f.State))
	}
	st := s.CacheStats
	io.WriteString(w, fmt.Sprintf("created=%d compiled=%d invalidated=%d bailed=%d abandoned=%d\n",
		st.Created, st.Compiled, st.Invalidated, st.BailedOut, st.Abandoned))
	for _, inv := range s.Invalidations {
		io.WriteString(w, inv.String())
		io.WriteString(w, "\n")
	}
}
