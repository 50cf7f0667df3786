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

package dynarec

import "fmt"

// Op is a pre-decoded instruction. It returns false if the fragment must stop
// after the op.
type Op func() bool

// Fragment is a sequence of ops starting at a single entry address.
type Fragment struct {
	EntryPC uint32

	// the address range of instructions in the fragment. only valid once the
	// fragment contains at least one op
	MinPC uint32
	MaxPC uint32

	// the number of ops in the sealed fragment
	OpsCompiled int

	// number of times the fragment has been run
	ExecutionCount int

	// the CPU stopped running while the fragment was being built
	BailedOut bool

	// incremented on every invalidation. the routine stops if the value
	// changes while it is running
	generation int

	ops      []Op
	lastNext uint32
	routine  func() int

	// weak memo of the fragment that followed each exit point. indexed by the
	// number of ops executed minus one
	nextFragments []*Fragment
}

func (f *Fragment) String() string {
	return fmt.Sprintf("%08x [%08x-%08x] ops=%d runs=%d %s", f.EntryPC, f.MinPC, f.MaxPC,
		f.OpsCompiled, f.ExecutionCount, f.State())
}

// Compiled returns true if the fragment has a routine that can be run.
func (f *Fragment) Compiled() bool {
	return f.routine != nil
}

// State returns a short description of the fragment's lifecycle state.
func (f *Fragment) State() string {
	switch {
	case f.routine != nil:
		return "compiled"
	case f.BailedOut:
		return "bailed out"
	case len(f.ops) > 0:
		return "building"
	}
	return "pending"
}

// Run the fragment. Returns the number of ops that were executed, which will
// be at least one.
func (f *Fragment) Run() int {
	f.ExecutionCount++
	return f.routine()
}

// seal creates the routine from the ops slice.
func (f *Fragment) seal() {
	ops := f.ops
	gen := f.generation

	f.OpsCompiled = len(ops)
	f.nextFragments = make([]*Fragment, len(ops))
	f.routine = func() int {
		for i, op := range ops {
			if !op() || f.generation != gen {
				return i + 1
			}
		}
		return len(ops)
	}
}

// reset the fragment to the pending state.
func (f *Fragment) reset() {
	f.generation++
	f.routine = nil
	f.ops = nil
	f.nextFragments = nil
	f.OpsCompiled = 0
	f.ExecutionCount = 0
	f.BailedOut = false
	f.MinPC = f.EntryPC
	f.MaxPC = f.EntryPC
}
