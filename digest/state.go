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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
)

// State is a chained digest of the CPU registers and RDRAM.
type State struct {
	digest [sha1.Size]byte
	frames int

	// scratch space for the register file
	regs []byte
}

// NewState is the preferred method of initialisation for the State type.
func NewState() *State {
	return &State{
		regs: make([]byte, 4+(registers.NumGPR+2)*8),
	}
}

func (dig *State) String() string {
	return fmt.Sprintf("%x", dig.digest)
}

// Frames returns the number of times Frame() has been called since the last
// reset.
func (dig *State) Frames() int {
	return dig.frames
}

// ResetDigest resets the current digest value to zero.
func (dig *State) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frames = 0
}

// Frame adds the current state of the CPU and the contents of RDRAM to the
// digest.
func (dig *State) Frame(c *cpu.CPU, ram []byte) {
	binary.BigEndian.PutUint32(dig.regs, c.PC())
	for r := range registers.NumGPR {
		binary.BigEndian.PutUint64(dig.regs[4+r*8:], c.GPR.Get(r))
	}
	binary.BigEndian.PutUint64(dig.regs[4+registers.NumGPR*8:], c.MultHi())
	binary.BigEndian.PutUint64(dig.regs[12+registers.NumGPR*8:], c.MultLo())

	h := sha1.New()
	h.Write(dig.digest[:])
	h.Write(dig.regs)
	h.Write(ram)
	copy(dig.digest[:], h.Sum(nil))
	dig.frames++
}
