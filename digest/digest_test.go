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

package digest_test

import (
	"encoding/binary"
	"testing"

	"github.com/gopher64/gopher64/digest"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

// increments the word at 0x80002000 forever
var counter = []uint32{
	0x3c018000, // lui r1, 0x8000
	0x34212000, // ori r1, r1, 0x2000
	0x8c220000, // lw r2, 0(r1)
	0x24420001, // addiu r2, r2, 1
	0xac220000, // sw r2, 0(r1)
	0x1000fffc, // beq r0, r0, -4
	0x00000000, // nop
}

func run(t *testing.T, dynarec bool, frames int) *digest.State {
	t.Helper()

	p, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.DynarecEnabled.Set(dynarec))
	test.DemandSuccess(t, p.HotThreshold.Set(2))
	test.DemandSuccess(t, p.VblCycles.Set(1000))

	ram, err := memory.NewRDRAM(preferences.RDRAMBase, false)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		ram.Close()
	})

	mem := memory.NewDispatch(ram)
	b := make([]byte, len(counter)*4)
	for i, w := range counter {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	test.DemandSuccess(t, mem.LoadImage(0x1000, b))

	c := cpu.NewCPU(p, mem, nil)
	c.SetPC(0x80001000)

	dig := digest.NewState()
	for dig.Frames() < frames {
		y, err := c.Run(1 << 20)
		test.DemandSuccess(t, err)
		test.DemandEquality(t, y, cpu.YieldVerticalBlank)
		dig.Frame(c, ram.Bytes())
	}

	return dig
}

func TestDigest(t *testing.T) {
	interpreted := run(t, false, 5)
	compiled := run(t, true, 5)
	test.ExpectEquality(t, interpreted.String(), compiled.String())
	test.ExpectEquality(t, compiled.Frames(), 5)

	// the chain means a different number of frames is a different digest
	shorter := run(t, true, 4)
	test.ExpectInequality(t, shorter.String(), compiled.String())

	zero := digest.NewState().String()
	test.ExpectInequality(t, compiled.String(), zero)
	compiled.ResetDigest()
	test.ExpectEquality(t, compiled.String(), zero)
	test.ExpectEquality(t, compiled.Frames(), 0)
}
