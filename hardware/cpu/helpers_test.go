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

package cpu_test

import (
	"encoding/binary"
	"testing"

	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/notifications"
	"github.com/gopher64/gopher64/test"
)

// instruction encoding for the test programs

func itype(op, rs, rt uint32, imm int) uint32 {
	return op<<26 | rs<<21 | rt<<16 | uint32(imm)&0xffff
}

func rtype(rs, rt, rd, sa, funct uint32) uint32 {
	return rs<<21 | rt<<16 | rd<<11 | sa<<6 | funct
}

const nop = 0

func lui(rt uint32, imm int) uint32 { return itype(15, 0, rt, imm) }
func ori(rt, rs uint32, imm int) uint32 { return itype(13, rs, rt, imm) }
func addiu(rt, rs uint32, imm int) uint32 { return itype(9, rs, rt, imm) }
func addu(rd, rs, rt uint32) uint32 { return rtype(rs, rt, rd, 0, 0x21) }
func beq(rs, rt uint32, off int) uint32 { return itype(4, rs, rt, off) }
func bne(rs, rt uint32, off int) uint32 { return itype(5, rs, rt, off) }
func beql(rs, rt uint32, off int) uint32 { return itype(20, rs, rt, off) }
func lw(rt, base uint32, off int) uint32 { return itype(35, base, rt, off) }
func sw(rt, base uint32, off int) uint32 { return itype(43, base, rt, off) }
func lwc1(ft, base uint32, off int) uint32 { return itype(49, base, ft, off) }
func cache(op, base uint32, off int) uint32 {
	return itype(47, base, op, off)
}
func mtc0(rt, rd uint32) uint32 { return 0x10<<26 | 4<<21 | rt<<16 | rd<<11 }
func mfc0(rt, rd uint32) uint32 { return 0x10<<26 | 0<<21 | rt<<16 | rd<<11 }

const (
	syscall  = 0x0000000c
	eret     = 0x42000018
	reserved = 19 << 26
)

// COP0 register numbers
const (
	cp0Random  = 1
	cp0Wired   = 6
	cp0Count   = 9
	cp0Compare = 11
	cp0Status  = 12
	cp0EPC     = 14
)

// programs are loaded at this physical address and run from the KSEG0 alias
const (
	origin = 0x1000
	entry  = 0x80000000 | origin
)

type testOptions struct {
	dynarec      bool
	hotThreshold int
	vblCycles    int
	notify       notifications.Notify
}

func newCPU(t *testing.T, opts testOptions) (*cpu.CPU, *memory.Dispatch) {
	t.Helper()

	p, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.DynarecEnabled.Set(opts.dynarec))
	if opts.hotThreshold > 0 {
		test.DemandSuccess(t, p.HotThreshold.Set(opts.hotThreshold))
	}
	if opts.vblCycles > 0 {
		test.DemandSuccess(t, p.VblCycles.Set(opts.vblCycles))
	}
	test.DemandSuccess(t, p.ZeroSeed.Set(true))

	ram, err := memory.NewRDRAM(preferences.RDRAMBase, false)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		ram.Close()
	})

	mem := memory.NewDispatch(ram)
	return cpu.NewCPU(p, mem, opts.notify), mem
}

func load(t *testing.T, mem *memory.Dispatch, phys uint32, program ...uint32) {
	t.Helper()
	b := make([]byte, len(program)*4)
	for i, w := range program {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	test.DemandSuccess(t, mem.LoadImage(phys, b))
}

func steps(t *testing.T, c *cpu.CPU, n int) {
	t.Helper()
	for range n {
		test.DemandSuccess(t, c.Step())
	}
}
