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

package performance_test

import (
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/performance"
	"github.com/gopher64/gopher64/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfile("cpu,Trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "cpu,trace")

	p, err = performance.ParseProfile("ALL")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, performance.UnknownProfile))
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(120, 2.0)
	test.ExpectEquality(t, fps, 60.0)
	test.ExpectEquality(t, accuracy, 100.0)

	fps, accuracy = performance.CalcFPS(10, 0)
	test.ExpectEquality(t, fps, 0.0)
	test.ExpectEquality(t, accuracy, 0.0)

	test.ExpectEquality(t, performance.CalcMIPS(4000000, 2.0), 2.0)
}

func TestRunProfilerNone(t *testing.T) {
	var ran bool
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)
}

func TestCheck(t *testing.T) {
	p, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.VblCycles.Set(10000))

	ram, err := memory.NewRDRAM(preferences.RDRAMBase, false)
	test.DemandSuccess(t, err)
	defer ram.Close()

	// a branch to itself followed by the delay slot
	mem := memory.NewDispatch(ram)
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b, 0x1000ffff)
	test.DemandSuccess(t, mem.LoadImage(0x1000, b))

	c := cpu.NewCPU(p, mem, nil)
	c.SetPC(0x80001000)

	w := &strings.Builder{}
	err = performance.Check(w, c, 50*time.Millisecond, performance.ProfileNone)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(w.String(), " fps ("))
	test.ExpectSuccess(t, strings.Contains(w.String(), " MIPS ("))
	test.ExpectSuccess(t, c.Cycles() > 0)
	test.ExpectSuccess(t, c.Fatal())
}
