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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu"
)

// reason given to the CPU when the measurement period is over
const timedOut = "performance: timed out"

// Check the performance of the CPU by running it for the specified duration.
// The CPU should be reset and have a program ready to run.
//
// The profile argument is passed to RunProfiler().
func Check(output io.Writer, c *cpu.CPU, duration time.Duration, profile Profile) error {
	var frames int
	var start uint64
	var elapsed time.Duration

	runner := func() error {
		start = c.Cycles()
		t := time.Now()

		// the halt request is the only way of stopping the CPU from outside
		// the emulation goroutine
		timer := time.AfterFunc(duration, func() {
			c.RequestHalt(curated.Errorf(timedOut))
		})
		defer timer.Stop()

		defer func() {
			elapsed = time.Since(t)
		}()

		for {
			y, err := c.Run(1 << 24)
			if err != nil {
				return err
			}

			switch y {
			case cpu.YieldVerticalBlank:
				frames++
			case cpu.YieldHalt:
				return nil
			case cpu.YieldBreakpoint:
				return curated.Errorf("performance: unexpected breakpoint at %08x", c.PC())
			}
		}
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	cycles := c.Cycles() - start
	fps, accuracy := CalcFPS(frames, elapsed.Seconds())
	mips := CalcMIPS(cycles, elapsed.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, frames, elapsed.Seconds(), accuracy)
	fmt.Fprintf(output, "%.2f MIPS (%d instructions)\n", mips, cycles)

	return nil
}
