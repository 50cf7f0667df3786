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

package cpu

import (
	"fmt"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/notifications"
)

// the Count register is incremented once per instruction. this is half the
// rate of real hardware but the ratio is unimportant so long as Count and the
// event countdowns agree
const compareInterval int64 = 1 << 32

// advance time by n cycles.
func (c *CPU) advance(n int) {
	c.Cop0.Reg[registers.Count] += uint32(n)
	c.cycles += uint64(n)
	c.Events.Consume(n)
}

// scheduleCompare replaces the Compare event with one that fires when Count
// next equals Compare.
func (c *CPU) scheduleCompare() {
	c.Events.RemoveType(events.Compare)
	d := countdownTo(c.Cop0.Reg[registers.Compare], c.Cop0.Reg[registers.Count])
	if err := c.Events.Add(events.Compare, d); err != nil {
		c.fail(curated.Errorf(ConsistencyFailure, err))
	}
}

// drainEvents handles every event that has expired.
func (c *CPU) drainEvents() {
	for c.Events.Expired() {
		e, _ := c.Events.Pop()

		// nothing is allowed to run past the next event
		if e.Countdown < 0 {
			c.fail(curated.Errorf(ConsistencyFailure, fmt.Sprintf("%s overshot by %d cycles", e.Type, -e.Countdown)))
			return
		}

		var err error

		switch e.Type {
		case events.RunForCycles:
			c.budgetExhausted = true
			c.stuffToDo = true

		case events.Compare:
			c.Cop0.Reg[registers.Cause] |= registers.CauseIP7
			err = c.Events.Add(events.Compare, compareInterval+e.Countdown)
			if c.checkForUnmaskedInterrupts() {
				c.requestInterruptCheck()
			}

		case events.Vbl:
			err = c.Events.Add(events.Vbl, int64(c.vblCycles)+e.Countdown)
			c.vblank = true
			c.stuffToDo = true
			if c.notify != nil {
				if nerr := c.notify.Notify(notifications.NotifyVerticalBlank); nerr != nil {
					logger.Logf(logger.Allow, "cpu", "vertical blank notice: %v", nerr)
				}
			}
		}

		if err != nil {
			c.fail(curated.Errorf(ConsistencyFailure, err))
			return
		}
	}
}
