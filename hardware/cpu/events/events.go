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

package events

import (
	"fmt"
	"math"
	"strings"

	"github.com/gopher64/gopher64/curated"
)

// Sentinel error patterns.
const (
	InvalidCountdown = "events: invalid countdown for %s: %d"
)

// Type of event.
type Type int

// List of valid event types.
const (
	// the time budget given to the CPU by the host has been exhausted
	RunForCycles Type = iota

	// the Count register has reached the value in the Compare register
	Compare

	// the video interface has reached the vertical blank
	Vbl
)

func (t Type) String() string {
	switch t {
	case RunForCycles:
		return "RunForCycles"
	case Compare:
		return "Compare"
	case Vbl:
		return "Vbl"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is a single entry in the event list. Countdown is the number of cycles
// after the preceding event in the list that the event fires.
type Event struct {
	Type      Type
	Countdown int64
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d)", e.Type, e.Countdown)
}

// Events is the list of pending events.
type Events struct {
	list []Event
}

// NewEvents is the preferred method of initialisation for the Events type.
func NewEvents() *Events {
	return &Events{
		list: make([]Event, 0, 8),
	}
}

// Reset removes all events.
func (ev *Events) Reset() {
	ev.list = ev.list[:0]
}

func (ev *Events) String() string {
	s := strings.Builder{}
	for i, e := range ev.list {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(e.String())
	}
	return s.String()
}

// Add an event that fires after countdown cycles. The countdown must be
// positive. A new event is placed before any existing event with the same
// firing time.
func (ev *Events) Add(t Type, countdown int64) error {
	if countdown <= 0 {
		return curated.Errorf(InvalidCountdown, t, countdown)
	}

	for i := range ev.list {
		if countdown <= ev.list[i].Countdown {
			ev.list[i].Countdown -= countdown
			ev.list = append(ev.list, Event{})
			copy(ev.list[i+1:], ev.list[i:])
			ev.list[i] = Event{Type: t, Countdown: countdown}
			return nil
		}
		countdown -= ev.list[i].Countdown
	}

	ev.list = append(ev.list, Event{Type: t, Countdown: countdown})
	return nil
}

// RemoveType removes the first event of the type. The countdown of the removed
// event is folded into the event that follows it. Returns false if there is no
// event of that type.
func (ev *Events) RemoveType(t Type) bool {
	for i := range ev.list {
		if ev.list[i].Type == t {
			if i+1 < len(ev.list) {
				ev.list[i+1].Countdown += ev.list[i].Countdown
			}
			ev.list = append(ev.list[:i], ev.list[i+1:]...)
			return true
		}
	}
	return false
}

// Has returns true if there is an event of the type in the list.
func (ev *Events) Has(t Type) bool {
	for _, e := range ev.list {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Len returns the number of pending events.
func (ev *Events) Len() int {
	return len(ev.list)
}

// Head returns the next event to fire. Returns false if there are no events.
func (ev *Events) Head() (Event, bool) {
	if len(ev.list) == 0 {
		return Event{}, false
	}
	return ev.list[0], true
}

// Countdown returns the number of cycles until the next event fires. If there
// are no events the result is math.MaxInt64.
func (ev *Events) Countdown() int64 {
	if len(ev.list) == 0 {
		return math.MaxInt64
	}
	return ev.list[0].Countdown
}

// Consume subtracts cycles from the head of the list.
func (ev *Events) Consume(cycles int) {
	if len(ev.list) == 0 {
		return
	}
	ev.list[0].Countdown -= int64(cycles)
}

// Expired returns true if the head of the list should fire.
func (ev *Events) Expired() bool {
	return len(ev.list) > 0 && ev.list[0].Countdown <= 0
}

// Pop removes and returns the head of the list. Any overshoot (a negative
// countdown) is carried into the next event.
func (ev *Events) Pop() (Event, bool) {
	if len(ev.list) == 0 {
		return Event{}, false
	}
	e := ev.list[0]
	ev.list = append(ev.list[:0], ev.list[1:]...)
	if len(ev.list) > 0 && e.Countdown < 0 {
		ev.list[0].Countdown += e.Countdown
	}
	return e, true
}

// Skip consumes all but one of the cycles before the next event. The number
// of cycles skipped is returned. Used when the CPU knows that nothing can
// happen until the next event.
func (ev *Events) Skip() int64 {
	n := ev.Countdown() - 1
	if n <= 0 || len(ev.list) == 0 {
		return 0
	}
	ev.list[0].Countdown -= n
	return n
}

// CyclesUntil returns the number of cycles until the first event of the type
// fires. Returns false if there is no event of the type.
func (ev *Events) CyclesUntil(t Type) (int64, bool) {
	var n int64
	for _, e := range ev.list {
		n += e.Countdown
		if e.Type == t {
			return n, true
		}
	}
	return 0, false
}

// Snapshot returns a copy of the event list.
func (ev *Events) Snapshot() []Event {
	s := make([]Event, len(ev.list))
	copy(s, ev.list)
	return s
}
