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

package events_test

import (
	"testing"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/test"
)

func TestAdd(t *testing.T) {
	ev := events.NewEvents()

	test.ExpectSuccess(t, ev.Add(events.Vbl, 1000))
	test.ExpectSuccess(t, ev.Add(events.Compare, 100))
	test.ExpectSuccess(t, ev.Add(events.RunForCycles, 1024))
	test.ExpectEquality(t, ev.String(), "Compare(100) Vbl(900) RunForCycles(24)")

	// same firing time as an existing event is placed before it
	test.ExpectSuccess(t, ev.Add(events.RunForCycles, 100))
	test.ExpectEquality(t, ev.String(), "RunForCycles(100) Compare(0) Vbl(900) RunForCycles(24)")

	// and the same goes for the event at the end of the list
	test.ExpectSuccess(t, ev.Add(events.Compare, 1024))
	test.ExpectEquality(t, ev.String(), "RunForCycles(100) Compare(0) Vbl(900) Compare(24) RunForCycles(0)")

	err := ev.Add(events.Compare, 0)
	test.ExpectEquality(t, curated.Is(err, events.InvalidCountdown), true)
	err = ev.Add(events.Compare, -1)
	test.ExpectEquality(t, curated.Is(err, events.InvalidCountdown), true)
	test.ExpectEquality(t, ev.Len(), 5)
}

func TestRemoveType(t *testing.T) {
	ev := events.NewEvents()
	ev.Add(events.Compare, 100)
	ev.Add(events.Vbl, 1000)
	ev.Add(events.RunForCycles, 1024)

	test.ExpectEquality(t, ev.RemoveType(events.Vbl), true)
	test.ExpectEquality(t, ev.String(), "Compare(100) RunForCycles(924)")
	test.ExpectEquality(t, ev.Has(events.Vbl), false)
	test.ExpectEquality(t, ev.RemoveType(events.Vbl), false)

	n, ok := ev.CyclesUntil(events.RunForCycles)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, n, 1024)

	test.ExpectEquality(t, ev.RemoveType(events.RunForCycles), true)
	test.ExpectEquality(t, ev.String(), "Compare(100)")
}

func TestOvershoot(t *testing.T) {
	ev := events.NewEvents()
	ev.Add(events.Compare, 10)
	ev.Add(events.Vbl, 20)

	ev.Consume(12)
	test.ExpectEquality(t, ev.Expired(), true)
	e, ok := ev.Pop()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, e, events.Event{Type: events.Compare, Countdown: -2})

	// the overshoot is carried into the next event
	test.ExpectEquality(t, ev.Countdown(), 8)
	test.ExpectEquality(t, ev.Expired(), false)

	_, ok = ev.Pop()
	test.ExpectEquality(t, ok, true)
	_, ok = ev.Pop()
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, ev.Expired(), false)
}

// a Compare event can be a full wrap of the Count register away
func TestLongCountdown(t *testing.T) {
	ev := events.NewEvents()
	test.ExpectSuccess(t, ev.Add(events.Compare, 1<<32))
	test.ExpectSuccess(t, ev.Add(events.Vbl, 1000))
	test.ExpectEquality(t, ev.String(), "Vbl(1000) Compare(4294966296)")

	n, ok := ev.CyclesUntil(events.Compare)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, n, int64(1<<32))

	test.ExpectEquality(t, ev.Skip(), int64(999))
	test.ExpectEquality(t, ev.Countdown(), int64(1))
}

func TestSkip(t *testing.T) {
	ev := events.NewEvents()
	ev.Add(events.Compare, 1000)
	test.ExpectEquality(t, ev.Skip(), 999)
	test.ExpectEquality(t, ev.Countdown(), 1)
	test.ExpectEquality(t, ev.Skip(), 0)
	test.ExpectEquality(t, ev.Countdown(), 1)
}

// the absolute firing time of every event is the sum of the countdowns up to
// and including the event. this must hold however the list is manipulated
func TestCountdownInvariant(t *testing.T) {
	ev := events.NewEvents()

	type pending struct {
		typ  events.Type
		time int64
	}
	var expected []pending
	var now int64

	add := func(typ events.Type, countdown int64) {
		test.DemandSuccess(t, ev.Add(typ, countdown))
		expected = append(expected, pending{typ: typ, time: now + countdown})
	}

	check := func() {
		t.Helper()
		abs := now
		for _, e := range ev.Snapshot() {
			abs += e.Countdown
			found := false
			for i, p := range expected {
				if p.typ == e.Type && p.time == abs {
					expected = append(expected[:i], expected[i+1:]...)
					found = true
					break
				}
			}
			test.ExpectEquality(t, found, true, e)
		}
		test.ExpectEquality(t, len(expected), 0)

		// rebuild expected list from the current state
		abs = now
		for _, e := range ev.Snapshot() {
			abs += e.Countdown
			expected = append(expected, pending{typ: e.Type, time: abs})
		}
	}

	add(events.Vbl, 500)
	add(events.Compare, 123)
	add(events.RunForCycles, 777)
	check()

	for step := range 50 {
		n := 37
		ev.Consume(n)
		now += int64(n)
		for ev.Expired() {
			e, _ := ev.Pop()
			for i, p := range expected {
				if p.typ == e.Type {
					expected = append(expected[:i], expected[i+1:]...)
					break
				}
			}
			if e.Type == events.Vbl {
				add(events.Vbl, 500)
			}
		}
		if step%7 == 0 {
			add(events.Compare, int64(50+step))
		}
		check()
	}
}
