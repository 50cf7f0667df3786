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

// Package events implements the CPU's event scheduler. Events are kept in a
// list sorted by the time at which they fire. The countdown of each event is
// stored relative to the event before it, so only the countdown of the head
// of the list needs to change as time passes:
//
//	events:      Compare(100)  Vbl(900)  RunForCycles(24)
//	fires after: 100           1000      1024
//
// The run loop subtracts executed cycles from the head with Consume() and
// calls Pop() for as long as Expired() returns true. An expired event may have
// a negative countdown if the CPU overshot the event. Popping the event
// carries the overshoot into the next event so the absolute time of every
// remaining event is preserved.
//
// Events of the same type are allowed. RemoveType() removes only the first
// event of the type.
package events
