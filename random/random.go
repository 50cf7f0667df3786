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

package random

import (
	"math/rand"
	"time"
)

var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is the source of emulated time used to seed the random numbers.
type Clock interface {
	Cycles() uint64
}

// Random is the random number source for the emulation.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool

	noRewind *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock:    clock,
		noRewind: rand.New(rand.NewSource(baseSeed)),
	}
}

func (rnd *Random) seed() int64 {
	var s int64
	if rnd.clock != nil {
		s = int64(rnd.clock.Cycles())
	}
	if rnd.ZeroSeed {
		return s
	}
	return baseSeed + s
}

// Rewindable returns a random number in the range [0, n) that will be the same
// for the same emulated time.
func (rnd *Random) Rewindable(n int) int {
	return rand.New(rand.NewSource(rnd.seed())).Intn(n)
}

// NoRewind returns a random number in the range [0, n) without regard to the
// emulated time.
func (rnd *Random) NoRewind(n int) int {
	if rnd.ZeroSeed {
		return rnd.Rewindable(n)
	}
	return rnd.noRewind.Intn(n)
}
