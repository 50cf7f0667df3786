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

// Package limiter restricts the rate at which the host presents frames.
//
// The CPU core runs as quickly as the host allows. A Limiter placed in the
// frame loop of the host keeps the emulation to the field rate of the
// console:
//
//	lim := limiter.NewFPSLimiter(60)
//	defer lim.Stop()
//
//	for {
//		c.Run(budget)
//		lim.Wait()
//	}
package limiter

import (
	"time"
)

// Limiter triggers a fixed number of times per second.
type Limiter struct {
	framesPerSecond int
	ticker          *time.Ticker
}

// NewFPSLimiter is the preferred method of initialisation for the Limiter
// type. A rate of zero or less means no limit.
func NewFPSLimiter(framesPerSecond int) *Limiter {
	lim := &Limiter{}
	lim.SetLimit(framesPerSecond)
	return lim
}

// SetLimit changes the rate of the limiter.
func (lim *Limiter) SetLimit(framesPerSecond int) {
	lim.framesPerSecond = framesPerSecond
	if framesPerSecond <= 0 {
		lim.Stop()
		return
	}

	d := time.Second / time.Duration(framesPerSecond)
	if lim.ticker == nil {
		lim.ticker = time.NewTicker(d)
	} else {
		lim.ticker.Reset(d)
	}
}

// Limit returns the current rate. Zero means no limit.
func (lim *Limiter) Limit() int {
	if lim.ticker == nil {
		return 0
	}
	return lim.framesPerSecond
}

// Wait blocks until the next trigger. Returns immediately if there is no
// limit.
func (lim *Limiter) Wait() {
	if lim.ticker == nil {
		return
	}
	<-lim.ticker.C
}

// HasWaited returns true if the trigger has already happened.
func (lim *Limiter) HasWaited() bool {
	if lim.ticker == nil {
		return true
	}
	select {
	case <-lim.ticker.C:
		return true
	default:
		return false
	}
}

// Stop the limiter. Wait() will no longer block.
func (lim *Limiter) Stop() {
	if lim.ticker != nil {
		lim.ticker.Stop()
		lim.ticker = nil
	}
}
