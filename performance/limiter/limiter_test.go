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

package limiter_test

import (
	"testing"
	"time"

	"github.com/gopher64/gopher64/performance/limiter"
	"github.com/gopher64/gopher64/test"
)

func TestLimiter(t *testing.T) {
	lim := limiter.NewFPSLimiter(100)
	defer lim.Stop()
	test.ExpectEquality(t, lim.Limit(), 100)

	start := time.Now()
	for range 5 {
		lim.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) >= 40*time.Millisecond)
}

func TestNoLimit(t *testing.T) {
	lim := limiter.NewFPSLimiter(0)
	test.ExpectEquality(t, lim.Limit(), 0)
	test.ExpectSuccess(t, lim.HasWaited())

	// returns immediately
	lim.Wait()

	lim.SetLimit(50)
	test.ExpectEquality(t, lim.Limit(), 50)
	lim.Stop()
	test.ExpectEquality(t, lim.Limit(), 0)
}
