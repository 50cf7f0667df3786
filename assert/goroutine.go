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

package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It is undoubtedly useful for but it should only ever be used for
// debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records which goroutine currently has exclusive use of a resource.
// The zero value is an unowned resource.
type Owner struct {
	id atomic.Uint64
}

// Acquire marks the calling goroutine as the owner.
func (o *Owner) Acquire() {
	o.id.Store(GetGoRoutineID())
}

// Release marks the resource as unowned.
func (o *Owner) Release() {
	o.id.Store(0)
}

// Check panics if the resource is owned by a goroutine other than the
// calling goroutine.
func (o *Owner) Check(what string) {
	id := o.id.Load()
	if id == 0 {
		return
	}
	if caller := GetGoRoutineID(); caller != id {
		panic(fmt.Sprintf("%s: called from goroutine %d while owned by goroutine %d", what, caller, id))
	}
}
