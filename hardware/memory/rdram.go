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

package memory

import (
	"fmt"

	"github.com/gopher64/gopher64/logger"
)

// RDRAM is the flat backing store for the console's main memory. It begins at
// physical address zero.
type RDRAM struct {
	data []byte

	// release is non-nil when the memory was not allocated by the Go runtime
	release func() error
}

// NewRDRAM is the preferred method of initialisation for the RDRAM type. If
// useMmap is true the memory will be allocated with an anonymous mapping; if
// the mapping fails the memory is allocated from the Go heap instead.
func NewRDRAM(size int, useMmap bool) (*RDRAM, error) {
	if size <= 0 || size&0x3 != 0 {
		return nil, fmt.Errorf("memory: invalid RDRAM size (%d)", size)
	}

	ram := &RDRAM{}

	if useMmap {
		data, release, err := mapAnonymous(size)
		if err == nil {
			ram.data = data
			ram.release = release
			logger.Logf(logger.Allow, "memory", "RDRAM: %dKB (mmap)", size/1024)
			return ram, nil
		}
		logger.Logf(logger.Allow, "memory", "RDRAM: mmap failed: %v", err)
	}

	ram.data = make([]byte, size)
	logger.Logf(logger.Allow, "memory", "RDRAM: %dKB", size/1024)

	return ram, nil
}

// Bytes returns the backing slice. The slice is valid until Close().
func (ram *RDRAM) Bytes() []byte {
	return ram.data
}

// Size of RDRAM in bytes.
func (ram *RDRAM) Size() int {
	return len(ram.data)
}

// Close releases the memory. It is safe to call Close() more than once.
func (ram *RDRAM) Close() error {
	var err error
	if ram.release != nil {
		err = ram.release()
		ram.release = nil
	}
	ram.data = nil
	return err
}
