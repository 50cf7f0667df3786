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

package test

import (
	"fmt"
)

// RingWriter is an io.Writer that keeps only the most recent bytes written to
// it. Useful for capturing the tail of output that would otherwise grow
// without bound, such as a progress display.
type RingWriter struct {
	buffer []byte
	size   int
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type. The size is the number of bytes kept.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ring writer: invalid size (%d)", size)
	}
	return &RingWriter{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

// String returns the kept bytes, oldest first.
func (r *RingWriter) String() string {
	return string(r.buffer)
}

// Reset discards everything written so far.
func (r *RingWriter) Reset() {
	r.buffer = r.buffer[:0]
}

// Write implements the io.Writer interface.
func (r *RingWriter) Write(p []byte) (n int, err error) {
	if len(p) >= r.size {
		r.buffer = append(r.buffer[:0], p[len(p)-r.size:]...)
		return len(p), nil
	}

	if drop := len(r.buffer) + len(p) - r.size; drop > 0 {
		r.buffer = append(r.buffer[:0], r.buffer[drop:]...)
	}
	r.buffer = append(r.buffer, p...)

	return len(p), nil
}
