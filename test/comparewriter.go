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

// CompareWriter is an io.Writer that collects everything written to it so that
// the output can be compared with an expected string.
type CompareWriter struct {
	buffer []byte
}

// Write implements the io.Writer interface.
func (w *CompareWriter) Write(p []byte) (n int, err error) {
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

// Clear empties the buffer.
func (w *CompareWriter) Clear() {
	w.buffer = w.buffer[:0]
}

// Compare returns true if the collected output is exactly equal to s.
func (w *CompareWriter) Compare(s string) bool {
	return s == string(w.buffer)
}

func (w *CompareWriter) String() string {
	return string(w.buffer)
}
