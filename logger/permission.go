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

package logger

// Permission is consulted before an entry is added to the log. Code that
// runs in more than one context (for example, the emulation and a throwaway
// copy of it) can use a Permission to keep the log free of duplicate noise.
type Permission interface {
	AllowLogging() bool
}

type always struct{}

func (always) AllowLogging() bool {
	return true
}

// Allow is the Permission to use when an entry should always be made.
var Allow Permission = always{}
