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

// Package modalflag wraps the flag package of the standard library and adds
// program modes. Each mode has its own set of flags. The first argument after
// the flags of a mode selects the sub-mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "performance")
//	r, err := md.Parse()
//
// After Parse() the Mode() function returns the selected sub-mode. The first
// sub-mode in the list is the default. Flags for the sub-mode are added after
// a call to NewMode() and the arguments are parsed again:
//
//	md.NewMode()
//	frames := md.AddInt("frames", 60, "number of frames to run")
//	r, err = md.Parse()
//
// Sub-mode comparisons are case insensitive.
package modalflag
