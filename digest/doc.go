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

// Package digest produces a cryptographic hash of the state of the emulated
// machine. The hash can be used to compare the output of one run with that of
// another, for example a run with the dynamic recompiler against a run with
// the interpreter only.
//
// The digest is chained. The value after one frame is part of the input for
// the value after the next frame, so two runs only have the same digest if
// the state was the same at every frame.
package digest
