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

// Package random should be used in preference to the math/rand package when a
// random number is required inside the emulation.
//
// Rewindable() returns numbers based on the current emulated time, as reported
// by the Clock interface. The number will always be the same for the same
// time, so two emulations running the same code choose the same values (for
// example, the TLB index chosen by the TLBWR instruction).
//
// NoRewind() returns random numbers regardless of the emulated time.
//
// If the same random numbers are required every single time then set ZeroSeed
// to true. This is useful for testing purposes.
package random
