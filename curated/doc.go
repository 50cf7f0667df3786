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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and remember the pattern they
// were created with.
//
// Curated errors are created with the Errorf() function, which looks like the
// Errorf() function in the fmt package. The pattern is what identifies the
// error, so patterns that callers want to test for should be exported as
// constants:
//
//	const UnimplementedInstruction = "cpu: unimplemented instruction %08x at %08x"
//
//	err := curated.Errorf(UnimplementedInstruction, op, pc)
//	if curated.Is(err, UnimplementedInstruction) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain, which is useful when the error has been wrapped by a caller
// with another curated error:
//
//	f := curated.Errorf("run: %v", err)
//	curated.Has(f, UnimplementedInstruction) // true
//	curated.Is(f, UnimplementedInstruction)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We think of curated errors as 'expected' errors and
// uncurated errors as 'unexpected'.
//
// The Error() function normalises the error chain, removing duplicate
// adjacent parts. Parts are separated by the sub-string ': ' as suggested on
// p239 of "The Go Programming Language" (Donovan, Kernighan). So wrapping
// "cpu: halted" with "cpu: %v" produces "cpu: halted" and not "cpu: cpu:
// halted".
package curated
