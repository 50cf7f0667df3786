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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectFailure and ExpectSuccess functions test for failure and success
// under generic conditions. Booleans and errors are supported. The nil type
// is considered a success, because of how errors usually work (nil to indicate
// no error), and consequently will cause ExpectFailure to fail and
// ExpectSuccess to succeed.
//
// ExpectEquality and ExpectInequality compare values of any comparable type.
// The Demand variants stop the test immediately on failure rather than
// allowing the test to continue.
//
// The CompareWriter and RingWriter types implement the io.Writer interface and
// can be used to capture output.
package test
