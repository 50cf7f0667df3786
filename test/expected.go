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
	"testing"
)

// id returns a prefix for failure messages using the optional tags.
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	return fmt.Sprintf("%v: ", fmt.Sprint(tags...))
}

// expect returns true if v represents a success value.
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}

	return false
}

// ExpectSuccess tests argument v for a success condition suitable for it's
// type. Currently support types:
//
//	bool -> bool == true
//	error -> error == nil
//
// If type is nil then the test will succeed.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Errorf("%sa success value is expected for type %T (%v)", id(tags...), v, v)
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for it's
// type. Types bool and error are treated thus:
//
//	bool == false
//	error != nil
//
// If type is nil then the test will fail.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sa failure value is expected for type %T", id(tags...), v)
		return false
	}
	return true
}

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, value T, expectedValue T, tags ...any) bool {
	t.Helper()
	if value != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), value, value, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is used to test inequality between one value and another.
// In other words, the test does not want the values to be equal.
func ExpectInequality[T comparable](t *testing.T, value T, unexpectedValue T, tags ...any) bool {
	t.Helper()
	if value == unexpectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), value, value, unexpectedValue)
		return false
	}
	return true
}
