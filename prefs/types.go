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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// pref is the interface implemented by every preference type.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// value is the storage and hook mechanism shared by all preference types.
// the atomic storage means that preferences can be read from the emulation
// goroutine while being set from elsewhere.
type value[T any] struct {
	v        atomic.Value
	hookPost func(value Value) error
}

func (p *value[T]) load(def T) T {
	ov := p.v.Load()
	if ov == nil {
		return def
	}
	return ov.(T)
}

func (p *value[T]) store(nv T) error {
	p.v.Store(nv)
	if p.hookPost != nil {
		return p.hookPost(nv)
	}
	return nil
}

// SetHookPost sets the function to be called after every Set(). The
// function is called with the new value.
func (p *value[T]) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	value[bool]
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.load(false))
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	switch v := v.(type) {
	case bool:
		return p.store(v)
	case string:
		return p.store(strings.ToLower(strings.TrimSpace(v)) == "true")
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.load(false)
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// Int implements an integer type in the prefs system.
type Int struct {
	value[int]
}

func (p *Int) String() string {
	return fmt.Sprintf("%d", p.load(0))
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	switch v := v.(type) {
	case int:
		return p.store(v)
	case int64:
		return p.store(int(v))
	case uint64:
		return p.store(int(v))
	case float64:
		return p.store(int(v))
	case string:
		nv, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %q to prefs.Int: %w", v, err)
		}
		return p.store(int(nv))
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return p.load(0)
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// String implements a string type in the prefs system.
type String struct {
	value[string]
}

func (p *String) String() string {
	return p.load("")
}

// Set new value to String type. Any value is accepted and formatted with the
// %v verb.
func (p *String) Set(v Value) error {
	return p.store(fmt.Sprintf("%v", v))
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.load("")
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}
