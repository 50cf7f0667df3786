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

package preferences

import (
	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/prefs"
)

// InvalidValue is the pattern for errors returned when a preference is set to
// a value the hardware cannot use.
const InvalidValue = "preferences: invalid value for %s: %v"

// RDRAM sizes. The expansion pak doubles the base 4MB.
const (
	RDRAMBase      = 0x400000
	RDRAMExpansion = 0x800000
)

// Preferences defines and collates all the preference values used by the
// hardware emulation.
type Preferences struct {
	dsk *prefs.Disk

	// promote hot program counters to compiled fragments
	DynarecEnabled prefs.Bool

	// number of times a program counter must be interpreted before a fragment
	// is created for it
	HotThreshold prefs.Int

	// maximum number of instructions in a single fragment. bounds the worst
	// case compile time and fragment size
	MaxFragmentOps prefs.Int

	// number of entries kept in the fragment invalidation log
	InvalidationLogSize prefs.Int

	// remember the most recently matched TLB entry. first-match-in-index-order
	// is preserved but the option is off by default because save states from
	// games with overlapping entries have only been checked with the linear
	// scan
	TLBMRU prefs.Bool

	// size of RDRAM in bytes. either RDRAMBase or RDRAMExpansion
	RDRAMSize prefs.Int

	// allocate RDRAM with mmap rather than the Go heap
	RDRAMMmap prefs.Bool

	// number of CPU cycles between vertical blanks
	VblCycles prefs.Int

	// panic if the CPU is accessed from another goroutine during Run()
	AssertOwner prefs.Bool

	// predictable random numbers (TLBWR index selection)
	ZeroSeed prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. The path can be empty, in which case the preferences are not backed
// by a file and Load() and Save() will have no effect.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key  string
		pref interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{"dynarec.enabled", &p.DynarecEnabled},
		{"dynarec.hotThreshold", &p.HotThreshold},
		{"dynarec.maxFragmentOps", &p.MaxFragmentOps},
		{"dynarec.invalidationLogSize", &p.InvalidationLogSize},
		{"tlb.mru", &p.TLBMRU},
		{"memory.rdramSize", &p.RDRAMSize},
		{"memory.mmap", &p.RDRAMMmap},
		{"timing.vblCycles", &p.VblCycles},
		{"debug.assertOwner", &p.AssertOwner},
		{"random.zeroSeed", &p.ZeroSeed},
	} {
		err = p.dsk.Add(e.key, e.pref)
		if err != nil {
			return nil, err
		}
	}

	err = p.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.DynarecEnabled.Set(true)
	p.HotThreshold.Set(500)
	p.MaxFragmentOps.Set(250)
	p.InvalidationLogSize.Set(64)
	p.TLBMRU.Set(false)
	p.RDRAMSize.Set(RDRAMExpansion)
	p.RDRAMMmap.Set(true)
	p.VblCycles.Set(62500000 / 60)
	p.AssertOwner.Set(false)
	p.ZeroSeed.Set(false)
}

// Load current preferences from disk. Values are validated after loading and
// any invalid value causes an error.
func (p *Preferences) Load() error {
	err := p.dsk.Load()
	if err != nil {
		return err
	}
	return p.Validate()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Validate checks that the preference values are usable by the hardware.
func (p *Preferences) Validate() error {
	if v := p.HotThreshold.Get().(int); v < 1 {
		return curated.Errorf(InvalidValue, "dynarec.hotThreshold", v)
	}
	if v := p.MaxFragmentOps.Get().(int); v < 1 {
		return curated.Errorf(InvalidValue, "dynarec.maxFragmentOps", v)
	}
	if v := p.InvalidationLogSize.Get().(int); v < 0 {
		return curated.Errorf(InvalidValue, "dynarec.invalidationLogSize", v)
	}
	if v := p.RDRAMSize.Get().(int); v != RDRAMBase && v != RDRAMExpansion {
		return curated.Errorf(InvalidValue, "memory.rdramSize", v)
	}
	if v := p.VblCycles.Get().(int); v < 1 {
		return curated.Errorf(InvalidValue, "timing.vblCycles", v)
	}

	logger.Logf(logger.Allow, "prefs", "dynarec %v (threshold %d, max ops %d)",
		p.DynarecEnabled.Get(), p.HotThreshold.Get(), p.MaxFragmentOps.Get())

	return nil
}
