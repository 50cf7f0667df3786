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

package hardware

import (
	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/notifications"
)

// Machine is the CPU with RDRAM and the interrupt line.
type Machine struct {
	Prefs *preferences.Preferences
	RAM   *memory.RDRAM
	Mem   *memory.Dispatch
	CPU   *cpu.CPU
	MI    *Interrupts
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The size and allocation method of RDRAM is taken from the preferences. The
// notify argument can be nil.
func NewMachine(prefs *preferences.Preferences, notify notifications.Notify) (*Machine, error) {
	m := &Machine{
		Prefs: prefs,
		MI:    &Interrupts{},
	}

	var err error

	m.RAM, err = memory.NewRDRAM(prefs.RDRAMSize.Get().(int), prefs.RDRAMMmap.Get().(bool))
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	m.Mem = memory.NewDispatch(m.RAM)
	m.CPU = cpu.NewCPU(prefs, m.Mem, notify)
	m.CPU.PlumbInterruptLine(m.MI)

	return m, nil
}

// Close releases RDRAM. The machine must not be used afterwards.
func (m *Machine) Close() {
	if err := m.RAM.Close(); err != nil {
		logger.Logf(logger.Allow, "machine", "closing rdram: %v", err)
	}
}

// Reset the CPU and lower the interrupt line. RDRAM is not changed.
func (m *Machine) Reset() {
	m.MI.pending = 0
	m.CPU.Reset()
}

// LoadImage copies the data into RDRAM at the physical address. Compiled code
// covering the copied range is invalidated.
func (m *Machine) LoadImage(phys uint32, data []byte) error {
	if err := m.Mem.LoadImage(phys, data); err != nil {
		return curated.Errorf("machine: %v", err)
	}
	logger.Logf(logger.Allow, "machine", "loaded %d bytes at %08x", len(data), phys)
	return nil
}

// RaiseInterrupt sets the interrupt source and updates the CPU.
func (m *Machine) RaiseInterrupt(source Source) {
	m.MI.pending |= source
	m.CPU.UpdateCause3()
}

// LowerInterrupt clears the interrupt source and updates the CPU.
func (m *Machine) LowerInterrupt(source Source) {
	m.MI.pending &^= source
	m.CPU.UpdateCause3()
}
