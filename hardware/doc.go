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

// Package hardware assembles the emulated machine from its parts: the VR4300
// CPU, RDRAM and the interrupt line of the MIPS interface. The other
// components of the console are not emulated by this module. They connect to
// the machine through the memory dispatch, the interrupt line and the event
// scheduler of the CPU.
//
// The Machine type is the preferred way of creating a CPU that is ready to
// run a program:
//
//	m, _ := hardware.NewMachine(prefs, notify)
//	defer m.Close()
//	m.LoadImage(0x1000, image)
//	m.CPU.SetPC(0x80001000)
//	m.CPU.Run(cycles)
package hardware
