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

// Package notifications allow communication from the emulated hardware to the
// host environment. The CPU core never presents anything itself; the vertical
// blank, a change in the unmasked interrupt state and a halt are all passed to
// the host as notices.
//
// Notices are sent from the emulation goroutine. Implementations of the Notify
// interface should return quickly and must not call back into the emulation.
package notifications
