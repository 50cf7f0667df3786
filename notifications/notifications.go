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

package notifications

// Notice describes events that somehow change the presentation of the
// emulation.
type Notice string

// List of defined notices.
const (
	// the emulated display has reached the vertical blank. the host is
	// expected to present a frame and poll input before resuming the run
	NotifyVerticalBlank Notice = "NotifyVerticalBlank"

	// the interrupt line feeding Cause.IP3 has changed and the core has
	// resynchronised the cause register
	NotifyUnmaskedInterruptsChanged Notice = "NotifyUnmaskedInterruptsChanged"

	// the run loop has stopped because of a halt request, a breakpoint or a
	// fatal error. see HaltNotify for the reason
	NotifyHalt Notice = "NotifyHalt"
)

// Notify is used for direct communication between the hardware and the host
// environment.
type Notify interface {
	Notify(notice Notice) error
}

// HaltNotify is an optional extension of the Notify interface. If implemented
// the reason for a NotifyHalt notice will be passed to NotifyHalt() before the
// notice itself is sent.
type HaltNotify interface {
	NotifyHalt(reason error)
}
