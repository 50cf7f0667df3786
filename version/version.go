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

package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Gopher64"

// set by the linker for numbered releases
var number string

var version string
var revision string

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// The version string is "unreleased" when the project has been built from a
// repository without a release number and "local" when there is no version
// control information at all, for example with "go run .". A revision that
// has uncommitted changes is suffixed with "+dirty".
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	switch {
	case vcsRevision == "":
		revision = "no revision information"
	case vcsModified:
		revision = fmt.Sprintf("%s+dirty", vcsRevision)
	default:
		revision = vcsRevision
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
