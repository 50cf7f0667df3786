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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter collects the output of the flag package so that it can be
// amended with the mode information.
type helpWriter struct {
	buffer []byte
}

// Write implements the io.Writer interface.
func (hw *helpWriter) Write(p []byte) (n int, err error) {
	hw.buffer = append(hw.buffer, p...)
	return len(p), nil
}

func (hw *helpWriter) help(output io.Writer, path string, subModes []string, additionalHelp string) {
	if output == nil {
		return
	}

	lines := strings.Split(string(hw.buffer), "\n")

	if len(lines) <= 2 && len(subModes) == 0 && additionalHelp == "" {
		io.WriteString(output, "No help available")
		if path != "" {
			io.WriteString(output, fmt.Sprintf(" for %s", path))
		}
		io.WriteString(output, "\n")
		return
	}

	if path != "" {
		io.WriteString(output, fmt.Sprintf("%s for %s mode\n", lines[0], path))
	} else {
		io.WriteString(output, lines[0])
		io.WriteString(output, "\n")
	}

	if len(lines) > 1 {
		io.WriteString(output, strings.Join(lines[1:], "\n"))
	}

	if len(subModes) > 0 {
		io.WriteString(output, fmt.Sprintf("  available sub-modes: %s\n", strings.Join(subModes, ", ")))
		io.WriteString(output, fmt.Sprintf("    default: %s\n", subModes[0]))
	}

	if additionalHelp != "" {
		io.WriteString(output, "\n")
		io.WriteString(output, additionalHelp)
		io.WriteString(output, "\n")
	}
}
