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

package paths

import (
	"os"
	"path/filepath"
)

// the directory used when it is present in the current directory
const localResourcePath = ".gopher64"

// ResourcePath returns the resource prepended with the base resource path.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, basePath())
	p = append(p, resource...)
	return filepath.Join(p...)
}

func basePath() string {
	if fi, err := os.Stat(localResourcePath); err == nil && fi.IsDir() {
		return localResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return localResourcePath
	}
	return filepath.Join(cnf, localResourcePath[1:])
}
