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

// Package paths prepares paths to the files used by Gopher64, such as the
// preferences file.
//
// The ResourcePath() function prepends the supplied resource with the base
// resource directory. For example:
//
//	pth := paths.ResourcePath("preferences")
//
// If a directory named ".gopher64" is present in the current directory then
// that is the base path. Otherwise the base path is a directory named
// "gopher64" in the directory returned by os.UserConfigDir(). On a modern
// Linux system the example above returns:
//
//	/home/user/.config/gopher64/preferences
//
// The existence of the resource itself is not checked.
package paths
