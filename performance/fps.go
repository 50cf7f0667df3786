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

package performance

// FieldRate is the number of vertical blanks per second of an NTSC console.
const FieldRate = 60.0

// CalcFPS takes the number of frames and the duration (in seconds) and
// returns the frames-per-second and the accuracy of that value as a
// percentage of the field rate.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / FieldRate
	return fps, accuracy
}

// CalcMIPS returns the number of instructions (in millions) executed per
// second. The CPU core executes one instruction per cycle.
func CalcMIPS(cycles uint64, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(cycles) / duration / 1000000
}
