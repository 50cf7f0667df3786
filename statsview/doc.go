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

// Package statsview serves charts of the runtime statistics of the emulator
// process (heap, goroutines, GC pauses) over HTTP on a local address. The
// charts are drawn by "github.com/go-echarts/statsview".
//
// After launch the charts are at:
//
//	localhost:12664/debug/statsview
//
// and the standard pprof endpoints at:
//
//	localhost:12664/debug/pprof/
//
// The statistics are most interesting when comparing runs with and without the
// dynamic recompiler enabled, because fragment compilation shows up as
// allocation spikes early in a run.
package statsview
