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

package main

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopher64/gopher64/test"
)

// writes the program to a temporary image file
func image(t *testing.T, program ...uint32) string {
	t.Helper()
	b := make([]byte, len(program)*4)
	for i, w := range program {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	fn := filepath.Join(t.TempDir(), "image.bin")
	test.DemandSuccess(t, os.WriteFile(fn, b, 0o600))
	return fn
}

// branch to self
const loop = 0x1000ffff

func TestHelp(t *testing.T) {
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"-help"}, w, io.Discard), exitOK)
	test.ExpectSuccess(t, strings.Contains(w.String(), "RUN, PERFORMANCE"))
}

func TestVersion(t *testing.T) {
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"-version"}, w, io.Discard), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "Gopher64 "))
}

func TestBadArguments(t *testing.T) {
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"-nosuchflag"}, w, io.Discard), exitArgs)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"run"}, w, io.Discard), exitError)
	test.ExpectSuccess(t, strings.Contains(w.String(), "one code image required"))

	w.Reset()
	test.ExpectEquality(t, launch([]string{"run", "-prefs=", "-load", "nowhere", image(t, loop, 0)}, w, io.Discard), exitError)
	test.ExpectSuccess(t, strings.Contains(w.String(), "invalid address: nowhere"))
}

func TestRun(t *testing.T) {
	fn := image(t, loop, 0)
	graph := filepath.Join(t.TempDir(), "state.dot")

	progress, err := test.NewRingWriter(1024)
	test.DemandSuccess(t, err)

	w := &strings.Builder{}
	r := launch([]string{"run", "-prefs=", "-frames", "2", "-digest", "-graph", graph, fn}, w, progress)
	test.ExpectEquality(t, r, exitOK)
	test.ExpectSuccess(t, strings.Contains(progress.String(), "running"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "2 frames: vertical blank\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "PC=80001"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "digest: "))

	g, err := os.ReadFile(graph)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(g), "digraph"))
}

func TestRunToBreakpoint(t *testing.T) {
	fn := image(t, 0, 0, loop, 0)

	w := &strings.Builder{}
	r := launch([]string{"run", "-prefs=", "-break", "0x1004", fn}, w, io.Discard)
	test.ExpectEquality(t, r, exitOK)
	test.ExpectSuccess(t, strings.Contains(w.String(), "0 frames: breakpoint\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "PC=80001004"))
}
