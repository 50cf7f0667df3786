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

package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/prefs"
	"github.com/gopher64/gopher64/test"
)

func TestTypes(t *testing.T) {
	var b prefs.Bool
	test.ExpectEquality(t, b.Get().(bool), false)
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectFailure(t, b.Set(10))

	var i prefs.Int
	test.ExpectSuccess(t, i.Set("0x100"))
	test.ExpectEquality(t, i.Get().(int), 256)
	test.ExpectSuccess(t, i.Set(500))
	test.ExpectEquality(t, i.String(), "500")
	test.ExpectFailure(t, i.Set("foo"))

	var s prefs.String
	test.ExpectSuccess(t, s.Set("hello"))
	test.ExpectEquality(t, s.String(), "hello")
}

func TestHookPost(t *testing.T) {
	var i prefs.Int
	var seen int
	i.SetHookPost(func(v prefs.Value) error {
		seen = v.(int)
		return nil
	})
	test.ExpectSuccess(t, i.Set(42))
	test.ExpectEquality(t, seen, 42)
}

func TestDisk(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "prefs.yaml")

	err := os.WriteFile(pth, []byte("dynarec:\n  hotThreshold: 10\n  enabled: false\nother:\n  key: keep\n"), 0o644)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)

	var threshold prefs.Int
	var enabled prefs.Bool
	test.ExpectSuccess(t, enabled.Set(true))
	test.ExpectSuccess(t, dsk.Add("dynarec.hotThreshold", &threshold))
	test.ExpectSuccess(t, dsk.Add("dynarec.enabled", &enabled))
	test.ExpectFailure(t, dsk.Add("dynarec.enabled", &enabled))

	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, threshold.Get().(int), 10)
	test.ExpectEquality(t, enabled.Get().(bool), false)

	// save and reload into fresh values. the unknown key must survive
	test.ExpectSuccess(t, threshold.Set(20))
	test.DemandSuccess(t, dsk.Save())

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)

	dsk2, _ := prefs.NewDisk(pth)
	var threshold2 prefs.Int
	var other prefs.String
	test.ExpectSuccess(t, dsk2.Add("dynarec.hotThreshold", &threshold2))
	test.ExpectSuccess(t, dsk2.Add("other.key", &other))
	test.DemandSuccess(t, dsk2.Parse(data))
	test.ExpectEquality(t, threshold2.Get().(int), 20)
	test.ExpectEquality(t, other.String(), "keep")
}

func TestMissingFile(t *testing.T) {
	dsk, _ := prefs.NewDisk(filepath.Join(t.TempDir(), "missing.yaml"))
	test.ExpectSuccess(t, dsk.Load())
}
