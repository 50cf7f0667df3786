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

package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Disk represents preference values as stored on disk. Keys are dotted paths
// (eg. "dynarec.hotThreshold") and are stored as nested YAML mappings.
type Disk struct {
	path    string
	entries map[string]pref

	// values found in the file that have no registered entry. they are
	// written back on Save() so that preferences belonging to other parts of
	// the program are not lost
	unknown map[string]any
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
		unknown: make(map[string]any),
	}
	return dsk, nil
}

func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, dsk.entries[k]))
	}
	return s.String()
}

// Add preference value to list of values to store/load from Disk.
func (dsk *Disk) Add(key string, p pref) error {
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key %s already registered", key)
	}
	dsk.entries[key] = p
	return nil
}

// Load preference values from disk. A missing file is not an error; the
// preferences keep their current values.
func (dsk *Disk) Load() error {
	if dsk.path == "" {
		return nil
	}

	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("prefs: %w", err)
	}

	return dsk.Parse(data)
}

// Parse YAML data and set the registered preferences.
func (dsk *Disk) Parse(data []byte) error {
	var doc map[string]any
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	flat := make(map[string]any)
	flatten("", doc, flat)

	for k, v := range flat {
		p, ok := dsk.entries[k]
		if !ok {
			dsk.unknown[k] = v
			continue
		}
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}

	return nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	if dsk.path == "" {
		return fmt.Errorf("prefs: no file specified")
	}

	data, err := dsk.Marshal()
	if err != nil {
		return err
	}

	err = os.WriteFile(dsk.path, data, 0o644)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Marshal the preferences to YAML.
func (dsk *Disk) Marshal() ([]byte, error) {
	doc := make(map[string]any)
	for k, v := range dsk.unknown {
		nest(doc, k, v)
	}
	for k, p := range dsk.entries {
		nest(doc, k, p.Get())
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}
	return data, nil
}

func flatten(prefix string, doc map[string]any, flat map[string]any) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			flatten(key, m, flat)
			continue
		}
		flat[key] = v
	}
}

func nest(doc map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	m := doc
	for _, p := range parts[:len(parts)-1] {
		n, ok := m[p].(map[string]any)
		if !ok {
			n = make(map[string]any)
			m[p] = n
		}
		m = n
	}
	m[parts[len(parts)-1]] = v
}
