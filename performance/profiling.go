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

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/gopher64/gopher64/curated"
)

// Profile specifies which profiles RunProfiler() should create.
type Profile int

// List of valid Profile values. Values can be combined.
const (
	ProfileNone  Profile = 0
	ProfileCPU   Profile = 0b0001
	ProfileMem   Profile = 0b0010
	ProfileTrace Profile = 0b0100
	ProfileAll   Profile = ProfileCPU | ProfileMem | ProfileTrace
)

// UnknownProfile is the pattern for errors returned by ParseProfile().
const UnknownProfile = "performance: unknown profile: %s"

func (p Profile) String() string {
	if p == ProfileNone {
		return "none"
	}
	var s []string
	if p&ProfileCPU == ProfileCPU {
		s = append(s, "cpu")
	}
	if p&ProfileMem == ProfileMem {
		s = append(s, "mem")
	}
	if p&ProfileTrace == ProfileTrace {
		s = append(s, "trace")
	}
	return strings.Join(s, ",")
}

// ParseProfile converts a comma separated list of profile names to a Profile
// value. Valid names are CPU, MEM, TRACE, ALL and NONE. Case is ignored.
func ParseProfile(s string) (Profile, error) {
	p := ProfileNone
	for _, t := range strings.Split(s, ",") {
		switch strings.ToUpper(strings.TrimSpace(t)) {
		case "", "NONE":
		case "CPU":
			p |= ProfileCPU
		case "MEM":
			p |= ProfileMem
		case "TRACE":
			p |= ProfileTrace
		case "ALL":
			p |= ProfileAll
		default:
			return ProfileNone, curated.Errorf(UnknownProfile, t)
		}
	}
	return p, nil
}

// RunProfiler runs the supplied function, creating the profiles specified by
// the Profile argument. Output files are prefixed with filenameHeader.
func RunProfiler(profile Profile, filenameHeader string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", filenameHeader))
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = curated.Errorf("performance: %v", err)
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(fmt.Sprintf("%s_trace.profile", filenameHeader))
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = curated.Errorf("performance: %v", err)
			}
		}()

		err = trace.Start(f)
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer trace.Stop()
	}

	err := run()
	if err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", filenameHeader))
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		runtime.GC()
		err = pprof.WriteHeapProfile(f)
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	return nil
}
