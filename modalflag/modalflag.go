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
	"flag"
	"io"
	"strings"
	"time"
)

const modeSeparator = "/"

// Modes handles the command line arguments of a program with modes.
type Modes struct {
	// where to print help messages
	Output io.Writer

	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes for the next call to Parse(). the first entry is the default
	subModes []string

	// every mode selected by Parse() so far
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode starts a new mode. Flags added after this call apply to the
// remaining arguments.
func (md *Modes) NewMode() {
	md.subModes = []string{}
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.additionalHelp = ""
}

// AdditionalHelp is printed after the flags and sub-modes when help is
// requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with the program. check Mode() if sub-modes were added
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// the arguments could not be parsed
	ParseError
)

// Parse the arguments of the current mode.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			return ParseHelp, nil
		}
		return ParseError, err
	}

	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = m
				md.argsIdx++
				break // for loop
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs returns the arguments that are neither flags nor a sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// AddSubModes for the next call to Parse(). The first sub-mode is the
// default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, m := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for the next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddDuration flag for the next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}
