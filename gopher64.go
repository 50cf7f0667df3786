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
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/debugger"
	"github.com/gopher64/gopher64/digest"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/modalflag"
	"github.com/gopher64/gopher64/notifications"
	"github.com/gopher64/gopher64/paths"
	"github.com/gopher64/gopher64/performance"
	"github.com/gopher64/gopher64/performance/limiter"
	"github.com/gopher64/gopher64/statsview"
	"github.com/gopher64/gopher64/version"
	"github.com/schollz/progressbar/v3"
)

// exit values
const (
	exitOK    = 0
	exitArgs  = 10
	exitError = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout, os.Stderr))
}

// launch parses the arguments and runs the selected mode. The progress bar is
// drawn to the progress writer.
func launch(args []string, output io.Writer, progress io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "PERFORMANCE")
	showVersion := md.AddBool("version", false, "print version information")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArgs
	}

	if *showVersion {
		v, r, _ := version.Version()
		fmt.Fprintf(output, "%s %s (%s)\n", version.ApplicationName, v, r)
		return exitOK
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, progress)
	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitError
	}

	return exitOK
}

// host receives notices from the CPU.
type host struct {
	frames int
}

// Notify implements the notifications.Notify interface.
func (h *host) Notify(notice notifications.Notice) error {
	switch notice {
	case notifications.NotifyVerticalBlank:
		h.frames++
	case notifications.NotifyUnmaskedInterruptsChanged:
		logger.Log(logger.Allow, "gopher64", "unmasked interrupts changed")
	}
	return nil
}

// NotifyHalt implements the notifications.HaltNotify interface.
func (h *host) NotifyHalt(reason error) {
	logger.Logf(logger.Allow, "gopher64", "halted: %v", reason)
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf("invalid address: %s", s)
	}
	return uint32(v), nil
}

// newMachine loads the image file at the physical address and sets the
// program counter to the entry address.
func newMachine(prefsFile string, image string, load string, entry string, notify notifications.Notify) (*hardware.Machine, error) {
	loadAddr, err := parseAddress(load)
	if err != nil {
		return nil, err
	}
	entryAddr, err := parseAddress(entry)
	if err != nil {
		return nil, err
	}

	prefs, err := preferences.NewPreferences(prefsFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(image)
	if err != nil {
		return nil, curated.Errorf("loading image: %v", err)
	}

	m, err := hardware.NewMachine(prefs, notify)
	if err != nil {
		return nil, err
	}

	err = m.LoadImage(loadAddr, data)
	if err != nil {
		m.Close()
		return nil, err
	}
	m.CPU.SetPC(entryAddr)

	return m, nil
}

func run(md *modalflag.Modes, progress io.Writer) error {
	md.NewMode()

	prefsFile := md.AddString("prefs", paths.ResourcePath("preferences"), "preferences file. empty for none")
	load := md.AddString("load", "0x1000", "physical address at which the image is loaded")
	entry := md.AddString("entry", "0x80001000", "virtual address of the first instruction")
	frames := md.AddInt("frames", 60, "number of frames to run")
	fpsCap := md.AddBool("fpscap", false, "limit the run to the NTSC field rate")
	stats := md.AddBool("statsview", false, "run stats server on "+statsview.Address)
	graph := md.AddString("graph", "", "write a graphviz file of the final CPU state")
	echo := md.AddBool("log", false, "echo log to stdout")
	digestState := md.AddBool("digest", false, "print a digest of the CPU and RDRAM state at every frame")
	breaks := md.AddString("break", "", "comma separated list of physical breakpoint addresses")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("one code image required for %s mode", md)
	}

	if *echo {
		logger.SetEcho(md.Output)
		defer logger.SetEcho(nil)
	}

	if *stats {
		stop := statsview.Launch(md.Output)
		defer stop()
	}

	h := &host{}
	m, err := newMachine(*prefsFile, md.RemainingArgs()[0], *load, *entry, h)
	if err != nil {
		return err
	}
	defer m.Close()

	if *breaks != "" {
		bps := debugger.NewBreakpoints(m.Mem)
		for _, s := range strings.Split(*breaks, ",") {
			a, err := parseAddress(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			err = bps.Set(a)
			if err != nil {
				return err
			}
		}
		m.CPU.PlumbBreakpoints(bps)
	}

	// ctrl-c stops the run at the next instruction boundary
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-intChan:
			m.CPU.RequestHalt(nil)
		case <-done:
		}
	}()

	lim := limiter.NewFPSLimiter(0)
	if *fpsCap {
		lim.SetLimit(int(performance.FieldRate))
	}
	defer lim.Stop()

	bar := progressbar.NewOptions(*frames,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("running"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowIts(),
	)

	var dig *digest.State
	if *digestState {
		dig = digest.NewState()
	}

	budget := m.Prefs.VblCycles.Get().(int)

	var y cpu.Yield
	for h.frames < *frames {
		y, err = m.CPU.Run(budget)
		if err != nil {
			break // for loop
		}
		_ = bar.Set(h.frames)
		if y == cpu.YieldHalt || y == cpu.YieldBreakpoint {
			break // for loop
		}
		if y == cpu.YieldVerticalBlank {
			if dig != nil {
				dig.Frame(m.CPU, m.RAM.Bytes())
			}
			lim.Wait()
		}
	}
	_ = bar.Finish()
	io.WriteString(progress, "\n")

	state := debugger.Snapshot(m.CPU)
	io.WriteString(md.Output, fmt.Sprintf("%d frames: %s\n", h.frames, y))
	io.WriteString(md.Output, state.String())
	state.WriteFragments(md.Output)
	if dig != nil {
		io.WriteString(md.Output, fmt.Sprintf("digest: %s\n", dig))
	}

	if *graph != "" {
		f, err := os.Create(*graph)
		if err != nil {
			return curated.Errorf("graph: %v", err)
		}
		debugger.WriteGraph(f, state)
		if err := f.Close(); err != nil {
			return curated.Errorf("graph: %v", err)
		}
	}

	if !*echo {
		logger.Write(md.Output)
	}

	return err
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	prefsFile := md.AddString("prefs", paths.ResourcePath("preferences"), "preferences file. empty for none")
	load := md.AddString("load", "0x1000", "physical address at which the image is loaded")
	entry := md.AddString("entry", "0x80001000", "virtual address of the first instruction")
	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "none", "create profile reports: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("one code image required for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	m, err := newMachine(*prefsFile, md.RemainingArgs()[0], *load, *entry, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	return performance.Check(md.Output, m.CPU, *duration, prf)
}
