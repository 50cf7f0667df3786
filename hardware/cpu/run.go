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

package cpu

import (
	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu/dynarec"
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/notifications"
)

// Reasons for the CPU stopping, passed to HaltNotify implementations.
const (
	HaltRequested   = "cpu: halt requested"
	BreakpointHit   = "cpu: breakpoint at %08x"
	HaltWithoutCode = "cpu: halted"
)

// Yield is the reason Run() returned.
type Yield int

// List of valid Yield values.
const (
	// the cycle budget has been used up
	YieldBudget Yield = iota

	// the vertical blank has been reached. the host should present a frame
	YieldVerticalBlank

	// RequestHalt() has been called
	YieldHalt

	// a breakpoint has been reached. the instruction at the breakpoint has
	// not been executed
	YieldBreakpoint

	// a fatal error has occurred. the CPU must be reset
	YieldFatal
)

func (y Yield) String() string {
	switch y {
	case YieldBudget:
		return "budget"
	case YieldVerticalBlank:
		return "vertical blank"
	case YieldHalt:
		return "halt"
	case YieldBreakpoint:
		return "breakpoint"
	case YieldFatal:
		return "fatal"
	}
	return "unknown yield"
}

// atomic.Value requires the same concrete type for every store
type haltCause struct {
	err error
}

// RequestHalt asks the CPU to stop at the next instruction boundary. The
// reason is passed to the host with the halt notice and can be nil. Safe to
// call from any goroutine.
func (c *CPU) RequestHalt(reason error) {
	if reason == nil {
		reason = curated.Errorf(HaltRequested)
	}
	c.haltReason.Store(haltCause{err: reason})
	c.haltRequested.Store(true)
}

// Run executes instructions for up to the number of cycles. It returns early
// at the vertical blank, when a halt is requested, when a breakpoint is
// reached or when a fatal error occurs. The error is nil unless the Yield is
// YieldFatal.
//
// The CPU can be run again after any Yield except YieldFatal, in which case
// it must be reset first.
func (c *CPU) Run(cycles int) (y Yield, err error) {
	if c.assertOwner {
		c.owner.Acquire()
		defer c.owner.Release()
	}

	if c.fatal != nil {
		return YieldFatal, curated.Errorf(FatalState, c.fatal)
	}

	c.Events.RemoveType(events.RunForCycles)
	if cycles <= 0 {
		return YieldBudget, nil
	}
	if err := c.Events.Add(events.RunForCycles, int64(cycles)); err != nil {
		return YieldFatal, err
	}

	c.budgetExhausted = false
	c.vblank = false
	c.dynarec = c.prefs.DynarecEnabled.Get().(bool)

	// anything left over from the previous run is handled before the first
	// instruction
	c.stuffToDo = true

	defer func() {
		c.Cache.BailOut()
		switch y {
		case YieldHalt, YieldBreakpoint, YieldFatal:
			c.notifyHalt(y)
		}
	}()

	var prev *dynarec.Fragment
	var prevOps int

	for {
		if c.stuffToDo || c.haltRequested.Load() {
			if y, done := c.doStuff(); done {
				if y == YieldFatal {
					return y, c.fatal
				}
				return y, nil
			}
		}

		if f := c.fragment(prev, prevOps); f != nil {
			prevOps = c.runFragment(f)
			prev = f
			continue
		}

		prev = nil
		c.interpret(c.dynarec)
	}
}

// Step executes a single instruction with the interpreter. If the program
// counter is at a breakpoint the original instruction is executed.
func (c *CPU) Step() error {
	c.checkOwner("Step")

	if c.fatal != nil {
		return curated.Errorf(FatalState, c.fatal)
	}

	if c.checkInterrupts {
		c.checkInterrupts = false
		if c.checkForUnmaskedInterrupts() {
			c.handleInterrupt()
		}
	}

	c.resuming = true
	c.resumeFrom = c.pc
	c.interpret(false)
	c.resuming = false

	return c.fatal
}

// doStuff is called between instructions whenever the stuffToDo flag is set.
// Returns true if Run() should return.
func (c *CPU) doStuff() (Yield, bool) {
	c.stuffToDo = false

	if c.fatal != nil {
		return YieldFatal, true
	}

	if c.haltRequested.Swap(false) {
		return YieldHalt, true
	}

	if c.breakpointHit {
		c.breakpointHit = false
		return YieldBreakpoint, true
	}

	if c.vblank {
		c.vblank = false
		return YieldVerticalBlank, true
	}

	if c.budgetExhausted {
		c.budgetExhausted = false
		return YieldBudget, true
	}

	if c.checkInterrupts {
		c.checkInterrupts = false
		if c.checkForUnmaskedInterrupts() {
			c.handleInterrupt()
		}
	}

	return YieldBudget, false
}

func (c *CPU) notifyHalt(y Yield) {
	if c.notify == nil {
		return
	}

	var reason error
	switch y {
	case YieldHalt:
		if r, ok := c.haltReason.Load().(haltCause); ok {
			reason = r.err
		}
	case YieldBreakpoint:
		reason = curated.Errorf(BreakpointHit, c.pc)
	case YieldFatal:
		reason = c.fatal
	}
	if reason == nil {
		reason = curated.Errorf(HaltWithoutCode)
	}

	if hn, ok := c.notify.(notifications.HaltNotify); ok {
		hn.NotifyHalt(reason)
	}
	if err := c.notify.Notify(notifications.NotifyHalt); err != nil {
		logger.Logf(logger.Allow, "cpu", "halt notice: %v", err)
	}
}

// only code in the directly mapped segments is compiled. the mapping of those
// segments can never change
func compilable(pc uint32) bool {
	return pc >= 0x80000000 && pc < 0xc0000000
}

// fragment returns the compiled fragment to run at the current program counter
// or nil if the next instruction should be interpreted. A fragment that has
// become hot but is not yet compiled starts being built.
func (c *CPU) fragment(prev *dynarec.Fragment, prevOps int) *dynarec.Fragment {
	if !c.dynarec || c.delayPC != 0 || c.Cache.Building() != nil || !compilable(c.pc) {
		return nil
	}

	f := c.Cache.Next(prev, prevOps, c.pc)
	if f == nil {
		f = c.Cache.Lookup(c.pc)
		if f == nil {
			return nil
		}
	}

	if !f.Compiled() {
		c.Cache.Begin(f)
		return nil
	}

	// the fragment must not run past the next event
	if c.Events.Countdown() < int64(f.OpsCompiled) {
		return nil
	}

	return f
}

// runFragment runs the fragment and advances time by the number of ops that
// were executed. The number of ops is returned.
func (c *CPU) runFragment(f *dynarec.Fragment) int {
	c.inFragment = true
	c.opsInFlight = 0
	c.stalled = false
	n := f.Run()
	c.inFragment = false
	c.opsInFlight = 0

	cycles := n
	if c.stalled {
		c.stalled = false
		cycles--
	}

	c.advance(cycles)
	c.drainEvents()

	return n
}

// interpret a single instruction. If build is true and a fragment is being
// built the instruction is added to it.
func (c *CPU) interpret(build bool) {
	c.barrier = false
	c.stalled = false

	pc := c.pc
	if c.delayPC != 0 {
		c.nextPC = c.delayPC
	} else {
		c.nextPC = pc + 4
	}
	c.branchTarget = 0

	i, ok := c.fetch()
	var h handler
	if ok {
		h = decode(i)
		h(c, i)
	}

	c.pc = c.nextPC
	c.delayPC = c.branchTarget

	if build && c.Cache.Building() != nil {
		if !ok || c.barrier || c.fatal != nil {
			c.Cache.Barrier()
		} else {
			c.Cache.Append(pc, c.compile(h, i, c.pc), c.pc, c.stuffToDo)
		}
	}

	if !c.stalled {
		c.advance(1)
	}
	c.drainEvents()
}

// compile creates the op for an instruction that has just been interpreted.
// The op stops the fragment if the program counter does not follow the same
// path it followed when the instruction was interpreted.
func (c *CPU) compile(h handler, i instruction, next uint32) dynarec.Op {
	return func() bool {
		if c.delayPC != 0 {
			c.nextPC = c.delayPC
		} else {
			c.nextPC = c.pc + 4
		}
		c.branchTarget = 0

		h(c, i)

		c.pc = c.nextPC
		c.delayPC = c.branchTarget
		c.opsInFlight++

		return c.pc == next && !c.stuffToDo
	}
}
