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
	"fmt"
	"sync/atomic"

	"github.com/gopher64/gopher64/assert"
	"github.com/gopher64/gopher64/curated"
	"github.com/gopher64/gopher64/hardware/cpu/cop1"
	"github.com/gopher64/gopher64/hardware/cpu/dynarec"
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/cpu/tlb"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/notifications"
	"github.com/gopher64/gopher64/random"
)

// Sentinel error patterns.
const (
	UnimplementedInstruction = "cpu: unimplemented instruction: %08x at %08x"
	ConsistencyFailure       = "cpu: consistency failure: %s"
	FatalState               = "cpu: cannot run: %v"
)

// The primary opcode reserved for breakpoints. The opcode is otherwise unused
// by the VR4300.
const (
	BreakpointOpcode      = 58
	BreakpointInstruction = BreakpointOpcode << 26
)

// InterruptLine is implemented by the interrupt controller of the console
// (the MIPS interface). The line is connected to interrupt pending bit IP3 of
// the Cause register.
type InterruptLine interface {
	InterruptPending() bool
}

// BreakpointSource is implemented by types that replace instructions in memory
// with the breakpoint instruction. The address is the physical address of the
// instruction. The original instruction is returned.
type BreakpointSource interface {
	Original(phys uint32) (uint32, bool)
}

// CPU implements the VR4300 processor.
type CPU struct {
	prefs  *preferences.Preferences
	mem    *memory.Dispatch
	notify notifications.Notify
	line   InterruptLine
	bps    BreakpointSource

	// backing slice of RDRAM for the fast path
	ram []byte

	GPR    registers.GPR
	Cop0   registers.Cop0
	FPU    cop1.FPU
	TLB    *tlb.TLB
	Events *events.Events
	Cache  *dynarec.Cache

	rand *random.Random

	pc           uint32
	nextPC       uint32
	delayPC      uint32
	branchTarget uint32

	multHi uint64
	multLo uint64

	// total number of cycles executed since reset
	cycles uint64

	// index of the op being executed by a fragment. added to the Count
	// register when it is read
	opsInFlight int
	inFragment  bool

	// physical address of the instruction being executed
	fetchPhys uint32

	// stuffToDo is true if any of the flags below are set. it is checked
	// between every instruction
	stuffToDo       bool
	checkInterrupts bool
	budgetExhausted bool
	vblank          bool
	breakpointHit   bool
	haltRequested   atomic.Bool
	haltReason      atomic.Value

	// the instruction that has just been interpreted must not be part of a
	// fragment
	barrier bool

	// the instruction did not execute and no time should pass
	stalled bool

	// a breakpoint at this address has already been reported and the original
	// instruction should be executed
	resumeFrom uint32
	resuming   bool

	// a fatal error has occurred. the CPU must be reset before it can run
	fatal error

	// whether the dynamic recompiler is being used for the current run
	dynarec bool

	// number of cycles between vertical blanks
	vblCycles int

	owner       assert.Owner
	assertOwner bool
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// notify argument can be nil.
func NewCPU(prefs *preferences.Preferences, mem *memory.Dispatch, notify notifications.Notify) *CPU {
	c := &CPU{
		prefs:  prefs,
		mem:    mem,
		notify: notify,
		Events: events.NewEvents(),
		Cache: dynarec.NewCache(prefs.HotThreshold.Get().(int), prefs.MaxFragmentOps.Get().(int),
			prefs.InvalidationLogSize.Get().(int)),
	}

	c.rand = random.NewRandom(c)
	c.TLB = tlb.NewTLB(&c.Cop0, c.rand, c)

	if mem != nil {
		c.ram = mem.RAM().Bytes()
		mem.Subscribe(c.Cache)
	}

	c.Reset()

	return c
}

// Plumb a new interrupt line into the CPU.
func (c *CPU) PlumbInterruptLine(line InterruptLine) {
	c.line = line
}

// PlumbBreakpoints attaches a source of breakpoints to the CPU. A nil value
// removes the current source.
func (c *CPU) PlumbBreakpoints(bps BreakpointSource) {
	c.bps = bps
}

// Reset the CPU to its power-on state. The program counter is set to the cold
// reset vector.
func (c *CPU) Reset() {
	c.checkOwner("Reset")

	c.rand.ZeroSeed = c.prefs.ZeroSeed.Get().(bool)
	c.TLB.MRU = c.prefs.TLBMRU.Get().(bool)
	c.assertOwner = c.prefs.AssertOwner.Get().(bool)

	c.Cache.HotThreshold = c.prefs.HotThreshold.Get().(int)
	c.Cache.MaxOps = c.prefs.MaxFragmentOps.Get().(int)
	c.Cache.Reset()

	c.GPR.Reset()
	c.Cop0.Reset()
	c.FPU.Reset()
	c.FPU.FR = false
	c.TLB.Reset()

	c.pc = registers.VectorColdReset
	c.nextPC = 0
	c.delayPC = 0
	c.branchTarget = 0
	c.multHi = 0
	c.multLo = 0
	c.cycles = 0
	c.opsInFlight = 0
	c.inFragment = false

	c.stuffToDo = false
	c.checkInterrupts = false
	c.budgetExhausted = false
	c.vblank = false
	c.breakpointHit = false
	c.haltRequested.Store(false)
	c.barrier = false
	c.stalled = false
	c.resuming = false
	c.fatal = nil

	c.Events.Reset()
	c.vblCycles = c.prefs.VblCycles.Get().(int)
	if err := c.Events.Add(events.Vbl, int64(c.vblCycles)); err != nil {
		c.fail(curated.Errorf(ConsistencyFailure, err))
	}
	c.scheduleCompare()

	logger.Logf(logger.Allow, "events", "reset: %s", c.Events)
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%08x delay=%08x %s", c.pc, c.delayPC, c.Cop0.String())
}

// Cycles implements the random.Clock interface.
func (c *CPU) Cycles() uint64 {
	return c.cycles + uint64(c.opsInFlight)
}

// PC returns the address of the next instruction to be executed.
func (c *CPU) PC() uint32 {
	return c.pc
}

// DelayPC returns the pending branch target. A value of zero means there is no
// pending branch.
func (c *CPU) DelayPC() uint32 {
	return c.delayPC
}

// SetPC sets the address of the next instruction to execute. Any pending branch
// is cancelled.
func (c *CPU) SetPC(pc uint32) {
	c.checkOwner("SetPC")
	c.pc = pc
	c.delayPC = 0
}

// MultHi returns the HI register.
func (c *CPU) MultHi() uint64 {
	return c.multHi
}

// MultLo returns the LO register.
func (c *CPU) MultLo() uint64 {
	return c.multLo
}

// Fatal returns the error that stopped the CPU or nil.
func (c *CPU) Fatal() error {
	return c.fatal
}

// AddEvent adds an event to the scheduler. For use by the collaborating
// hardware (eg. the video interface).
func (c *CPU) AddEvent(t events.Type, countdown int64) error {
	c.checkOwner("AddEvent")
	return c.Events.Add(t, countdown)
}

func (c *CPU) checkOwner(what string) {
	if c.assertOwner {
		c.owner.Check(what)
	}
}

// the countdown for an event that happens when the Count register next equals
// the value v
func countdownTo(v uint32, count uint32) int64 {
	d := int64(v - count)
	if d == 0 {
		d = compareInterval
	}
	return d
}
