// Package console ties the CPU core, its bus and its breakpoint
// debugger together into the single-threaded run loop the interactive
// front end and the telnet monitor both drive, grounded on the
// teacher's emu/core run loop.
package console

import (
	"log/slog"

	"github.com/go-psx/psxcpu/internal/cpu"
	"github.com/go-psx/psxcpu/internal/debugger"
	"github.com/go-psx/psxcpu/internal/memory"
)

// Console owns one CPU core and its bus, and the breakpoint set the
// debugger console pokes at between steps.
type Console struct {
	CPU    *cpu.CPU
	Bus    *memory.Interconnect
	Breaks *debugger.Breakpoints

	running bool
}

// New wires a CPU to a fresh bus carrying ramSizeKB of RAM (0 for the
// default 2MB) and the given BIOS image (nil boots without one).
func New(ramSizeKB int, bios []byte) *Console {
	bus := memory.NewInterconnect(ramSizeKB, bios)
	core := cpu.NewCPU(bus, nil)
	return &Console{
		CPU:    core,
		Bus:    bus,
		Breaks: debugger.NewBreakpoints(),
	}
}

// Step runs exactly one instruction through the breakpoint debugger
// and reports whether a breakpoint or watchpoint stopped it.
func (c *Console) Step() (halted bool, reason string) {
	c.Breaks.Clear()
	c.CPU.Step(c.Breaks)
	return c.Breaks.Halted, c.Breaks.Reason
}

// Run steps the core until a breakpoint fires or max instructions have
// executed, whichever comes first, and reports why it stopped.
func (c *Console) Run(max int) (steps int, reason string) {
	c.running = true
	defer func() { c.running = false }()
	for steps = 0; steps < max; steps++ {
		if !c.running {
			return steps, "stopped"
		}
		halted, why := c.Step()
		if halted {
			return steps, why
		}
	}
	return steps, "instruction limit reached"
}

// Stop requests the currently running Run loop to exit before its next
// step; it has no effect once Run has already returned.
func (c *Console) Stop() {
	if c.running {
		slog.Info("stop requested")
		c.running = false
	}
}
