// Package debugger implements cpu.Debugger, the callback interface the
// core invokes on every PC change and every memory access so a console
// front-end can stop execution at breakpoints and watchpoints.
package debugger

import "github.com/go-psx/psxcpu/internal/cpu"

// NoOp satisfies cpu.Debugger with empty bodies, for running the core
// flat out with no debugger attached.
type NoOp struct{}

func (NoOp) PCChange(c *cpu.CPU)              {}
func (NoOp) MemoryRead(c *cpu.CPU, addr uint32)  {}
func (NoOp) MemoryWrite(c *cpu.CPU, addr uint32) {}

// Breakpoints reports a stop through its Halted flag rather than a
// panic/return value, since cpu.Debugger's methods return nothing: the
// CPU driver loop checks Halted after each Step.
type Breakpoints struct {
	Code  map[uint32]bool
	Read  map[uint32]bool
	Write map[uint32]bool

	Halted bool
	Reason string
}

// NewBreakpoints returns an empty breakpoint set.
func NewBreakpoints() *Breakpoints {
	return &Breakpoints{
		Code:  map[uint32]bool{},
		Read:  map[uint32]bool{},
		Write: map[uint32]bool{},
	}
}

func (b *Breakpoints) AddCode(addr uint32)  { b.Code[addr] = true }
func (b *Breakpoints) AddRead(addr uint32)  { b.Read[addr] = true }
func (b *Breakpoints) AddWrite(addr uint32) { b.Write[addr] = true }

func (b *Breakpoints) RemoveCode(addr uint32)  { delete(b.Code, addr) }
func (b *Breakpoints) RemoveRead(addr uint32)  { delete(b.Read, addr) }
func (b *Breakpoints) RemoveWrite(addr uint32) { delete(b.Write, addr) }

func (b *Breakpoints) PCChange(c *cpu.CPU) {
	if b.Code[c.PC()] {
		b.Halted = true
		b.Reason = "breakpoint"
	}
}

func (b *Breakpoints) MemoryRead(c *cpu.CPU, addr uint32) {
	if b.Read[addr] {
		b.Halted = true
		b.Reason = "read watchpoint"
	}
}

func (b *Breakpoints) MemoryWrite(c *cpu.CPU, addr uint32) {
	if b.Write[addr] {
		b.Halted = true
		b.Reason = "write watchpoint"
	}
}

// Clear resets the halted state so the driver loop can resume.
func (b *Breakpoints) Clear() {
	b.Halted = false
	b.Reason = ""
}
