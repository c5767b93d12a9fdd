/*
   CPU: cycle-aware MIPS-I interpreter core.

   Copyright 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a copy
   of this software and associated documentation files (the "Software"), to deal
   in the Software without restriction, including without limitation the rights
   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
   copies of the Software, and to permit persons to whom the Software is
   furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE.
*/

// Package cpu implements the R3000A-derived MIPS-I core at the heart
// of the console: instruction fetch through a direct-mapped cache,
// branch and load delay slots, overflow and alignment traps, and the
// handful of system-control (COP0) registers the BIOS depends on.
package cpu

import "github.com/go-psx/psxcpu/internal/timekeeper"

// Bus is the memory-mapped interface the core fetches, loads and
// stores through. An implementation owns RAM, the BIOS ROM window,
// and the cache-control register.
type Bus interface {
	LoadInstruction(addr uint32) uint32
	LoadByte(addr uint32) uint8
	LoadHalf(addr uint32) uint16
	LoadWord(addr uint32) uint32
	StoreByte(addr uint32, v uint8)
	StoreHalf(addr uint32, v uint16)
	StoreWord(addr uint32, v uint32)
	ICacheEnabled() bool
	ICacheTagTestMode() bool
}

// Debugger receives callbacks as the core runs, used for breakpoints
// and memory watchpoints. NoOp satisfies this with empty bodies.
type Debugger interface {
	PCChange(c *CPU)
	MemoryRead(c *CPU, addr uint32)
	MemoryWrite(c *CPU, addr uint32)
}

// pendingLoad records a register write from a load instruction, which
// only becomes visible to the instruction after next.
type pendingLoad struct {
	reg RegisterIndex
	val uint32
}

// CPU holds the full architectural and micro-architectural state of
// one core: general and HI/LO registers, the two-bank register file
// that realizes load-delay-slot semantics, the COP0 system-control
// registers, the instruction cache, and the cycle clock.
type CPU struct {
	tk *timekeeper.TimeKeeper

	pc        uint32
	nextPC    uint32
	currentPC uint32

	regs    [32]uint32
	outRegs [32]uint32

	hi uint32
	lo uint32

	icache *ICache
	bus    Bus

	sr    StatusRegister
	cause CauseRegister
	epc   uint32

	pendingLoad pendingLoad

	branch    bool
	delaySlot bool

	primary [64]opFunc
	special [64]opFunc
}

type opFunc func(c *CPU, instr Instruction, dbg Debugger)

const resetPC = 0xbfc00000

// uninitialized is the reset-value filler the real console's register
// banks power up with; software must never rely on it, so we pick a
// value that is obviously not a sane pointer or datum.
const uninitialized = 0xdeadbeef

// NewCPU returns a CPU freshly reset and attached to bus. icache, when
// non-nil, lets the caller share or pre-seed cache state; pass nil to
// get a cold cache.
func NewCPU(bus Bus, icache *ICache) *CPU {
	c := &CPU{
		tk:     timekeeper.New(),
		bus:    bus,
		icache: icache,
	}
	if c.icache == nil {
		c.icache = NewICache()
	}
	c.Reset()
	c.buildDispatchTables()
	return c
}

// Reset restores architectural state to cold-boot values without
// touching the instruction cache.
func (c *CPU) Reset() {
	for i := range c.regs {
		c.regs[i] = uninitialized
		c.outRegs[i] = uninitialized
	}
	c.regs[0] = 0
	c.outRegs[0] = 0

	c.pc = resetPC
	c.nextPC = resetPC + 4
	c.currentPC = 0

	c.hi = uninitialized
	c.lo = uninitialized

	c.sr = 0
	c.cause = 0
	c.epc = 0

	c.pendingLoad = pendingLoad{}
	c.branch = false
	c.delaySlot = false
}

// PC returns the address of the next instruction to run.
func (c *CPU) PC() uint32 { return c.pc }

// ForcePC overrides PC, used only by the debugger.
func (c *CPU) ForcePC(pc uint32) {
	c.pc = pc
	c.nextPC = pc + 4
	c.delaySlot = false
}

// Regs returns a snapshot of the 32 general purpose registers.
func (c *CPU) Regs() [32]uint32 { return c.regs }

func (c *CPU) Hi() uint32 { return c.hi }
func (c *CPU) Lo() uint32 { return c.lo }
func (c *CPU) SR() uint32 { return uint32(c.sr) }

func (c *CPU) SetSR(v uint32) { c.sr = StatusRegister(v) }

func (c *CPU) Cause() uint32 { return uint32(c.cause) }
func (c *CPU) EPC() uint32   { return c.epc }

// Cycles returns the current cycle count, as seen by peripherals.
func (c *CPU) Cycles() timekeeper.Stamp { return c.tk.Now() }

func (c *CPU) reg(i RegisterIndex) uint32 {
	return c.regs[i]
}

func (c *CPU) setReg(i RegisterIndex, v uint32) {
	c.outRegs[i] = v
	c.outRegs[0] = 0
}

// SetReg forces a general purpose register in both register banks,
// for use by tests and the debugger console; ordinary execution never
// needs to bypass the load-delay-slot bookkeeping this way.
func (c *CPU) SetReg(i RegisterIndex, v uint32) {
	if i == 0 {
		return
	}
	c.regs[i] = v
	c.outRegs[i] = v
}
