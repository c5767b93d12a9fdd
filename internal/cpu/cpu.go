package cpu

import "github.com/go-psx/psxcpu/internal/util/debug"

// Step runs exactly one instruction (or takes the alignment exception
// for an unaligned PC) and returns. Callers drive the emulator by
// calling Step in a loop; the cycle clock it advances is available
// through Cycles.
func (c *CPU) Step(dbg Debugger) {
	c.currentPC = c.pc
	dbg.PCChange(c)

	if c.currentPC%4 != 0 {
		c.raiseException(CauseLoadAddrError)
		return
	}

	instr := Instruction(c.fetchInstruction())

	c.pc = c.nextPC
	c.nextPC = c.pc + 4

	reg, val := c.pendingLoad.reg, c.pendingLoad.val
	c.setReg(reg, val)
	c.pendingLoad = pendingLoad{}

	c.delaySlot = c.branch
	c.branch = false

	c.decodeAndExecute(instr, dbg)

	// A load staged by this instruction into the register the retired
	// load just wrote cancels the retired load.
	if reg != 0 && c.pendingLoad.reg == reg {
		c.outRegs[reg] = c.regs[reg]
	}

	c.regs = c.outRegs
}

const kseg1Mask = 0xe0000000
const kseg1Base = 0xa0000000

// fetchInstruction returns the word at the current PC, routing
// through the instruction cache unless the address is in KSEG1 (never
// cached) or the cache is administratively disabled.
func (c *CPU) fetchInstruction() uint32 {
	pc := c.currentPC
	kseg1 := pc&kseg1Mask == kseg1Base

	if kseg1 || !c.bus.ICacheEnabled() {
		c.tk.Tick(4)
		return c.bus.LoadInstruction(pc)
	}

	tag := pc & 0xfffff000
	index := cacheWordIndex(pc)
	line := c.icache.Line(pc)

	if line.tag() != tag || line.validIndex() > index {
		cpc := pc
		c.tk.Tick(3)
		for i := index; i < 4; i++ {
			c.tk.Tick(1)
			instr := Instruction(c.bus.LoadInstruction(cpc))
			line.setInstruction(i, instr)
			cpc += 4
		}
		line.setTagValid(pc)
	}

	debug.Tracef(debug.ICache, "icache fetch pc=%#x tag=%#x index=%d\n", pc, tag, index)

	return uint32(line.instruction(index))
}

func (c *CPU) load32(addr uint32, dbg Debugger) uint32 {
	dbg.MemoryRead(c, addr)
	return c.bus.LoadWord(addr)
}

func (c *CPU) load16(addr uint32, dbg Debugger) uint16 {
	dbg.MemoryRead(c, addr)
	return c.bus.LoadHalf(addr)
}

func (c *CPU) load8(addr uint32, dbg Debugger) uint8 {
	dbg.MemoryRead(c, addr)
	return c.bus.LoadByte(addr)
}

// Examine reads memory with no debugger side effects and no cache
// routing, for use by the interactive debugger console.
func (c *CPU) Examine32(addr uint32) uint32 { return c.bus.LoadWord(addr) }
func (c *CPU) Examine16(addr uint32) uint16 { return c.bus.LoadHalf(addr) }
func (c *CPU) Examine8(addr uint32) uint8   { return c.bus.LoadByte(addr) }

func (c *CPU) store32(addr uint32, v uint32, dbg Debugger) {
	dbg.MemoryWrite(c, addr)
	if c.sr.CacheIsolated() {
		c.cacheMaintenanceWord(addr, v)
		return
	}
	c.bus.StoreWord(addr, v)
}

func (c *CPU) store16(addr uint32, v uint16, dbg Debugger) {
	dbg.MemoryWrite(c, addr)
	if c.sr.CacheIsolated() {
		panic("unsupported halfword write while cache is isolated")
	}
	c.bus.StoreHalf(addr, v)
}

func (c *CPU) store8(addr uint32, v uint8, dbg Debugger) {
	dbg.MemoryWrite(c, addr)
	if c.sr.CacheIsolated() {
		panic("unsupported byte write while cache is isolated")
	}
	c.bus.StoreByte(addr, v)
}

// cacheMaintenanceWord is the only store path the BIOS actually uses
// while SR.IsC is set: either invalidate a whole cache line (tag-test
// mode) or poke one word of cache content directly, bypassing main
// memory entirely. The BIOS only ever writes zero through this path;
// any other value means a misdecoded cache-maintenance sequence.
func (c *CPU) cacheMaintenanceWord(addr uint32, v uint32) {
	if !c.bus.ICacheEnabled() {
		panic("cache maintenance while instruction cache is disabled")
	}
	if v != 0 {
		panic("cache maintenance write with non-zero value")
	}
	line := c.icache.Line(addr)
	if c.bus.ICacheTagTestMode() {
		line.invalidate()
		return
	}
	index := cacheWordIndex(addr)
	line.setInstruction(index, Instruction(v))
}

// branchTo sets nextPC to pc + (offset << 2), the standard MIPS branch
// target computation relative to the delay-slot instruction's address.
func (c *CPU) branchTo(offset uint32) {
	c.nextPC = c.pc + (offset << 2)
	c.branch = true
	debug.Tracef(debug.Branch, "branch taken target=%#x\n", c.nextPC)
}

// raiseException enters the exception handler: it pushes the
// interrupt/mode stack, records cause and EPC (rewinding EPC by one
// instruction and setting the branch-delay bit if the excepting
// instruction was itself in a delay slot), and redirects execution to
// the vector selected by SR.BEV.
func (c *CPU) raiseException(cause uint32) {
	c.sr = c.sr.EnterException()
	c.cause = c.cause.WithCode(cause)

	c.epc = c.currentPC
	inDelaySlot := c.delaySlot
	if inDelaySlot {
		c.epc -= 4
	}
	c.cause = c.cause.WithBranchDelay(inDelaySlot)

	debug.Tracef(debug.Exception, "exception cause=%#x epc=%#x delay=%v\n", cause, c.epc, inDelaySlot)

	c.pc = c.sr.ExceptionHandler()
	c.nextPC = c.pc + 4
}
