package cpu

// Coprocessor 0 (system control) dispatch.
func (c *CPU) opCop0(instr Instruction, dbg Debugger) {
	switch instr.CopOpcode() {
	case 0b00000:
		c.opMFC0(instr, dbg)
	case 0b00100:
		c.opMTC0(instr, dbg)
	case 0b10000:
		c.opRFE(instr, dbg)
	default:
		c.raiseException(CauseIllegalInstr)
	}
}

// Coprocessor 1 does not exist on this console.
func (c *CPU) opCop1(instr Instruction, dbg Debugger) {
	c.raiseException(CauseCoprocessorUnus)
}

// Coprocessor 2 is the geometry transform engine, out of scope for
// this core; any GTE instruction reaching here is treated as an
// unimplemented coprocessor operation rather than emulated.
func (c *CPU) opCop2(instr Instruction, dbg Debugger) {
	c.raiseException(CauseCoprocessorUnus)
}

// Coprocessor 3 does not exist on this console.
func (c *CPU) opCop3(instr Instruction, dbg Debugger) {
	c.raiseException(CauseCoprocessorUnus)
}

// Move From Coprocessor 0.
func (c *CPU) opMFC0(instr Instruction, dbg Debugger) {
	cpuR := instr.T()
	copR := uint32(instr.D())

	var v uint32
	switch copR {
	case regStatus:
		v = uint32(c.sr)
	case regCause:
		v = uint32(c.cause)
	case regEPC:
		v = c.epc
	case regBadVAddr:
		v = 0
	default:
		v = 0
	}
	c.pendingLoad = pendingLoad{reg: cpuR, val: v}
}

// Move To Coprocessor 0. Only Status is writable in this core; Cause
// bits are hardware-set and writes to it (beyond clearing software
// interrupt bits, unused by this build) are ignored rather than
// trapped, matching how the BIOS probes these registers at boot.
func (c *CPU) opMTC0(instr Instruction, dbg Debugger) {
	copR := uint32(instr.D())
	v := c.reg(instr.T())

	switch copR {
	case regStatus:
		c.sr = StatusRegister(v)
	case regCause, regEPC, regBadVAddr:
		// read-only / hardware-set from this core's perspective
	default:
		// breakpoint and TLB registers: unused by this console
	}
}

// Return From Exception: pops the interrupt/mode stack. The encoding
// this shares with virtual-memory instructions the console's MMU-less
// R3000A variant never implements, so anything but the RFE funct code
// here is an illegal instruction.
func (c *CPU) opRFE(instr Instruction, dbg Debugger) {
	if uint32(instr)&0x3f != 0b010000 {
		c.raiseException(CauseIllegalInstr)
		return
	}
	c.sr = c.sr.ReturnFromException()
}

func (c *CPU) opLWC0(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opLWC1(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opLWC2(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opLWC3(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opSWC0(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opSWC1(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opSWC2(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
func (c *CPU) opSWC3(instr Instruction, dbg Debugger) { c.raiseException(CauseCoprocessorUnus) }
