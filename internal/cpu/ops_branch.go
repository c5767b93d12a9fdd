package cpu

// opBxx covers BLTZ/BGEZ/BLTZAL/BGEZAL, which all share opcode 0x01
// and are distinguished by bits 16 and 20 of the instruction word. The
// link variants write $ra whether or not the branch is taken.
func (c *CPU) opBxx(instr Instruction, dbg Debugger) {
	word := uint32(instr)
	isBGEZ := (word >> 16) & 1
	isLink := (word>>20)&1 != 0

	v := int32(c.reg(instr.S()))
	test := boolToWord(v < 0) ^ isBGEZ

	if isLink {
		c.setReg(31, c.nextPC)
	}
	if test != 0 {
		c.branchTo(instr.ImmSE())
	}
}

func (c *CPU) opJR(instr Instruction, dbg Debugger) {
	c.nextPC = c.reg(instr.S())
	c.branch = true
}

func (c *CPU) opJALR(instr Instruction, dbg Debugger) {
	ra := c.nextPC
	c.setReg(instr.D(), ra)
	c.nextPC = c.reg(instr.S())
	c.branch = true
}

func (c *CPU) opJ(instr Instruction, dbg Debugger) {
	c.nextPC = (c.pc & 0xf0000000) | (instr.ImmJump() << 2)
	c.branch = true
}

func (c *CPU) opJAL(instr Instruction, dbg Debugger) {
	c.setReg(31, c.nextPC)
	c.opJ(instr, dbg)
	c.branch = true
}

func (c *CPU) opBEQ(instr Instruction, dbg Debugger) {
	if c.reg(instr.S()) == c.reg(instr.T()) {
		c.branchTo(instr.ImmSE())
	}
}

func (c *CPU) opBNE(instr Instruction, dbg Debugger) {
	if c.reg(instr.S()) != c.reg(instr.T()) {
		c.branchTo(instr.ImmSE())
	}
}

func (c *CPU) opBLEZ(instr Instruction, dbg Debugger) {
	if int32(c.reg(instr.S())) <= 0 {
		c.branchTo(instr.ImmSE())
	}
}

func (c *CPU) opBGTZ(instr Instruction, dbg Debugger) {
	if int32(c.reg(instr.S())) > 0 {
		c.branchTo(instr.ImmSE())
	}
}

func (c *CPU) opSyscall(instr Instruction, dbg Debugger) {
	c.raiseException(CauseSyscall)
}

func (c *CPU) opBreak(instr Instruction, dbg Debugger) {
	c.raiseException(CauseBreak)
}
