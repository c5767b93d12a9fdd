package cpu

// Shift Left Logical.
func (c *CPU) opSLL(instr Instruction, dbg Debugger) {
	v := c.reg(instr.T()) << instr.Shift()
	c.setReg(instr.D(), v)
}

// Shift Right Logical.
func (c *CPU) opSRL(instr Instruction, dbg Debugger) {
	v := c.reg(instr.T()) >> instr.Shift()
	c.setReg(instr.D(), v)
}

// Shift Right Arithmetic.
func (c *CPU) opSRA(instr Instruction, dbg Debugger) {
	v := int32(c.reg(instr.T())) >> instr.Shift()
	c.setReg(instr.D(), uint32(v))
}

// Shift Left Logical Variable; the shift amount is truncated to 5 bits.
func (c *CPU) opSLLV(instr Instruction, dbg Debugger) {
	v := c.reg(instr.T()) << (c.reg(instr.S()) & 0x1f)
	c.setReg(instr.D(), v)
}

// Shift Right Logical Variable.
func (c *CPU) opSRLV(instr Instruction, dbg Debugger) {
	v := c.reg(instr.T()) >> (c.reg(instr.S()) & 0x1f)
	c.setReg(instr.D(), v)
}

// Shift Right Arithmetic Variable.
func (c *CPU) opSRAV(instr Instruction, dbg Debugger) {
	v := int32(c.reg(instr.T())) >> (c.reg(instr.S()) & 0x1f)
	c.setReg(instr.D(), uint32(v))
}

// Move From HI.
func (c *CPU) opMFHI(instr Instruction, dbg Debugger) {
	c.setReg(instr.D(), c.hi)
}

// Move To HI.
func (c *CPU) opMTHI(instr Instruction, dbg Debugger) {
	c.hi = c.reg(instr.S())
}

// Move From LO.
func (c *CPU) opMFLO(instr Instruction, dbg Debugger) {
	c.setReg(instr.D(), c.lo)
}

// Move To LO.
func (c *CPU) opMTLO(instr Instruction, dbg Debugger) {
	c.lo = c.reg(instr.S())
}

// Multiply, signed.
func (c *CPU) opMult(instr Instruction, dbg Debugger) {
	a := int64(int32(c.reg(instr.S())))
	b := int64(int32(c.reg(instr.T())))
	v := uint64(a * b)
	c.hi = uint32(v >> 32)
	c.lo = uint32(v)
}

// Multiply, unsigned.
func (c *CPU) opMultU(instr Instruction, dbg Debugger) {
	a := uint64(c.reg(instr.S()))
	b := uint64(c.reg(instr.T()))
	v := a * b
	c.hi = uint32(v >> 32)
	c.lo = uint32(v)
}

// Divide, signed; division by zero and the -2^31/-1 overflow case both
// produce the hardware's documented bogus-but-defined results instead
// of trapping.
func (c *CPU) opDiv(instr Instruction, dbg Debugger) {
	n := int32(c.reg(instr.S()))
	d := int32(c.reg(instr.T()))

	switch {
	case d == 0:
		c.hi = uint32(n)
		if n >= 0 {
			c.lo = 0xffffffff
		} else {
			c.lo = 1
		}
	case uint32(n) == 0x80000000 && d == -1:
		c.hi = 0
		c.lo = 0x80000000
	default:
		c.hi = uint32(n % d)
		c.lo = uint32(n / d)
	}
}

// Divide, unsigned.
func (c *CPU) opDivU(instr Instruction, dbg Debugger) {
	n := c.reg(instr.S())
	d := c.reg(instr.T())

	if d == 0 {
		c.hi = n
		c.lo = 0xffffffff
		return
	}
	c.hi = n % d
	c.lo = n / d
}

// Add, signed, trapping on overflow.
func (c *CPU) opAdd(instr Instruction, dbg Debugger) {
	s := int32(c.reg(instr.S()))
	t := int32(c.reg(instr.T()))
	v := s + t
	if overflowsAdd(s, t, v) {
		c.raiseException(CauseOverflow)
		return
	}
	c.setReg(instr.D(), uint32(v))
}

// Add Unsigned; never traps, the name refers to the operands being
// treated as plain bit patterns, not to unsigned arithmetic overflow.
func (c *CPU) opAddU(instr Instruction, dbg Debugger) {
	v := c.reg(instr.S()) + c.reg(instr.T())
	c.setReg(instr.D(), v)
}

// Subtract, signed, trapping on overflow.
func (c *CPU) opSub(instr Instruction, dbg Debugger) {
	s := int32(c.reg(instr.S()))
	t := int32(c.reg(instr.T()))
	v := s - t
	if overflowsSub(s, t, v) {
		c.raiseException(CauseOverflow)
		return
	}
	c.setReg(instr.D(), uint32(v))
}

// Subtract Unsigned.
func (c *CPU) opSubU(instr Instruction, dbg Debugger) {
	v := c.reg(instr.S()) - c.reg(instr.T())
	c.setReg(instr.D(), v)
}

func (c *CPU) opAnd(instr Instruction, dbg Debugger) {
	c.setReg(instr.D(), c.reg(instr.S())&c.reg(instr.T()))
}

func (c *CPU) opOr(instr Instruction, dbg Debugger) {
	c.setReg(instr.D(), c.reg(instr.S())|c.reg(instr.T()))
}

func (c *CPU) opXor(instr Instruction, dbg Debugger) {
	c.setReg(instr.D(), c.reg(instr.S())^c.reg(instr.T()))
}

func (c *CPU) opNor(instr Instruction, dbg Debugger) {
	c.setReg(instr.D(), ^(c.reg(instr.S()) | c.reg(instr.T())))
}

// Set on Less Than, signed.
func (c *CPU) opSLT(instr Instruction, dbg Debugger) {
	v := int32(c.reg(instr.S())) < int32(c.reg(instr.T()))
	c.setReg(instr.D(), boolToWord(v))
}

// Set on Less Than, unsigned.
func (c *CPU) opSLTU(instr Instruction, dbg Debugger) {
	v := c.reg(instr.S()) < c.reg(instr.T())
	c.setReg(instr.D(), boolToWord(v))
}

// Add Immediate, signed, trapping on overflow.
func (c *CPU) opAddI(instr Instruction, dbg Debugger) {
	s := int32(c.reg(instr.S()))
	i := int32(instr.ImmSE())
	v := s + i
	if overflowsAdd(s, i, v) {
		c.raiseException(CauseOverflow)
		return
	}
	c.setReg(instr.T(), uint32(v))
}

func (c *CPU) opAddIU(instr Instruction, dbg Debugger) {
	v := c.reg(instr.S()) + instr.ImmSE()
	c.setReg(instr.T(), v)
}

func (c *CPU) opSLTI(instr Instruction, dbg Debugger) {
	v := int32(c.reg(instr.S())) < int32(instr.ImmSE())
	c.setReg(instr.T(), boolToWord(v))
}

func (c *CPU) opSLTIU(instr Instruction, dbg Debugger) {
	v := c.reg(instr.S()) < instr.ImmSE()
	c.setReg(instr.T(), boolToWord(v))
}

func (c *CPU) opAndI(instr Instruction, dbg Debugger) {
	c.setReg(instr.T(), c.reg(instr.S())&instr.Imm())
}

func (c *CPU) opOrI(instr Instruction, dbg Debugger) {
	c.setReg(instr.T(), c.reg(instr.S())|instr.Imm())
}

func (c *CPU) opXorI(instr Instruction, dbg Debugger) {
	c.setReg(instr.T(), c.reg(instr.S())^instr.Imm())
}

// Load Upper Immediate: low 16 bits are zeroed.
func (c *CPU) opLUI(instr Instruction, dbg Debugger) {
	c.setReg(instr.T(), instr.Imm()<<16)
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func overflowsAdd(a, b, sum int32) bool {
	return ((a ^ sum) & (b ^ sum)) < 0
}

func overflowsSub(a, b, diff int32) bool {
	return ((a ^ b) & (a ^ diff)) < 0
}
