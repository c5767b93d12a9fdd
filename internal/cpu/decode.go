package cpu

import "github.com/go-psx/psxcpu/internal/util/debug"

// buildDispatchTables wires the primary opcode and SPECIAL funct-code
// tables once at construction time, table-driven rather than a giant
// switch, so adding or auditing an opcode means touching one line here.
func (c *CPU) buildDispatchTables() {
	for i := range c.primary {
		c.primary[i] = (*CPU).opIllegal
	}
	for i := range c.special {
		c.special[i] = (*CPU).opIllegal
	}

	c.special[0x00] = (*CPU).opSLL
	c.special[0x02] = (*CPU).opSRL
	c.special[0x03] = (*CPU).opSRA
	c.special[0x04] = (*CPU).opSLLV
	c.special[0x06] = (*CPU).opSRLV
	c.special[0x07] = (*CPU).opSRAV
	c.special[0x08] = (*CPU).opJR
	c.special[0x09] = (*CPU).opJALR
	c.special[0x0c] = (*CPU).opSyscall
	c.special[0x0d] = (*CPU).opBreak
	c.special[0x10] = (*CPU).opMFHI
	c.special[0x11] = (*CPU).opMTHI
	c.special[0x12] = (*CPU).opMFLO
	c.special[0x13] = (*CPU).opMTLO
	c.special[0x18] = (*CPU).opMult
	c.special[0x19] = (*CPU).opMultU
	c.special[0x1a] = (*CPU).opDiv
	c.special[0x1b] = (*CPU).opDivU
	c.special[0x20] = (*CPU).opAdd
	c.special[0x21] = (*CPU).opAddU
	c.special[0x22] = (*CPU).opSub
	c.special[0x23] = (*CPU).opSubU
	c.special[0x24] = (*CPU).opAnd
	c.special[0x25] = (*CPU).opOr
	c.special[0x26] = (*CPU).opXor
	c.special[0x27] = (*CPU).opNor
	c.special[0x2a] = (*CPU).opSLT
	c.special[0x2b] = (*CPU).opSLTU

	c.primary[0x00] = (*CPU).execSpecial
	c.primary[0x01] = (*CPU).opBxx
	c.primary[0x02] = (*CPU).opJ
	c.primary[0x03] = (*CPU).opJAL
	c.primary[0x04] = (*CPU).opBEQ
	c.primary[0x05] = (*CPU).opBNE
	c.primary[0x06] = (*CPU).opBLEZ
	c.primary[0x07] = (*CPU).opBGTZ
	c.primary[0x08] = (*CPU).opAddI
	c.primary[0x09] = (*CPU).opAddIU
	c.primary[0x0a] = (*CPU).opSLTI
	c.primary[0x0b] = (*CPU).opSLTIU
	c.primary[0x0c] = (*CPU).opAndI
	c.primary[0x0d] = (*CPU).opOrI
	c.primary[0x0e] = (*CPU).opXorI
	c.primary[0x0f] = (*CPU).opLUI
	c.primary[0x10] = (*CPU).opCop0
	c.primary[0x11] = (*CPU).opCop1
	c.primary[0x12] = (*CPU).opCop2
	c.primary[0x13] = (*CPU).opCop3
	c.primary[0x20] = (*CPU).opLB
	c.primary[0x21] = (*CPU).opLH
	c.primary[0x22] = (*CPU).opLWL
	c.primary[0x23] = (*CPU).opLW
	c.primary[0x24] = (*CPU).opLBU
	c.primary[0x25] = (*CPU).opLHU
	c.primary[0x26] = (*CPU).opLWR
	c.primary[0x28] = (*CPU).opSB
	c.primary[0x29] = (*CPU).opSH
	c.primary[0x2a] = (*CPU).opSWL
	c.primary[0x2b] = (*CPU).opSW
	c.primary[0x2e] = (*CPU).opSWR
	c.primary[0x30] = (*CPU).opLWC0
	c.primary[0x31] = (*CPU).opLWC1
	c.primary[0x32] = (*CPU).opLWC2
	c.primary[0x33] = (*CPU).opLWC3
	c.primary[0x38] = (*CPU).opSWC0
	c.primary[0x39] = (*CPU).opSWC1
	c.primary[0x3a] = (*CPU).opSWC2
	c.primary[0x3b] = (*CPU).opSWC3
}

func (c *CPU) decodeAndExecute(instr Instruction, dbg Debugger) {
	c.tk.Tick(1)
	debug.Tracef(debug.Inst, "pc=%#x instr=%#08x\n", c.currentPC, uint32(instr))
	c.primary[instr.Function()&0x3f](c, instr, dbg)
}

func (c *CPU) execSpecial(instr Instruction, dbg Debugger) {
	c.special[instr.Subfunction()&0x3f](c, instr, dbg)
}

func (c *CPU) opIllegal(instr Instruction, dbg Debugger) {
	c.raiseException(CauseIllegalInstr)
}
