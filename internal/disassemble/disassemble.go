// Package disassemble renders a raw MIPS-I instruction word as a
// human-readable mnemonic line, for the debugger console and trace
// logging.
package disassemble

import (
	"fmt"

	"github.com/go-psx/psxcpu/internal/cpu"
)

func reg(i cpu.RegisterIndex) string {
	return cpu.RegisterMnemonics[i]
}

// Decode returns the disassembled form of instr.
func Decode(instr cpu.Instruction) string {
	switch instr.Function() {
	case 0x00:
		return decodeSpecial(instr)
	case 0x01:
		return decodeBxx(instr)
	case 0x02:
		return fmt.Sprintf("j      0x%08x", instr.ImmJump()<<2)
	case 0x03:
		return fmt.Sprintf("jal    0x%08x", instr.ImmJump()<<2)
	case 0x04:
		return fmt.Sprintf("beq    %s, %s, %d", reg(instr.S()), reg(instr.T()), int32(instr.ImmSE()))
	case 0x05:
		return fmt.Sprintf("bne    %s, %s, %d", reg(instr.S()), reg(instr.T()), int32(instr.ImmSE()))
	case 0x06:
		return fmt.Sprintf("blez   %s, %d", reg(instr.S()), int32(instr.ImmSE()))
	case 0x07:
		return fmt.Sprintf("bgtz   %s, %d", reg(instr.S()), int32(instr.ImmSE()))
	case 0x08:
		return fmt.Sprintf("addi   %s, %s, %d", reg(instr.T()), reg(instr.S()), int32(instr.ImmSE()))
	case 0x09:
		return fmt.Sprintf("addiu  %s, %s, 0x%x", reg(instr.T()), reg(instr.S()), instr.ImmSE())
	case 0x0a:
		return fmt.Sprintf("slti   %s, %s, %d", reg(instr.T()), reg(instr.S()), int32(instr.ImmSE()))
	case 0x0b:
		return fmt.Sprintf("sltiu  %s, %s, 0x%x", reg(instr.T()), reg(instr.S()), instr.ImmSE())
	case 0x0c:
		return fmt.Sprintf("andi   %s, %s, 0x%x", reg(instr.T()), reg(instr.S()), instr.Imm())
	case 0x0d:
		return fmt.Sprintf("ori    %s, %s, 0x%x", reg(instr.T()), reg(instr.S()), instr.Imm())
	case 0x0e:
		return fmt.Sprintf("xori   %s, %s, 0x%x", reg(instr.T()), reg(instr.S()), instr.Imm())
	case 0x0f:
		return fmt.Sprintf("lui    %s, 0x%x", reg(instr.T()), instr.Imm())
	case 0x10:
		return decodeCop0(instr)
	case 0x11:
		return "cop1   (unsupported)"
	case 0x12:
		return fmt.Sprintf("cop2   0x%07x", uint32(instr)&0x01ffffff)
	case 0x13:
		return "cop3   (unsupported)"
	case 0x20:
		return loadStore("lb", instr)
	case 0x21:
		return loadStore("lh", instr)
	case 0x22:
		return loadStore("lwl", instr)
	case 0x23:
		return loadStore("lw", instr)
	case 0x24:
		return loadStore("lbu", instr)
	case 0x25:
		return loadStore("lhu", instr)
	case 0x26:
		return loadStore("lwr", instr)
	case 0x28:
		return loadStore("sb", instr)
	case 0x29:
		return loadStore("sh", instr)
	case 0x2a:
		return loadStore("swl", instr)
	case 0x2b:
		return loadStore("sw", instr)
	case 0x2e:
		return loadStore("swr", instr)
	case 0x30, 0x31, 0x32, 0x33:
		return fmt.Sprintf("lwc%d   (unsupported)", instr.Function()-0x30)
	case 0x38, 0x39, 0x3a, 0x3b:
		return fmt.Sprintf("swc%d   (unsupported)", instr.Function()-0x38)
	default:
		return fmt.Sprintf("!unknown! 0x%08x", uint32(instr))
	}
}

func loadStore(mnemonic string, instr Instruction) string {
	return fmt.Sprintf("%-6s %s, %d(%s)", mnemonic, reg(instr.T()), int32(instr.ImmSE()), reg(instr.S()))
}

// Instruction is a local alias so loadStore reads naturally; it is the
// same type as cpu.Instruction.
type Instruction = cpu.Instruction

func decodeSpecial(instr Instruction) string {
	switch instr.Subfunction() {
	case 0x00:
		if uint32(instr) == 0 {
			return "nop"
		}
		return fmt.Sprintf("sll    %s, %s, %d", reg(instr.D()), reg(instr.T()), instr.Shift())
	case 0x02:
		return fmt.Sprintf("srl    %s, %s, %d", reg(instr.D()), reg(instr.T()), instr.Shift())
	case 0x03:
		return fmt.Sprintf("sra    %s, %s, %d", reg(instr.D()), reg(instr.T()), instr.Shift())
	case 0x04:
		return fmt.Sprintf("sllv   %s, %s, %s", reg(instr.D()), reg(instr.T()), reg(instr.S()))
	case 0x06:
		return fmt.Sprintf("srlv   %s, %s, %s", reg(instr.D()), reg(instr.T()), reg(instr.S()))
	case 0x07:
		return fmt.Sprintf("srav   %s, %s, %s", reg(instr.D()), reg(instr.T()), reg(instr.S()))
	case 0x08:
		return fmt.Sprintf("jr     %s", reg(instr.S()))
	case 0x09:
		return fmt.Sprintf("jalr   %s, %s", reg(instr.D()), reg(instr.S()))
	case 0x0c:
		return "syscall"
	case 0x0d:
		return "break"
	case 0x10:
		return fmt.Sprintf("mfhi   %s", reg(instr.D()))
	case 0x11:
		return fmt.Sprintf("mthi   %s", reg(instr.S()))
	case 0x12:
		return fmt.Sprintf("mflo   %s", reg(instr.D()))
	case 0x13:
		return fmt.Sprintf("mtlo   %s", reg(instr.S()))
	case 0x18:
		return fmt.Sprintf("mult   %s, %s", reg(instr.S()), reg(instr.T()))
	case 0x19:
		return fmt.Sprintf("multu  %s, %s", reg(instr.S()), reg(instr.T()))
	case 0x1a:
		return fmt.Sprintf("div    %s, %s", reg(instr.S()), reg(instr.T()))
	case 0x1b:
		return fmt.Sprintf("divu   %s, %s", reg(instr.S()), reg(instr.T()))
	case 0x20:
		return fmt.Sprintf("add    %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x21:
		return fmt.Sprintf("addu   %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x22:
		return fmt.Sprintf("sub    %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x23:
		return fmt.Sprintf("subu   %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x24:
		return fmt.Sprintf("and    %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x25:
		return fmt.Sprintf("or     %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x26:
		return fmt.Sprintf("xor    %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x27:
		return fmt.Sprintf("nor    %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x2a:
		return fmt.Sprintf("slt    %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	case 0x2b:
		return fmt.Sprintf("sltu   %s, %s, %s", reg(instr.D()), reg(instr.S()), reg(instr.T()))
	default:
		return fmt.Sprintf("!unknown special! 0x%08x", uint32(instr))
	}
}

func decodeBxx(instr Instruction) string {
	word := uint32(instr)
	isBGEZ := (word >> 16) & 1
	isLink := (word >> 20) & 1
	name := map[[2]uint32]string{
		{0, 0}: "bltz", {1, 0}: "bgez", {0, 1}: "bltzal", {1, 1}: "bgezal",
	}[[2]uint32{isBGEZ, isLink}]
	return fmt.Sprintf("%-6s %s, %d", name, reg(instr.S()), int32(instr.ImmSE()))
}

func decodeCop0(instr Instruction) string {
	switch instr.CopOpcode() {
	case 0b00000:
		return fmt.Sprintf("mfc0   %s, cop0_%d", reg(instr.T()), instr.D())
	case 0b00100:
		return fmt.Sprintf("mtc0   %s, cop0_%d", reg(instr.T()), instr.D())
	case 0b10000:
		return "rfe"
	default:
		return fmt.Sprintf("!unknown cop0! 0x%08x", uint32(instr))
	}
}
