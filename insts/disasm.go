package insts

import "fmt"

// Disassemble renders an instruction word in assembly syntax. Words outside
// the ALU subset render as ".word 0x........".
func Disassemble(word uint32) string {
	opcode := Opcode(word & 0x7F)
	rd := (word >> 7) & 0x1F
	op := Op((word >> 12) & 0x7)
	rs1 := (word >> 15) & 0x1F
	rs2 := (word >> 20) & 0x1F
	funct7 := uint8(word >> 25)

	switch opcode {
	case OpcodeRegArith:
		mn, ok := lookup(formReg, op, funct7)
		if !ok {
			break
		}
		return fmt.Sprintf("%s x%d, x%d, x%d", mn.name, rd, rs1, rs2)

	case OpcodeImmArith:
		if op == OpSLL || op == OpSR {
			mn, ok := lookup(formShift, op, funct7)
			if !ok {
				break
			}
			return fmt.Sprintf("%s x%d, x%d, %d", mn.name, rd, rs1, rs2)
		}
		mn, _ := lookup(formImm, op, 0)
		imm := int32(word) >> 20
		return fmt.Sprintf("%s x%d, x%d, %d", mn.name, rd, rs1, imm)
	}

	return fmt.Sprintf(".word 0x%08x", word)
}

// lookup finds the mnemonic for an encoding. Only funct7 bit 5 matters for
// ADD/SUB and the right shifts; the other operations ignore funct7.
func lookup(f form, op Op, funct7 uint8) (mnemonic, bool) {
	alt := funct7&Funct7Alt != 0
	for _, mn := range mnemonics {
		if mn.form != f || mn.op != op {
			continue
		}
		if (op == OpADD && f == formReg) || op == OpSR {
			if (mn.funct7 == Funct7Alt) != alt {
				continue
			}
		}
		return mn, true
	}
	return mnemonic{}, false
}
