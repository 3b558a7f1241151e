// Package insts provides RV32I ALU instruction definitions, decoding and
// encoding.
//
// Only the arithmetic/logic subset is modelled:
//   - OP-IMM (0b0010011): ADDI, SLTI, SLTIU, XORI, ORI, ANDI, SLLI, SRLI, SRAI
//   - OP     (0b0110011): ADD, SUB, SLL, SLT, SLTU, XOR, SRL, SRA, OR, AND
//
// Every other major opcode decodes to a no-op control word.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	ctrl := decoder.DecodeWord(insts.ADDI(1, 0, 5)) // addi x1, x0, 5
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Imm: %d\n",
//		ctrl.Func3, ctrl.RD, ctrl.RS1, ctrl.Imm12.Value().Int64())
package insts
