package insts

// Funct7Alt is the funct7 value that selects SUB and SRA/SRAI.
const Funct7Alt = 0b0100000

// NOP is the canonical no-op, addi x0, x0, 0.
const NOP uint32 = 0x00000013

// EncodeR assembles an OP (register-register) instruction.
func EncodeR(op Op, rd, rs1, rs2, funct7 uint8) uint32 {
	return uint32(funct7&0x7F)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(op&0x7)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(OpcodeRegArith)
}

// EncodeI assembles an OP-IMM instruction from the raw 12-bit field. Only
// the low 12 bits of imm are used.
func EncodeI(op Op, rd, rs1 uint8, imm uint32) uint32 {
	return (imm&0xFFF)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(op&0x7)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(OpcodeImmArith)
}

// encodeShiftI assembles SLLI/SRLI/SRAI, where imm12 is funct7:shamt.
func encodeShiftI(op Op, rd, rs1, shamt, funct7 uint8) uint32 {
	imm := uint32(funct7&0x7F)<<5 | uint32(shamt&0x1F)
	return EncodeI(op, rd, rs1, imm)
}

// ADDI encodes addi rd, rs1, imm.
func ADDI(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpADD, rd, rs1, uint32(imm)) }

// SLTI encodes slti rd, rs1, imm.
func SLTI(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpSLT, rd, rs1, uint32(imm)) }

// SLTIU encodes sltiu rd, rs1, imm. The immediate is sign-extended before
// the unsigned comparison, as in RV32I.
func SLTIU(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpSLTU, rd, rs1, uint32(imm)) }

// XORI encodes xori rd, rs1, imm.
func XORI(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpXOR, rd, rs1, uint32(imm)) }

// ORI encodes ori rd, rs1, imm.
func ORI(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpOR, rd, rs1, uint32(imm)) }

// ANDI encodes andi rd, rs1, imm.
func ANDI(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpAND, rd, rs1, uint32(imm)) }

// SLLI encodes slli rd, rs1, shamt.
func SLLI(rd, rs1, shamt uint8) uint32 { return encodeShiftI(OpSLL, rd, rs1, shamt, 0) }

// SRLI encodes srli rd, rs1, shamt.
func SRLI(rd, rs1, shamt uint8) uint32 { return encodeShiftI(OpSR, rd, rs1, shamt, 0) }

// SRAI encodes srai rd, rs1, shamt.
func SRAI(rd, rs1, shamt uint8) uint32 { return encodeShiftI(OpSR, rd, rs1, shamt, Funct7Alt) }

// ADD encodes add rd, rs1, rs2.
func ADD(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpADD, rd, rs1, rs2, 0) }

// SUB encodes sub rd, rs1, rs2.
func SUB(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpADD, rd, rs1, rs2, Funct7Alt) }

// SLL encodes sll rd, rs1, rs2.
func SLL(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpSLL, rd, rs1, rs2, 0) }

// SLT encodes slt rd, rs1, rs2.
func SLT(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpSLT, rd, rs1, rs2, 0) }

// SLTU encodes sltu rd, rs1, rs2.
func SLTU(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpSLTU, rd, rs1, rs2, 0) }

// XOR encodes xor rd, rs1, rs2.
func XOR(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpXOR, rd, rs1, rs2, 0) }

// SRL encodes srl rd, rs1, rs2.
func SRL(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpSR, rd, rs1, rs2, 0) }

// SRA encodes sra rd, rs1, rs2.
func SRA(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpSR, rd, rs1, rs2, Funct7Alt) }

// OR encodes or rd, rs1, rs2.
func OR(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpOR, rd, rs1, rs2, 0) }

// AND encodes and rd, rs1, rs2.
func AND(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpAND, rd, rs1, rs2, 0) }
