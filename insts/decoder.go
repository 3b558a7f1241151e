package insts

import (
	"fmt"

	"github.com/sarchlab/rv32core/bitvec"
)

/*
Instruction layout (bit 31 on the left):

	| 31        25 | 24  20 | 19  15 | 14  12 | 11   7 | 6      0 |
	| funct7       | rs2    | rs1    | funct3 | rd     | opcode   |  R-type
	| imm[11:0]             | rs1    | funct3 | rd     | opcode   |  I-type

imm12 occupies the same bits as funct7:rs2. In register mode its bit 10 is
funct7 bit 5, the ADD/SUB and SRL/SRA selector.
*/

// InstructionWidth is the width of an instruction word in bits.
const InstructionWidth = 32

// ImmediateWidth is the width of the imm12 field.
const ImmediateWidth = 12

// Opcode is the 7-bit major opcode.
type Opcode uint8

// Major opcodes of the ALU subset.
const (
	OpcodeImmArith Opcode = 0b0010011 // OP-IMM
	OpcodeRegArith Opcode = 0b0110011 // OP
)

// Op is the 3-bit funct3 field, which selects the ALU operation.
type Op uint8

// ALU operations.
const (
	OpADD  Op = 0b000
	OpSLL  Op = 0b001
	OpSLT  Op = 0b010
	OpSLTU Op = 0b011
	OpXOR  Op = 0b100
	OpSR   Op = 0b101 // SRL or SRA depending on the mode bit
	OpOR   Op = 0b110
	OpAND  Op = 0b111
)

var opNames = [...]string{"ADD", "SLL", "SLT", "SLTU", "XOR", "SR", "OR", "AND"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// modeBit is the position of funct7 bit 5 inside imm12.
const modeBit = 10

// Immediate is the imm12 field. The same bits are read as a sign-extendable
// immediate in immediate mode, or as a carrier of the mode bit in register
// mode; the consumer picks the view.
type Immediate struct {
	raw bitvec.Word
}

// NewImmediate wraps a 12-bit word.
func NewImmediate(raw bitvec.Word) Immediate {
	if raw.Width() != ImmediateWidth {
		panic(&bitvec.ContractError{
			Op:     "immediate",
			Kind:   bitvec.ErrWidthMismatch,
			Detail: fmt.Sprintf("%d vs %d bits", raw.Width(), ImmediateWidth),
		})
	}
	return Immediate{raw: raw}
}

// Raw returns the 12 field bits. The zero Immediate reads as all zeros.
func (i Immediate) Raw() bitvec.Word {
	if i.raw.Width() == 0 {
		return bitvec.Zero(ImmediateWidth)
	}
	return i.raw
}

// Value is the immediate-mode view: the field sign-extended to 32 bits.
func (i Immediate) Value() bitvec.Word {
	return i.Raw().SignExtend(InstructionWidth).AsSigned()
}

// Mode is the register-mode view: funct7 bit 5.
func (i Immediate) Mode() bool {
	return i.Raw().Bit(modeBit)
}

// ShiftAmount is the low five bits of the field (shamt for SLLI/SRLI/SRAI).
func (i Immediate) ShiftAmount() bitvec.Word {
	return i.Raw().Slice(4, 0)
}

// Control is the decoded form of an instruction: its fields plus the control
// signals derived from the opcode.
type Control struct {
	// ALUEnable is set for the two arithmetic opcodes. An instruction
	// without it writes no register.
	ALUEnable bool
	// ALUImmediateMode selects imm12 over rs2 as the second operand.
	ALUImmediateMode bool

	Opcode Opcode
	RS1    uint8
	RS2    uint8
	RD     uint8
	Imm12  Immediate
	Func3  Op
}

// Gate returns c when enable is high and the all-zero control otherwise.
func (c Control) Gate(enable bool) Control {
	if enable {
		return c
	}
	return Control{}
}

// Decoder decodes instruction words into control. It holds no state; the
// clocked instruction latch lives with the core.
type Decoder struct{}

// NewDecoder creates a new decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode extracts the fields of a 32-bit instruction word and classifies its
// opcode. Unrecognised opcodes decode with ALUEnable cleared.
func (d *Decoder) Decode(word bitvec.Word) Control {
	if word.Width() != InstructionWidth {
		panic(&bitvec.ContractError{
			Op:     "decode",
			Kind:   bitvec.ErrWidthMismatch,
			Detail: fmt.Sprintf("%d vs %d bits", word.Width(), InstructionWidth),
		})
	}

	opcode := Opcode(word.Slice(6, 0).Uint64())

	return Control{
		ALUEnable:        d.isArithmetic(opcode),
		ALUImmediateMode: opcode == OpcodeImmArith,
		Opcode:           opcode,
		RD:               uint8(word.Slice(11, 7).Uint64()),
		Func3:            Op(word.Slice(14, 12).Uint64()),
		RS1:              uint8(word.Slice(19, 15).Uint64()),
		RS2:              uint8(word.Slice(24, 20).Uint64()),
		Imm12:            NewImmediate(word.Slice(31, 20)),
	}
}

// DecodeWord decodes a raw 32-bit value.
func (d *Decoder) DecodeWord(word uint32) Control {
	return d.Decode(bitvec.New(InstructionWidth, uint64(word)))
}

func (d *Decoder) isArithmetic(opcode Opcode) bool {
	switch opcode {
	case OpcodeImmArith, OpcodeRegArith:
		return true
	default:
		return false
	}
}
