package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/bitvec"
	"github.com/sarchlab/rv32core/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("OP-IMM", func() {
		// ADDI x1, x0, 5 -> 0x00500093
		It("should decode addi x1, x0, 5", func() {
			c := decoder.DecodeWord(0x00500093)

			Expect(c.ALUEnable).To(BeTrue())
			Expect(c.ALUImmediateMode).To(BeTrue())
			Expect(c.Opcode).To(Equal(insts.OpcodeImmArith))
			Expect(c.Func3).To(Equal(insts.OpADD))
			Expect(c.RD).To(Equal(uint8(1)))
			Expect(c.RS1).To(Equal(uint8(0)))
			Expect(c.Imm12.Value().Int64()).To(Equal(int64(5)))
		})

		// ANDI x10, x11, -1 -> 0xFFF5F513
		It("should sign-extend a negative immediate", func() {
			c := decoder.DecodeWord(0xFFF5F513)

			Expect(c.Func3).To(Equal(insts.OpAND))
			Expect(c.RD).To(Equal(uint8(10)))
			Expect(c.RS1).To(Equal(uint8(11)))
			Expect(c.Imm12.Raw().Uint64()).To(Equal(uint64(0xFFF)))
			Expect(c.Imm12.Value().Uint64()).To(Equal(uint64(0xFFFFFFFF)))
			Expect(c.Imm12.Value().Int64()).To(Equal(int64(-1)))
		})

		// SRAI x5, x6, 3 -> 0x40335293
		It("should expose the shift amount and mode bit of srai", func() {
			c := decoder.DecodeWord(0x40335293)

			Expect(c.Func3).To(Equal(insts.OpSR))
			Expect(c.RD).To(Equal(uint8(5)))
			Expect(c.RS1).To(Equal(uint8(6)))
			Expect(c.Imm12.ShiftAmount().Uint64()).To(Equal(uint64(3)))
			Expect(c.Imm12.ShiftAmount().Width()).To(Equal(5))
			Expect(c.Imm12.Mode()).To(BeTrue())
		})
	})

	Describe("OP", func() {
		// SUB x3, x1, x2 -> 0x402081B3
		It("should decode sub x3, x1, x2", func() {
			c := decoder.DecodeWord(0x402081B3)

			Expect(c.ALUEnable).To(BeTrue())
			Expect(c.ALUImmediateMode).To(BeFalse())
			Expect(c.Opcode).To(Equal(insts.OpcodeRegArith))
			Expect(c.Func3).To(Equal(insts.OpADD))
			Expect(c.RD).To(Equal(uint8(3)))
			Expect(c.RS1).To(Equal(uint8(1)))
			Expect(c.RS2).To(Equal(uint8(2)))
			Expect(c.Imm12.Mode()).To(BeTrue())
		})

		It("should leave the mode bit clear for add", func() {
			c := decoder.DecodeWord(insts.ADD(3, 1, 2))
			Expect(c.Imm12.Mode()).To(BeFalse())
		})

		It("should share the rs2 bits with the low bits of imm12", func() {
			c := decoder.DecodeWord(insts.SLL(1, 2, 17))
			Expect(c.RS2).To(Equal(uint8(17)))
			Expect(c.Imm12.ShiftAmount().Uint64()).To(Equal(uint64(17)))
		})
	})

	Describe("other opcodes", func() {
		// LW x1, 0(x2) -> 0x00012083
		It("should treat a load as a no-op", func() {
			c := decoder.DecodeWord(0x00012083)

			Expect(c.ALUEnable).To(BeFalse())
			Expect(c.ALUImmediateMode).To(BeFalse())
			Expect(c.RD).To(Equal(uint8(1)))
		})

		It("should treat the all-zero word as a no-op", func() {
			c := decoder.DecodeWord(0)
			Expect(c.ALUEnable).To(BeFalse())
		})

		It("should enable the ALU for exactly two opcodes", func() {
			for opcode := uint32(0); opcode < 128; opcode++ {
				c := decoder.DecodeWord(opcode)
				arith := opcode == 0b0010011 || opcode == 0b0110011
				Expect(c.ALUEnable).To(Equal(arith), "opcode=%07b", opcode)
				Expect(c.ALUImmediateMode).To(Equal(opcode == 0b0010011), "opcode=%07b", opcode)
			}
		})
	})

	Describe("Gate", func() {
		It("should pass control through while enabled", func() {
			c := decoder.DecodeWord(0x00500093)
			Expect(c.Gate(true)).To(Equal(c))
		})

		It("should force every field to zero while disabled", func() {
			g := decoder.DecodeWord(0x402081B3).Gate(false)

			Expect(g.ALUEnable).To(BeFalse())
			Expect(g.ALUImmediateMode).To(BeFalse())
			Expect(g.Opcode).To(BeZero())
			Expect(g.RD).To(BeZero())
			Expect(g.RS1).To(BeZero())
			Expect(g.RS2).To(BeZero())
			Expect(g.Func3).To(Equal(insts.OpADD))
			Expect(g.Imm12.Raw().IsZero()).To(BeTrue())
			Expect(g.Imm12.Raw().Width()).To(Equal(12))
		})
	})

	It("should panic on a word that is not 32 bits", func() {
		Expect(func() { decoder.Decode(bitvec.New(16, 0x13)) }).
			To(PanicWith(MatchError(bitvec.ErrWidthMismatch)))
	})
})

var _ = Describe("Immediate", func() {
	It("should reject fields that are not 12 bits", func() {
		Expect(func() { insts.NewImmediate(bitvec.New(11, 0)) }).
			To(PanicWith(MatchError(bitvec.ErrWidthMismatch)))
	})

	It("should read bit 10 as the mode flag", func() {
		Expect(insts.NewImmediate(bitvec.New(12, 0x400)).Mode()).To(BeTrue())
		Expect(insts.NewImmediate(bitvec.New(12, 0x3FF)).Mode()).To(BeFalse())
	})

	It("should tag the extended value as signed", func() {
		Expect(insts.NewImmediate(bitvec.New(12, 0x800)).Value().Signed()).To(BeTrue())
		Expect(insts.NewImmediate(bitvec.New(12, 0x800)).Value().Int64()).To(Equal(int64(-2048)))
	})
})
