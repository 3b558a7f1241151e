package bitvec_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/bitvec"
)

var _ = Describe("Word", func() {
	Describe("construction", func() {
		It("should keep the declared width", func() {
			w := bitvec.New(12, 0x200)
			Expect(w.Width()).To(Equal(12))
			Expect(w.Uint64()).To(Equal(uint64(0x200)))
			Expect(w.Signed()).To(BeFalse())
		})

		It("should truncate literals to the width", func() {
			w := bitvec.New(8, 0x1FF)
			Expect(w.Uint64()).To(Equal(uint64(0xFF)))
		})

		It("should encode negative signed literals in two's complement", func() {
			w := bitvec.NewSigned(32, -16)
			Expect(w.Uint64()).To(Equal(uint64(0xFFFFFFF0)))
			Expect(w.Int64()).To(Equal(int64(-16)))
			Expect(w.Signed()).To(BeTrue())
		})

		It("should sign-fill signed literals wider than 64 bits", func() {
			w := bitvec.NewSigned(96, -1)
			Expect(w.Slice(95, 64).Uint64()).To(Equal(uint64(0xFFFFFFFF)))
		})

		It("should parse binary literals", func() {
			w := bitvec.MustParse("0b0010_011")
			Expect(w.Width()).To(Equal(7))
			Expect(w.Uint64()).To(Equal(uint64(0b0010011)))
		})

		It("should reject non-binary digits", func() {
			_, err := bitvec.Parse("102")
			Expect(err).To(HaveOccurred())
		})

		It("should copy the bit slice it is built from", func() {
			bits := []bool{true, false, true}
			w := bitvec.FromBits(bits, false)
			bits[0] = false
			Expect(w.Uint64()).To(Equal(uint64(0b101)))
		})

		It("should never expose its storage", func() {
			w := bitvec.New(4, 0b1111)
			bits := w.Bits()
			bits[0] = false
			Expect(w.Uint64()).To(Equal(uint64(0b1111)))
		})
	})

	Describe("bit access", func() {
		It("should number bits from the least significant end", func() {
			w := bitvec.New(12, 0b0100_0000_0000)
			Expect(w.Bit(10)).To(BeTrue())
			Expect(w.Bit(0)).To(BeFalse())
			Expect(w.MSB()).To(BeFalse())
		})

		It("should slice instruction fields", func() {
			// addi x1, x0, 5
			inst := bitvec.New(32, 0x00500093)
			Expect(inst.Slice(6, 0).Uint64()).To(Equal(uint64(0b0010011)))
			Expect(inst.Slice(11, 7).Uint64()).To(Equal(uint64(1)))
			Expect(inst.Slice(31, 20).Uint64()).To(Equal(uint64(5)))
			Expect(inst.Slice(31, 20).Width()).To(Equal(12))
		})

		It("should concatenate most significant part first", func() {
			w := bitvec.Concat(bitvec.New(4, 0xA), bitvec.New(4, 0x5))
			Expect(w.Width()).To(Equal(8))
			Expect(w.Uint64()).To(Equal(uint64(0xA5)))
		})

		It("should panic on an out-of-range bit", func() {
			w := bitvec.New(12, 0)
			Expect(func() { w.Bit(12) }).To(PanicWith(MatchError(bitvec.ErrOutOfRange)))
		})

		It("should panic on an inverted slice", func() {
			w := bitvec.New(32, 0)
			Expect(func() { w.Slice(3, 7) }).To(PanicWith(MatchError(bitvec.ErrOutOfRange)))
		})
	})

	Describe("extension", func() {
		It("should replicate the sign bit", func() {
			imm := bitvec.New(12, 0xFFF)
			Expect(imm.SignExtend(32).Uint64()).To(Equal(uint64(0xFFFFFFFF)))
		})

		It("should leave positive values unchanged", func() {
			imm := bitvec.New(12, 0x200)
			Expect(imm.SignExtend(32).Uint64()).To(Equal(uint64(0x200)))
		})

		It("should zero-fill", func() {
			w := bitvec.New(5, 0b10000)
			Expect(w.ZeroExtend(32).Uint64()).To(Equal(uint64(0b10000)))
		})

		It("should be the identity at the same width", func() {
			w := bitvec.New(8, 0x80)
			Expect(w.SignExtend(8).Equal(w)).To(BeTrue())
			Expect(w.ZeroExtend(8).Equal(w)).To(BeTrue())
		})

		It("should refuse to narrow", func() {
			w := bitvec.New(32, 0)
			Expect(func() { w.SignExtend(12) }).To(PanicWith(MatchError(bitvec.ErrNarrowing)))
			Expect(func() { w.ZeroExtend(31) }).To(PanicWith(MatchError(bitvec.ErrNarrowing)))
		})

		It("should preserve the signed value for every 8-bit input", func() {
			for v := int64(-128); v < 128; v++ {
				w := bitvec.NewSigned(8, v)
				for _, m := range []int{8, 9, 12, 32, 64, 100} {
					Expect(w.SignExtend(m).Int64()).To(Equal(v), "v=%d m=%d", v, m)
				}
			}
		})
	})

	Describe("decoding", func() {
		It("should read the same pattern as unsigned and signed", func() {
			w := bitvec.New(32, 0xFFFFFFFF)
			Expect(w.Uint64()).To(Equal(uint64(0xFFFFFFFF)))
			Expect(w.Int64()).To(Equal(int64(-1)))
		})

		It("should treat the zero-width word as zero", func() {
			var w bitvec.Word
			Expect(w.Width()).To(Equal(0))
			Expect(w.Int64()).To(Equal(int64(0)))
			Expect(w.IsZero()).To(BeTrue())
		})
	})

	Describe("printing", func() {
		It("should render hex padded to the width", func() {
			Expect(bitvec.New(32, 0x301).Hex()).To(Equal("00000301"))
			Expect(bitvec.New(5, 0x1F).Hex()).To(Equal("1f"))
		})

		It("should print unsigned words in hex and signed words in decimal", func() {
			Expect(bitvec.New(32, 0x10).String()).To(Equal("32'h00000010"))
			Expect(bitvec.NewSigned(32, -4).String()).To(Equal("32'sd-4"))
		})
	})

	Describe("equality", func() {
		It("should ignore the signedness tag", func() {
			Expect(bitvec.New(8, 0xFF).Equal(bitvec.NewSigned(8, -1))).To(BeTrue())
		})

		It("should distinguish widths", func() {
			Expect(bitvec.New(8, 1).Equal(bitvec.New(9, 1))).To(BeFalse())
		})
	})
})
