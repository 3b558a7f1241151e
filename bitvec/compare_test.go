package bitvec_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/bitvec"
)

var _ = Describe("Comparison", func() {
	w32 := func(v uint64) bitvec.Word { return bitvec.New(32, v) }

	Describe("LessThan (unsigned)", func() {
		It("should compare magnitudes", func() {
			Expect(w32(1).LessThan(w32(2)).Uint64()).To(Equal(uint64(1)))
			Expect(w32(2).LessThan(w32(1)).Uint64()).To(Equal(uint64(0)))
			Expect(w32(2).LessThan(w32(2)).Uint64()).To(Equal(uint64(0)))
		})

		It("should treat all-ones as the largest value", func() {
			Expect(w32(0xFFFFFFFF).LessThan(w32(1)).Uint64()).To(Equal(uint64(0)))
			Expect(w32(1).LessThan(w32(0xFFFFFFFF)).Uint64()).To(Equal(uint64(1)))
		})

		It("should zero-extend the result to the operand width", func() {
			r := w32(0).LessThan(w32(1))
			Expect(r.Width()).To(Equal(32))
			Expect(r.Signed()).To(BeFalse())
		})

		It("should panic on mismatched widths", func() {
			Expect(func() { w32(0).LessThan(bitvec.New(12, 0)) }).
				To(PanicWith(MatchError(bitvec.ErrWidthMismatch)))
		})
	})

	Describe("LessThanSigned", func() {
		DescribeTable("RISC-V SLT ordering",
			func(a, b int64, want uint64) {
				r := bitvec.NewSigned(32, a).LessThanSigned(bitvec.NewSigned(32, b))
				Expect(r.Uint64()).To(Equal(want))
			},
			Entry("-1 < 1", int64(-1), int64(1), uint64(1)),
			Entry("1 < -1", int64(1), int64(-1), uint64(0)),
			Entry("-2 < -1", int64(-2), int64(-1), uint64(1)),
			Entry("-1 < -2", int64(-1), int64(-2), uint64(0)),
			Entry("-10 < -10", int64(-10), int64(-10), uint64(0)),
			Entry("min < max", int64(-2147483648), int64(2147483647), uint64(1)),
			Entry("max < min", int64(2147483647), int64(-2147483648), uint64(0)),
			Entry("min < -1", int64(-2147483648), int64(-1), uint64(1)),
			Entry("0 < 0", int64(0), int64(0), uint64(0)),
			Entry("3 < 5", int64(3), int64(5), uint64(1)),
		)

		// Regression: an inverted comparison for two negative operands
		// would report -1 < -2.
		It("should order two negative operands like integers", func() {
			minusOne := w32(0xFFFFFFFF)
			minusTwo := w32(0xFFFFFFFE)
			Expect(minusTwo.LessThanSigned(minusOne).Uint64()).To(Equal(uint64(1)))
			Expect(minusOne.LessThanSigned(minusTwo).Uint64()).To(Equal(uint64(0)))
		})

		It("should agree with native int32 comparison", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 1000; i++ {
				x, y := int32(rng.Uint32()), int32(rng.Uint32())
				want := uint64(0)
				if x < y {
					want = 1
				}
				r := bitvec.NewSigned(32, int64(x)).LessThanSigned(bitvec.NewSigned(32, int64(y)))
				Expect(r.Uint64()).To(Equal(want), "%d < %d", x, y)
			}
		})

		It("should panic on mismatched widths", func() {
			Expect(func() { w32(0).LessThanSigned(bitvec.New(33, 0)) }).
				To(PanicWith(MatchError(bitvec.ErrWidthMismatch)))
		})
	})
})
