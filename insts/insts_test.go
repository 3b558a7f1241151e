package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/insts"
)

var _ = Describe("Insts Package", func() {
	It("should have a zero Control type", func() {
		var c insts.Control
		Expect(c).To(BeZero())
	})

	It("should have a Decoder type", func() {
		decoder := insts.NewDecoder()
		Expect(decoder).ToNot(BeNil())
	})

	It("should name every ALU operation", func() {
		Expect(insts.OpADD.String()).To(Equal("ADD"))
		Expect(insts.OpSR.String()).To(Equal("SR"))
		Expect(insts.OpAND.String()).To(Equal("AND"))
		Expect(insts.Op(9).String()).To(Equal("Op(9)"))
	})
})
