package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32core/insts"
	"github.com/sarchlab/rv32core/loader"
)

var _ = Describe("Listing", func() {
	It("should mix raw words and assembly", func() {
		src := `
# warm-up
0x00500093          ; addi x1, x0, 5
addi x1, x1, 3
00000013            // nop
.word 0x00108133
add  x3, x2, x1
`
		prog, err := loader.LoadListing(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.EntryPoint).To(Equal(uint64(loader.ListingBase)))
		Expect(prog.Words()).To(Equal([]uint32{
			0x00500093,
			insts.ADDI(1, 1, 3),
			insts.NOP,
			0x00108133,
			insts.ADD(3, 2, 1),
		}))
	})

	It("should produce an empty program from comments only", func() {
		prog, err := loader.LoadListing(strings.NewReader("# nothing\n\n   ; here\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Words()).To(BeEmpty())
	})

	It("should report the failing line", func() {
		_, err := loader.LoadListing(strings.NewReader("nop\naddi x1, x0, 5\nmul x1, x2, x3\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 3"))
		Expect(err.Error()).To(ContainSubstring("mul"))
	})

	It("should reject a malformed word", func() {
		_, err := loader.LoadListing(strings.NewReader("0xZZ\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 1"))
	})

	It("should reject an oversized word", func() {
		_, err := loader.LoadListing(strings.NewReader(".word 0x123456789\n"))
		Expect(err).To(HaveOccurred())
	})

	It("should round trip the disassembler output", func() {
		words := []uint32{
			insts.ADDI(1, 0, -7),
			insts.SRAI(2, 1, 3),
			insts.SLTU(3, 2, 1),
			0x00012083,
		}

		var b strings.Builder
		for _, w := range words {
			b.WriteString(insts.Disassemble(w))
			b.WriteString("\n")
		}

		prog, err := loader.LoadListing(strings.NewReader(b.String()))
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Words()).To(Equal(words))
	})

	Context("from a file", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "listing-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should be detected by Open", func() {
			path := filepath.Join(tempDir, "prog.s")
			Expect(os.WriteFile(path, []byte("li a0, 42\nmv a1, a0\n"), 0644)).To(Succeed())

			prog, err := loader.Open(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Words()).To(Equal([]uint32{insts.ADDI(10, 0, 42), insts.ADDI(11, 10, 0)}))

			same, err := loader.LoadListingFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(same.Words()).To(Equal(prog.Words()))
		})

		It("should fail for a missing file", func() {
			_, err := loader.Open(filepath.Join(tempDir, "missing.s"))
			Expect(err).To(HaveOccurred())
			_, err = loader.LoadListingFile(filepath.Join(tempDir, "missing.s"))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Program", func() {
	var prog *loader.Program

	BeforeEach(func() {
		prog = loader.NewProgram(0x100, []uint32{0x00500093, 0x00000013})
	})

	It("should lay words out little endian", func() {
		Expect(prog.Segments[0].Data[:4]).To(Equal([]byte{0x93, 0x00, 0x50, 0x00}))
		Expect(prog.ReadBytes(0x100, 2)).To(Equal([]byte{0x93, 0x00}))
	})

	It("should fetch words inside the text segment only", func() {
		w, ok := prog.Fetch(0x104)
		Expect(ok).To(BeTrue())
		Expect(w).To(Equal(uint32(0x13)))

		_, ok = prog.Fetch(0x108)
		Expect(ok).To(BeFalse())
		_, ok = prog.Fetch(0xFC)
		Expect(ok).To(BeFalse())
	})

	It("should read outside every segment as zero", func() {
		Expect(prog.Read8(0x4000)).To(Equal(byte(0)))
	})

	It("should accept a word-aligned entry point", func() {
		Expect(prog.Validate()).To(Succeed())
	})

	It("should reject a misaligned entry point", func() {
		prog.EntryPoint = 0x102
		Expect(prog.Validate()).To(MatchError(ContainSubstring("not 4-byte aligned")))
	})

	It("should know where the text ends", func() {
		Expect(prog.End()).To(Equal(uint64(0x108)))
		Expect(prog.Words()).To(HaveLen(2))
	})

	It("should treat a program without text as empty", func() {
		empty := &loader.Program{EntryPoint: 0x40}
		Expect(empty.End()).To(Equal(uint64(0x40)))
		Expect(empty.Words()).To(BeEmpty())
	})
})
