package cache

import (
	"github.com/sarchlab/rv32core/loader"
)

// ProgramBacking serves a loaded program image as a BackingStore.
type ProgramBacking struct {
	program *loader.Program
	reads   uint64
}

// NewProgramBacking creates a new ProgramBacking adapter.
func NewProgramBacking(program *loader.Program) *ProgramBacking {
	return &ProgramBacking{program: program}
}

// Read fetches data from the program image. Bytes outside every segment read
// as zero.
func (p *ProgramBacking) Read(addr uint64, size int) []byte {
	p.reads++
	return p.program.ReadBytes(addr, size)
}

// Reads returns the number of block fills served.
func (p *ProgramBacking) Reads() uint64 {
	return p.reads
}
