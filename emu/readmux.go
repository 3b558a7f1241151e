package emu

import "github.com/sarchlab/rv32core/bitvec"

// ReadPorts are the two source operands selected in one cycle.
type ReadPorts struct {
	RS1 bitvec.Word
	RS2 bitvec.Word
}

// ReadMux is a pair of independent 32:1 selectors over the register file.
type ReadMux struct{}

// NewReadMux creates a new ReadMux.
func NewReadMux() *ReadMux {
	return &ReadMux{}
}

// Evaluate selects the rs1 and rs2 values. An index outside 0..31 selects
// zero.
func (m *ReadMux) Evaluate(regs RegFile, rs1, rs2 uint8) ReadPorts {
	values := regs.Values()
	return ReadPorts{
		RS1: Select(values, rs1),
		RS2: Select(values, rs2),
	}
}

// Select is one 32:1 selector.
func Select(values [NumRegisters]bitvec.Word, index uint8) bitvec.Word {
	if int(index) >= NumRegisters {
		return bitvec.Zero(RegisterWidth)
	}
	return values[index]
}
