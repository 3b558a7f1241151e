package emu

import (
	"fmt"

	"github.com/sarchlab/rv32core/bitvec"
)

// NumRegisters is the number of architectural registers.
const NumRegisters = 32

// RegisterWidth is the width of every register in bits.
const RegisterWidth = 32

// RegFile represents the RV32I integer register file.
// X[0] is hardwired to zero: no write path reaches it.
type RegFile struct {
	X [NumRegisters]bitvec.Word
}

// NewRegFile creates a register file in its reset state.
func NewRegFile() RegFile {
	var r RegFile
	for i := range r.X {
		r.X[i] = bitvec.Zero(RegisterWidth)
	}
	return r
}

// RegWrite is the input of one clock edge.
type RegWrite struct {
	// Reset clears every register and overrides all write enables.
	Reset bool
	// Enables holds one strobe per register, from Demux.
	Enables WriteEnables
	// Data is the value written into each strobed register.
	Data bitvec.Word
}

// Next returns the register file after a rising clock edge. Every cell reads
// the previous state and all cells commit together; r itself is unchanged.
func (r RegFile) Next(in RegWrite) RegFile {
	var next RegFile
	for i := range r.X {
		next.X[i] = nextCell(r.Read(uint8(i)), in.Reset, i != 0 && in.Enables[i], in.Data)
	}
	return next
}

// nextCell is the transition function of a single register: reset first,
// then write enable, else hold.
func nextCell(cur bitvec.Word, reset, we bool, data bitvec.Word) bitvec.Word {
	switch {
	case reset:
		return bitvec.Zero(RegisterWidth)
	case we:
		if data.Width() != RegisterWidth {
			panic(&bitvec.ContractError{
				Op:     "regWrite",
				Kind:   bitvec.ErrWidthMismatch,
				Detail: fmt.Sprintf("%d vs %d bits", data.Width(), RegisterWidth),
			})
		}
		return data
	default:
		return cur
	}
}

// Read returns register i. Register 0, indices outside 0..31 and cells
// never initialized read as zero.
func (r RegFile) Read(i uint8) bitvec.Word {
	if i == 0 || int(i) >= NumRegisters || r.X[i].Width() != RegisterWidth {
		return bitvec.Zero(RegisterWidth)
	}
	return r.X[i]
}

// Uint32 returns register i as a plain integer.
func (r RegFile) Uint32(i uint8) uint32 {
	return uint32(r.Read(i).Uint64())
}

// Values returns all 32 registers, indexed by register number.
func (r RegFile) Values() [NumRegisters]bitvec.Word {
	var out [NumRegisters]bitvec.Word
	for i := range out {
		out[i] = r.Read(uint8(i))
	}
	return out
}
