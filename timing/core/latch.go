package core

import (
	"fmt"

	"github.com/sarchlab/rv32core/bitvec"
	"github.com/sarchlab/rv32core/insts"
)

// InstructionLatch is the decoder's clocked instruction register.
// The zero value holds the all-zero instruction.
type InstructionLatch struct {
	word bitvec.Word
}

// Word returns the latched instruction.
func (l InstructionLatch) Word() bitvec.Word {
	if l.word.Width() != insts.InstructionWidth {
		return bitvec.Zero(insts.InstructionWidth)
	}
	return l.word
}

// Uint32 returns the latched instruction as a plain integer.
func (l InstructionLatch) Uint32() uint32 {
	return uint32(l.Word().Uint64())
}

// Next returns the latch after a rising edge: zero on reset, the input word
// when enabled, else the held word.
func (l InstructionLatch) Next(instruction bitvec.Word, reset, enable bool) InstructionLatch {
	switch {
	case reset:
		return InstructionLatch{}
	case enable:
		if instruction.Width() != insts.InstructionWidth {
			panic(&bitvec.ContractError{
				Op:     "latch",
				Kind:   bitvec.ErrWidthMismatch,
				Detail: fmt.Sprintf("%d vs %d bits", instruction.Width(), insts.InstructionWidth),
			})
		}
		return InstructionLatch{word: instruction}
	default:
		return l
	}
}

// Control decodes the latched word. Every output is forced to zero while
// enable is low.
func (l InstructionLatch) Control(d *insts.Decoder, enable bool) insts.Control {
	return d.Decode(l.Word()).Gate(enable)
}
