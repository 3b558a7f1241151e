// Package emu provides the combinational datapath and register storage of the
// RV32I ALU core.
package emu

import (
	"fmt"

	"github.com/sarchlab/rv32core/bitvec"
	"github.com/sarchlab/rv32core/insts"
)

// ALUInput carries one evaluation's operands and control.
type ALUInput struct {
	// RS1 and RS2 are the 32-bit values selected by the read mux.
	RS1 bitvec.Word
	RS2 bitvec.Word
	// Imm is the instruction's imm12 field.
	Imm insts.Immediate
	// I2Sel selects the immediate as the second operand.
	I2Sel bool
	// Op is funct3.
	Op insts.Op
}

// ALU implements the RV32I integer operations. It is purely combinational:
// the output depends only on the current input.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Evaluate computes the 32-bit result for in.
func (a *ALU) Evaluate(in ALUInput) bitvec.Word {
	rs1 := in.RS1
	if rs1.Width() != RegisterWidth {
		panic(&bitvec.ContractError{
			Op:     "alu",
			Kind:   bitvec.ErrWidthMismatch,
			Detail: fmt.Sprintf("rs1 is %d bits", rs1.Width()),
		})
	}

	operand2 := a.operand2(in)
	mode := in.Imm.Mode()

	switch in.Op {
	case insts.OpADD:
		// Immediate-mode ADD has no subtract variant; bit 10 of imm12 is
		// an ordinary immediate bit there.
		if !in.I2Sel && mode {
			return rs1.Sub(operand2).AsUnsigned()
		}
		return rs1.Add(operand2).AsUnsigned()

	case insts.OpAND:
		return rs1.And(operand2)

	case insts.OpOR:
		return rs1.Or(operand2)

	case insts.OpXOR:
		return rs1.Xor(operand2)

	case insts.OpSLL:
		return rs1.ShiftLeft(a.shiftAmount(in)).AsUnsigned()

	case insts.OpSR:
		if mode {
			return rs1.ShiftRightArithmetic(a.shiftAmount(in)).AsUnsigned()
		}
		return rs1.ShiftRight(a.shiftAmount(in)).AsUnsigned()

	case insts.OpSLT:
		return rs1.LessThanSigned(operand2)

	case insts.OpSLTU:
		return rs1.LessThan(operand2)

	default:
		return bitvec.Zero(RegisterWidth)
	}
}

// operand2 is the sign-extended immediate or rs2.
func (a *ALU) operand2(in ALUInput) bitvec.Word {
	if in.I2Sel {
		return in.Imm.Value()
	}
	return in.RS2
}

// shiftAmount is the low five bits of whichever source operand2 uses.
func (a *ALU) shiftAmount(in ALUInput) bitvec.Word {
	if in.I2Sel {
		return in.Imm.ShiftAmount()
	}
	return in.RS2.Slice(4, 0)
}
