package benchmarks

import (
	"github.com/sarchlab/rv32core/insts"
)

// GetMicrobenchmarks returns the standard set of ALU microbenchmarks.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		mixedOperations(),
		shiftHeavy(),
		constantBuild(),
		icacheSweep(),
	}
}

// GetCoreBenchmarks returns the benchmarks that fit in a single cache line
// or two, useful for quick checks.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		mixedOperations(),
		constantBuild(),
	}
}

// arithmeticSequential is a short run of independent adds and one subtract.
func arithmeticSequential() Benchmark {
	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "Independent ADDI/ADD/SUB operations",
		Program: []uint32{
			insts.ADDI(1, 0, 1),
			insts.ADDI(2, 0, 2),
			insts.ADDI(3, 0, 3),
			insts.ADDI(4, 0, 4),
			insts.ADD(5, 1, 2),
			insts.ADD(6, 3, 4),
			insts.ADD(7, 5, 6),
			insts.ADDI(8, 0, 100),
			insts.SUB(9, 8, 7),
		},
		Expect: map[uint8]uint32{5: 3, 6: 7, 7: 10, 9: 90},
	}
}

// dependencyChain doubles one register repeatedly; every instruction reads
// the previous result.
func dependencyChain() Benchmark {
	program := []uint32{insts.ADDI(1, 0, 1)}
	for i := 0; i < 16; i++ {
		program = append(program, insts.ADD(1, 1, 1))
	}
	program = append(program, insts.ADDI(1, 1, -1))

	return Benchmark{
		Name:        "dependency_chain",
		Description: "Serial read-after-write chain through x1",
		Program:     program,
		Expect:      map[uint8]uint32{1: 0xFFFF},
	}
}

// mixedOperations touches every logical and compare operation.
func mixedOperations() Benchmark {
	return Benchmark{
		Name:        "mixed_operations",
		Description: "Logic, set-less-than and mixed register/immediate forms",
		Program: []uint32{
			insts.ADDI(1, 0, 0x0F0),
			insts.ORI(2, 1, 0x00F),
			insts.XORI(3, 2, -1),
			insts.ANDI(4, 3, 0x7FF),
			insts.SLTI(5, 3, 0),
			insts.SLTIU(6, 3, 1),
			insts.SLT(7, 3, 1),
			insts.SLTU(8, 3, 1),
			insts.OR(9, 4, 5),
			insts.AND(10, 9, 2),
			insts.XOR(11, 9, 1),
		},
		Expect: map[uint8]uint32{
			2:  0xFF,
			3:  0xFFFFFF00,
			4:  0x700,
			5:  1,
			6:  0,
			7:  1,
			8:  0,
			9:  0x701,
			10: 0x01,
			11: 0x7F1,
		},
	}
}

// shiftHeavy exercises logical and arithmetic shifts, including a register
// shift amount above 31.
func shiftHeavy() Benchmark {
	return Benchmark{
		Name:        "shift_heavy",
		Description: "Immediate and register shifts on a sign bit",
		Program: []uint32{
			insts.ADDI(1, 0, 1),
			insts.SLLI(2, 1, 31),
			insts.SRAI(3, 2, 4),
			insts.SRLI(4, 2, 4),
			insts.ADDI(5, 0, 8),
			insts.SLL(6, 1, 5),
			insts.SRL(7, 2, 5),
			insts.SRA(8, 2, 5),
			insts.ADDI(9, 0, 33),
			insts.SLL(10, 1, 9),
		},
		Expect: map[uint8]uint32{
			2:  0x80000000,
			3:  0xF8000000,
			4:  0x08000000,
			6:  0x100,
			7:  0x00800000,
			8:  0xFF800000,
			10: 2,
		},
	}
}

// constantBuild assembles a 32-bit constant a byte at a time, then tries to
// write it to x0.
func constantBuild() Benchmark {
	return Benchmark{
		Name:        "constant_build",
		Description: "Shift-and-or construction of 0xDEADBEEF",
		Program: []uint32{
			insts.ADDI(1, 0, 0xDE),
			insts.SLLI(1, 1, 8),
			insts.ORI(1, 1, 0xAD),
			insts.SLLI(1, 1, 8),
			insts.ORI(1, 1, 0xBE),
			insts.SLLI(1, 1, 8),
			insts.ORI(1, 1, 0xEF),
			insts.ADD(0, 1, 1),
		},
		Expect: map[uint8]uint32{0: 0, 1: 0xDEADBEEF},
	}
}

// icacheSweepWords is the length of the icache_sweep program: 1KB of code.
const icacheSweepWords = 256

// icacheSweep is long straight-line code; every cache line is fetched once.
func icacheSweep() Benchmark {
	program := make([]uint32, icacheSweepWords)
	for i := range program {
		program[i] = insts.ADDI(1, 1, 1)
	}

	return Benchmark{
		Name:        "icache_sweep",
		Description: "1KB of straight-line code, one compulsory miss per line",
		Program:     program,
		Expect:      map[uint8]uint32{1: icacheSweepWords},
	}
}
