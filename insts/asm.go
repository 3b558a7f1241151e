package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// form is the operand shape of a mnemonic.
type form uint8

const (
	formReg   form = iota // rd, rs1, rs2
	formImm               // rd, rs1, imm
	formShift             // rd, rs1, shamt
)

type mnemonic struct {
	name   string
	form   form
	op     Op
	funct7 uint8
}

var mnemonics = []mnemonic{
	{"addi", formImm, OpADD, 0},
	{"slti", formImm, OpSLT, 0},
	{"sltiu", formImm, OpSLTU, 0},
	{"xori", formImm, OpXOR, 0},
	{"ori", formImm, OpOR, 0},
	{"andi", formImm, OpAND, 0},
	{"slli", formShift, OpSLL, 0},
	{"srli", formShift, OpSR, 0},
	{"srai", formShift, OpSR, Funct7Alt},
	{"add", formReg, OpADD, 0},
	{"sub", formReg, OpADD, Funct7Alt},
	{"sll", formReg, OpSLL, 0},
	{"slt", formReg, OpSLT, 0},
	{"sltu", formReg, OpSLTU, 0},
	{"xor", formReg, OpXOR, 0},
	{"srl", formReg, OpSR, 0},
	{"sra", formReg, OpSR, Funct7Alt},
	{"or", formReg, OpOR, 0},
	{"and", formReg, OpAND, 0},
}

var mnemonicByName = func() map[string]mnemonic {
	m := make(map[string]mnemonic, len(mnemonics))
	for _, mn := range mnemonics {
		m[mn.name] = mn
	}
	return m
}()

// abiNames are the standard RISC-V register aliases, indexed by register.
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

// Assemble encodes one line of assembly, e.g. "addi x1, x0, 5". Registers
// may be written as x0..x31 or by ABI name. The pseudo-instructions nop, mv,
// li, not and neg are accepted when they expand to a single ALU instruction.
func Assemble(line string) (uint32, error) {
	name, args := splitLine(line)
	if name == "" {
		return 0, fmt.Errorf("empty instruction")
	}

	if word, ok, err := assemblePseudo(name, args); ok {
		return word, err
	}

	mn, ok := mnemonicByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", name)
	}
	if len(args) != 3 {
		return 0, fmt.Errorf("%s: expected 3 operands, got %d", name, len(args))
	}

	rd, err := ParseRegister(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: rd: %w", name, err)
	}
	rs1, err := ParseRegister(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: rs1: %w", name, err)
	}

	switch mn.form {
	case formReg:
		rs2, err := ParseRegister(args[2])
		if err != nil {
			return 0, fmt.Errorf("%s: rs2: %w", name, err)
		}
		return EncodeR(mn.op, rd, rs1, rs2, mn.funct7), nil

	case formShift:
		shamt, err := parseInt(args[2], 0, 31)
		if err != nil {
			return 0, fmt.Errorf("%s: shamt: %w", name, err)
		}
		return encodeShiftI(mn.op, rd, rs1, uint8(shamt), mn.funct7), nil

	default:
		imm, err := parseImm12(args[2])
		if err != nil {
			return 0, fmt.Errorf("%s: imm: %w", name, err)
		}
		return EncodeI(mn.op, rd, rs1, uint32(imm)), nil
	}
}

func assemblePseudo(name string, args []string) (uint32, bool, error) {
	regs := func(n int) ([]uint8, error) {
		if len(args) < n {
			return nil, fmt.Errorf("%s: expected at least %d operands, got %d", name, n, len(args))
		}
		out := make([]uint8, n)
		for i := 0; i < n; i++ {
			r, err := ParseRegister(args[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out[i] = r
		}
		return out, nil
	}

	switch name {
	case "nop":
		if len(args) != 0 {
			return 0, true, fmt.Errorf("nop takes no operands")
		}
		return NOP, true, nil

	case "mv", "not", "neg":
		if len(args) != 2 {
			return 0, true, fmt.Errorf("%s: expected 2 operands, got %d", name, len(args))
		}
		r, err := regs(2)
		if err != nil {
			return 0, true, err
		}
		switch name {
		case "mv":
			return ADDI(r[0], r[1], 0), true, nil
		case "not":
			return XORI(r[0], r[1], -1), true, nil
		default:
			return SUB(r[0], 0, r[1]), true, nil
		}

	case "li":
		if len(args) != 2 {
			return 0, true, fmt.Errorf("li: expected 2 operands, got %d", len(args))
		}
		r, err := regs(1)
		if err != nil {
			return 0, true, err
		}
		imm, err := parseInt(args[1], -2048, 2047)
		if err != nil {
			return 0, true, fmt.Errorf("li: %w", err)
		}
		return ADDI(r[0], 0, int32(imm)), true, nil
	}

	return 0, false, nil
}

// ABIName returns the ABI alias of register i, or "" outside 0..31.
func ABIName(i uint8) string {
	if int(i) >= len(abiNames) {
		return ""
	}
	return abiNames[i]
}

// ParseRegister reads x0..x31 or an ABI register name.
func ParseRegister(s string) (uint8, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "x") {
		n, err := strconv.Atoi(s[1:])
		if err == nil && n >= 0 && n < 32 {
			return uint8(n), nil
		}
	}
	if s == "fp" {
		return 8, nil
	}
	for i, name := range abiNames {
		if s == name {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("invalid register %q", s)
}

// parseImm12 accepts a signed immediate in [-2048, 2047], or a raw field
// value up to 0xFFF written in hex.
func parseImm12(s string) (int64, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		return parseInt(s, 0, 0xFFF)
	}
	return parseInt(s, -2048, 2047)
}

func parseInt(s string, lo, hi int64) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", v, lo, hi)
	}
	return v, nil
}

// splitLine returns the lowercase mnemonic and the comma-separated operands.
func splitLine(line string) (string, []string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	cut := strings.IndexAny(line, " \t")
	if cut < 0 {
		return strings.ToLower(line), nil
	}

	name := strings.ToLower(line[:cut])
	rest := strings.TrimSpace(line[cut:])
	if rest == "" {
		return name, nil
	}

	parts := strings.Split(rest, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return name, args
}
