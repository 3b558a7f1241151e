// Package bitvec provides fixed-width two's-complement bit vectors.
//
// A Word is an immutable, most-significant-bit-first sequence of bits with a
// declared width and a signed/unsigned tag. Arithmetic follows fixed-width
// hardware behavior: addition and subtraction wrap modulo 2^width, shifts
// fill vacated positions with zero (or the sign bit for arithmetic right
// shift), and comparisons yield a one-valued or zero-valued word of the
// operand width.
//
// Usage:
//
//	a := bitvec.New(32, 0x101)
//	b := bitvec.NewSigned(12, 0x200).SignExtend(32)
//	sum := a.Add(b) // 0x00000301
//
// Binary operations require equal widths. Violations are programmer errors
// and panic with a *ContractError.
package bitvec

import (
	"fmt"
	"strings"
)

// Word is a fixed-width bit vector. The zero value is a zero-width word.
type Word struct {
	// bits[0] is the most significant bit.
	bits   []bool
	signed bool
}

// New creates an unsigned word of the given width from the low bits of value.
// Bits above position 63 are zero.
func New(width int, value uint64) Word {
	if width < 0 {
		panic(&ContractError{Op: "new", Kind: ErrOutOfRange, Detail: fmt.Sprintf("width %d", width)})
	}

	bits := make([]bool, width)
	for i := 0; i < width && i < 64; i++ {
		bits[width-1-i] = (value>>uint(i))&1 == 1
	}

	return Word{bits: bits}
}

// NewSigned creates a signed word holding the two's-complement encoding of
// value truncated to width bits.
func NewSigned(width int, value int64) Word {
	w := New(width, uint64(value))
	if value < 0 {
		for i := 64; i < width; i++ {
			w.bits[width-1-i] = true
		}
	}
	w.signed = true
	return w
}

// Zero returns an unsigned all-zero word.
func Zero(width int) Word {
	return New(width, 0)
}

// FromBits creates a word from an MSB-first bit slice. The slice is copied.
func FromBits(bits []bool, signed bool) Word {
	cp := make([]bool, len(bits))
	copy(cp, bits)
	return Word{bits: cp, signed: signed}
}

// Parse reads a binary literal such as "1010" or "0b1010_0001". The width is
// the number of digits. Underscores are ignored.
func Parse(s string) (Word, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0b"), "0B")
	bits := make([]bool, 0, len(s))
	for _, r := range s {
		switch r {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		case '_':
		default:
			return Word{}, fmt.Errorf("invalid binary digit %q", r)
		}
	}
	return Word{bits: bits}, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Concat joins words most-significant first: Concat(a, b) has a in the high
// bits. The result is unsigned.
func Concat(parts ...Word) Word {
	var bits []bool
	for _, p := range parts {
		bits = append(bits, p.bits...)
	}
	return Word{bits: bits}
}

// Width returns the declared number of bits.
func (w Word) Width() int {
	return len(w.bits)
}

// Signed reports the signedness tag.
func (w Word) Signed() bool {
	return w.signed
}

// AsSigned returns the same bit pattern tagged as signed.
func (w Word) AsSigned() Word {
	return Word{bits: w.bits, signed: true}
}

// AsUnsigned returns the same bit pattern tagged as unsigned.
func (w Word) AsUnsigned() Word {
	return Word{bits: w.bits, signed: false}
}

// Bits returns a copy of the bits, most significant first.
func (w Word) Bits() []bool {
	cp := make([]bool, len(w.bits))
	copy(cp, w.bits)
	return cp
}

// Bit returns the bit at hardware position i, where position 0 is the least
// significant bit.
func (w Word) Bit(i int) bool {
	if i < 0 || i >= len(w.bits) {
		panic(&ContractError{
			Op:     "bit",
			Kind:   ErrOutOfRange,
			Detail: fmt.Sprintf("bit %d of %d-bit word", i, len(w.bits)),
		})
	}
	return w.bits[len(w.bits)-1-i]
}

// MSB returns the most significant (sign) bit. A zero-width word has none and
// reports false.
func (w Word) MSB() bool {
	if len(w.bits) == 0 {
		return false
	}
	return w.bits[0]
}

// Slice returns bits hi..lo inclusive, using hardware positions, as an
// unsigned word of width hi-lo+1. Slice(6, 0) of an instruction is its opcode.
func (w Word) Slice(hi, lo int) Word {
	if lo < 0 || hi < lo || hi >= len(w.bits) {
		panic(&ContractError{
			Op:     "slice",
			Kind:   ErrOutOfRange,
			Detail: fmt.Sprintf("[%d:%d] of %d-bit word", hi, lo, len(w.bits)),
		})
	}
	n := len(w.bits)
	return FromBits(w.bits[n-1-hi:n-lo], false)
}

// SignExtend widens the word to n bits by replicating the sign bit.
func (w Word) SignExtend(n int) Word {
	return w.extend("signExtend", n, w.MSB())
}

// ZeroExtend widens the word to n bits by filling with zeros.
func (w Word) ZeroExtend(n int) Word {
	return w.extend("zeroExtend", n, false)
}

func (w Word) extend(op string, n int, fill bool) Word {
	diff := n - len(w.bits)
	if diff < 0 {
		panic(&ContractError{
			Op:     op,
			Kind:   ErrNarrowing,
			Detail: fmt.Sprintf("%d to %d bits", len(w.bits), n),
		})
	}

	bits := make([]bool, n)
	for i := 0; i < diff; i++ {
		bits[i] = fill
	}
	copy(bits[diff:], w.bits)

	return Word{bits: bits, signed: w.signed}
}

// Equal reports whether both words have the same width and bit pattern. The
// signedness tag is ignored.
func (w Word) Equal(other Word) bool {
	if len(w.bits) != len(other.bits) {
		return false
	}
	for i := range w.bits {
		if w.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether every bit is clear.
func (w Word) IsZero() bool {
	for _, b := range w.bits {
		if b {
			return false
		}
	}
	return true
}

// Uint64 decodes the bit pattern as an unsigned integer. Only the low 64 bits
// are representable; use Uint256 for wider words.
func (w Word) Uint64() uint64 {
	var v uint64
	n := len(w.bits)
	for i := 0; i < n && i < 64; i++ {
		if w.bits[n-1-i] {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Int64 decodes the bit pattern as a two's-complement integer. Words wider
// than 64 bits are truncated to their low 64 bits first.
func (w Word) Int64() int64 {
	n := len(w.bits)
	if n == 0 {
		return 0
	}
	if n >= 64 {
		return int64(w.Uint64())
	}

	v := w.Uint64()
	if w.bits[0] {
		v |= ^uint64(0) << uint(n)
	}
	return int64(v)
}

// Hex renders the word as zero-padded lowercase hex digits, one digit per
// started nibble.
func (w Word) Hex() string {
	n := len(w.bits)
	if n == 0 {
		return ""
	}

	digits := (n + 3) / 4
	padded := w.ZeroExtend(digits * 4)

	var sb strings.Builder
	for d := 0; d < digits; d++ {
		nibble := 0
		for _, b := range padded.bits[d*4 : d*4+4] {
			nibble <<= 1
			if b {
				nibble |= 1
			}
		}
		sb.WriteByte("0123456789abcdef"[nibble])
	}
	return sb.String()
}

// String prints signed words in decimal and unsigned words in hex. Signed
// words wider than MaxWideWidth fall back to hex.
func (w Word) String() string {
	if w.signed && len(w.bits) <= 64 {
		return fmt.Sprintf("%d'sd%d", len(w.bits), w.Int64())
	}
	if w.signed && len(w.bits) <= MaxWideWidth {
		return fmt.Sprintf("%d'sd%s", len(w.bits), w.wideDecimal())
	}
	return fmt.Sprintf("%d'h%s", len(w.bits), w.Hex())
}
