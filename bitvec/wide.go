package bitvec

import (
	"fmt"

	"github.com/holiman/uint256"
)

// MaxWideWidth is the widest word that converts to and from uint256.Int.
const MaxWideWidth = 256

// Uint256 decodes the bit pattern as an unsigned 256-bit integer. Words wider
// than MaxWideWidth panic.
func (w Word) Uint256() *uint256.Int {
	if len(w.bits) > MaxWideWidth {
		panic(&ContractError{
			Op:     "uint256",
			Kind:   ErrOutOfRange,
			Detail: fmt.Sprintf("%d-bit word", len(w.bits)),
		})
	}
	z := new(uint256.Int)
	if len(w.bits) == 0 {
		return z
	}
	return z.SetBytes(w.bytes())
}

// FromUint256 creates an unsigned word from the low width bits of v.
func FromUint256(width int, v *uint256.Int) Word {
	if width < 0 || width > MaxWideWidth {
		panic(&ContractError{
			Op:     "fromUint256",
			Kind:   ErrOutOfRange,
			Detail: fmt.Sprintf("width %d", width),
		})
	}

	image := v.Bytes32()
	bits := make([]bool, width)
	for i := 0; i < width; i++ {
		bits[width-1-i] = image[len(image)-1-i/8]>>uint(i%8)&1 == 1
	}
	return Word{bits: bits}
}

// bytes packs the bit pattern into big-endian bytes, zero padded on the left
// to a whole byte.
func (w Word) bytes() []byte {
	n := len(w.bits)
	buf := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if w.bits[n-1-i] {
			buf[len(buf)-1-i/8] |= 1 << uint(i%8)
		}
	}
	return buf
}

// wideDecimal renders a signed word of up to MaxWideWidth bits in decimal.
func (w Word) wideDecimal() string {
	v := w.SignExtend(MaxWideWidth).Uint256()
	if v.Sign() < 0 {
		return "-" + new(uint256.Int).Neg(v).Dec()
	}
	return v.Dec()
}
