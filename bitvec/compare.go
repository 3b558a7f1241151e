package bitvec

// LessThan compares the raw bit patterns as unsigned magnitudes. The result is
// 1 or 0, zero-extended to the operand width.
func (w Word) LessThan(other Word) Word {
	mustMatch("lessThan", w, other)
	return flag(len(w.bits), w.below(other))
}

// LessThanSigned compares the operands as two's-complement integers. The
// result is 1 or 0, zero-extended to the operand width.
//
// When the sign bits differ the negative operand is smaller. When they agree,
// ordering is the unsigned ordering of the patterns, for negative operands
// too: 0xFFFFFFFE (-2) < 0xFFFFFFFF (-1).
func (w Word) LessThanSigned(other Word) Word {
	mustMatch("lessThanSigned", w, other)

	a, b := w.MSB(), other.MSB()
	if a != b {
		return flag(len(w.bits), a)
	}
	return flag(len(w.bits), w.below(other))
}

// below reports whether w < other as unsigned magnitudes, scanning from the
// most significant bit.
func (w Word) below(other Word) bool {
	for i := range w.bits {
		if w.bits[i] != other.bits[i] {
			return other.bits[i]
		}
	}
	return false
}

func flag(width int, set bool) Word {
	if set {
		return New(width, 1)
	}
	return Zero(width)
}
