package bitvec

// ShiftLeft shifts toward the most significant end by amount positions,
// filling with zeros. The amount is the unsigned value of a separate word of
// any width; shifting by width or more yields zero.
func (w Word) ShiftLeft(amount Word) Word {
	n := len(w.bits)
	k := amount.distance(n)

	out := make([]bool, n)
	copy(out, w.bits[k:])

	return Word{bits: out, signed: w.signed}
}

// ShiftRight is the logical right shift: vacated high positions are zero.
func (w Word) ShiftRight(amount Word) Word {
	return w.shiftRight(amount, false)
}

// ShiftRightArithmetic fills vacated high positions with the original sign
// bit, preserving the two's-complement sign.
func (w Word) ShiftRightArithmetic(amount Word) Word {
	return w.shiftRight(amount, w.MSB())
}

func (w Word) shiftRight(amount Word, fill bool) Word {
	n := len(w.bits)
	k := amount.distance(n)

	out := make([]bool, n)
	for i := 0; i < k; i++ {
		out[i] = fill
	}
	copy(out[k:], w.bits[:n-k])

	return Word{bits: out, signed: w.signed}
}

// distance decodes a shift amount, saturating at limit.
func (w Word) distance(limit int) int {
	n := len(w.bits)
	for i := 0; i < n-63; i++ {
		if w.bits[i] {
			return limit
		}
	}

	v := w.Uint64()
	if v > uint64(limit) {
		return limit
	}
	return int(v)
}
