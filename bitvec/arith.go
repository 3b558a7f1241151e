package bitvec

// Add returns w + other modulo 2^width. The carry is rippled from the least
// significant bit upward and the final carry-out is dropped.
func (w Word) Add(other Word) Word {
	mustMatch("add", w, other)

	n := len(w.bits)
	out := make([]bool, n)
	carry := false
	for i := n - 1; i >= 0; i-- {
		a, b := w.bits[i], other.bits[i]
		out[i] = a != b != carry
		carry = (a && b) || (carry && (a != b))
	}

	return Word{bits: out, signed: w.signed}
}

// Sub returns w - other modulo 2^width, rippling a borrow from the least
// significant bit upward.
func (w Word) Sub(other Word) Word {
	mustMatch("sub", w, other)

	n := len(w.bits)
	out := make([]bool, n)
	borrow := false
	for i := n - 1; i >= 0; i-- {
		a, b := w.bits[i], other.bits[i]
		out[i] = a != b != borrow
		borrow = (!a && b) || (borrow && a == b)
	}

	return Word{bits: out, signed: w.signed}
}

// And returns the bitwise AND.
func (w Word) And(other Word) Word {
	mustMatch("and", w, other)
	return w.zip(other, func(a, b bool) bool { return a && b })
}

// Or returns the bitwise OR.
func (w Word) Or(other Word) Word {
	mustMatch("or", w, other)
	return w.zip(other, func(a, b bool) bool { return a || b })
}

// Xor returns the bitwise exclusive OR.
func (w Word) Xor(other Word) Word {
	mustMatch("xor", w, other)
	return w.zip(other, func(a, b bool) bool { return a != b })
}

// Not returns the bitwise complement, keeping the signedness tag.
func (w Word) Not() Word {
	out := make([]bool, len(w.bits))
	for i, b := range w.bits {
		out[i] = !b
	}
	return Word{bits: out, signed: w.signed}
}

// Neg returns the two's-complement negation (NOT plus one).
func (w Word) Neg() Word {
	return w.Not().Add(New(len(w.bits), 1))
}

func (w Word) zip(other Word, f func(a, b bool) bool) Word {
	out := make([]bool, len(w.bits))
	for i := range w.bits {
		out[i] = f(w.bits[i], other.bits[i])
	}
	return Word{bits: out}
}
