package emu

// WriteEnables holds one write strobe per register. Entry 0 exists only for
// indexing; Demux never sets it and RegFile.Next ignores it.
type WriteEnables [NumRegisters]bool

// Demux derives the per-register write strobes for one cycle: line i, for i
// in 1..31, is set iff aluEnable is high and rd == i. An rd of 0 or outside
// the register range strobes nothing.
func Demux(rd uint8, aluEnable bool) WriteEnables {
	var we WriteEnables
	if aluEnable && rd != 0 && int(rd) < NumRegisters {
		we[rd] = true
	}
	return we
}

// Count returns the number of asserted strobes.
func (we WriteEnables) Count() int {
	n := 0
	for _, on := range we {
		if on {
			n++
		}
	}
	return n
}

// Target returns the strobed register, or false when none is.
func (we WriteEnables) Target() (uint8, bool) {
	for i, on := range we {
		if on {
			return uint8(i), true
		}
	}
	return 0, false
}
