package bitvec

import (
	"errors"
	"fmt"
)

// Contract violations. Operations panic with a *ContractError wrapping one of
// these, so callers recovering a panic can match it with errors.Is.
var (
	// ErrWidthMismatch is raised when a binary operation gets operands of
	// different widths.
	ErrWidthMismatch = errors.New("width mismatch")

	// ErrNarrowing is raised when an extension targets fewer bits than the
	// word already has.
	ErrNarrowing = errors.New("extension to a smaller width")

	// ErrOutOfRange is raised when a bit index or slice bound falls outside
	// the word.
	ErrOutOfRange = errors.New("bit index out of range")
)

// ContractError describes a misuse of a Word operation.
type ContractError struct {
	// Op is the name of the failing operation, e.g. "add".
	Op string
	// Kind is one of the Err* sentinels above.
	Kind error
	// Detail carries the offending widths or indices.
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("bitvec: %s: %v (%s)", e.Op, e.Kind, e.Detail)
}

// Unwrap exposes Kind to errors.Is.
func (e *ContractError) Unwrap() error {
	return e.Kind
}

func mustMatch(op string, a, b Word) {
	if a.Width() != b.Width() {
		panic(&ContractError{
			Op:     op,
			Kind:   ErrWidthMismatch,
			Detail: fmt.Sprintf("%d vs %d bits", a.Width(), b.Width()),
		})
	}
}
