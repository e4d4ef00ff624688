package fgbuilder

import "errors"

// Sentinel errors returned by Builder methods. Callers should branch with
// errors.Is, not string comparison.
var (
	// ErrDuplicateVar is returned when AddVar is called twice with the same name.
	ErrDuplicateVar = errors.New("fgbuilder: duplicate variable name")

	// ErrDuplicateFactor is returned when a factor name collides with an existing one.
	ErrDuplicateFactor = errors.New("fgbuilder: duplicate factor name")

	// ErrUnknownVar is returned when a factor references a VarID that was
	// never returned by AddVar on this Builder.
	ErrUnknownVar = errors.New("fgbuilder: references unknown variable")

	// ErrEmptyScope is returned when a factor is declared with no operands.
	ErrEmptyScope = errors.New("fgbuilder: factor has no operands")

	// ErrBadNegLength is returned when AddAnd's neg slice length doesn't match
	// the number of edges (the operands plus the result).
	ErrBadNegLength = errors.New("fgbuilder: AND negation slice length mismatch")

	// ErrBadTableSize is returned when a lookup table's length isn't Nc.
	ErrBadTableSize = errors.New("fgbuilder: lookup table size does not match Nc")

	// ErrMixedMulti is returned when a factor's scope mixes multi and
	// non-multi variables in a way bp cannot schedule (see BPState's single
	// vs multi fast path in the original design): every variable in a
	// factor's scope must agree on Multi, matching the factor's own Multi flag.
	ErrMixedMulti = errors.New("fgbuilder: factor scope mixes multi and single variables")
)
