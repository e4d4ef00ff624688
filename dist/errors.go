package dist

import (
	"errors"
	"fmt"
)

// Sentinel errors returned at the Distribution construction boundary
// (FromSliceSingle/FromArrayMulti) and by CheckKind. Callers branch with
// errors.Is.
var (
	// ErrWrongKind is returned when a single distribution is supplied where
	// multi was expected, or vice versa.
	ErrWrongKind = errors.New("dist: wrong distribution kind")

	// ErrWrongNc is returned when a row's length doesn't match nc.
	ErrWrongNc = errors.New("dist: wrong class count")

	// ErrWrongNmulti is returned when a multi distribution's leading
	// dimension doesn't match nmulti.
	ErrWrongNmulti = errors.New("dist: wrong trace count")

	// ErrBadLayout is returned when a caller-supplied 2-D input is not
	// rectangular (every row must have exactly nc entries).
	ErrBadLayout = errors.New("dist: non-rectangular input layout")
)

func wrongKindErr(gotMulti, wantMulti bool) error {
	got, want := kindName(gotMulti), kindName(wantMulti)
	return fmt.Errorf("%w: got %s, want %s", ErrWrongKind, got, want)
}

func kindName(multi bool) string {
	if multi {
		return "multi"
	}
	return "single"
}

func wrongNcErr(got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", ErrWrongNc, got, want)
}

func wrongNmultiErr(got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", ErrWrongNmulti, got, want)
}
