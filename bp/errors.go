package bp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/scalib-bp/dist"
)

// Sentinel errors for BPState-level validation and lookups, checked via
// errors.Is the same way the teacher's matrix/core packages do.
var (
	// ErrWrongDistributionKind is returned when a single distribution is
	// supplied where multi was expected, or vice versa.
	ErrWrongDistributionKind = errors.New("bp: wrong distribution kind")

	// ErrWrongDistributionNc is returned when a distribution's class count
	// doesn't match the graph's Nc.
	ErrWrongDistributionNc = errors.New("bp: wrong distribution class count")

	// ErrWrongDistributionNmulti is returned when a multi distribution's
	// trace count doesn't match BPState's Nmulti.
	ErrWrongDistributionNmulti = errors.New("bp: wrong distribution trace count")

	// ErrDistributionLayout is returned when a caller-supplied distribution
	// has an invalid row layout.
	ErrDistributionLayout = errors.New("bp: invalid distribution layout")

	// ErrNotAcyclic is returned by PropagateAcyclic when the graph (for the
	// relevant Nmulti) is not acyclic.
	ErrNotAcyclic = errors.New("bp: propagate_acyclic invoked on a cyclic graph")

	// ErrUnknownVar and ErrUnknownFactor mirror fgraph's lookup sentinels.
	// BPState's accessors take ids, not names, and return neither.
	ErrUnknownVar    = errors.New("bp: unknown variable")
	ErrUnknownFactor = errors.New("bp: unknown factor")

	// ErrNoEdge indicates a requested (var, factor) pair has no incidence.
	ErrNoEdge = errors.New("bp: no edge between variable and factor")
)

// checkKindErr translates a dist.CheckKind failure into the matching
// bp-level sentinel, preserving the underlying error text via %v (bp's
// sentinels are the ones callers are expected to errors.Is against at this
// boundary, mirroring matrix's "don't re-wrap the inner sentinel" policy).
func checkKindErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dist.ErrWrongKind):
		return fmt.Errorf("%w: %v", ErrWrongDistributionKind, err)
	case errors.Is(err, dist.ErrWrongNc):
		return fmt.Errorf("%w: %v", ErrWrongDistributionNc, err)
	case errors.Is(err, dist.ErrWrongNmulti):
		return fmt.Errorf("%w: %v", ErrWrongDistributionNmulti, err)
	case errors.Is(err, dist.ErrBadLayout):
		return fmt.Errorf("%w: %v", ErrDistributionLayout, err)
	default:
		return err
	}
}
