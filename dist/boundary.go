package dist

// FromSliceSingle builds a single (shared-across-traces) Distribution from
// a caller-supplied probability vector of length nc. Values are copied; the
// input is not required to sum to 1 (Regularize handles that).
func FromSliceSingle(values []float64, nc int) (Distribution, error) {
	if len(values) != nc {
		return Distribution{}, wrongNcErr(len(values), nc)
	}
	out := New(false, nc, 1)
	out.EnsureFull()
	copy(out.data, values)
	return out, nil
}

// FromArrayMulti builds a multi (per-trace) Distribution from a
// caller-supplied 2-D array of shape (nmulti, nc). Every row must have
// exactly nc entries — a Go [][]float64 has no notion of a non-contiguous
// stride, so the "non-contiguous layout" rejection from spec.md §6
// degenerates to this rectangularity check.
func FromArrayMulti(rows [][]float64, nc, nmulti int) (Distribution, error) {
	if len(rows) != nmulti {
		return Distribution{}, wrongNmultiErr(len(rows), nmulti)
	}
	out := New(true, nc, nmulti)
	out.EnsureFull()
	for r, row := range rows {
		if len(row) != nc {
			return Distribution{}, ErrBadLayout
		}
		copy(out.data[r*nc:(r+1)*nc], row)
	}
	return out, nil
}

// CheckKind validates that d matches the expected multi/nc/nmulti shape,
// the three rejections spec.md §6 calls out for set_evidence/set_state/
// set_belief_*: wrong kind, wrong nc, wrong nmulti.
func CheckKind(d Distribution, wantMulti bool, wantNc, wantNmulti int) error {
	if d.multi != wantMulti {
		return wrongKindErr(d.multi, wantMulti)
	}
	if d.nc != wantNc {
		return wrongNcErr(d.nc, wantNc)
	}
	if wantMulti && d.nmulti != wantNmulti {
		return wrongNmultiErr(d.nmulti, wantNmulti)
	}
	return nil
}
