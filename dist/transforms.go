package dist

import (
	"github.com/katalvlaran/scalib-bp/dist/ops"
	"github.com/katalvlaran/scalib-bp/fftplan"
)

// WHT applies the in-place Walsh-Hadamard transform to every row,
// materializing the distribution first if it was uniform (a uniform row
// and its WHT-domain uniform counterpart are not the same thing needed by
// a subsequent pointwise product, so transforms always operate on real
// data).
func (d *Distribution) WHT() {
	d.EnsureFull()
	for r := 0; r < d.nmulti; r++ {
		ops.WHT(d.Row(r))
	}
}

// Cumt applies the in-place cumulative (superset-sum) transform to every
// row; used on AND's operand side.
func (d *Distribution) Cumt() {
	d.EnsureFull()
	for r := 0; r < d.nmulti; r++ {
		ops.Cumt(d.Row(r))
	}
}

// Cumti inverts Cumt.
func (d *Distribution) Cumti() {
	d.EnsureFull()
	for r := 0; r < d.nmulti; r++ {
		ops.Cumti(d.Row(r))
	}
}

// Opandt applies the in-place, self-inverse transform used on AND's result
// side.
func (d *Distribution) Opandt() {
	d.EnsureFull()
	for r := 0; r < d.nmulti; r++ {
		ops.Opandt(d.Row(r))
	}
}

// FFTSpectrum is the frequency-domain counterpart of a Distribution: one
// complex row per trace, produced by FFTTo and consumed by IFFT.
type FFTSpectrum struct {
	nmulti int
	nc     int
	rows   [][]complex128
}

// FFTTo runs the forward real FFT of every row of d using the cached plan
// for size Nc, optionally conjugating the spectrum (negate), which equals
// the spectrum of the row reversed mod Nc; the ADD kernel uses it to encode
// a subtracted operand.
func (d *Distribution) FFTTo(negate bool) FFTSpectrum {
	d.EnsureFull()
	plans := fftplan.Get(d.nc)
	spec := FFTSpectrum{nmulti: d.nmulti, nc: d.nc, rows: make([][]complex128, d.nmulti)}
	for r := 0; r < d.nmulti; r++ {
		scratch := plans.MakeScratchVec()
		ops.FFTTo(plans, d.Row(r), scratch, negate)
		spec.rows[r] = scratch
	}
	return spec
}

// IFFT runs the inverse real FFT of spec, optionally conjugating first
// (negate), and returns the resulting Distribution (always full).
func IFFT(spec FFTSpectrum, multi bool, negate bool) Distribution {
	plans := fftplan.Get(spec.nc)
	out := New(multi, spec.nc, spec.nmulti)
	out.EnsureFull()
	for r := 0; r < spec.nmulti; r++ {
		ops.IFFT(plans, spec.rows[r], out.Row(r), negate)
	}
	return out
}

// Multiply returns the elementwise product of every row of a and b in the
// frequency domain (used to combine FFT spectra before inverting).
func (a FFTSpectrum) Multiply(b FFTSpectrum) FFTSpectrum {
	nmulti := a.nmulti
	if b.nmulti > nmulti {
		nmulti = b.nmulti
	}
	out := FFTSpectrum{nmulti: nmulti, nc: a.nc, rows: make([][]complex128, nmulti)}
	for r := 0; r < nmulti; r++ {
		ar := a.rows[r%len(a.rows)]
		br := b.rows[r%len(b.rows)]
		row := make([]complex128, a.nc)
		for i := range row {
			row[i] = ar[i] * br[i]
		}
		out.rows[r] = row
	}
	return out
}
