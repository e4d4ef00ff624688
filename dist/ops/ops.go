// Package ops holds the fast-transform kernels dist.Distribution's
// transform methods wrap: Walsh-Hadamard (XOR), the cumulative/opand pair
// (AND), and the real-FFT glue around fftplan (ADD). Every kernel here
// operates on a single row ([]float64 of length Nc) in place or via a
// plain return value — no knowledge of the multi/uniform bookkeeping that
// lives in dist itself, the same "private kernel, public thin wrapper"
// split the teacher uses in matrix/ops_elementwise.go.
package ops

import (
	"math"

	"github.com/katalvlaran/scalib-bp/fftplan"
)

// WHT performs the in-place, sign-preserving Walsh-Hadamard transform of
// row (len(row) must be a power of two). It is its own inverse up to a
// factor of len(row): WHT(WHT(x)) == len(x)*x.
func WHT(row []float64) {
	n := len(row)
	for size := 1; size < n; size <<= 1 {
		for start := 0; start < n; start += size * 2 {
			for i := start; i < start+size; i++ {
				a, b := row[i], row[i+size]
				row[i] = a + b
				row[i+size] = a - b
			}
		}
	}
}

// Cumt performs the in-place "sum over supersets" zeta transform used to
// diagonalize AND on the operand side: after Cumt, row[x] == sum of the
// original row[y] for every y that is a superset of x's bits.
func Cumt(row []float64) {
	n := len(row)
	for bit := 1; bit < n; bit <<= 1 {
		for x := 0; x < n; x++ {
			if x&bit == 0 {
				row[x] += row[x|bit]
			}
		}
	}
}

// Cumti inverts Cumt (Möbius inversion over the same superset lattice).
func Cumti(row []float64) {
	n := len(row)
	for bit := 1; bit < n; bit <<= 1 {
		for x := 0; x < n; x++ {
			if x&bit == 0 {
				row[x] -= row[x|bit]
			}
		}
	}
}

// Opandt is the self-inverse transform used on the result side of AND: a
// normalized Walsh-Hadamard transform (WHT scaled by 1/sqrt(n)), which is
// exactly its own inverse.
func Opandt(row []float64) {
	WHT(row)
	scale := 1 / math.Sqrt(float64(len(row)))
	for i := range row {
		row[i] *= scale
	}
}

// FFTTo runs the forward real FFT of row into scratch (len(scratch) ==
// len(row), caller-owned), optionally conjugating the spectrum (negate) to
// encode a reversed/subtracted operand.
func FFTTo(plans *fftplan.Plans, row []float64, scratch []complex128, negate bool) {
	plans.RealToComplex(row, scratch, negate)
}

// IFFT runs the inverse real FFT of scratch into row, optionally
// conjugating the spectrum first (negate), mirroring FFTTo.
func IFFT(plans *fftplan.Plans, scratch []complex128, row []float64, negate bool) {
	plans.ComplexToReal(scratch, row, negate)
}
