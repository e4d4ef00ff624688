// Package fftplan caches complex FFT plans keyed by transform size and
// exposes the real-to-complex / complex-to-real glue the dist package's ADD
// kernel needs.
//
// There is no third-party FFT/DSP library anywhere in this codebase's
// ancestry, so this package hand-rolls a plan cache in the shape of
// kiss_fft's KissFFT64State: precompute twiddle factors and a bit-reversal
// table once per size, guard the cache with a mutex, and hand callers
// reusable scratch buffers instead of allocating per call.
package fftplan
