package ssa

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// diagonalAverage collapses a grouped (window x n_windows) matrix back into a
// series of length n by averaging every entry on the anti-diagonal i+k == t.
// Each timestamp is the mean of every trajectory-matrix cell that covered it,
// so edge positions average over fewer cells than interior positions.
func diagonalAverage(m *mat.Dense, n int) []float64 {
	w, nWindows := m.Dims()

	out := make([]float64, n)
	counts := make([]float64, n)
	for i := 0; i < w; i++ {
		for k := 0; k < nWindows; k++ {
			out[i+k] += m.At(i, k)
			counts[i+k]++
		}
	}
	floats.Div(out, counts)
	return out
}
