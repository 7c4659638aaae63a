package spectral

import (
	"errors"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

var ErrEigenFailed = errors.New("eigen decomposition failed to converge")

// Decomposition holds the eigen-pairs of a lagged covariance matrix ordered
// by descending eigenvalue. Column j of Vectors is the eigenvector matching
// Values[j].
type Decomposition struct {
	Values  []float64
	Vectors *mat.Dense
}

// CovEigen forms the lagged covariance traj*trajT of a trajectory matrix and
// computes its eigen decomposition. The covariance is symmetric positive
// semi-definite so a symmetric eigen routine is used for stability. Results
// are reordered to descending eigenvalue.
func CovEigen(traj mat.Matrix) (*Decomposition, error) {
	w, _ := traj.Dims()

	var cov mat.SymDense
	cov.SymOuterK(1, traj)

	var eig mat.EigenSym
	if ok := eig.Factorize(&cov, true); !ok {
		return nil, ErrEigenFailed
	}

	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// EigenSym returns ascending eigenvalues
	dec := &Decomposition{
		Values:  make([]float64, w),
		Vectors: mat.NewDense(w, w, nil),
	}
	for j := 0; j < w; j++ {
		src := w - 1 - j
		dec.Values[j] = vals[src]
		for i := 0; i < w; i++ {
			dec.Vectors.Set(i, j, vecs.At(i, src))
		}
	}
	return dec, nil
}

// Periodogram returns the one-sided power spectrum of x over the frequency
// axis [0, 1, ..., len(x)/2] / len(x), using an orthonormal-scaled real FFT.
// All bins except DC, and except Nyquist when len(x) is even, are doubled to
// fold in the negative frequencies, so the bins sum to the series energy.
func Periodogram(x []float64) []float64 {
	n := len(x)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)

	pxx := make([]float64, len(coeffs))
	for i, c := range coeffs {
		re, im := real(c), imag(c)
		pxx[i] = (re*re + im*im) / float64(n)
	}

	last := len(pxx)
	if n%2 == 0 {
		last--
	}
	for i := 1; i < last; i++ {
		pxx[i] *= 2
	}
	return pxx
}
