package ssa

import (
	"fmt"
	"sync"

	"github.com/tsdecomp/go-ssa/spectral"
	"github.com/tsdecomp/go-ssa/window"
	"gonum.org/v1/gonum/mat"
)

// SSA decomposes time series into additive component series using singular
// spectrum analysis. Each series is embedded into a trajectory matrix of
// overlapping windows, the eigencomponents of the lagged covariance are
// projected back onto the trajectory matrix, grouped, and diagonal-averaged
// into one component series per group. Summing the component series of an
// ungrouped transform reconstructs the input.
type SSA struct {
	opt *Options
}

// New creates a new transform instance with the given options. If none are
// provided, a default is used.
func New(opt *Options) (*SSA, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &SSA{opt: opt}, nil
}

// Transform decomposes every row of x independently and returns the component
// series indexed by sample, group, and timestamp. All rows must have the same
// length. Validation runs before any sample is processed; either every sample
// succeeds or an error is returned with no partial result. Samples are
// processed concurrently up to the configured parallelization, and results do
// not depend on the execution order.
func (s *SSA) Transform(x [][]float64) ([][][]float64, error) {
	if s == nil || s.opt == nil {
		return nil, ErrUninitializedTransform
	}
	if len(x) == 0 {
		return nil, ErrNoInputSeries
	}

	nTimestamps := len(x[0])
	for i, series := range x {
		if len(series) != nTimestamps {
			return nil, fmt.Errorf("series %d has length %d but series 0 has length %d, %w", i, len(series), nTimestamps, ErrMismatchedSeriesLen)
		}
	}

	w, err := s.opt.validate(nTimestamps)
	if err != nil {
		return nil, err
	}

	parallelization := s.opt.Parallelization
	if parallelization <= 0 {
		parallelization = 1
	}
	if parallelization > len(x) {
		parallelization = len(x)
	}

	res := make([][][]float64, len(x))
	errs := make([]error, len(x))

	sem := make(chan struct{}, parallelization)
	var wg sync.WaitGroup
	for i, series := range x {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int, series []float64) {
			defer func() {
				wg.Done()
				<-sem
			}()
			res[i], errs[i] = s.transformSeries(series, w)
		}(i, series)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// TransformSeries decomposes a single series and returns one component series
// per group.
func (s *SSA) TransformSeries(y []float64) ([][]float64, error) {
	res, err := s.Transform([][]float64{y})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

func (s *SSA) transformSeries(series []float64, w int) ([][]float64, error) {
	windows, err := window.Slide(series, w)
	if err != nil {
		return nil, err
	}
	nWindows := len(windows)

	// trajectory matrix with window k as column k
	traj := mat.NewDense(w, nWindows, nil)
	for k, win := range windows {
		traj.SetCol(k, win)
	}

	dec, err := spectral.CovEigen(traj)
	if err != nil {
		return nil, err
	}

	elems := elementaryMatrices(traj, dec.Vectors)
	groups := s.group(elems, dec.Vectors, w, nWindows)

	out := make([][]float64, len(groups))
	for g, m := range groups {
		out[g] = diagonalAverage(m, len(series))
	}
	return out, nil
}

// elementaryMatrices builds one rank-1 contribution per eigenvector by
// applying the projection outer(v_j, v_j) to the trajectory matrix. The
// elementary matrices sum to the trajectory matrix.
func elementaryMatrices(traj, vectors *mat.Dense) []*mat.Dense {
	w, _ := traj.Dims()
	elems := make([]*mat.Dense, w)
	for j := 0; j < w; j++ {
		v := vectors.ColView(j)

		var outer mat.Dense
		outer.Outer(1, v, v)

		elem := new(mat.Dense)
		elem.Mul(&outer, traj)
		elems[j] = elem
	}
	return elems
}
