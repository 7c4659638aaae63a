package ssa

import (
	"github.com/tsdecomp/go-ssa/spectral"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// group combines the elementary matrices of one sample into its component
// group matrices according to the configured policy. The grouping has already
// been validated against the window size.
func (s *SSA) group(elems []*mat.Dense, vectors *mat.Dense, w, nWindows int) []*mat.Dense {
	switch s.opt.Grouping.Policy {
	case PolicyCount:
		return groupByCount(elems, s.opt.Grouping.Count, w, nWindows)
	case PolicyAuto:
		return s.groupAuto(elems, vectors, w, nWindows)
	case PolicyIndices:
		return groupByIndices(elems, s.opt.Grouping.Indices, w, nWindows)
	default:
		return elems
	}
}

// groupByCount sums the elementary matrices over count contiguous index
// ranges with boundaries at linspace(0, w, count+1) truncated to integers.
// The ranges are non-overlapping and cover [0, w) exactly.
func groupByCount(elems []*mat.Dense, count, w, nWindows int) []*mat.Dense {
	groups := make([]*mat.Dense, count)
	for g := 0; g < count; g++ {
		lo := g * w / count
		hi := (g + 1) * w / count
		groups[g] = sumElems(elems[lo:hi], w, nWindows)
	}
	return groups
}

// groupByIndices sums the elementary matrices listed in each index group.
// Groups may overlap and leave indices out.
func groupByIndices(elems []*mat.Dense, indices [][]int, w, nWindows int) []*mat.Dense {
	groups := make([]*mat.Dense, len(indices))
	for g, group := range indices {
		sum := mat.NewDense(w, nWindows, nil)
		for _, j := range group {
			sum.Add(sum, elems[j])
		}
		groups[g] = sum
	}
	return groups
}

// groupAuto splits the eigencomponents into trend, seasonal, and residual
// groups from the one-sided periodogram of each eigenvector. A component is
// trend when the cumulative power below the lower frequency bound exceeds the
// contribution threshold, and residual when the cumulative power up to the
// middle frequency stays below it. The two tests are applied independently; a
// component may contribute to both sums, and one matching neither falls
// through to seasonal.
func (s *SSA) groupAuto(elems []*mat.Dense, vectors *mat.Dense, w, nWindows int) []*mat.Dense {
	// frequency axis is [0, 1, ..., w/2] / w
	idxTrend := 0
	for i := 1; i <= w/2; i++ {
		if float64(i)/float64(w) < s.opt.LowerFrequencyBound {
			idxTrend = i
		}
	}
	idxResid := (w/2 + 1) / 2
	c := s.opt.LowerFrequencyContribution

	trend := mat.NewDense(w, nWindows, nil)
	seasonal := mat.NewDense(w, nWindows, nil)
	resid := mat.NewDense(w, nWindows, nil)

	for j := 0; j < w; j++ {
		pxx := spectral.Periodogram(mat.Col(nil, j, vectors))
		cum := floats.CumSum(make([]float64, len(pxx)), pxx)
		total := cum[len(cum)-1]

		isTrend := cum[idxTrend]/total > c
		isResid := cum[idxResid]/total < c
		if isTrend {
			trend.Add(trend, elems[j])
		}
		if isResid {
			resid.Add(resid, elems[j])
		}
		if !isTrend && !isResid {
			seasonal.Add(seasonal, elems[j])
		}
	}
	return []*mat.Dense{trend, seasonal, resid}
}

func sumElems(elems []*mat.Dense, w, nWindows int) *mat.Dense {
	sum := mat.NewDense(w, nWindows, nil)
	for _, e := range elems {
		sum.Add(sum, e)
	}
	return sum
}
