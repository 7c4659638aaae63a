package ssa

import (
	"fmt"
	"math"
)

const (
	MinWindowSize     = 2
	DefaultWindowSize = 4

	DefaultLowerFrequencyBound        = 0.075
	DefaultLowerFrequencyContribution = 0.85

	maxFrequencyBound = 0.5
)

// GroupingPolicy selects how elementary matrices are combined into component
// series.
type GroupingPolicy string

const (
	// PolicyNone performs no grouping. Every eigencomponent becomes its own
	// component series, so the number of groups equals the window size.
	PolicyNone GroupingPolicy = "none"

	// PolicyCount partitions the eigencomponent indices into Count contiguous
	// ranges and sums each range.
	PolicyCount GroupingPolicy = "count"

	// PolicyAuto splits eigencomponents into trend, seasonal, and residual
	// groups based on the spectral content of each eigenvector.
	PolicyAuto GroupingPolicy = "auto"

	// PolicyIndices sums the eigencomponents listed in each entry of Indices.
	// Groups may overlap and do not have to cover every index.
	PolicyIndices GroupingPolicy = "indices"
)

// Grouping is a closed tagged union over the four grouping policies. Count is
// only read with PolicyCount and Indices only with PolicyIndices. The zero
// value is PolicyNone.
type Grouping struct {
	Policy  GroupingPolicy `json:"policy"`
	Count   int            `json:"count,omitempty"`
	Indices [][]int        `json:"indices,omitempty"`
}

// GroupNone returns the identity grouping.
func GroupNone() Grouping {
	return Grouping{Policy: PolicyNone}
}

// GroupCount returns a grouping into count contiguous index ranges.
func GroupCount(count int) Grouping {
	return Grouping{Policy: PolicyCount, Count: count}
}

// GroupAuto returns the automatic trend/seasonal/residual grouping.
func GroupAuto() Grouping {
	return Grouping{Policy: PolicyAuto}
}

// GroupIndices returns a grouping with one group per explicit index list.
func GroupIndices(groups ...[]int) Grouping {
	return Grouping{Policy: PolicyIndices, Indices: groups}
}

// Options configures a singular spectrum analysis transform. All fields are
// fixed at construction and validated eagerly before any numerical work.
type Options struct {
	// WindowSize is the embedding window length and must be between 2 and the
	// series length. Ignored when WindowFraction is set.
	WindowSize int `json:"window_size,omitempty"`

	// WindowFraction derives the window length from the series length as
	// ceil(fraction * n) floored at 2. Must be greater than 0 and at most 1.
	WindowFraction float64 `json:"window_fraction,omitempty"`

	Grouping Grouping `json:"grouping"`

	// LowerFrequencyBound is the periodogram frequency cutoff below which
	// cumulative power is attributed to trend. Only read with PolicyAuto.
	LowerFrequencyBound float64 `json:"lower_frequency_bound,omitempty"`

	// LowerFrequencyContribution is the power-fraction threshold separating
	// trend and residual eigencomponents. Only read with PolicyAuto.
	LowerFrequencyContribution float64 `json:"lower_frequency_contribution,omitempty"`

	// Parallelization sets how many samples to transform concurrently. More
	// will increase memory and compute usage.
	Parallelization int `json:"parallelization,omitempty"`
}

// NewDefaultOptions returns a default set of transform options
func NewDefaultOptions() *Options {
	return &Options{
		WindowSize:                 DefaultWindowSize,
		Grouping:                   GroupNone(),
		LowerFrequencyBound:        DefaultLowerFrequencyBound,
		LowerFrequencyContribution: DefaultLowerFrequencyContribution,
		Parallelization:            1,
	}
}

// validate checks every option against the series length before any numeric
// work, fills zero-valued frequency parameters with their defaults, and
// returns the effective window size.
func (o *Options) validate(nTimestamps int) (int, error) {
	w, err := o.resolveWindow(nTimestamps)
	if err != nil {
		return 0, err
	}

	if o.LowerFrequencyBound == 0 {
		o.LowerFrequencyBound = DefaultLowerFrequencyBound
	}
	if o.LowerFrequencyBound < 0 || o.LowerFrequencyBound >= maxFrequencyBound {
		return 0, fmt.Errorf("got %f, %w", o.LowerFrequencyBound, ErrFrequencyBoundOutOfRange)
	}

	if o.LowerFrequencyContribution == 0 {
		o.LowerFrequencyContribution = DefaultLowerFrequencyContribution
	}
	if o.LowerFrequencyContribution < 0 || o.LowerFrequencyContribution >= 1 {
		return 0, fmt.Errorf("got %f, %w", o.LowerFrequencyContribution, ErrFrequencyContributionOutOfRange)
	}

	if err := o.validateGrouping(w); err != nil {
		return 0, err
	}
	return w, nil
}

func (o *Options) resolveWindow(nTimestamps int) (int, error) {
	w := o.WindowSize
	if o.WindowFraction != 0 {
		if o.WindowFraction < 0 || o.WindowFraction > 1 {
			return 0, fmt.Errorf("got %f, %w", o.WindowFraction, ErrWindowFractionOutOfRange)
		}
		w = int(math.Ceil(o.WindowFraction * float64(nTimestamps)))
		if w < MinWindowSize {
			w = MinWindowSize
		}
	}

	if w < MinWindowSize || w > nTimestamps {
		return 0, fmt.Errorf("got %d with %d timestamps, %w", w, nTimestamps, ErrWindowSizeOutOfRange)
	}
	return w, nil
}

func (o *Options) validateGrouping(w int) error {
	switch o.Grouping.Policy {
	case "", PolicyNone, PolicyAuto:
	case PolicyCount:
		if o.Grouping.Count < 1 || o.Grouping.Count > w {
			return fmt.Errorf("got %d groups with window size %d, %w", o.Grouping.Count, w, ErrGroupCountOutOfRange)
		}
	case PolicyIndices:
		if len(o.Grouping.Indices) == 0 {
			return ErrNoGroupIndices
		}
		for g, group := range o.Grouping.Indices {
			for _, idx := range group {
				if idx < 0 || idx >= w {
					return fmt.Errorf("got index %d in group %d with window size %d, %w", idx, g, w, ErrGroupIndexOutOfBounds)
				}
			}
		}
	default:
		return fmt.Errorf("got %q, %w", o.Grouping.Policy, ErrUnknownGroupingPolicy)
	}
	return nil
}

// NumGroups returns the number of component series the grouping produces for
// a given window size.
func (g Grouping) NumGroups(windowSize int) int {
	switch g.Policy {
	case PolicyCount:
		return g.Count
	case PolicyAuto:
		return 3
	case PolicyIndices:
		return len(g.Indices)
	default:
		return windowSize
	}
}
