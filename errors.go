package ssa

import "errors"

var (
	ErrUninitializedTransform          = errors.New("uninitialized transform")
	ErrNoInputSeries                   = errors.New("no input series")
	ErrMismatchedSeriesLen             = errors.New("input series have different lengths")
	ErrWindowSizeOutOfRange            = errors.New("window size must be between 2 and the series length")
	ErrWindowFractionOutOfRange        = errors.New("window fraction must be greater than 0 and at most 1")
	ErrUnknownGroupingPolicy           = errors.New("unknown grouping policy")
	ErrGroupCountOutOfRange            = errors.New("group count must be between 1 and the window size")
	ErrGroupIndexOutOfBounds           = errors.New("group index must be between 0 and window size - 1")
	ErrNoGroupIndices                  = errors.New("no group indices")
	ErrFrequencyBoundOutOfRange        = errors.New("lower frequency bound must be greater than 0 and lower than 0.5")
	ErrFrequencyContributionOutOfRange = errors.New("lower frequency contribution must be greater than 0 and lower than 1")
)
