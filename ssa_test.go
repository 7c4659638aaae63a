package ssa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsdecomp/go-ssa/seriesgen"
	"gonum.org/v1/gonum/floats"
)

func genSeries(n int) []float64 {
	return seriesgen.GenerateTrend(n, 1.2, 0.05).
		Add(seriesgen.GenerateWave(n, 4.3, 12.0, 0.3)).
		Add(seriesgen.GenerateNoise(n, 0.5))
}

func genSamples(nSamples, n int) [][]float64 {
	x := make([][]float64, 0, nSamples)
	for i := 0; i < nSamples; i++ {
		x = append(x, genSeries(n))
	}
	return x
}

func groupSum(components [][]float64) []float64 {
	sum := make([]float64, len(components[0]))
	for _, c := range components {
		floats.Add(sum, c)
	}
	return sum
}

func TestTransformReconstruction(t *testing.T) {
	testData := map[string]struct {
		opt *Options
	}{
		"minimum window":       {opt: &Options{WindowSize: 2}},
		"small window":         {opt: &Options{WindowSize: 5}},
		"window beyond half":   {opt: &Options{WindowSize: 35}},
		"window equals length": {opt: &Options{WindowSize: 50}},
		"fractional window":    {opt: &Options{WindowFraction: 0.25}},
	}

	x := genSamples(3, 50)
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			transform, err := New(td.opt)
			require.NoError(t, err)

			res, err := transform.Transform(x)
			require.NoError(t, err)
			require.Len(t, res, len(x))

			for i, components := range res {
				assert.InDeltaSlice(t, x[i], groupSum(components), 1e-8)
			}
		})
	}
}

func TestTransformShape(t *testing.T) {
	testData := map[string]struct {
		opt       *Options
		numGroups int
	}{
		"no grouping": {
			opt:       &Options{WindowSize: 6},
			numGroups: 6,
		},
		"integer groups": {
			opt:       &Options{WindowSize: 6, Grouping: GroupCount(4)},
			numGroups: 4,
		},
		"auto grouping": {
			opt:       &Options{WindowSize: 6, Grouping: GroupAuto()},
			numGroups: 3,
		},
		"explicit groups": {
			opt:       &Options{WindowSize: 6, Grouping: GroupIndices([]int{0, 1}, []int{2})},
			numGroups: 2,
		},
		"fractional window": {
			opt:       &Options{WindowFraction: 0.5},
			numGroups: 15,
		},
	}

	x := genSamples(2, 30)
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			transform, err := New(td.opt)
			require.NoError(t, err)

			res, err := transform.Transform(x)
			require.NoError(t, err)
			require.Len(t, res, len(x))

			for _, components := range res {
				require.Len(t, components, td.numGroups)
				for _, c := range components {
					assert.Len(t, c, 30)
				}
			}
		})
	}
}

func TestTransformWindowBounds(t *testing.T) {
	x := genSamples(1, 20)

	testData := map[string]struct {
		opt      *Options
		expected error
	}{
		"window of one": {
			opt:      &Options{WindowSize: 1},
			expected: ErrWindowSizeOutOfRange,
		},
		"window beyond series": {
			opt:      &Options{WindowSize: 21},
			expected: ErrWindowSizeOutOfRange,
		},
		"fraction beyond one": {
			opt:      &Options{WindowFraction: 1.5},
			expected: ErrWindowFractionOutOfRange,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			transform, err := New(td.opt)
			require.NoError(t, err)

			_, err = transform.Transform(x)
			assert.ErrorIs(t, err, td.expected)
		})
	}

	t.Run("half fraction resolves to ceil", func(t *testing.T) {
		transform, err := New(&Options{WindowFraction: 0.5})
		require.NoError(t, err)

		res, err := transform.Transform(x)
		require.NoError(t, err)
		assert.Len(t, res[0], 10)
	})

	t.Run("tiny fraction clamps to minimum window", func(t *testing.T) {
		transform, err := New(&Options{WindowFraction: 0.01})
		require.NoError(t, err)

		res, err := transform.Transform(x)
		require.NoError(t, err)
		assert.Len(t, res[0], MinWindowSize)
	})
}

func TestTransformEndToEnd(t *testing.T) {
	y := genSeries(20)

	transform, err := New(&Options{WindowSize: 5})
	require.NoError(t, err)

	res, err := transform.Transform([][]float64{y})
	require.NoError(t, err)

	require.Len(t, res, 1)
	require.Len(t, res[0], 5)
	for _, c := range res[0] {
		require.Len(t, c, 20)
	}
	assert.InDeltaSlice(t, y, groupSum(res[0]), 1e-6)
}

func TestTransformAutoDeterminism(t *testing.T) {
	x := genSamples(2, 60)
	opt := &Options{WindowSize: 12, Grouping: GroupAuto()}

	transform, err := New(opt)
	require.NoError(t, err)

	first, err := transform.Transform(x)
	require.NoError(t, err)
	second, err := transform.Transform(x)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestTransformParallelMatchesSerial(t *testing.T) {
	x := genSamples(8, 40)

	serial, err := New(&Options{WindowSize: 10, Grouping: GroupAuto(), Parallelization: 1})
	require.NoError(t, err)
	parallel, err := New(&Options{WindowSize: 10, Grouping: GroupAuto(), Parallelization: 4})
	require.NoError(t, err)

	serialRes, err := serial.Transform(x)
	require.NoError(t, err)
	parallelRes, err := parallel.Transform(x)
	require.NoError(t, err)

	require.Equal(t, serialRes, parallelRes)
}

func TestTransformSeries(t *testing.T) {
	y := genSeries(25)

	transform, err := New(&Options{WindowSize: 5, Grouping: GroupCount(2)})
	require.NoError(t, err)

	components, err := transform.TransformSeries(y)
	require.NoError(t, err)

	require.Len(t, components, 2)
	for _, c := range components {
		require.Len(t, c, 25)
	}
	assert.InDeltaSlice(t, y, groupSum(components), 1e-8)
}

func TestTransformInputErrors(t *testing.T) {
	transform, err := New(nil)
	require.NoError(t, err)

	_, err = transform.Transform(nil)
	assert.ErrorIs(t, err, ErrNoInputSeries)

	_, err = transform.Transform([][]float64{{1, 2, 3, 4}, {1, 2, 3}})
	assert.ErrorIs(t, err, ErrMismatchedSeriesLen)

	var uninitialized *SSA
	_, err = uninitialized.Transform([][]float64{{1, 2, 3, 4}})
	assert.ErrorIs(t, err, ErrUninitializedTransform)
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	y := genSeries(30)
	orig := make([]float64, len(y))
	copy(orig, y)

	transform, err := New(&Options{WindowSize: 7, Grouping: GroupAuto()})
	require.NoError(t, err)

	_, err = transform.TransformSeries(y)
	require.NoError(t, err)
	assert.Equal(t, orig, y)
}
