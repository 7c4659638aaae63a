package window

import "errors"

var (
	ErrWindowTooSmall = errors.New("window size must be at least 2")
	ErrWindowTooLarge = errors.New("window size exceeds series length")
)

// MinSize is the smallest embedding window that still produces a lagged
// covariance matrix with more than one eigencomponent.
const MinSize = 2

// Count returns the number of length-size windows in a series of length n
// when sliding with a step of one.
func Count(n, size int) int {
	return n - size + 1
}

// Slide returns the overlapping windows of x with the given size and a step
// of one. Window k holds x[k : k+size] and aliases the backing slice of x
// rather than copying, so mutating x mutates the windows.
func Slide(x []float64, size int) ([][]float64, error) {
	if size < MinSize {
		return nil, ErrWindowTooSmall
	}
	if size > len(x) {
		return nil, ErrWindowTooLarge
	}

	n := Count(len(x), size)
	windows := make([][]float64, 0, n)
	for k := 0; k < n; k++ {
		windows = append(windows, x[k:k+size])
	}
	return windows, nil
}
