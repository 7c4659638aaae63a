package ssa

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineComponents generates an echart multi-line chart for a set of component
// series sharing one timestamp axis. The input y is a slice of series that
// must all have the same length, typically the original series followed by
// the component series of one sample.
func LineComponents(title string, seriesName []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var n int
	if len(y) > 0 {
		n = len(y[0])
	}
	xAxis := make([]int, 0, n)
	for t := 0; t < n; t++ {
		xAxis = append(xAxis, t)
	}

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(xAxis)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}
