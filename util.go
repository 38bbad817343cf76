package probband

import (
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineProbabilityBand generates an echart line chart for a prediction bundle
// plotting the point estimate along with the upper and lower interval bounds.
// Samples are ordered by increasing point probability so the band reads as a
// curve. If actual outcomes are provided they are plotted as a fourth series.
func LineProbabilityBand(title string, res *Results, actual []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	order := make([]int, len(res.Probability))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return res.Probability[order[i]] < res.Probability[order[j]]
	})

	rank := make([]int, 0, len(order))
	lineDataProb := make([]opts.LineData, 0, len(order))
	lineDataUpper := make([]opts.LineData, 0, len(order))
	lineDataLower := make([]opts.LineData, 0, len(order))
	lineDataActual := make([]opts.LineData, 0, len(order))

	for i, idx := range order {
		rank = append(rank, i)
		lineDataProb = append(lineDataProb, opts.LineData{Value: res.Probability[idx]})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: res.Upper[idx]})
		lineDataLower = append(lineDataLower, opts.LineData{Value: res.Lower[idx]})
		if actual != nil {
			lineDataActual = append(lineDataActual, opts.LineData{Value: actual[idx]})
		}
	}

	line = line.SetXAxis(rank).
		AddSeries("Probability", lineDataProb).
		AddSeries("Upper", lineDataUpper).
		AddSeries("Lower", lineDataLower)
	if actual != nil {
		line = line.AddSeries("Actual", lineDataActual)
	}
	return line
}

// LineReliability generates an echart reliability diagram comparing binned
// predicted probabilities against observed positive outcome frequencies. A
// perfectly calibrated model tracks the diagonal. Empty bins are skipped.
func LineReliability(title string, predicted, actual []float64, bins int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	if bins < 1 {
		bins = 10
	}
	binCnt := make([]int, bins)
	binPred := make([]float64, bins)
	binPos := make([]float64, bins)
	for i := 0; i < len(predicted) && i < len(actual); i++ {
		if math.IsNaN(predicted[i]) || math.IsNaN(actual[i]) {
			continue
		}
		b := int(predicted[i] * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		if b < 0 {
			b = 0
		}
		binCnt[b]++
		binPred[b] += predicted[i]
		binPos[b] += actual[i]
	}

	midpoints := make([]float64, 0, bins)
	lineDataObserved := make([]opts.LineData, 0, bins)
	lineDataIdeal := make([]opts.LineData, 0, bins)
	for b := 0; b < bins; b++ {
		if binCnt[b] == 0 {
			continue
		}
		mean := binPred[b] / float64(binCnt[b])
		midpoints = append(midpoints, mean)
		lineDataObserved = append(lineDataObserved, opts.LineData{Value: binPos[b] / float64(binCnt[b])})
		lineDataIdeal = append(lineDataIdeal, opts.LineData{Value: mean})
	}

	line.SetXAxis(midpoints).
		AddSeries("Observed", lineDataObserved).
		AddSeries("Ideal", lineDataIdeal)
	return line
}

// PlotFit uses the Apache Echarts library to generate an html page showing the
// training set fit with its confidence band along with a reliability diagram
// of the calibrated probabilities.
func (e *Estimator) PlotFit(w io.Writer) error {
	if !e.trained {
		return ErrUntrainedEstimator
	}
	td := e.fitTrainingData
	res := e.fitResults

	page := components.NewPage()
	page.AddCharts(
		LineProbabilityBand("Probability Fit", res, td.Y),
		LineReliability("Reliability", res.Probability, td.Y, 10),
	)
	return page.Render(w)
}
