package stats

import (
	"math"
	"sort"
)

// Quantile computes the empirical q-quantile of vals using linear
// interpolation between order statistics. The rank is q*(n-1) and the value is
// interpolated between the floor and ceiling ranks weighted by the fractional
// rank position. vals must be sorted in ascending order. Returns NaN for an
// empty input.
func Quantile(vals []float64, q float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0.0 {
		return vals[0]
	}
	if q >= 1.0 {
		return vals[n-1]
	}

	rank := q * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return vals[lo]
	}
	frac := rank - float64(lo)
	return vals[lo]*(1.0-frac) + vals[hi]*frac
}

// Interval computes the empirical (alpha, 1-alpha) quantile pair of vals,
// sorting a copy so the input order is preserved.
func Interval(vals []float64, alpha float64) (float64, float64) {
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return Quantile(sorted, alpha), Quantile(sorted, 1.0-alpha)
}

// Clip bounds val to the closed interval [lo, hi].
func Clip(val, lo, hi float64) float64 {
	return math.Min(math.Max(val, lo), hi)
}
