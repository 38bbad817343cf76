package calibration

import (
	"sort"
)

// IsotonicCalibrator maps raw scores to probabilities through a monotone
// non-decreasing step curve fitted with the pool-adjacent-violators algorithm.
// Predictions linearly interpolate between calibration knots and clamp to the
// boundary values outside the fitted score range.
type IsotonicCalibrator struct {
	thresholds []float64
	values     []float64
}

// NewIsotonicCalibrator returns an empty isotonic calibrator
func NewIsotonicCalibrator() *IsotonicCalibrator {
	return &IsotonicCalibrator{}
}

// NewIsotonicCalibratorFromParams restores a fitted isotonic calibrator
func NewIsotonicCalibratorFromParams(thresholds, values []float64) *IsotonicCalibrator {
	t := make([]float64, len(thresholds))
	copy(t, thresholds)
	v := make([]float64, len(values))
	copy(v, values)
	return &IsotonicCalibrator{
		thresholds: t,
		values:     v,
	}
}

// Fit computes the isotonic regression of targets on scores
func (c *IsotonicCalibrator) Fit(scores, targets []float64) error {
	if len(scores) == 0 || len(scores) != len(targets) {
		return ErrCalibrationLenMismatch
	}

	type pair struct {
		score  float64
		target float64
	}
	pairs := make([]pair, len(scores))
	for i := range scores {
		pairs[i] = pair{scores[i], targets[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	// pool ties so interpolation thresholds are strictly increasing
	var thresholds, values, weights []float64
	for i := 0; i < len(pairs); {
		j := i
		var sum float64
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			sum += pairs[j].target
			j++
		}
		thresholds = append(thresholds, pairs[i].score)
		values = append(values, sum/float64(j-i))
		weights = append(weights, float64(j-i))
		i = j
	}

	// pool-adjacent-violators to enforce monotonicity
	for i := 1; i < len(values); i++ {
		if values[i] >= values[i-1] {
			continue
		}
		pooledValue := (values[i]*weights[i] + values[i-1]*weights[i-1]) / (weights[i] + weights[i-1])
		pooledWeight := weights[i] + weights[i-1]
		pooledThreshold := (thresholds[i]*weights[i] + thresholds[i-1]*weights[i-1]) / pooledWeight

		thresholds = append(thresholds[:i-1], append([]float64{pooledThreshold}, thresholds[i+1:]...)...)
		values = append(values[:i-1], append([]float64{pooledValue}, values[i+1:]...)...)
		weights = append(weights[:i-1], append([]float64{pooledWeight}, weights[i+1:]...)...)

		// rewind to re-check the merged block against its new neighbor
		i -= 2
		if i < 0 {
			i = 0
		}
	}

	c.thresholds = thresholds
	c.values = values
	return nil
}

// Transform maps a raw score to a calibrated probability
func (c *IsotonicCalibrator) Transform(score float64) float64 {
	n := len(c.thresholds)
	if n == 0 {
		return score
	}
	if score <= c.thresholds[0] {
		return c.values[0]
	}
	if score >= c.thresholds[n-1] {
		return c.values[n-1]
	}

	idx := sort.SearchFloat64s(c.thresholds, score)
	x0, x1 := c.thresholds[idx-1], c.thresholds[idx]
	y0, y1 := c.values[idx-1], c.values[idx]
	frac := (score - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}

// Params returns the fitted calibration knots
func (c *IsotonicCalibrator) Params() ([]float64, []float64) {
	t := make([]float64, len(c.thresholds))
	copy(t, c.thresholds)
	v := make([]float64, len(c.values))
	copy(v, c.values)
	return t, v
}
