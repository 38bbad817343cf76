package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoidCalibratorFit(t *testing.T) {
	// overconfident scores on both ends with noisy outcomes
	scores := []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.4, 0.6, 0.7, 0.8, 0.85, 0.9, 0.95}
	targets := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 1, 1, 1}

	cal := NewSigmoidCalibrator()
	require.Nil(t, cal.Fit(scores, targets))

	// calibrated probabilities must preserve score ordering
	prev := cal.Transform(0.0)
	for _, s := range []float64{0.1, 0.25, 0.5, 0.75, 0.9, 1.0} {
		cur := cal.Transform(s)
		assert.Greater(t, cur, prev, "score %f", s)
		assert.GreaterOrEqual(t, cur, 0.0)
		assert.LessOrEqual(t, cur, 1.0)
		prev = cur
	}

	// high scores map above low scores by a wide margin
	assert.Greater(t, cal.Transform(0.95), cal.Transform(0.05)+0.15)
}

func TestSigmoidCalibratorFromParams(t *testing.T) {
	cal := NewSigmoidCalibratorFromParams(2.0, -1.0)
	assert.InDelta(t, 0.5, cal.Transform(0.5), 1e-12)

	slope, offset := cal.Params()
	assert.Equal(t, 2.0, slope)
	assert.Equal(t, -1.0, offset)
}

func TestSigmoidCalibratorLenMismatch(t *testing.T) {
	cal := NewSigmoidCalibrator()
	expected := ErrCalibrationLenMismatch

	assert.ErrorAs(t, cal.Fit(nil, nil), &expected)
	assert.ErrorAs(t, cal.Fit([]float64{0.5}, []float64{1, 0}), &expected)
}
