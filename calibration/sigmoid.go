package calibration

import (
	"math"
)

const (
	sigmoidLearningRate = 0.1
	sigmoidIterations   = 1000
	sigmoidTolerance    = 1e-7
)

// SigmoidCalibrator maps raw scores to probabilities through a fitted logistic
// curve sigmoid(slope*score + offset), also known as Platt scaling. Targets
// are smoothed by class counts during fitting to avoid saturating the curve on
// small datasets.
type SigmoidCalibrator struct {
	slope  float64
	offset float64
}

// NewSigmoidCalibrator returns an identity-initialized sigmoid calibrator
func NewSigmoidCalibrator() *SigmoidCalibrator {
	return &SigmoidCalibrator{slope: 1.0}
}

// NewSigmoidCalibratorFromParams restores a fitted sigmoid calibrator
func NewSigmoidCalibratorFromParams(slope, offset float64) *SigmoidCalibrator {
	return &SigmoidCalibrator{
		slope:  slope,
		offset: offset,
	}
}

// Fit estimates the slope and offset by gradient descent on the log loss of
// the calibration samples
func (s *SigmoidCalibrator) Fit(scores, targets []float64) error {
	if len(scores) == 0 || len(scores) != len(targets) {
		return ErrCalibrationLenMismatch
	}

	var nPos, nNeg float64
	for _, target := range targets {
		if target == 1.0 {
			nPos++
			continue
		}
		nNeg++
	}
	tPos := (nPos + 1.0) / (nPos + 2.0)
	tNeg := 1.0 / (nNeg + 2.0)

	smoothed := make([]float64, len(targets))
	for i, target := range targets {
		if target == 1.0 {
			smoothed[i] = tPos
			continue
		}
		smoothed[i] = tNeg
	}

	slope := 1.0
	offset := 0.0
	invM := 1.0 / float64(len(scores))
	for i := 0; i < sigmoidIterations; i++ {
		var gradSlope, gradOffset float64
		for j, score := range scores {
			p := sigmoid(slope*score + offset)
			diff := p - smoothed[j]
			gradSlope += diff * score
			gradOffset += diff
		}
		stepSlope := sigmoidLearningRate * gradSlope * invM
		stepOffset := sigmoidLearningRate * gradOffset * invM
		slope -= stepSlope
		offset -= stepOffset

		if math.Max(math.Abs(stepSlope), math.Abs(stepOffset)) < sigmoidTolerance {
			break
		}
	}

	s.slope = slope
	s.offset = offset
	return nil
}

// Transform maps a raw score to a calibrated probability
func (s *SigmoidCalibrator) Transform(score float64) float64 {
	return sigmoid(s.slope*score + s.offset)
}

// Params returns the fitted slope and offset
func (s *SigmoidCalibrator) Params() (float64, float64) {
	return s.slope, s.offset
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
