package probband

import (
	"errors"
	"fmt"
	"math"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

const logLossEps = 1e-15

// Scores summarizes how well predicted probabilities match observed binary
// outcomes.
type Scores struct {
	BrierScore float64 `json:"brier_score"` // mean squared error of probabilities
	LogLoss    float64 `json:"log_loss"`    // negative mean log likelihood
	Accuracy   float64 `json:"accuracy"`    // fraction correct at a 0.5 threshold
}

// NewScores computes all probability scores of the predicted values against
// the actual binary outcomes.
func NewScores(predicted, actual []float64) (*Scores, error) {
	brier, err := BrierScore(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute brier score, %w", err)
	}
	logLoss, err := LogLoss(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute log loss, %w", err)
	}
	accuracy, err := Accuracy(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute accuracy, %w", err)
	}
	return &Scores{
		BrierScore: brier,
		LogLoss:    logLoss,
		Accuracy:   accuracy,
	}, nil
}

// BrierScore computes the mean squared difference between predicted
// probabilities and binary outcomes. NaN predictions are skipped.
func BrierScore(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	brier := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		brier += math.Pow(actual[i]-predicted[i], 2.0)
	}
	brier /= float64(len(actual))
	return brier, nil
}

// LogLoss computes the negative mean log likelihood of the binary outcomes
// under the predicted probabilities. Predictions are clipped away from 0 and 1
// to keep the loss finite. NaN predictions are skipped.
func LogLoss(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	loss := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		p := math.Min(math.Max(predicted[i], logLossEps), 1.0-logLossEps)
		if actual[i] == 1.0 {
			loss -= math.Log(p)
			continue
		}
		loss -= math.Log(1.0 - p)
	}
	loss /= float64(len(actual))
	return loss, nil
}

// Accuracy computes the fraction of outcomes matched by binarizing the
// predicted probabilities at 0.5. NaN predictions are skipped.
func Accuracy(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}

	var correct int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		label := 0.0
		if predicted[i] > 0.5 {
			label = 1.0
		}
		if label == actual[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(actual)), nil
}
