// Package classifier is a collection of trainable binary classifiers used as
// the underlying models of the bootstrap ensemble estimator.
package classifier

import (
	"gonum.org/v1/gonum/mat"
)

// Classifier is a trainable binary classifier producing positive class
// probabilities.
type Classifier interface {
	Fit(x mat.Matrix, y []float64) error
	PredictProba(x mat.Matrix) ([]float64, error)
	Score(x mat.Matrix, y []float64) (float64, error)
	Intercept() float64
	Coef() []float64
}

// Factory constructs fresh Classifier instances from an immutable
// configuration. Every call must return an independent untrained model so
// ensemble members share no mutable state.
type Factory interface {
	NewClassifier() (Classifier, error)
}
