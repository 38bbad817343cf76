// Package calibration wraps a classifier with a probability calibration
// procedure so predicted scores better match observed outcome frequencies.
package calibration

import (
	"errors"
	"fmt"

	"github.com/probband/go-probband/classifier"
	mat_ "github.com/probband/go-probband/mat"
	"github.com/probband/go-probband/stats"
	"gonum.org/v1/gonum/mat"
)

const DefaultFolds = 5

var (
	ErrNoFactory              = errors.New("no classifier factory")
	ErrUnknownMethod          = errors.New("unknown calibration method")
	ErrInvalidFolds           = errors.New("folds must be at least 2")
	ErrCalibrationLenMismatch = errors.New("scores and targets must have equal nonzero lengths")
	ErrUntrainedCalibration   = errors.New("calibrated classifier has not been trained yet")
)

// Method selects the calibration procedure applied to raw classifier scores
type Method string

const (
	// MethodSigmoid fits a logistic curve to the scores (Platt scaling)
	MethodSigmoid Method = "sigmoid"
	// MethodIsotonic fits a monotone step curve with pool-adjacent-violators
	MethodIsotonic Method = "isotonic"
)

// Calibrator adjusts raw classifier scores into calibrated probabilities
type Calibrator interface {
	Fit(scores, targets []float64) error
	Transform(score float64) float64
}

// Options represents the cross-validation and calibration scheme used when
// fitting a calibrated classifier
type Options struct {
	// Method selects the calibration curve. Defaults to MethodSigmoid.
	Method Method `json:"method"`

	// Folds is the number of cross-fitting folds used to collect out-of-fold
	// scores for the calibrator. Folds shrinks to the row count on datasets
	// smaller than the configured value. Defaults to DefaultFolds.
	Folds int `json:"folds"`
}

// Validate runs basic validation on calibration options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Method == "" {
		o.Method = MethodSigmoid
	}
	switch o.Method {
	case MethodSigmoid, MethodIsotonic:
	default:
		return nil, fmt.Errorf("got %q, %w", o.Method, ErrUnknownMethod)
	}

	if o.Folds == 0 {
		o.Folds = DefaultFolds
	}
	if o.Folds < 2 {
		return nil, fmt.Errorf("got %d, %w", o.Folds, ErrInvalidFolds)
	}
	return o, nil
}

// NewDefaultOptions returns a default set of calibration options
func NewDefaultOptions() *Options {
	return &Options{
		Method: MethodSigmoid,
		Folds:  DefaultFolds,
	}
}

func newCalibrator(method Method) (Calibrator, error) {
	switch method {
	case MethodSigmoid:
		return NewSigmoidCalibrator(), nil
	case MethodIsotonic:
		return NewIsotonicCalibrator(), nil
	default:
		return nil, fmt.Errorf("got %q, %w", method, ErrUnknownMethod)
	}
}

// CalibratedClassifier trains a classifier together with a calibration curve.
// Cross-fitting collects out-of-fold scores to train the calibrator so the
// curve is not fit on scores the classifier has already memorized, then the
// final classifier is refit on the full dataset. Immutable after fitting.
type CalibratedClassifier struct {
	opt     *Options
	factory classifier.Factory

	clf     classifier.Classifier
	cal     Calibrator
	trained bool
}

// New creates an untrained calibrated classifier from a classifier factory.
// If no options are provided a default is used.
func New(factory classifier.Factory, opt *Options) (*CalibratedClassifier, error) {
	if factory == nil {
		return nil, ErrNoFactory
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &CalibratedClassifier{
		opt:     opt,
		factory: factory,
	}, nil
}

// Fit trains the underlying classifier and its calibration curve on the given
// training data
func (c *CalibratedClassifier) Fit(x mat.Matrix, y []float64) error {
	// instances restored from a serialized model are inference-only
	if c.factory == nil {
		return ErrNoFactory
	}
	m, _ := x.Dims()

	oofScores, err := c.outOfFoldScores(x, y)
	if err != nil {
		return err
	}

	cal, err := newCalibrator(c.opt.Method)
	if err != nil {
		return err
	}
	if err := cal.Fit(oofScores, y); err != nil {
		return fmt.Errorf("unable to fit calibration curve on %d scores, %w", m, err)
	}

	final, err := c.factory.NewClassifier()
	if err != nil {
		return fmt.Errorf("unable to initialize final classifier, %w", err)
	}
	if err := final.Fit(x, y); err != nil {
		return fmt.Errorf("unable to fit final classifier, %w", err)
	}

	c.clf = final
	c.cal = cal
	c.trained = true
	return nil
}

// outOfFoldScores collects raw classifier scores for every training row from
// models that never saw that row. Datasets too small to split are scored by a
// single model trained on all rows.
func (c *CalibratedClassifier) outOfFoldScores(x mat.Matrix, y []float64) ([]float64, error) {
	m, _ := x.Dims()

	folds := c.opt.Folds
	if m < folds {
		folds = m
	}
	if folds < 2 {
		clf, err := c.factory.NewClassifier()
		if err != nil {
			return nil, fmt.Errorf("unable to initialize fold classifier, %w", err)
		}
		if err := clf.Fit(x, y); err != nil {
			return nil, fmt.Errorf("unable to fit fold classifier, %w", err)
		}
		return clf.PredictProba(x)
	}

	splits, err := KFoldSplit(m, folds)
	if err != nil {
		return nil, fmt.Errorf("unable to split %d rows for cross-fitting, %w", m, err)
	}

	oof := make([]float64, m)
	for i, fold := range splits {
		trainX, err := mat_.GatherRows(x, fold.TrainIdx)
		if err != nil {
			return nil, fmt.Errorf("unable to gather training rows for fold %d, %w", i, err)
		}
		trainY := make([]float64, len(fold.TrainIdx))
		for j, ri := range fold.TrainIdx {
			trainY[j] = y[ri]
		}

		clf, err := c.factory.NewClassifier()
		if err != nil {
			return nil, fmt.Errorf("unable to initialize fold classifier, %w", err)
		}
		if err := clf.Fit(trainX, trainY); err != nil {
			return nil, fmt.Errorf("unable to fit classifier for fold %d, %w", i, err)
		}

		testX, err := mat_.GatherRows(x, fold.TestIdx)
		if err != nil {
			return nil, fmt.Errorf("unable to gather held-out rows for fold %d, %w", i, err)
		}
		scores, err := clf.PredictProba(testX)
		if err != nil {
			return nil, fmt.Errorf("unable to score held-out rows for fold %d, %w", i, err)
		}
		for j, ri := range fold.TestIdx {
			oof[ri] = scores[j]
		}
	}
	return oof, nil
}

// PredictProba returns the calibrated positive class probability for every
// input row, clipped to [0,1]
func (c *CalibratedClassifier) PredictProba(x mat.Matrix) ([]float64, error) {
	if !c.trained {
		return nil, ErrUntrainedCalibration
	}

	raw, err := c.clf.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("unable to compute raw scores, %w", err)
	}
	for i, score := range raw {
		raw[i] = stats.Clip(c.cal.Transform(score), 0.0, 1.0)
	}
	return raw, nil
}

// Score returns the mean accuracy of the calibrated classifier using a 0.5
// probability threshold
func (c *CalibratedClassifier) Score(x mat.Matrix, y []float64) (float64, error) {
	if !c.trained {
		return 0.0, ErrUntrainedCalibration
	}
	return c.clf.Score(x, y)
}
