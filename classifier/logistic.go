package classifier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultLearningRate = 0.1
	DefaultIterations   = 1000
	DefaultTolerance    = 1e-6
)

var (
	ErrNonPositiveLearningRate = errors.New("learning rate must be positive")
	ErrNegativeIterations      = errors.New("negative iterations")
	ErrNegativeTolerance       = errors.New("negative tolerance")
	ErrNegativeL2              = errors.New("negative l2 penalty")
)

// LogisticOptions represents input options to train a logistic regression
type LogisticOptions struct {
	// LearningRate scales the gradient step on each iteration.
	LearningRate float64

	// Iterations is the maximum number of gradient descent passes over the
	// training data.
	Iterations int

	// Tolerance is the smallest coefficient change on each iteration to
	// determine when to stop iterating.
	Tolerance float64

	// L2 adds ridge regularization on the coefficients excluding the
	// intercept. 0.0 disables regularization.
	L2 float64

	// FitIntercept trains a constant bias term if set to true
	FitIntercept bool
}

// Validate runs basic validation on logistic options
func (l *LogisticOptions) Validate() (*LogisticOptions, error) {
	if l == nil {
		l = NewDefaultLogisticOptions()
	}

	if l.LearningRate <= 0 {
		return nil, ErrNonPositiveLearningRate
	}
	if l.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if l.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if l.L2 < 0 {
		return nil, ErrNegativeL2
	}
	return l, nil
}

// NewDefaultLogisticOptions returns a default set of logistic regression options
func NewDefaultLogisticOptions() *LogisticOptions {
	return &LogisticOptions{
		LearningRate: DefaultLearningRate,
		Iterations:   DefaultIterations,
		Tolerance:    DefaultTolerance,
		FitIntercept: true,
	}
}

// NewClassifier implements Factory so a LogisticOptions value can serve as the
// immutable template for constructing ensemble members.
func (l *LogisticOptions) NewClassifier() (Classifier, error) {
	return NewLogisticRegression(l)
}

// LogisticRegression computes a binary logistic regression using batch
// gradient descent. Weights initialize at zero so repeated fits on the same
// data are deterministic.
type LogisticRegression struct {
	opt *LogisticOptions

	coef      []float64
	intercept float64
	trained   bool
}

// NewLogisticRegression initializes a logistic regression model ready for fitting
func NewLogisticRegression(opt *LogisticOptions) (*LogisticRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	optCopy := *opt
	return &LogisticRegression{
		opt: &optCopy,
	}, nil
}

// NewLogisticRegressionFromWeights initializes a trained logistic regression
// for immediate inference given a previously fitted intercept and coefficients.
func NewLogisticRegressionFromWeights(intercept float64, coef []float64) *LogisticRegression {
	coefCopy := make([]float64, len(coef))
	copy(coefCopy, coef)
	return &LogisticRegression{
		opt:       NewDefaultLogisticOptions(),
		coef:      coefCopy,
		intercept: intercept,
		trained:   true,
	}
}

// Fit the model according to the given training data by minimizing log loss
func (l *LogisticRegression) Fit(x mat.Matrix, y []float64) error {
	if err := l.fitValidate(x, y); err != nil {
		return err
	}
	m, n := x.Dims()

	beta := make([]float64, n)
	var intercept float64

	pred := make([]float64, m)
	resid := make([]float64, m)
	grad := make([]float64, n)
	xcols := make([][]float64, n)
	for j := 0; j < n; j++ {
		xcols[j] = mat.Col(nil, j, x)
	}

	invM := 1.0 / float64(m)
	for i := 0; i < l.opt.Iterations; i++ {
		predictProba(x, beta, intercept, pred)
		floats.SubTo(resid, pred, y)

		maxUpdate := 0.0
		for j := 0; j < n; j++ {
			grad[j] = floats.Dot(xcols[j], resid)*invM + l.opt.L2*beta[j]
			step := l.opt.LearningRate * grad[j]
			beta[j] -= step
			maxUpdate = math.Max(maxUpdate, math.Abs(step))
		}
		if l.opt.FitIntercept {
			step := l.opt.LearningRate * floats.Sum(resid) * invM
			intercept -= step
			maxUpdate = math.Max(maxUpdate, math.Abs(step))
		}

		// break early once coefficient movement is within tolerance
		if maxUpdate < l.opt.Tolerance {
			break
		}
	}

	l.coef = beta
	l.intercept = intercept
	l.trained = true
	return nil
}

func (l *LogisticRegression) fitValidate(x mat.Matrix, y []float64) error {
	if l.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if len(y) == 0 {
		return ErrNoTargetVector
	}

	m, _ := x.Dims()
	if m != len(y) {
		return fmt.Errorf("training data has %d rows and target has %d, %w", m, len(y), ErrTargetLenMismatch)
	}
	for i, label := range y {
		if label != 0.0 && label != 1.0 {
			return fmt.Errorf("target %f at row %d, %w", label, i, ErrNonBinaryTarget)
		}
	}
	return nil
}

// PredictProba returns the positive class probability for every input row
func (l *LogisticRegression) PredictProba(x mat.Matrix) ([]float64, error) {
	if l.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if !l.trained {
		return nil, ErrUntrainedModel
	}

	m, n := x.Dims()
	if n != len(l.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(l.coef), ErrFeatureLenMismatch)
	}

	probs := make([]float64, m)
	predictProba(x, l.coef, l.intercept, probs)
	return probs, nil
}

// Score returns the mean accuracy of the model on the given data using a 0.5
// probability threshold
func (l *LogisticRegression) Score(x mat.Matrix, y []float64) (float64, error) {
	if len(y) == 0 {
		return 0.0, ErrNoTargetVector
	}
	m, _ := x.Dims()
	if m != len(y) {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d, %w", m, len(y), ErrTargetLenMismatch)
	}

	probs, err := l.PredictProba(x)
	if err != nil {
		return 0.0, err
	}

	var correct int
	for i, p := range probs {
		predicted := 0.0
		if p > 0.5 {
			predicted = 1.0
		}
		if predicted == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(m), nil
}

// Intercept returns the trained bias term if FitIntercept is set to true.
// Defaults to 0.0 if not set.
func (l *LogisticRegression) Intercept() float64 {
	return l.intercept
}

// Coef returns a slice copy of the trained coefficients in the same order as
// the training feature matrix by column.
func (l *LogisticRegression) Coef() []float64 {
	c := make([]float64, len(l.coef))
	copy(c, l.coef)
	return c
}

func predictProba(x mat.Matrix, beta []float64, intercept float64, dst []float64) {
	m, n := x.Dims()
	for i := 0; i < m; i++ {
		z := intercept
		for j := 0; j < n; j++ {
			z += beta[j] * x.At(i, j)
		}
		dst[i] = sigmoid(z)
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
