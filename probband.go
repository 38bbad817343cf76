// Package probband trains a bootstrap ensemble of calibrated binary
// classifiers producing probability predictions with confidence intervals. A
// point estimate model is fit on the full training data while NBoot additional
// models are fit on independent resamples drawn with replacement. Interval
// bounds come from empirical quantiles of the ensemble predictions.
package probband

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/probband/go-probband/calibration"
	"github.com/probband/go-probband/classifier"
	"github.com/probband/go-probband/dataset"
	"github.com/probband/go-probband/stats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyDataset           = errors.New("no training dataset or uninitialized")
	ErrUntrainedEstimator     = errors.New("estimator has not been fit yet")
	ErrInvalidConfidenceLevel = errors.New("confidence level must be an integer between 1 and 99")
)

// Estimator fits a point estimate calibrated classifier along with a bootstrap
// ensemble of calibrated classifiers on resampled training data. The fitted
// state only changes on a fully successful Fit, so a failed refit leaves the
// previous ensemble intact. Instances are not safe for concurrent mutation,
// but a fitted estimator may serve Predict calls from multiple goroutines.
type Estimator struct {
	opt     *Options
	factory classifier.Factory

	point   *calibration.CalibratedClassifier
	members []*calibration.CalibratedClassifier

	fitTrainingData *dataset.Dataset
	fitResults      *Results
	fitScores       *Scores

	trained bool
}

// New creates a new instance of an estimator using a classifier factory for
// each ensemble member along with estimator options. If no options are input,
// a default will be used.
func New(factory classifier.Factory, opt *Options) (*Estimator, error) {
	if factory == nil {
		return nil, calibration.ErrNoFactory
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Estimator{
		opt:     opt,
		factory: factory,
	}, nil
}

// Fit trains the point estimate model on the full dataset and every bootstrap
// member on its own resample. Member fits run in parallel, but all resamples
// are drawn up front from a single sequential stream so a fixed seed produces
// the same ensemble at any parallelization.
func (e *Estimator) Fit(d *dataset.Dataset) error {
	// instances restored from a serialized model are inference-only
	if e.factory == nil {
		return calibration.ErrNoFactory
	}
	if d == nil || d.NumRows() == 0 {
		return ErrEmptyDataset
	}

	sampleSize := e.opt.SampleSize
	if sampleSize == 0 {
		sampleSize = d.NumRows()
	}

	seed := e.opt.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rnd := rand.New(rand.NewPCG(seed, seed+1))

	point, err := calibration.New(e.factory, e.opt.Calibration)
	if err != nil {
		return fmt.Errorf("unable to initialize point estimate model, %w", err)
	}
	if err := point.Fit(d.X, d.Y); err != nil {
		return fmt.Errorf("unable to fit point estimate model, %w", err)
	}

	resamples := make([]*dataset.Dataset, e.opt.NBoot)
	for i := range resamples {
		res, err := d.Resample(sampleSize, rnd)
		if err != nil {
			return fmt.Errorf("unable to draw bootstrap resample %d, %w", i, err)
		}
		resamples[i] = res
	}

	parallelization := e.opt.Parallelization
	if parallelization == 0 {
		parallelization = runtime.GOMAXPROCS(0)
	}

	members := make([]*calibration.CalibratedClassifier, e.opt.NBoot)
	sem := make(chan struct{}, parallelization)

	var wg sync.WaitGroup
	var errMx sync.Mutex
	var fitErr error
	for i, res := range resamples {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int, res *dataset.Dataset) {
			defer func() {
				wg.Done()
				<-sem
			}()

			member, err := calibration.New(e.factory, e.opt.Calibration)
			if err == nil {
				err = member.Fit(res.X, res.Y)
			}
			if err != nil {
				errMx.Lock()
				if fitErr == nil {
					fitErr = fmt.Errorf("unable to fit bootstrap member %d, %w", i, err)
				}
				errMx.Unlock()
				return
			}

			members[i] = member
			slog.Debug("fit bootstrap member",
				slog.Int("member", i+1),
				slog.Int("total", e.opt.NBoot),
			)
		}(i, res)
	}
	wg.Wait()
	if fitErr != nil {
		return fitErr
	}

	// score the training set before publishing so a failed fit never
	// mutates the estimator
	res, err := predictWith(point, members, d.X, DefaultConfidenceLevel)
	if err != nil {
		return fmt.Errorf("unable to predict on the training dataset, %w", err)
	}
	scores, err := NewScores(res.Probability, d.Y)
	if err != nil {
		return fmt.Errorf("unable to score the training dataset fit, %w", err)
	}

	e.point = point
	e.members = members
	e.fitTrainingData = d.Copy()
	e.fitResults = res
	e.fitScores = scores
	e.trained = true

	return nil
}

// Predict returns the point estimate probability of the positive class for
// every input row along with lower and upper interval bounds at the given
// percent confidence level. The level must lie strictly between 0 and 100.
// Without bootstrap members the bounds are NaN.
func (e *Estimator) Predict(x mat.Matrix, confidenceLevel int) (*Results, error) {
	if !e.trained {
		return nil, ErrUntrainedEstimator
	}
	if x == nil {
		return nil, classifier.ErrNoDesignMatrix
	}
	if confidenceLevel <= 0 || confidenceLevel >= 100 {
		return nil, fmt.Errorf("got %d, %w", confidenceLevel, ErrInvalidConfidenceLevel)
	}
	return predictWith(e.point, e.members, x, confidenceLevel)
}

func predictWith(point *calibration.CalibratedClassifier, members []*calibration.CalibratedClassifier, x mat.Matrix, confidenceLevel int) (*Results, error) {
	probability, err := point.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("unable to predict with point estimate model, %w", err)
	}

	n := len(probability)
	lower := make([]float64, n)
	upper := make([]float64, n)
	if len(members) == 0 {
		for i := 0; i < n; i++ {
			lower[i] = math.NaN()
			upper[i] = math.NaN()
		}
		return &Results{
			Probability: probability,
			Lower:       lower,
			Upper:       upper,
		}, nil
	}

	memberProbs := make([][]float64, len(members))
	for i, member := range members {
		probs, err := member.PredictProba(x)
		if err != nil {
			return nil, fmt.Errorf("unable to predict with bootstrap member %d, %w", i, err)
		}
		memberProbs[i] = probs
	}

	alpha := (1.0 - float64(confidenceLevel)/100.0) / 2.0
	sample := make([]float64, len(members))
	for i := 0; i < n; i++ {
		for j := range memberProbs {
			sample[j] = memberProbs[j][i]
		}
		lower[i], upper[i] = stats.Interval(sample, alpha)
	}

	return &Results{
		Probability: probability,
		Lower:       lower,
		Upper:       upper,
	}, nil
}

// Score returns the mean accuracy of the point estimate model using a 0.5
// probability threshold
func (e *Estimator) Score(x mat.Matrix, y []float64) (float64, error) {
	if !e.trained {
		return 0.0, ErrUntrainedEstimator
	}
	return e.point.Score(x, y)
}

// NumBootstraps returns the number of trained bootstrap ensemble members
func (e *Estimator) NumBootstraps() int {
	return len(e.members)
}

// TrainingData returns a copy of the dataset the estimator was last fit on
func (e *Estimator) TrainingData() *dataset.Dataset {
	if e.fitTrainingData == nil {
		return nil
	}
	return e.fitTrainingData.Copy()
}

// FitResults returns the predictions on the training dataset at the default
// confidence level from the most recent fit
func (e *Estimator) FitResults() *Results {
	return e.fitResults
}

// FitScores returns the probability scores on the training dataset from the
// most recent fit
func (e *Estimator) FitScores() *Scores {
	return e.fitScores
}
