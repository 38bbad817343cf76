package probband

import (
	"errors"
	"fmt"

	"github.com/probband/go-probband/calibration"
)

const (
	// DefaultNumBootstraps is the number of bootstrap ensemble members trained
	// when not configured.
	DefaultNumBootstraps = 100

	// DefaultConfidenceLevel is the percent confidence used for interval
	// bounds when callers have no preference.
	DefaultConfidenceLevel = 95
)

var (
	ErrNegativeBootstraps = errors.New("number of bootstraps must be a non-negative integer")
	ErrNegativeSampleSize = errors.New("bootstrap sample size must not be negative")
)

// Options configures a bootstrap ensemble estimator.
type Options struct {
	// NBoot is the number of independently resampled calibrated models
	// trained alongside the point estimate model. Must be non-negative.
	// Defaults to DefaultNumBootstraps. 0 disables interval estimation.
	NBoot int `json:"n_boot"`

	// SampleSize is the number of rows drawn with replacement for each
	// bootstrap resample. 0 uses the full training row count.
	SampleSize int `json:"sample_size"`

	// Seed primes the random source governing bootstrap resampling. A fixed
	// nonzero seed makes repeated fits reproducible. 0 seeds from the shared
	// global source.
	Seed uint64 `json:"seed"`

	// Parallelization sets how many bootstrap member fits to run in parallel.
	// 0 uses one worker per available CPU.
	Parallelization int `json:"parallelization"`

	// Calibration is the cross-validation and calibration scheme forwarded to
	// every calibrated model in the ensemble.
	Calibration *calibration.Options `json:"calibration"`
}

// Validate runs basic validation on estimator options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	if o.NBoot < 0 {
		return nil, fmt.Errorf("got %d, %w", o.NBoot, ErrNegativeBootstraps)
	}
	if o.SampleSize < 0 {
		return nil, fmt.Errorf("got %d, %w", o.SampleSize, ErrNegativeSampleSize)
	}
	if o.Parallelization < 0 {
		o.Parallelization = 0
	}

	calOpt, err := o.Calibration.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate calibration options, %w", err)
	}
	o.Calibration = calOpt
	return o, nil
}

// NewDefaultOptions returns a default set of estimator options
func NewDefaultOptions() *Options {
	return &Options{
		NBoot:       DefaultNumBootstraps,
		Calibration: calibration.NewDefaultOptions(),
	}
}
