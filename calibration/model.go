package calibration

import (
	"errors"
	"fmt"

	"github.com/probband/go-probband/classifier"
)

var ErrIncompleteModel = errors.New("calibration model is missing its curve parameters")

// SigmoidModel stores the fitted parameters of a sigmoid calibration curve
type SigmoidModel struct {
	Slope  float64 `json:"slope"`
	Offset float64 `json:"offset"`
}

// IsotonicModel stores the fitted knots of an isotonic calibration curve
type IsotonicModel struct {
	Thresholds []float64 `json:"thresholds"`
	Values     []float64 `json:"values"`
}

// Model represents a serializeable format of a trained calibrated classifier
// storing the calibration options, classifier weights, and curve parameters
type Model struct {
	Options    *Options         `json:"options"`
	Classifier classifier.Model `json:"classifier"`
	Sigmoid    *SigmoidModel    `json:"sigmoid,omitempty"`
	Isotonic   *IsotonicModel   `json:"isotonic,omitempty"`
}

// Model extracts a serializeable representation of the trained calibrated
// classifier. This can be used to initialize a new instance for immediate
// predictions skipping the training step.
func (c *CalibratedClassifier) Model() (Model, error) {
	if !c.trained {
		return Model{}, ErrUntrainedCalibration
	}

	clfModel, err := classifier.ModelOf(c.clf)
	if err != nil {
		return Model{}, fmt.Errorf("unable to serialize underlying classifier, %w", err)
	}

	m := Model{
		Options:    c.opt,
		Classifier: clfModel,
	}
	switch cal := c.cal.(type) {
	case *SigmoidCalibrator:
		slope, offset := cal.Params()
		m.Sigmoid = &SigmoidModel{Slope: slope, Offset: offset}
	case *IsotonicCalibrator:
		thresholds, values := cal.Params()
		m.Isotonic = &IsotonicModel{Thresholds: thresholds, Values: values}
	default:
		return Model{}, fmt.Errorf("got %T, %w", c.cal, ErrUnknownMethod)
	}
	return m, nil
}

// NewFromModel creates a calibrated classifier from a pre-existing model. This
// should be generated from a previous call to Model().
func NewFromModel(m Model) (*CalibratedClassifier, error) {
	opt, err := m.Options.Validate()
	if err != nil {
		return nil, err
	}

	clf, err := classifier.NewFromModel(m.Classifier)
	if err != nil {
		return nil, fmt.Errorf("unable to load underlying classifier, %w", err)
	}

	var cal Calibrator
	switch opt.Method {
	case MethodSigmoid:
		if m.Sigmoid == nil {
			return nil, ErrIncompleteModel
		}
		cal = NewSigmoidCalibratorFromParams(m.Sigmoid.Slope, m.Sigmoid.Offset)
	case MethodIsotonic:
		if m.Isotonic == nil {
			return nil, ErrIncompleteModel
		}
		cal = NewIsotonicCalibratorFromParams(m.Isotonic.Thresholds, m.Isotonic.Values)
	default:
		return nil, fmt.Errorf("got %q, %w", opt.Method, ErrUnknownMethod)
	}

	return &CalibratedClassifier{
		opt:     opt,
		clf:     clf,
		cal:     cal,
		trained: true,
	}, nil
}
