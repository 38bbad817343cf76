package probband

import (
	"fmt"

	"github.com/probband/go-probband/calibration"
)

// Model represents a serializeable format of a trained estimator storing the
// estimator options, the point estimate model, and every bootstrap member
// model
type Model struct {
	Options *Options            `json:"options"`
	Point   calibration.Model   `json:"point"`
	Members []calibration.Model `json:"members"`
}

// Model extracts a serializeable representation of the trained estimator. This
// can be used to initialize a new instance for immediate predictions skipping
// the training step.
func (e *Estimator) Model() (Model, error) {
	if !e.trained {
		return Model{}, ErrUntrainedEstimator
	}

	point, err := e.point.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to serialize point estimate model, %w", err)
	}

	members := make([]calibration.Model, len(e.members))
	for i, member := range e.members {
		m, err := member.Model()
		if err != nil {
			return Model{}, fmt.Errorf("unable to serialize bootstrap member %d, %w", i, err)
		}
		members[i] = m
	}

	return Model{
		Options: e.opt,
		Point:   point,
		Members: members,
	}, nil
}

// NewFromModel creates an inference-only estimator from a pre-existing model.
// This should be generated from a previous call to Model(). The returned
// estimator has no classifier factory and cannot be refit.
func NewFromModel(m Model) (*Estimator, error) {
	opt, err := m.Options.Validate()
	if err != nil {
		return nil, err
	}

	point, err := calibration.NewFromModel(m.Point)
	if err != nil {
		return nil, fmt.Errorf("unable to load point estimate model, %w", err)
	}

	members := make([]*calibration.CalibratedClassifier, len(m.Members))
	for i, mm := range m.Members {
		member, err := calibration.NewFromModel(mm)
		if err != nil {
			return nil, fmt.Errorf("unable to load bootstrap member %d, %w", i, err)
		}
		members[i] = member
	}

	return &Estimator{
		opt:     opt,
		point:   point,
		members: members,
		trained: true,
	}, nil
}
