package classifier

import (
	"errors"
)

var ErrUnknownModelType = errors.New("unknown classifier model type")

// ModelType tags a serialized classifier with its concrete implementation
type ModelType string

const ModelTypeLogistic ModelType = "logistic"

// Model represents a serializeable format of a trained classifier storing the
// implementation type and fitted weights
type Model struct {
	Type      ModelType `json:"type"`
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coefficients"`
}

// ModelOf extracts a serializeable model from a trained classifier
func ModelOf(c Classifier) (Model, error) {
	switch c.(type) {
	case *LogisticRegression:
		return Model{
			Type:      ModelTypeLogistic,
			Intercept: c.Intercept(),
			Coef:      c.Coef(),
		}, nil
	default:
		return Model{}, ErrUnknownModelType
	}
}

// NewFromModel reconstructs a trained classifier for immediate inference from
// a previously serialized model
func NewFromModel(m Model) (Classifier, error) {
	switch m.Type {
	case ModelTypeLogistic:
		return NewLogisticRegressionFromWeights(m.Intercept, m.Coef), nil
	default:
		return nil, ErrUnknownModelType
	}
}
