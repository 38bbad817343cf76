// Package dataset represents labeled binary classification data and provides
// bootstrap resampling over it.
package dataset

import (
	"errors"
	"fmt"

	mat_ "github.com/probband/go-probband/mat"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrDatasetLenMismatch = errors.New("label vector has a different length than feature rows")
	ErrNonBinaryLabel     = errors.New("labels must be 0 or 1")
)

// Dataset stores a feature matrix along with a binary 0/1 label per row. Both
// must have the same nonzero number of rows.
type Dataset struct {
	X *mat.Dense
	Y []float64
}

// New returns a Dataset from a slice of feature rows and a label vector,
// copying both.
func New(x [][]float64, y []float64) (*Dataset, error) {
	if len(x) == 0 {
		return nil, ErrNoTrainingData
	}
	xMx, err := mat_.NewDenseFromArray(x)
	if err != nil {
		return nil, fmt.Errorf("unable to build feature matrix, %w", err)
	}
	return NewFromMatrix(xMx, y)
}

// NewFromMatrix returns a Dataset from a feature matrix and a label vector,
// copying both.
func NewFromMatrix(x mat.Matrix, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	m, n := x.Dims()
	if m != len(y) {
		return nil, fmt.Errorf(
			"feature matrix has %d rows, but labels has a length of %d, %w",
			m, len(y), ErrDatasetLenMismatch,
		)
	}
	for i, label := range y {
		if label != 0.0 && label != 1.0 {
			return nil, fmt.Errorf("label %f at row %d, %w", label, i, ErrNonBinaryLabel)
		}
	}

	xCopy := mat.NewDense(m, n, nil)
	xCopy.Copy(x)
	yCopy := make([]float64, m)
	copy(yCopy, y)
	return &Dataset{
		X: xCopy,
		Y: yCopy,
	}, nil
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	m, n := d.X.Dims()
	xCopy := mat.NewDense(m, n, nil)
	xCopy.Copy(d.X)
	yCopy := make([]float64, len(d.Y))
	copy(yCopy, d.Y)
	return &Dataset{
		X: xCopy,
		Y: yCopy,
	}
}

// NumRows returns the number of samples in the dataset.
func (d *Dataset) NumRows() int {
	m, _ := d.X.Dims()
	return m
}

// NumFeatures returns the number of feature columns in the dataset.
func (d *Dataset) NumFeatures() int {
	_, n := d.X.Dims()
	return n
}
