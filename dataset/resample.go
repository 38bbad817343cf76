package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"

	mat_ "github.com/probband/go-probband/mat"
)

var ErrInvalidSampleSize = errors.New("sample size must be a positive integer")

// Resample draws sampleSize row indices independently and uniformly at random
// with replacement and gathers the corresponding rows and labels in draw
// order. Duplicates are allowed and some original rows may be absent. A nil
// rnd falls back to the shared global source.
func (d *Dataset) Resample(sampleSize int, rnd *rand.Rand) (*Dataset, error) {
	if sampleSize <= 0 {
		return nil, fmt.Errorf("got %d, %w", sampleSize, ErrInvalidSampleSize)
	}

	r := d.NumRows()
	idx := make([]int, sampleSize)
	for i := range idx {
		if rnd != nil {
			idx[i] = rnd.IntN(r)
			continue
		}
		idx[i] = rand.IntN(r)
	}

	x, err := mat_.GatherRows(d.X, idx)
	if err != nil {
		return nil, fmt.Errorf("unable to gather resampled rows, %w", err)
	}
	y := make([]float64, sampleSize)
	for i, ri := range idx {
		y[i] = d.Y[ri]
	}
	return &Dataset{
		X: x,
		Y: y,
	}, nil
}
