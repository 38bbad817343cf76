package calibration

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFolds   = errors.New("need at least 2 folds to cross-fit")
	ErrInsufficientSamples = errors.New("insufficient samples for the determined folds")
)

// Fold holds the train and held-out row indices of one cross-fitting split.
type Fold struct {
	TrainIdx []int
	TestIdx  []int
}

// KFoldSplit partitions n rows into k contiguous folds. The first n%k folds
// receive one extra row. Splitting is deterministic so repeated fits on the
// same data produce identical results.
func KFoldSplit(n, k int) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("got %d folds, %w", k, ErrInsufficientFolds)
	}
	if n < k {
		return nil, fmt.Errorf("%d samples into %d folds, %w", n, k, ErrInsufficientSamples)
	}

	base := n / k
	rem := n % k

	folds := make([]Fold, k)
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < rem {
			size++
		}
		end := start + size

		testIdx := make([]int, 0, size)
		trainIdx := make([]int, 0, n-size)
		for j := 0; j < n; j++ {
			if j >= start && j < end {
				testIdx = append(testIdx, j)
				continue
			}
			trainIdx = append(trainIdx, j)
		}
		folds[i] = Fold{
			TrainIdx: trainIdx,
			TestIdx:  testIdx,
		}
		start = end
	}
	return folds, nil
}
