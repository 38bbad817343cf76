// Package mat provides small helpers for moving between native Go slices and
// gonum matrices.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch = errors.New("column size mismatch")
	ErrRowMismatch = errors.New("row size mismatch")
	ErrEmptyMatrix = errors.New("matrix must have nonzero rows and columns")
)

// NewDenseFromArray builds a dense matrix from a slice of rows. All rows must
// have the same nonzero number of columns.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	// gonum panics on zero length dimensions
	if m == 0 || n <= 0 {
		return nil, fmt.Errorf("got %d rows and %d columns, %w", m, n, ErrEmptyMatrix)
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// GatherRows builds a new dense matrix by copying the requested rows of x in
// the order given. Row indices may repeat.
func GatherRows(x mat.Matrix, idx []int) (*mat.Dense, error) {
	m, n := x.Dims()
	if len(idx) == 0 || n == 0 {
		return nil, fmt.Errorf("got %d indices and %d columns, %w", len(idx), n, ErrEmptyMatrix)
	}
	out := mat.NewDense(len(idx), n, nil)
	for i, ri := range idx {
		if ri < 0 || ri >= m {
			return nil, fmt.Errorf("row index %d with %d rows, %w", ri, m, ErrRowMismatch)
		}
		for j := 0; j < n; j++ {
			out.Set(i, j, x.At(ri, j))
		}
	}
	return out, nil
}
