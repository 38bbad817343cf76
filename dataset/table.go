package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrNoColumns           = errors.New("table has no columns")
	ErrTableColMismatch    = errors.New("record length does not match table columns")
	ErrUnknownTargetColumn = errors.New("target column not found in table")
	ErrNoFeatureColumns    = errors.New("table has no feature columns besides the target")
)

// Table is a light tabular frame of named float columns stored row-wise. It
// exists to accept frame-like inputs and convert them into a Dataset.
type Table struct {
	columns []string
	records [][]float64
}

// NewTable creates an empty table with the given column names.
func NewTable(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}, nil
}

// AddRecord appends one row of values matching the table columns in order.
func (t *Table) AddRecord(vals ...float64) error {
	if len(vals) != len(t.columns) {
		return fmt.Errorf("got %d values for %d columns, %w", len(vals), len(t.columns), ErrTableColMismatch)
	}
	rec := make([]float64, len(vals))
	copy(rec, vals)
	t.records = append(t.records, rec)
	return nil
}

// Columns returns a copy of the table column names.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRecords returns the number of rows added to the table.
func (t *Table) NumRecords() int {
	return len(t.records)
}

// FromTable converts a tabular frame into a Dataset. The named target column
// becomes the label vector and all remaining columns become features in table
// order. The target is always named explicitly so an all-zero label column is
// never mistaken for an absent one.
func FromTable(t *Table, target string) (*Dataset, error) {
	targetIdx := -1
	for i, col := range t.columns {
		if col == target {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("column %q, %w", target, ErrUnknownTargetColumn)
	}
	if len(t.columns) < 2 {
		return nil, ErrNoFeatureColumns
	}
	if len(t.records) == 0 {
		return nil, ErrNoTrainingData
	}

	x := make([][]float64, len(t.records))
	y := make([]float64, len(t.records))
	for i, rec := range t.records {
		row := make([]float64, 0, len(t.columns)-1)
		for j, val := range rec {
			if j == targetIdx {
				y[i] = val
				continue
			}
			row = append(row, val)
		}
		x[i] = row
	}
	return New(x, y)
}
