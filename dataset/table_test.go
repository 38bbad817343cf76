package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromTable(t *testing.T) {
	tbl, err := NewTable([]string{"bias", "clicked", "score"})
	require.Nil(t, err)

	require.Nil(t, tbl.AddRecord(1.0, 0.0, 0.25))
	require.Nil(t, tbl.AddRecord(2.0, 1.0, 0.75))
	require.Nil(t, tbl.AddRecord(3.0, 1.0, 0.50))

	d, err := FromTable(tbl, "clicked")
	require.Nil(t, err)

	assert.Equal(t, 3, d.NumRows())
	assert.Equal(t, 2, d.NumFeatures())
	assert.Equal(t, []float64{0, 1, 1}, d.Y)
	assert.Equal(t, []float64{2.0, 0.75}, mat.Row(nil, 1, d.X))
}

func TestFromTableErrors(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		tbl, err := NewTable([]string{"a", "b"})
		require.Nil(t, err)
		require.Nil(t, tbl.AddRecord(1, 0))

		_, err = FromTable(tbl, "missing")
		expected := ErrUnknownTargetColumn
		assert.ErrorAs(t, err, &expected)
	})

	t.Run("no feature columns", func(t *testing.T) {
		tbl, err := NewTable([]string{"label"})
		require.Nil(t, err)
		require.Nil(t, tbl.AddRecord(1))

		_, err = FromTable(tbl, "label")
		expected := ErrNoFeatureColumns
		assert.ErrorAs(t, err, &expected)
	})

	t.Run("no records", func(t *testing.T) {
		tbl, err := NewTable([]string{"a", "label"})
		require.Nil(t, err)

		_, err = FromTable(tbl, "label")
		expected := ErrNoTrainingData
		assert.ErrorAs(t, err, &expected)
	})

	t.Run("record width mismatch", func(t *testing.T) {
		tbl, err := NewTable([]string{"a", "b"})
		require.Nil(t, err)

		err = tbl.AddRecord(1.0)
		expected := ErrTableColMismatch
		assert.ErrorAs(t, err, &expected)
	})
}
