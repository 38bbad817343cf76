package dataset

import (
	"math/rand/v2"
	"testing"

	mat_ "github.com/probband/go-probband/mat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	testData := map[string]struct {
		x    [][]float64
		y    []float64
		err  error
		rows int
		cols int
	}{
		"valid": {
			x:    [][]float64{{1, 2}, {3, 4}, {5, 6}},
			y:    []float64{0, 1, 0},
			rows: 3,
			cols: 2,
		},
		"no labels": {
			x:   [][]float64{{1, 2}},
			y:   nil,
			err: ErrNoTrainingData,
		},
		"no rows": {
			x:   [][]float64{},
			y:   []float64{},
			err: ErrNoTrainingData,
		},
		"zero width rows": {
			x:   [][]float64{{}, {}},
			y:   []float64{0, 1},
			err: mat_.ErrEmptyMatrix,
		},
		"length mismatch": {
			x:   [][]float64{{1, 2}, {3, 4}},
			y:   []float64{0},
			err: ErrDatasetLenMismatch,
		},
		"non binary label": {
			x:   [][]float64{{1, 2}, {3, 4}},
			y:   []float64{0, 0.5},
			err: ErrNonBinaryLabel,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			d, err := New(td.x, td.y)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.rows, d.NumRows())
			assert.Equal(t, td.cols, d.NumFeatures())
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}}
	y := []float64{0, 1}

	d, err := New(x, y)
	require.Nil(t, err)

	x[0][0] = 99
	y[0] = 1
	assert.Equal(t, 1.0, d.X.At(0, 0))
	assert.Equal(t, 0.0, d.Y[0])
}

func TestCopy(t *testing.T) {
	d, err := New([][]float64{{1, 2}, {3, 4}}, []float64{0, 1})
	require.Nil(t, err)

	cp := d.Copy()
	cp.X.Set(0, 0, 42)
	cp.Y[1] = 0

	assert.Equal(t, 1.0, d.X.At(0, 0))
	assert.Equal(t, 1.0, d.Y[1])
}

func TestResample(t *testing.T) {
	d, err := New(
		[][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}},
		[]float64{0, 1, 0, 1},
	)
	require.Nil(t, err)

	rnd := rand.New(rand.NewPCG(42, 43))

	testData := map[string]struct {
		sampleSize int
		err        error
	}{
		"full size":        {sampleSize: 4},
		"smaller":          {sampleSize: 2},
		"larger":           {sampleSize: 16},
		"zero rejected":    {sampleSize: 0, err: ErrInvalidSampleSize},
		"negative rejected": {sampleSize: -3, err: ErrInvalidSampleSize},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := d.Resample(td.sampleSize, rnd)
			if td.err != nil {
				require.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)
			require.Equal(t, td.sampleSize, res.NumRows())
			assert.Equal(t, d.NumFeatures(), res.NumFeatures())

			// every resampled row with its label must exactly match some
			// original row
			for i := 0; i < res.NumRows(); i++ {
				row := mat.Row(nil, i, res.X)
				found := false
				for j := 0; j < d.NumRows(); j++ {
					orig := mat.Row(nil, j, d.X)
					if row[0] == orig[0] && row[1] == orig[1] && res.Y[i] == d.Y[j] {
						found = true
						break
					}
				}
				assert.True(t, found, "row %d not present in source dataset", i)
			}
		})
	}
}

func TestResampleDeterministic(t *testing.T) {
	d, err := GenerateBlobs(50, 3, 2.0, rand.New(rand.NewPCG(1, 2)))
	require.Nil(t, err)

	a, err := d.Resample(50, rand.New(rand.NewPCG(7, 8)))
	require.Nil(t, err)
	b, err := d.Resample(50, rand.New(rand.NewPCG(7, 8)))
	require.Nil(t, err)

	assert.True(t, mat.Equal(a.X, b.X))
	assert.Equal(t, a.Y, b.Y)
}

func TestGenerateBlobs(t *testing.T) {
	d, err := GenerateBlobs(25, 4, 3.0, rand.New(rand.NewPCG(5, 6)))
	require.Nil(t, err)

	assert.Equal(t, 50, d.NumRows())
	assert.Equal(t, 4, d.NumFeatures())

	var ones int
	for _, label := range d.Y {
		if label == 1.0 {
			ones++
		}
	}
	assert.Equal(t, 25, ones)
}
