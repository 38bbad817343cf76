package classifier

import (
	"testing"

	mat_ "github.com/probband/go-probband/mat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testClassifier(t *testing.T, c Classifier, x mat.Matrix, y []float64, minScore float64) {
	err := c.Fit(x, y)
	require.Nil(t, err)

	probs, err := c.PredictProba(x)
	require.Nil(t, err)
	require.Len(t, probs, len(y))
	for i, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0, "sample %d", i)
		assert.LessOrEqual(t, p, 1.0, "sample %d", i)
	}

	score, err := c.Score(x, y)
	require.Nil(t, err)
	assert.GreaterOrEqual(t, score, minScore)
}

func separableData(t *testing.T) (mat.Matrix, []float64) {
	t.Helper()
	x, err := mat_.NewDenseFromArray([][]float64{
		{-3.0}, {-2.0}, {-1.5}, {-1.0},
		{1.0}, {1.5}, {2.0}, {3.0},
	})
	require.Nil(t, err)
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	return x, y
}
