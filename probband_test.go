package probband

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/probband/go-probband/calibration"
	"github.com/probband/go-probband/classifier"
	"github.com/probband/go-probband/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory() classifier.Factory {
	return classifier.NewDefaultLogisticOptions()
}

func testBlobs(t *testing.T, nPerClass int) *dataset.Dataset {
	t.Helper()
	rnd := rand.New(rand.NewPCG(11, 13))
	d, err := dataset.GenerateBlobs(nPerClass, 2, 3.0, rnd)
	require.Nil(t, err)
	return d
}

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *Options
		expected *Options
		err      error
	}{
		"nil": {
			nil,
			&Options{
				NBoot:       DefaultNumBootstraps,
				Calibration: calibration.NewDefaultOptions(),
			},
			nil,
		},
		"zero value": {
			&Options{},
			&Options{
				Calibration: calibration.NewDefaultOptions(),
			},
			nil,
		},
		"negative bootstraps": {
			&Options{NBoot: -1},
			nil,
			ErrNegativeBootstraps,
		},
		"negative sample size": {
			&Options{SampleSize: -4},
			nil,
			ErrNegativeSampleSize,
		},
		"bad calibration": {
			&Options{Calibration: &calibration.Options{Method: "quadratic"}},
			nil,
			calibration.ErrUnknownMethod,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, calibration.ErrNoFactory)

	_, err = New(testFactory(), &Options{NBoot: -1})
	assert.ErrorIs(t, err, ErrNegativeBootstraps)
}

func TestFitPredict(t *testing.T) {
	d := testBlobs(t, 40)

	e, err := New(testFactory(), &Options{
		NBoot: 30,
		Seed:  42,
	})
	require.Nil(t, err)
	require.Nil(t, e.Fit(d))
	assert.Equal(t, 30, e.NumBootstraps())

	res, err := e.Predict(d.X, 95)
	require.Nil(t, err)
	require.Equal(t, d.NumRows(), len(res.Probability))
	require.Equal(t, d.NumRows(), len(res.Lower))
	require.Equal(t, d.NumRows(), len(res.Upper))

	var contained int
	for i := range res.Probability {
		assert.GreaterOrEqual(t, res.Probability[i], 0.0)
		assert.LessOrEqual(t, res.Probability[i], 1.0)
		assert.GreaterOrEqual(t, res.Lower[i], 0.0)
		assert.LessOrEqual(t, res.Upper[i], 1.0)
		assert.LessOrEqual(t, res.Lower[i], res.Upper[i], "row %d", i)
		if res.Lower[i] <= res.Probability[i] && res.Probability[i] <= res.Upper[i] {
			contained++
		}
	}
	// the band brackets the point estimate on nearly every row
	assert.GreaterOrEqual(t, float64(contained)/float64(len(res.Probability)), 0.9)

	score, err := e.Score(d.X, d.Y)
	require.Nil(t, err)
	assert.Greater(t, score, 0.9)

	scores := e.FitScores()
	require.NotNil(t, scores)
	assert.Less(t, scores.BrierScore, 0.1)
	assert.Greater(t, scores.Accuracy, 0.9)
}

func TestFitTinyDataset(t *testing.T) {
	// four samples resampled at full size with a large ensemble
	d, err := dataset.New(
		[][]float64{
			{0.1, 0.2},
			{0.9, 0.8},
			{0.2, 0.1},
			{0.8, 0.9},
		},
		[]float64{0, 1, 0, 1},
	)
	require.Nil(t, err)

	e, err := New(testFactory(), &Options{
		NBoot:      50,
		SampleSize: 4,
		Seed:       7,
	})
	require.Nil(t, err)
	require.Nil(t, e.Fit(d))

	res, err := e.Predict(d.X, 95)
	require.Nil(t, err)
	for i := range res.Probability {
		assert.GreaterOrEqual(t, res.Probability[i], 0.0)
		assert.LessOrEqual(t, res.Probability[i], 1.0)
		assert.LessOrEqual(t, res.Lower[i], res.Probability[i], "row %d", i)
		assert.LessOrEqual(t, res.Probability[i], res.Upper[i], "row %d", i)
	}
}

func TestFitPredictDeterministic(t *testing.T) {
	d := testBlobs(t, 30)

	// the same seed at different parallelization produces identical results
	var results []*Results
	for _, parallelization := range []int{1, 4} {
		e, err := New(testFactory(), &Options{
			NBoot:           20,
			Seed:            99,
			Parallelization: parallelization,
		})
		require.Nil(t, err)
		require.Nil(t, e.Fit(d))

		res, err := e.Predict(d.X, 95)
		require.Nil(t, err)
		results = append(results, res)
	}

	assert.Equal(t, results[0].Probability, results[1].Probability)
	assert.Equal(t, results[0].Lower, results[1].Lower)
	assert.Equal(t, results[0].Upper, results[1].Upper)
}

func TestPredictIntervalWidens(t *testing.T) {
	d := testBlobs(t, 30)

	e, err := New(testFactory(), &Options{
		NBoot: 40,
		Seed:  5,
	})
	require.Nil(t, err)
	require.Nil(t, e.Fit(d))

	var prev *Results
	for _, level := range []int{80, 95, 99} {
		res, err := e.Predict(d.X, level)
		require.Nil(t, err)
		if prev != nil {
			for i := range res.Probability {
				width := res.Upper[i] - res.Lower[i]
				prevWidth := prev.Upper[i] - prev.Lower[i]
				assert.GreaterOrEqual(t, width, prevWidth, "row %d at level %d", i, level)
			}
		}
		prev = res
	}
}

func TestFitNoBootstraps(t *testing.T) {
	d := testBlobs(t, 30)

	e, err := New(testFactory(), &Options{NBoot: 0, Seed: 3})
	require.Nil(t, err)
	require.Nil(t, e.Fit(d))
	assert.Equal(t, 0, e.NumBootstraps())

	res, err := e.Predict(d.X, 95)
	require.Nil(t, err)
	for i := range res.Probability {
		assert.GreaterOrEqual(t, res.Probability[i], 0.0)
		assert.LessOrEqual(t, res.Probability[i], 1.0)
		assert.True(t, math.IsNaN(res.Lower[i]), "row %d", i)
		assert.True(t, math.IsNaN(res.Upper[i]), "row %d", i)
	}
}

func TestFitErrors(t *testing.T) {
	e, err := New(testFactory(), nil)
	require.Nil(t, err)

	assert.ErrorIs(t, e.Fit(nil), ErrEmptyDataset)
}

func TestPredictErrors(t *testing.T) {
	d := testBlobs(t, 30)

	e, err := New(testFactory(), &Options{NBoot: 5, Seed: 1})
	require.Nil(t, err)

	_, err = e.Predict(d.X, 95)
	assert.ErrorIs(t, err, ErrUntrainedEstimator)

	require.Nil(t, e.Fit(d))

	_, err = e.Predict(nil, 95)
	assert.ErrorIs(t, err, classifier.ErrNoDesignMatrix)

	for _, level := range []int{0, 100, -5, 150} {
		_, err = e.Predict(d.X, level)
		assert.ErrorIs(t, err, ErrInvalidConfidenceLevel, "level %d", level)
	}
}

func TestFitRetainsPreviousStateOnError(t *testing.T) {
	d := testBlobs(t, 30)

	e, err := New(testFactory(), &Options{NBoot: 10, Seed: 17})
	require.Nil(t, err)
	require.Nil(t, e.Fit(d))

	want, err := e.Predict(d.X, 95)
	require.Nil(t, err)
	wantFitResults := e.FitResults()
	wantFitScores := e.FitScores()

	// a failed refit must not clobber the fitted ensemble or its cached
	// training set results
	require.NotNil(t, e.Fit(nil))

	got, err := e.Predict(d.X, 95)
	require.Nil(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, wantFitResults, e.FitResults())
	assert.Equal(t, wantFitScores, e.FitScores())
}

func TestTrainingDataCopied(t *testing.T) {
	d := testBlobs(t, 30)

	e, err := New(testFactory(), &Options{NBoot: 5, Seed: 1})
	require.Nil(t, err)
	require.Nil(t, e.Fit(d))

	td := e.TrainingData()
	require.NotNil(t, td)
	td.Y[0] = 42.0

	assert.Equal(t, d.Y[0], e.TrainingData().Y[0])
}
