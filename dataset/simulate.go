package dataset

import (
	"math/rand/v2"
)

// GenerateBlobs simulates a two-class dataset with nPerClass gaussian samples
// per class in nFeatures dimensions. Class 0 is centered at the origin and
// class 1 at sep along every axis, so larger sep values produce easier
// classification problems. A nil rnd falls back to the shared global source.
func GenerateBlobs(nPerClass, nFeatures int, sep float64, rnd *rand.Rand) (*Dataset, error) {
	normFloat := rand.NormFloat64
	if rnd != nil {
		normFloat = rnd.NormFloat64
	}

	n := 2 * nPerClass
	x := make([][]float64, 0, n)
	y := make([]float64, 0, n)
	for class := 0; class < 2; class++ {
		center := float64(class) * sep
		for i := 0; i < nPerClass; i++ {
			row := make([]float64, nFeatures)
			for j := range row {
				row[j] = center + normFloat()
			}
			x = append(x, row)
			y = append(y, float64(class))
		}
	}
	return New(x, y)
}
