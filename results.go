package probband

// Results stores the per-sample prediction bundle of a fitted estimator. All
// three slices have one entry per input row with values in [0,1]. Lower and
// Upper are NaN when the ensemble was trained without bootstrap members.
type Results struct {
	Probability []float64 `json:"probability"`
	Lower       []float64 `json:"lower"`
	Upper       []float64 `json:"upper"`
}
