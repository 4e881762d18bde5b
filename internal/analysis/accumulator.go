package analysis

// meanAccumulator holds running sums for one bucket. Buckets are reduced as sum/count at the end,
// so the result does not depend on the order samples were added.
type meanAccumulator struct {
	count int
	sums  []float64
}

func newMeanAccumulator(fields int) *meanAccumulator {
	return &meanAccumulator{sums: make([]float64, fields)}
}

func (a *meanAccumulator) add(values ...float64) {
	a.count++
	for i, v := range values {
		a.sums[i] += v
	}
}

// mean returns the mean of field i. Callers never hold empty accumulators.
func (a *meanAccumulator) mean(i int) float64 {
	return a.sums[i] / float64(a.count)
}
