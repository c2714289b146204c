package cfr

import "github.com/emgarVIII/liars-dice/sdk/treeplex"

// CumulativeStrategy accumulates a weighted sum of sequence-form
// strategies across iterations and reports the weighted average —
// generalizes the teacher's cum1/wc1 dict pattern (trainer.go/blueprint.go
// style accumulation) into a dense vector.
type CumulativeStrategy struct {
	idx         *treeplex.SequenceIndex
	sum         []float64
	totalWeight float64
}

// NewCumulativeStrategy allocates an accumulator over idx.
func NewCumulativeStrategy(idx *treeplex.SequenceIndex) *CumulativeStrategy {
	return &CumulativeStrategy{idx: idx, sum: make([]float64, idx.Len())}
}

// Add accumulates weight*strat into the running sum. Vanilla CFR averaging
// uses weight=1 every iteration; CFR+ uses the linear weight t.
func (c *CumulativeStrategy) Add(strat *treeplex.Vector, weight float64) {
	for i, v := range strat.Raw() {
		c.sum[i] += weight * v
	}
	c.totalWeight += weight
}

// Average returns the weighted-average sequence-form strategy so far.
func (c *CumulativeStrategy) Average() *treeplex.Vector {
	v := treeplex.NewVector(c.idx)
	if c.totalWeight == 0 {
		return v
	}
	for i, s := range c.sum {
		v.Raw()[i] = s / c.totalWeight
	}
	return v
}
