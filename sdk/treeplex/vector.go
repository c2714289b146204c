package treeplex

import (
	"math"

	"github.com/emgarVIII/liars-dice/sdk/cfrerr"
)

// Vector is a dense, index-addressed array over a sequence set — used both
// for sequence-form strategies (RSigmaVectors that must satisfy the
// simplex constraint) and for counterfactual utility vectors.
type Vector struct {
	idx    *SequenceIndex
	values []float64
}

// NewVector allocates a zero vector over idx.
func NewVector(idx *SequenceIndex) *Vector {
	return &Vector{idx: idx, values: make([]float64, idx.Len())}
}

// Get returns the value stored at sequence s.
func (v *Vector) Get(s Sequence) float64 { return v.values[v.idx.Index(s)] }

// Set stores val at sequence s.
func (v *Vector) Set(s Sequence, val float64) { v.values[v.idx.Index(s)] = val }

// Add accumulates val onto the value stored at sequence s.
func (v *Vector) Add(s Sequence, val float64) { v.values[v.idx.Index(s)] += val }

// Raw exposes the backing array for bulk/parallel accumulation.
func (v *Vector) Raw() []float64 { return v.values }

// Index returns the SequenceIndex this vector is built over.
func (v *Vector) Index() *SequenceIndex { return v.idx }

// UniformStrategy builds the sequence-form strategy that plays every action
// uniformly at random at each decision node, independent of history.
// Requires t.Nodes to be in topological order (parents before children).
func UniformStrategy(t *Treeplex) *Vector {
	strat := NewVector(t.Index)
	strat.Set(Empty, 1.0)
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Type != Decision {
			continue
		}
		parentP := strat.Get(n.ParentReachSequence())
		p := parentP / float64(len(n.Actions))
		for _, a := range n.Actions {
			strat.Set(Sequence{DecisionID: n.ID, Action: a}, p)
		}
	}
	return strat
}

// Validate checks the simplex constraint at every decision node: the
// child sequence probabilities must sum to the parent sequence's
// probability mass, within tolerance.
func Validate(t *Treeplex, strat *Vector) error {
	const tol = 1e-3
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Type != Decision {
			continue
		}
		parentP := strat.Get(n.ParentReachSequence())
		sum := 0.0
		for _, a := range n.Actions {
			sum += strat.Get(Sequence{DecisionID: n.ID, Action: a})
		}
		if math.Abs(sum-parentP) > tol {
			return cfrerr.InvalidStrategyf("node %q: child sequence sum %.6f does not match parent reach %.6f", n.ID, sum, parentP)
		}
	}
	return nil
}
