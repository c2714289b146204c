package treeplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T) *Treeplex {
	t.Helper()
	root := Node{ID: "d1", Type: Decision, Actions: []string{"H", "T"}}
	childSeq := Sequence{DecisionID: "d1", Action: "H"}
	obs := Node{ID: "o1", Type: Observation, ParentEdge: &ParentEdge{ParentID: "d1", Signal: "H"}}
	child := Node{ID: "d2", Type: Decision, Actions: []string{"x", "y"}, ParentEdge: &ParentEdge{ParentID: "o1", Signal: "reveal"}, ParentSequence: &childSeq}

	tp, err := New([]Node{root, obs, child})
	require.NoError(t, err)
	return tp
}

func TestSequenceIndexRoundTrip(t *testing.T) {
	tp := buildChain(t)
	for _, s := range tp.Sequences.All() {
		i := tp.Index.Index(s)
		assert.Equalf(t, s, tp.Index.Sequence(i), "index round trip failed for %v", s)
		assert.Truef(t, tp.Index.Contains(s), "expected index to contain %v", s)
	}
	assert.False(t, tp.Index.Contains(Sequence{DecisionID: "nope", Action: "nope"}))
}

func TestUniformStrategySimplex(t *testing.T) {
	tp := buildChain(t)
	strat := UniformStrategy(tp)

	require.Equal(t, 1.0, strat.Get(Empty))
	// d1: uniform over {H,T} each 0.5.
	assert.InDelta(t, 0.5, strat.Get(Sequence{"d1", "H"}), 1e-12)
	// d2 only reachable via H, so its children's mass sums to strat[(d1,H)].
	sum := strat.Get(Sequence{"d2", "x"}) + strat.Get(Sequence{"d2", "y"})
	assert.InDelta(t, strat.Get(Sequence{"d1", "H"}), sum, 1e-9)

	assert.NoError(t, Validate(tp, strat))
}

func TestValidateRejectsBrokenSimplex(t *testing.T) {
	tp := buildChain(t)
	strat := UniformStrategy(tp)
	strat.Set(Sequence{"d1", "H"}, 0.9) // break the d1 simplex sum

	assert.Error(t, Validate(tp, strat))
}

func TestNewRejectsNonTopologicalParentEdge(t *testing.T) {
	obs := Node{ID: "o1", Type: Observation, ParentEdge: &ParentEdge{ParentID: "d1", Signal: "H"}}
	root := Node{ID: "d1", Type: Decision, Actions: []string{"H", "T"}}

	_, err := New([]Node{obs, root}) // o1's parent d1 listed after it
	assert.Error(t, err)
}

func TestNewRejectsNonTopologicalParentSequence(t *testing.T) {
	childSeq := Sequence{DecisionID: "d1", Action: "H"}
	child := Node{ID: "d2", Type: Decision, Actions: []string{"x"}, ParentSequence: &childSeq}
	root := Node{ID: "d1", Type: Decision, Actions: []string{"H", "T"}}

	_, err := New([]Node{child, root}) // d2's parent_sequence decision d1 listed after it
	assert.Error(t, err)
}
