package cfr

import (
	"github.com/emgarVIII/liars-dice/sdk/regret"
	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

// Engine is one player's sequence-form regret-matching state: a LocalState
// per decision node, composed into full-treeplex strategies and utility
// observations. Grounded on stub.py's Cfr class.
type Engine struct {
	t     *treeplex.Treeplex
	local map[string]*regret.LocalState
}

// NewEngine allocates an Engine over t with every decision node's matcher
// running in the given mode (RM for vanilla CFR, RM+ for CFR+).
func NewEngine(t *treeplex.Treeplex, mode regret.Mode) *Engine {
	local := make(map[string]*regret.LocalState)
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Type == treeplex.Decision {
			local[n.ID] = regret.NewLocalState(len(n.Actions), mode)
		}
	}
	return &Engine{t: t, local: local}
}

// NextStrategy composes each decision node's local regret-matching
// strategy into a full sequence-form strategy, scaling by the parent
// sequence's probability mass top-down.
func (e *Engine) NextStrategy() *treeplex.Vector {
	strat := treeplex.NewVector(e.t.Index)
	strat.Set(treeplex.Empty, 1.0)
	for i := range e.t.Nodes {
		n := &e.t.Nodes[i]
		if n.Type != treeplex.Decision {
			continue
		}
		parentP := strat.Get(n.ParentReachSequence())
		local := e.local[n.ID].NextStrategy()
		for ai, a := range n.Actions {
			strat.Set(treeplex.Sequence{DecisionID: n.ID, Action: a}, parentP*local[ai])
		}
	}
	return strat
}

// ObserveReachWeighted dispatches u's per-node action slices to each
// decision node's local matcher, scaled by the opponent's reach
// probability to that node — mandatory for both CFR and CFR+ (see
// DESIGN.md Open Question 3).
func (e *Engine) ObserveReachWeighted(u *treeplex.Vector, oppStrategy *treeplex.Vector) {
	for i := range e.t.Nodes {
		n := &e.t.Nodes[i]
		if n.Type != treeplex.Decision {
			continue
		}
		reach := OpponentReach(e.t, oppStrategy, n.ID)
		uloc := make([]float64, len(n.Actions))
		for ai, a := range n.Actions {
			uloc[ai] = reach * u.Get(treeplex.Sequence{DecisionID: n.ID, Action: a})
		}
		e.local[n.ID].Observe(uloc)
	}
}

// Treeplex returns the treeplex this engine plays over.
func (e *Engine) Treeplex() *treeplex.Treeplex { return e.t }
