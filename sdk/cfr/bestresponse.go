// Package cfr implements best-response value computation, the saddle-point
// gap, and the CFR/CFR+ sequence-form self-play engine.
package cfr

import "github.com/emgarVIII/liars-dice/sdk/treeplex"

// BestResponseValue computes the best achievable value for the owner of t
// against a fixed opponent, given t's counterfactual utility vector u, via
// a single backward sweep: at each decision node take the max over action
// utilities and push it into the parent sequence slot. Requires t.Nodes in
// topological (root-first) order so the reverse scan is bottom-up.
func BestResponseValue(t *treeplex.Treeplex, u *treeplex.Vector) float64 {
	acc := make([]float64, u.Index().Len())
	copy(acc, u.Raw())

	for i := len(t.Nodes) - 1; i >= 0; i-- {
		n := &t.Nodes[i]
		if n.Type != treeplex.Decision {
			continue
		}
		best := acc[u.Index().Index(treeplex.Sequence{DecisionID: n.ID, Action: n.Actions[0]})]
		for _, a := range n.Actions[1:] {
			v := acc[u.Index().Index(treeplex.Sequence{DecisionID: n.ID, Action: a})]
			if v > best {
				best = v
			}
		}
		parentIdx := u.Index().Index(n.ParentReachSequence())
		acc[parentIdx] += best
	}
	return acc[u.Index().Index(treeplex.Empty)]
}

// ExpectedUtility computes Σ_s sf1[s]*u1[s], the expected value to player 1
// of playing sf1 against the opponent strategy u1 was computed from.
func ExpectedUtility(sf1, u1 *treeplex.Vector) float64 {
	total := 0.0
	for _, s := range u1.Index().All() {
		total += sf1.Get(s) * u1.Get(s)
	}
	return total
}

// Gap returns the saddle-point gap (sum of both players' best-response
// exploitability) for the strategy pair (sf1, sf2): zero at a Nash
// equilibrium, positive otherwise.
func Gap(t1, t2 *treeplex.Treeplex, u1, u2 *treeplex.Vector) float64 {
	return BestResponseValue(t1, u1) + BestResponseValue(t2, u2)
}

// OpponentReach walks the parent-edge chain from targetID up to the root,
// multiplying in the opponent's sequence-form probability at every
// Observation-type ancestor whose edge signal is itself a valid sequence of
// the opponent (this naturally skips chance-node signals and the player's
// own earlier-decision edges, which never appear in the opponent's
// sequence set).
func OpponentReach(t *treeplex.Treeplex, oppStrategy *treeplex.Vector, targetID string) float64 {
	reach := 1.0
	node, ok := t.Node(targetID)
	if !ok {
		return 0
	}
	for node.ParentEdge != nil {
		parent, ok := t.Node(node.ParentEdge.ParentID)
		if !ok {
			return 0
		}
		if parent.Type == treeplex.Observation {
			seq := treeplex.Sequence{DecisionID: parent.ID, Action: node.ParentEdge.Signal}
			if oppStrategy.Index().Contains(seq) {
				reach *= oppStrategy.Get(seq)
			}
		}
		node = parent
	}
	return reach
}
