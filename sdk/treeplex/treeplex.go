// Package treeplex implements the sequence-form game-tree representation
// shared by both players: nodes (decision or observation), the sequence set
// Σ, and the perfect-hash index used to give every sequence a contiguous
// array slot.
package treeplex

import "github.com/emgarVIII/liars-dice/sdk/cfrerr"

// NodeType distinguishes a player's decision points from the information
// signals (including chance outcomes and opponent moves) they observe.
type NodeType int

const (
	Decision NodeType = iota
	Observation
)

// ParentEdge names the node this node hangs off of and the signal on that
// edge: the action taken, if the parent is a Decision node, or the
// observation label, if the parent is an Observation node.
type ParentEdge struct {
	ParentID string
	Signal   string
}

// Node is one point in a player's information-set tree. Actions is only
// meaningful for Decision nodes. ParentSequence names the nearest ancestor
// decision sequence (which may skip over intervening Observation nodes) and
// is nil only for the first decision node on a path from the root.
type Node struct {
	ID             string
	Type           NodeType
	Actions        []string
	ParentEdge     *ParentEdge
	ParentSequence *Sequence
}

// Treeplex is one player's decision problem: the node list (expected in
// topological order, root first, matching the game file's node ordering so
// that a reverse scan is a valid bottom-up sweep), the resulting sequence
// set Σ, and its perfect-hash index.
type Treeplex struct {
	Nodes     []Node
	byID      map[string]*Node
	Sequences *SequenceSet
	Index     *SequenceIndex
}

// New validates nodes and builds the derived sequence set and index.
func New(nodes []Node) (*Treeplex, error) {
	byID := make(map[string]*Node, len(nodes))
	order := make(map[string]int, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if _, dup := byID[n.ID]; dup {
			return nil, cfrerr.Malformedf("duplicate node id %q", n.ID)
		}
		byID[n.ID] = n
		order[n.ID] = i
	}

	var seqs []Sequence
	for i := range nodes {
		n := &nodes[i]
		if n.ParentEdge != nil {
			if _, ok := byID[n.ParentEdge.ParentID]; !ok {
				return nil, cfrerr.Malformedf("node %q references unknown parent %q", n.ID, n.ParentEdge.ParentID)
			}
			if order[n.ParentEdge.ParentID] >= i {
				return nil, cfrerr.Malformedf("node %q is not in topological order: parent %q does not precede it", n.ID, n.ParentEdge.ParentID)
			}
		}
		if n.Type == Decision {
			if len(n.Actions) == 0 {
				return nil, cfrerr.Malformedf("decision node %q has no actions", n.ID)
			}
			if n.ParentSequence != nil {
				parent, ok := byID[n.ParentSequence.DecisionID]
				if !ok || parent.Type != Decision {
					return nil, cfrerr.Malformedf("decision node %q has invalid parent_sequence %v", n.ID, *n.ParentSequence)
				}
				if order[n.ParentSequence.DecisionID] >= i {
					return nil, cfrerr.Malformedf("node %q is not in topological order: parent_sequence decision %q does not precede it", n.ID, n.ParentSequence.DecisionID)
				}
			}
			for _, a := range n.Actions {
				seqs = append(seqs, Sequence{DecisionID: n.ID, Action: a})
			}
		}
	}

	ss := NewSequenceSet(seqs)
	idx, err := NewSequenceIndex(ss)
	if err != nil {
		return nil, err
	}

	return &Treeplex{Nodes: nodes, byID: byID, Sequences: ss, Index: idx}, nil
}

// Node looks up a node by id.
func (t *Treeplex) Node(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// ParentReachSequence returns the parent sequence used to scale a decision node's
// child probabilities: 1.0 conceptually lives at ∅, so a nil ParentSequence
// maps to the empty sequence.
func (n *Node) ParentReachSequence() Sequence {
	if n.ParentSequence == nil {
		return Empty
	}
	return *n.ParentSequence
}
