// Package gamefile loads the JSON game-file format (spec §6): two node
// lists (decision_problem_pl1/pl2) and a sparse payoff list (utility_pl1),
// converting the wire representation into treeplex.Treeplex and
// payoff.Table values.
package gamefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/emgarVIII/liars-dice/sdk/cfrerr"
	"github.com/emgarVIII/liars-dice/sdk/payoff"
	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

type wireNode struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Actions        []string  `json:"actions,omitempty"`
	ParentEdge     *[]string `json:"parent_edge"`
	ParentSequence *[]string `json:"parent_sequence,omitempty"`
}

type wireUtilityEntry struct {
	SequencePl1 []string `json:"sequence_pl1"`
	SequencePl2 []string `json:"sequence_pl2"`
	Value       float64  `json:"value"`
}

type wireGame struct {
	DecisionProblemPl1 []wireNode         `json:"decision_problem_pl1"`
	DecisionProblemPl2 []wireNode         `json:"decision_problem_pl2"`
	UtilityPl1         []wireUtilityEntry `json:"utility_pl1"`
}

// Game is the fully-parsed, validated in-memory representation of a game
// file: both players' treeplexes and the shared payoff table.
type Game struct {
	Pl1   *treeplex.Treeplex
	Pl2   *treeplex.Treeplex
	Table payoff.Table
}

// Load reads and parses a game file from path.
func Load(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cfrerr.Malformedf("open game file: %v", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a game file from r.
func Decode(r io.Reader) (*Game, error) {
	var wg wireGame
	if err := json.NewDecoder(r).Decode(&wg); err != nil {
		return nil, cfrerr.Malformedf("decode game file: %v", err)
	}

	t1, err := buildTreeplex(wg.DecisionProblemPl1)
	if err != nil {
		return nil, fmt.Errorf("player 1 treeplex: %w", err)
	}
	t2, err := buildTreeplex(wg.DecisionProblemPl2)
	if err != nil {
		return nil, fmt.Errorf("player 2 treeplex: %w", err)
	}

	table := make(payoff.Table, 0, len(wg.UtilityPl1))
	for _, e := range wg.UtilityPl1 {
		s1, err := toSequence(e.SequencePl1)
		if err != nil {
			return nil, fmt.Errorf("utility_pl1 entry: %w", err)
		}
		s2, err := toSequence(e.SequencePl2)
		if err != nil {
			return nil, fmt.Errorf("utility_pl1 entry: %w", err)
		}
		table = append(table, payoff.Entry{SequencePl1: s1, SequencePl2: s2, Value: e.Value})
	}

	return &Game{Pl1: t1, Pl2: t2, Table: table}, nil
}

func buildTreeplex(nodes []wireNode) (*treeplex.Treeplex, error) {
	out := make([]treeplex.Node, len(nodes))
	for i, wn := range nodes {
		n := treeplex.Node{ID: wn.ID, Actions: wn.Actions}
		switch wn.Type {
		case "decision":
			n.Type = treeplex.Decision
		case "observation":
			n.Type = treeplex.Observation
		default:
			return nil, cfrerr.Malformedf("node %q has unknown type %q", wn.ID, wn.Type)
		}
		if wn.ParentEdge != nil {
			if len(*wn.ParentEdge) != 2 {
				return nil, cfrerr.Malformedf("node %q has malformed parent_edge", wn.ID)
			}
			n.ParentEdge = &treeplex.ParentEdge{ParentID: (*wn.ParentEdge)[0], Signal: (*wn.ParentEdge)[1]}
		}
		if wn.ParentSequence != nil {
			seq, err := toSequence(*wn.ParentSequence)
			if err != nil {
				return nil, fmt.Errorf("node %q parent_sequence: %w", wn.ID, err)
			}
			n.ParentSequence = &seq
		}
		out[i] = n
	}
	return treeplex.New(out)
}

func toSequence(pair []string) (treeplex.Sequence, error) {
	if len(pair) != 2 {
		return treeplex.Sequence{}, cfrerr.Malformedf("sequence must be a [decision_id, action] pair, got %v", pair)
	}
	return treeplex.Sequence{DecisionID: pair[0], Action: pair[1]}, nil
}
