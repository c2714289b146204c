package gamefile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchingPenniesJSON = `{
  "decision_problem_pl1": [
    {"id": "d1", "type": "decision", "actions": ["H", "T"], "parent_edge": null, "parent_sequence": null}
  ],
  "decision_problem_pl2": [
    {"id": "d2", "type": "decision", "actions": ["H", "T"], "parent_edge": null, "parent_sequence": null}
  ],
  "utility_pl1": [
    {"sequence_pl1": ["d1", "H"], "sequence_pl2": ["d2", "H"], "value": -1},
    {"sequence_pl1": ["d1", "H"], "sequence_pl2": ["d2", "T"], "value": 1},
    {"sequence_pl1": ["d1", "T"], "sequence_pl2": ["d2", "H"], "value": 1},
    {"sequence_pl1": ["d1", "T"], "sequence_pl2": ["d2", "T"], "value": -1}
  ]
}`

func TestDecodeMatchingPennies(t *testing.T) {
	game, err := Decode(strings.NewReader(matchingPenniesJSON))
	require.NoError(t, err)
	assert.Equal(t, 3, game.Pl1.Sequences.Len()) // ∅ + H + T
	assert.Len(t, game.Table, 4)
}

func TestDecodeRejectsUnknownNodeType(t *testing.T) {
	bad := `{
      "decision_problem_pl1": [{"id": "d1", "type": "bogus"}],
      "decision_problem_pl2": [],
      "utility_pl1": []
    }`
	_, err := Decode(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestDecodeRejectsDanglingParent(t *testing.T) {
	bad := `{
      "decision_problem_pl1": [
        {"id": "d1", "type": "decision", "actions": ["a"], "parent_edge": ["missing", "x"]}
      ],
      "decision_problem_pl2": [],
      "utility_pl1": []
    }`
	_, err := Decode(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestDecodeRejectsNonTopologicalOrder(t *testing.T) {
	bad := `{
      "decision_problem_pl1": [
        {"id": "o1", "type": "observation", "parent_edge": ["d1", "H"]},
        {"id": "d1", "type": "decision", "actions": ["H", "T"]}
      ],
      "decision_problem_pl2": [],
      "utility_pl1": []
    }`
	_, err := Decode(strings.NewReader(bad))
	assert.Error(t, err)
}
