// Package policyfile writes and reads the tabular policy-file JSON format
// described in spec §6: decision node id -> {action -> probability}.
// Saving goes through internal/fileutil's atomic temp-file-then-rename
// helper so a crash mid-write never corrupts a previously valid policy file.
package policyfile

import (
	"encoding/json"
	"math/rand/v2"
	"os"

	"github.com/emgarVIII/liars-dice/internal/fileutil"
	"github.com/emgarVIII/liars-dice/sdk/cfrerr"
	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

// Policy is a decision node id -> action -> probability table.
type Policy map[string]map[string]float64

// FromStrategy builds a Policy from a sequence-form strategy vector over t,
// normalizing each decision node's action weights by the parent sequence's
// reach so the written file holds local (not sequence-form) probabilities.
func FromStrategy(t *treeplex.Treeplex, strat *treeplex.Vector) Policy {
	p := make(Policy, len(t.Nodes))
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Type != treeplex.Decision {
			continue
		}
		weights := make(map[string]float64, len(n.Actions))
		total := 0.0
		for _, a := range n.Actions {
			w := strat.Get(treeplex.Sequence{DecisionID: n.ID, Action: a})
			weights[a] = w
			total += w
		}
		dist := make(map[string]float64, len(n.Actions))
		if total > 0 {
			for _, a := range n.Actions {
				dist[a] = weights[a] / total
			}
		} else {
			u := 1.0 / float64(len(n.Actions))
			for _, a := range n.Actions {
				dist[a] = u
			}
		}
		p[n.ID] = dist
	}
	return p
}

// Save atomically writes p as indented JSON to path.
func Save(path string, p Policy) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return cfrerr.Malformedf("encode policy file: %v", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// Load reads a policy file from path.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cfrerr.Malformedf("read policy file: %v", err)
	}
	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, cfrerr.Malformedf("decode policy file: %v", err)
	}
	return p, nil
}

// Sample draws one action at a decision node proportional to its stored
// distribution, matching spec §6's description of how an action consumer
// reads a policy file: "reads dist = policy[key] and samples one action
// proportional to dist values".
func (p Policy) Sample(decisionID string, rng *rand.Rand) (string, error) {
	dist, ok := p[decisionID]
	if !ok {
		return "", cfrerr.SamplingErrorf("no policy entry for decision %q", decisionID)
	}
	total := 0.0
	for _, w := range dist {
		total += w
	}
	if total <= 0 {
		return "", cfrerr.SamplingErrorf("decision %q has a zero-mass distribution", decisionID)
	}
	target := rng.Float64() * total
	cum := 0.0
	for a, w := range dist {
		cum += w
		if target <= cum {
			return a, nil
		}
	}
	// Floating point rounding: fall back to an arbitrary action (the first
	// one a fresh map iteration yields).
	for a := range dist {
		return a, nil
	}
	return "", cfrerr.SamplingErrorf("decision %q has no actions", decisionID)
}
