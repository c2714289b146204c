package policyfile

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := Policy{
		"d1": {"H": 0.5, "T": 0.5},
	}
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, Save(path, p))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got["d1"]["H"])
	assert.Equal(t, 0.5, got["d1"]["T"])
}

func TestFromStrategyNormalizes(t *testing.T) {
	tp, err := treeplex.New([]treeplex.Node{{ID: "d1", Type: treeplex.Decision, Actions: []string{"H", "T"}}})
	require.NoError(t, err)
	strat := treeplex.UniformStrategy(tp)
	p := FromStrategy(tp, strat)
	dist, ok := p["d1"]
	require.True(t, ok)
	assert.Equal(t, 0.5, dist["H"])
	assert.Equal(t, 0.5, dist["T"])
}

func TestSampleDeterministicWithSeededRNG(t *testing.T) {
	p := Policy{"d1": {"H": 1.0, "T": 0.0}}
	rng := rand.New(rand.NewPCG(1, 2))
	action, err := p.Sample("d1", rng)
	require.NoError(t, err)
	assert.Equal(t, "H", action)
}

func TestSampleRejectsUnknownDecision(t *testing.T) {
	p := Policy{"d1": {"H": 1.0}}
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := p.Sample("missing", rng)
	assert.Error(t, err)
}
