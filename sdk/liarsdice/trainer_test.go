package liarsdice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerReproducibleWithFixedSeed(t *testing.T) {
	cfg := TrainingConfig{Game: Config{Dice: 1, Faces: 2}, Iterations: 2000, Seed: 42, Workers: 1}

	run := func() map[string]map[string]float64 {
		tr, err := NewTrainer(cfg)
		require.NoError(t, err)
		require.NoError(t, tr.Run(context.Background(), nil))
		return tr.Policy()
	}

	p1 := run()
	p2 := run()
	assert.Equal(t, p1, p2, "training with a fixed seed and a single worker must be reproducible")
	assert.NotEmpty(t, p1)
}

func TestTrainerValidateRejectsBadConfig(t *testing.T) {
	cfg := TrainingConfig{Game: Config{Dice: 1, Faces: 2}, Iterations: 0, Seed: 1, Workers: 1}
	assert.Error(t, cfg.Validate())
}

// Reduced Scenario E/F-style smoke test: in the n=1, faces=2 dice game,
// MCCFR+ should visit both possible hands and produce a policy for each.
func TestTrainerSmokeReducedGame(t *testing.T) {
	cfg := TrainingConfig{Game: Config{Dice: 1, Faces: 2}, Iterations: 20000, Seed: 7, Workers: 2}
	tr, err := NewTrainer(cfg)
	require.NoError(t, err)
	require.NoError(t, tr.Run(context.Background(), nil))

	p1, p2 := tr.InfoStateCounts()
	assert.NotZero(t, p1)
	assert.NotZero(t, p2)

	policy := tr.Policy()
	assert.Containsf(t, policy, "(1,)", "expected a policy entry for hand (1,)")
	assert.Containsf(t, policy, "(2,)", "expected a policy entry for hand (2,)")
}
