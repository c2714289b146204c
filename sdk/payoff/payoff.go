// Package payoff holds the sparse bilinear payoff table linking player 1
// and player 2 sequences, and the parallel reduction that turns an
// opponent strategy into a counterfactual utility vector.
package payoff

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

// Entry is one nonzero cell of the bilinear payoff tensor: the value paid
// to player 1 when player 1 reaches SequencePl1 and player 2 reaches
// SequencePl2 (zero-sum: player 2's payoff is the negation).
type Entry struct {
	SequencePl1 treeplex.Sequence
	SequencePl2 treeplex.Sequence
	Value       float64
}

// Table is the full sparse payoff tensor for a game.
type Table []Entry

// parallelThreshold is the entry count below which sharding overhead would
// dominate the work; below it accumulate runs sequentially.
const parallelThreshold = 4096

// ComputeUtilityVectorPl1 builds player 1's counterfactual utility vector
// against a fixed player 2 sequence-form strategy: u1[s1] = Σ value * s2[s2]
// over entries sharing s1.
func ComputeUtilityVectorPl1(ctx context.Context, table Table, idx1 *treeplex.SequenceIndex, strat2 *treeplex.Vector) (*treeplex.Vector, error) {
	u := treeplex.NewVector(idx1)
	accumulate(ctx, table, u.Raw(), func(e *Entry) (int, float64) {
		return idx1.Index(e.SequencePl1), e.Value * strat2.Get(e.SequencePl2)
	})
	return u, nil
}

// ComputeUtilityVectorPl2 builds player 2's counterfactual utility vector
// against a fixed player 1 sequence-form strategy. Zero-sum: player 2's
// value is the negation of player 1's.
func ComputeUtilityVectorPl2(ctx context.Context, table Table, idx2 *treeplex.SequenceIndex, strat1 *treeplex.Vector) (*treeplex.Vector, error) {
	u := treeplex.NewVector(idx2)
	accumulate(ctx, table, u.Raw(), func(e *Entry) (int, float64) {
		return idx2.Index(e.SequencePl2), -e.Value * strat1.Get(e.SequencePl1)
	})
	return u, nil
}

// accumulate shards table across workers when it is large enough to be
// worth it, each worker owning a private accumulator slice merged at the
// end — grounded on the teacher's errgroup equity-evaluation fan-out.
func accumulate(ctx context.Context, table Table, out []float64, contrib func(*Entry) (int, float64)) {
	if len(table) < parallelThreshold {
		for i := range table {
			idx, val := contrib(&table[i])
			out[idx] += val
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(table) {
		workers = len(table)
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (len(table) + workers - 1) / workers
	shards := make([][]float64, workers)

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if start >= len(table) {
			continue
		}
		if end > len(table) {
			end = len(table)
		}
		shards[w] = make([]float64, len(out))
		g.Go(func() error {
			shard := shards[w]
			for i := start; i < end; i++ {
				idx, val := contrib(&table[i])
				shard[idx] += val
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, shard := range shards {
		for i, val := range shard {
			out[i] += val
		}
	}
}
