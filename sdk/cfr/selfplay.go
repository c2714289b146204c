package cfr

import (
	"context"
	"time"

	"github.com/emgarVIII/liars-dice/sdk/payoff"
	"github.com/emgarVIII/liars-dice/sdk/regret"
	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

// Progress reports self-play status; fed to the caller's callback every
// 10% of total iterations, matching spec §6's plaintext progress cadence.
type Progress struct {
	Iteration       int
	TotalIterations int
	Elapsed         time.Duration
}

func progressBatch(iterations int) int {
	b := iterations / 10
	if b < 1 {
		b = 1
	}
	return b
}

// RunCFR runs vanilla (non-alternating) reach-weighted CFR self-play for
// the given number of iterations and returns the uniform-averaged
// sequence-form strategies for both players. Grounded on stub.py's
// solve_problem_3_2.
func RunCFR(ctx context.Context, t1, t2 *treeplex.Treeplex, table payoff.Table, iterations int, progress func(Progress)) (*treeplex.Vector, *treeplex.Vector, error) {
	e1 := NewEngine(t1, regret.RM)
	e2 := NewEngine(t2, regret.RM)
	cum1 := NewCumulativeStrategy(t1.Index)
	cum2 := NewCumulativeStrategy(t2.Index)
	batch := progressBatch(iterations)
	start := time.Now()

	for iter := 1; iter <= iterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		x := e1.NextStrategy()
		y := e2.NextStrategy()
		cum1.Add(x, 1)
		cum2.Add(y, 1)

		u1, err := payoff.ComputeUtilityVectorPl1(ctx, table, t1.Index, y)
		if err != nil {
			return nil, nil, err
		}
		u2, err := payoff.ComputeUtilityVectorPl2(ctx, table, t2.Index, x)
		if err != nil {
			return nil, nil, err
		}
		e1.ObserveReachWeighted(u1, y)
		e2.ObserveReachWeighted(u2, x)

		if progress != nil && iter%batch == 0 {
			progress(Progress{Iteration: iter, TotalIterations: iterations, Elapsed: time.Since(start)})
		}
	}
	return cum1.Average(), cum2.Average(), nil
}

// RunCFRPlus runs alternating, linearly-averaged CFR+ self-play (RM+
// regret matching) for the given number of iterations. Grounded on
// stub.py's solve_problem_3_3: player 1 observes against player 2's
// current strategy, player 1's strategy is then recomputed, and player 2
// observes against that just-updated strategy, within the same iteration.
func RunCFRPlus(ctx context.Context, t1, t2 *treeplex.Treeplex, table payoff.Table, iterations int, progress func(Progress)) (*treeplex.Vector, *treeplex.Vector, error) {
	e1 := NewEngine(t1, regret.RMPlus)
	e2 := NewEngine(t2, regret.RMPlus)
	cum1 := NewCumulativeStrategy(t1.Index)
	cum2 := NewCumulativeStrategy(t2.Index)
	batch := progressBatch(iterations)
	start := time.Now()

	xCur := e1.NextStrategy()
	for iter := 1; iter <= iterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		yCur := e2.NextStrategy()
		weight := float64(iter)
		cum1.Add(xCur, weight)
		cum2.Add(yCur, weight)

		u1, err := payoff.ComputeUtilityVectorPl1(ctx, table, t1.Index, yCur)
		if err != nil {
			return nil, nil, err
		}
		e1.ObserveReachWeighted(u1, yCur)

		xNext := e1.NextStrategy()
		u2, err := payoff.ComputeUtilityVectorPl2(ctx, table, t2.Index, xNext)
		if err != nil {
			return nil, nil, err
		}
		e2.ObserveReachWeighted(u2, xNext)
		xCur = xNext

		if progress != nil && iter%batch == 0 {
			progress(Progress{Iteration: iter, TotalIterations: iterations, Elapsed: time.Since(start)})
		}
	}
	return cum1.Average(), cum2.Average(), nil
}
