package liarsdice

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/emgarVIII/liars-dice/internal/randutil"
	"github.com/emgarVIII/liars-dice/sdk/regret"
)

// TrainingConfig parameterizes an MCCFR+ run. Grounded on the teacher's
// AbstractionConfig/TrainingConfig Validate()/Default* idiom
// (sdk/solver/config.go), generalized to this domain.
type TrainingConfig struct {
	Game       Config
	Iterations int
	Seed       int64
	Workers    int
}

// DefaultTrainingConfig mirrors the reference script's defaults: 500,000
// iterations, the reference 5-dice/6-face game, a single worker.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{Game: DefaultConfig(), Iterations: 500_000, Seed: 1, Workers: 1}
}

// Validate checks the config is usable.
func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return errInvalid("iterations must be positive")
	}
	if c.Game.Dice <= 0 || c.Game.Faces <= 0 {
		return errInvalid("dice and faces must be positive")
	}
	if c.Workers <= 0 {
		return errInvalid("workers must be positive")
	}
	return nil
}

type invalidConfigError string

func (e invalidConfigError) Error() string { return string(e) }
func errInvalid(msg string) error          { return invalidConfigError(msg) }

// Progress reports MCCFR+ training status.
type Progress struct {
	Iteration       int
	TotalIterations int
	InfoStatesPl1   int
	InfoStatesPl2   int
	Elapsed         time.Duration
}

// Trainer runs MCCFR+ outcome-sampling self-play on the generative Liar's
// Dice game. The regret tables are sharded (regret.Table) so that parallel
// workers can update disjoint information states concurrently; each call on
// a key's LocalState (NextStrategy, AccumulateStrategy, Observe) holds that
// state's own mutex.
type Trainer struct {
	cfg    TrainingConfig
	claims []Claim
	table1 *regret.Table
	table2 *regret.Table
}

// NewTrainer allocates a Trainer for cfg.
func NewTrainer(cfg TrainingConfig) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Trainer{
		cfg:    cfg,
		claims: cfg.Game.AllClaims(),
		table1: regret.NewTable(),
		table2: regret.NewTable(),
	}, nil
}

// Run executes cfg.Iterations MCCFR+ self-play iterations, split evenly
// across cfg.Workers goroutines with independently-seeded PRNGs derived
// from cfg.Seed (teacher's internal/randutil.New pattern), invoking
// progress every 10% of total iterations.
func (tr *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	n := tr.cfg.Iterations
	workers := tr.cfg.Workers
	perWorker := n / workers
	remainder := n % workers

	var wg sync.WaitGroup
	var mu sync.Mutex
	var completed int
	start := time.Now()
	batch := n / 10
	if batch < 1 {
		batch = 1
	}

	masterRNG := randutil.New(tr.cfg.Seed)
	var firstErr error

	for w := 0; w < workers; w++ {
		iters := perWorker
		if w < remainder {
			iters++
		}
		if iters == 0 {
			continue
		}
		workerSeed := masterRNG.Int64()
		wg.Add(1)
		go func(iters int, seed int64) {
			defer wg.Done()
			rng := randutil.New(seed)
			for i := 0; i < iters; i++ {
				select {
				case <-ctx.Done():
					mu.Lock()
					if firstErr == nil {
						firstErr = ctx.Err()
					}
					mu.Unlock()
					return
				default:
				}
				tr.iteration(rng)

				mu.Lock()
				completed++
				c := completed
				mu.Unlock()
				if progress != nil && c%batch == 0 {
					progress(Progress{
						Iteration:       c,
						TotalIterations: n,
						InfoStatesPl1:   tr.table1.Size(),
						InfoStatesPl2:   tr.table2.Size(),
						Elapsed:         time.Since(start),
					})
				}
			}
		}(iters, workerSeed)
	}
	wg.Wait()

	return firstErr
}

// iteration runs one MCCFR+ outcome-sampling step: sample both hands,
// sample a claim from player 1's current strategy, sample a response from
// player 2's current strategy, then update both matchers' regrets.
// Grounded on spec §4.7 / DESIGN.md's corrected version of mccfr_train.py.
func (tr *Trainer) iteration(rng *rand.Rand) {
	r1 := tr.cfg.Game.SampleHand(rng)
	r2 := tr.cfg.Game.SampleHand(rng)

	key1 := r1.Key()
	state1 := tr.table1.Get(key1, len(tr.claims), regret.RMPlus)
	strat1 := state1.NextStrategy()
	state1.AccumulateStrategy(1)

	claimIdx := sampleIndex(rng, strat1)
	claim := tr.claims[claimIdx]

	key2 := Pl2Key(r2, claim)
	state2 := tr.table2.Get(key2, len(Responses), regret.RMPlus)
	strat2 := state2.NextStrategy()
	state2.AccumulateStrategy(1)

	responseIdx := sampleIndex(rng, strat2)
	response := Responses[responseIdx]

	truth := CountFace(r1, r2, claim.Face) >= claim.Quantity
	var payoff1 float64 = -1
	if (response == "accept" && truth) || (response == "call" && !truth) {
		payoff1 = 1
	}

	// Outcome-sampling proxy: every candidate claim is scored +1/-1 by
	// whether it is true for the sampled hands, as if player 2 always
	// accepts. This is biased; it is not a reach-weighted MCCFR estimator.
	u1 := make([]float64, len(tr.claims))
	for i, a := range tr.claims {
		if CountFace(r1, r2, a.Face) >= a.Quantity {
			u1[i] = 1
		} else {
			u1[i] = -1
		}
	}
	state1.Observe(u1)

	u2 := make([]float64, len(Responses))
	for i, a := range Responses {
		if a == "accept" {
			u2[i] = -payoff1
		} else {
			u2[i] = payoff1
		}
	}
	state2.Observe(u2)
}

func sampleIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target <= cum {
			return i
		}
	}
	return len(weights) - 1
}

// Policy returns the average policy extracted so far: raw strategy sums
// divided by the total configured iteration count (spec §4.7: "no
// normalization; callers may renormalize downstream").
func (tr *Trainer) Policy() map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	denom := float64(tr.cfg.Iterations)

	tr.table1.ForEach(func(key string, s *regret.LocalState) {
		sum := s.StrategySum()
		dist := make(map[string]float64, len(tr.claims))
		for i, a := range tr.claims {
			dist[a.String()] = sum[i] / denom
		}
		out[key] = dist
	})
	tr.table2.ForEach(func(key string, s *regret.LocalState) {
		sum := s.StrategySum()
		dist := make(map[string]float64, len(Responses))
		for i, a := range Responses {
			dist[a] = sum[i] / denom
		}
		out[key] = dist
	})
	return out
}

// InfoStateCounts returns the number of distinct information states
// visited so far for each player.
func (tr *Trainer) InfoStateCounts() (int, int) {
	return tr.table1.Size(), tr.table2.Size()
}
