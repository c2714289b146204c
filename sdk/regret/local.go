// Package regret implements per-decision-node regret matching (RM and
// RM+), and a sharded concurrent regret table for the lazily-populated,
// per-information-state matchers used by MCCFR+.
package regret

import "sync"

// Mode selects plain regret matching or RM+ (regrets floored at zero).
type Mode int

const (
	RM Mode = iota
	RMPlus
)

// LocalState is the regret matcher for a single decision node (or, in the
// MCCFR+ case, a single information state): it owns one regret accumulator
// per action and produces the next strategy via regret matching.
//
// Grounded on the teacher's RegretEntry (sdk/solver/regret.go), generalized
// from a fixed poker bucket count to an arbitrary action count and split
// so averaging is the caller's concern rather than baked into Update.
type LocalState struct {
	mu            sync.Mutex
	mode          Mode
	regretSum     []float64
	lastStrategy  []float64
	strategySum   []float64
}

// NewLocalState allocates a matcher over n actions.
func NewLocalState(n int, mode Mode) *LocalState {
	return &LocalState{
		mode:         mode,
		regretSum:    make([]float64, n),
		lastStrategy: uniform(n),
	}
}

func uniform(n int) []float64 {
	s := make([]float64, n)
	p := 1.0 / float64(n)
	for i := range s {
		s[i] = p
	}
	return s
}

// NextStrategy computes and remembers the regret-matching strategy over
// the current regret sums: positive part normalized, or uniform if all
// regrets are non-positive.
func (s *LocalState) NextStrategy() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.regretSum)
	pos := make([]float64, n)
	total := 0.0
	for i, r := range s.regretSum {
		if r > 0 {
			pos[i] = r
			total += r
		}
	}
	strat := make([]float64, n)
	if total > 0 {
		for i := range strat {
			strat[i] = pos[i] / total
		}
	} else {
		p := 1.0 / float64(n)
		for i := range strat {
			strat[i] = p
		}
	}
	s.lastStrategy = strat
	return strat
}

// Observe updates regrets from an already reach-weighted utility vector u
// (one value per action, same order as NextStrategy's output). RM+ floors
// each regret at zero after the update; plain RM leaves it signed.
func (s *LocalState) Observe(u []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := 0.0
	for i, p := range s.lastStrategy {
		ev += p * u[i]
	}
	for i := range s.regretSum {
		s.regretSum[i] += u[i] - ev
		if s.mode == RMPlus && s.regretSum[i] < 0 {
			s.regretSum[i] = 0
		}
	}
}

// AccumulateStrategy adds weight*lastStrategy into the running strategy
// sum, used by MCCFR+ to build the average policy (weight is always 1
// there; weighted drivers can pass the iteration number instead).
func (s *LocalState) AccumulateStrategy(weight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.strategySum == nil {
		s.strategySum = make([]float64, len(s.regretSum))
	}
	for i, p := range s.lastStrategy {
		s.strategySum[i] += weight * p
	}
}

// StrategySum returns a copy of the raw accumulated strategy sum (not
// normalized — callers divide by whatever denominator their averaging
// scheme calls for).
func (s *LocalState) StrategySum() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.regretSum))
	copy(out, s.strategySum)
	return out
}
