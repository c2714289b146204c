// Package cfrerr defines the error taxonomy shared by the treeplex, gamefile
// and policyfile packages: malformed game files, invalid strategies/utilities and
// sampling failures. Sentinel errors are wrapped with fmt.Errorf("...: %w")
// so callers can use errors.Is against the sentinels below.
package cfrerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGame marks a structural problem in a loaded game file or
	// constructed treeplex: dangling parent links, duplicate ids, cycles.
	ErrMalformedGame = errors.New("malformed game")

	// ErrInvalidStrategy marks a sequence-form strategy that fails the
	// simplex constraint at some decision node (probabilities must sum to
	// the parent sequence's probability mass, within tolerance).
	ErrInvalidStrategy = errors.New("invalid sequence-form strategy")

	// ErrInvalidUtility marks a utility vector whose shape does not match
	// a player's sequence set, or whose values are non-finite.
	ErrInvalidUtility = errors.New("invalid utility vector")

	// ErrSamplingError marks a failure during Monte Carlo outcome sampling
	// (e.g. a zero-mass distribution was asked to sample an action).
	ErrSamplingError = errors.New("sampling error")
)

// Malformedf wraps ErrMalformedGame with context, e.g. the offending node id.
func Malformedf(format string, args ...any) error {
	return wrapf(ErrMalformedGame, format, args...)
}

// InvalidStrategyf wraps ErrInvalidStrategy with context.
func InvalidStrategyf(format string, args ...any) error {
	return wrapf(ErrInvalidStrategy, format, args...)
}

// InvalidUtilityf wraps ErrInvalidUtility with context.
func InvalidUtilityf(format string, args ...any) error {
	return wrapf(ErrInvalidUtility, format, args...)
}

// SamplingErrorf wraps ErrSamplingError with context.
func SamplingErrorf(format string, args ...any) error {
	return wrapf(ErrSamplingError, format, args...)
}

func wrapf(sentinel error, format string, args ...any) error {
	return &wrapped{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	sentinel error
	msg      string
}

func (w *wrapped) Error() string { return w.msg + ": " + w.sentinel.Error() }
func (w *wrapped) Unwrap() error { return w.sentinel }
