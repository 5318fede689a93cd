// Package fallback runs an ordered list of strategies until one succeeds.
// Both the transcript source chain and the image generation chain sequence
// their providers through it, so the "first success wins, else aggregate"
// logic lives in exactly one place.
package fallback

import (
	"context"
	"errors"
	"fmt"
)

// Strategy is one candidate in an ordered chain.
type Strategy[T any] struct {
	// Label identifies the strategy in diagnostics, e.g. "Supadata API".
	Label string

	// Skip, when non-nil and true, drops the strategy from the chain without
	// recording a failure (e.g. provider credential not configured).
	Skip func() bool

	// Run performs the attempt. Strategies are tried at most once, strictly
	// in order; the next one does not start until this one has returned.
	Run func(ctx context.Context) (T, error)
}

// Errors collects per-strategy failures in attempt order.
type Errors struct {
	Attempts []Attempt
}

// Attempt records one failed strategy.
type Attempt struct {
	Label string
	Err   error
}

func (e *Errors) Error() string {
	if len(e.Attempts) == 0 {
		return "no strategies attempted"
	}
	s := ""
	for i, a := range e.Attempts {
		if i > 0 {
			s += "; "
		}
		s += fmt.Sprintf("%s: %v", a.Label, a.Err)
	}
	return s
}

// Labels returns the labels of all failed strategies in order.
func (e *Errors) Labels() []string {
	labels := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		labels = append(labels, a.Label)
	}
	return labels
}

// First runs strategies in order and returns the first successful result
// together with the label of the strategy that produced it. onFailure, when
// non-nil, is invoked for each failed attempt as it happens, before the next
// strategy starts, so callers see intermediate failures even when a later
// strategy succeeds. When every strategy fails (or all were skipped) First
// returns *Errors carrying the ordered per-strategy diagnostics.
func First[T any](ctx context.Context, strategies []Strategy[T], onFailure func(Attempt)) (T, string, error) {
	var zero T
	agg := &Errors{}

	for _, s := range strategies {
		if s.Skip != nil && s.Skip() {
			continue
		}
		result, err := s.Run(ctx)
		if err != nil {
			attempt := Attempt{Label: s.Label, Err: err}
			agg.Attempts = append(agg.Attempts, attempt)
			if onFailure != nil {
				onFailure(attempt)
			}
			continue
		}
		return result, s.Label, nil
	}

	return zero, "", agg
}

// AsErrors unwraps err into *Errors when it is one.
func AsErrors(err error) (*Errors, bool) {
	var e *Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
