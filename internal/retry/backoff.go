// Package retry implements the bounded reconnect/retry policy shared by the
// callback notifier, the Pub/Sub listener and the dashboard's browser client:
// the delay doubles on every attempt up to a hard cap, and retrying stops
// entirely after a fixed number of attempts.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrAttemptsExhausted is returned once MaxAttempts delays have been handed out.
var ErrAttemptsExhausted = errors.New("retry: attempts exhausted")

// Default policy, matching the dashboard client's reconnect behavior.
const (
	DefaultInitialDelay = 1 * time.Second
	DefaultMaxDelay     = 10 * time.Second
	DefaultMaxAttempts  = 5
)

// Backoff hands out doubling delays. The zero value is not usable; construct
// with New or NewDefault. Backoff is not safe for concurrent use.
type Backoff struct {
	initial     time.Duration
	max         time.Duration
	maxAttempts int

	attempt int
}

// New builds a Backoff with the given bounds. Non-positive arguments fall
// back to the package defaults.
func New(initial, max time.Duration, maxAttempts int) *Backoff {
	if initial <= 0 {
		initial = DefaultInitialDelay
	}
	if max <= 0 {
		max = DefaultMaxDelay
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Backoff{initial: initial, max: max, maxAttempts: maxAttempts}
}

// NewDefault builds a Backoff with the shared policy: 1s initial delay,
// doubling to a 10s cap, five attempts total.
func NewDefault() *Backoff {
	return New(DefaultInitialDelay, DefaultMaxDelay, DefaultMaxAttempts)
}

// Next returns the delay to sleep before the upcoming attempt, or
// ErrAttemptsExhausted when the attempt budget is spent.
func (b *Backoff) Next() (time.Duration, error) {
	if b.attempt >= b.maxAttempts {
		return 0, ErrAttemptsExhausted
	}
	d := b.initial << b.attempt
	if d > b.max || d <= 0 { // <= 0 guards shift overflow
		d = b.max
	}
	b.attempt++
	return d, nil
}

// Attempt reports how many delays have been handed out so far.
func (b *Backoff) Attempt() int { return b.attempt }

// Reset restores the full attempt budget after a success.
func (b *Backoff) Reset() { b.attempt = 0 }

// Wait sleeps for the next delay, honoring context cancellation.
func (b *Backoff) Wait(ctx context.Context) error {
	d, err := b.Next()
	if err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
