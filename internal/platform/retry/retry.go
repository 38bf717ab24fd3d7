// Package retry provides the retry policy shared by every upstream call site.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy controls how many times an operation is attempted and how long to
// wait between attempts. The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	MaxAttempts int           // total attempts including the first one
	BaseDelay   time.Duration // delay before the first retry
	MaxDelay    time.Duration // upper bound for the backoff curve
	Jitter      float64       // fraction of the delay randomized (0..1)

	// Sleep is overridable so tests can run without real waiting.
	// When nil, a context-aware time.Sleep equivalent is used.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the policy used for brokerage and exchange-rate calls:
// up to 3 attempts, 500ms base delay doubling per attempt, 20% jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Jitter:      0.2,
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as non-retryable. Do stops immediately and returns
// the wrapped error unchanged.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs fn until it succeeds, returns a permanent error, the attempt budget
// is exhausted, or ctx is canceled. The last error is returned as-is so
// callers can inspect it with errors.Is / errors.As.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := p.sleep(ctx, p.delay(i)); err != nil {
				return err
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err
	}
	return lastErr
}

// delay computes the backoff before retry number n (n >= 1): BaseDelay doubled
// per retry, capped at MaxDelay, with a random jitter fraction added.
func (p Policy) delay(n int) time.Duration {
	d := p.BaseDelay << uint(n-1)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		d += time.Duration(p.Jitter * rand.Float64() * float64(d))
	}
	return d
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
