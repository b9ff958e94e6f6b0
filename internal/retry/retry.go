// Package retry runs an operation a bounded number of times with a fixed
// backoff schedule. Every error is retried; only context cancellation stops
// the loop early.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Backoff returns the delay to wait after the given failed attempt (1-based).
type Backoff func(base time.Duration, attempt int) time.Duration

// Linear waits base * attempt.
func Linear(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(attempt)
}

// Exponential waits base * 2^(attempt-1).
func Exponential(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<uint(attempt-1))
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Policy holds retry configuration.
type Policy struct {
	// Attempts is the total number of calls, including the first. Values
	// below 1 are treated as 1.
	Attempts int
	// BaseDelay feeds Backoff.
	BaseDelay time.Duration
	// Backoff defaults to Linear.
	Backoff Backoff
	// Sleep defaults to Sleep.
	Sleep SleepFunc
}

// ExhaustedError is returned once every attempt has failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do calls fn until it succeeds or p.Attempts calls have failed. onRetry, if
// not nil, is called before each wait with the failed attempt number and its
// error.
func Do(ctx context.Context, p Policy, fn func(context.Context) error, onRetry func(attempt int, err error)) error {
	attempts := max(p.Attempts, 1)
	backoff := p.Backoff
	if backoff == nil {
		backoff = Linear
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		// Last attempt, don't sleep
		if attempt == attempts {
			break
		}

		if onRetry != nil {
			onRetry(attempt, err)
		}
		if err := sleep(ctx, backoff(p.BaseDelay, attempt)); err != nil {
			return fmt.Errorf("retry interrupted after %d attempts: %w", attempt, err)
		}
	}

	return &ExhaustedError{Attempts: attempts, Err: lastErr}
}
