package llm

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/retry"
)

type retryingGenerator struct {
	next   Generator
	policy retry.Policy
	logger logger.Logger
}

// RetryOption customizes NewRetrying.
type RetryOption func(*retry.Policy)

// WithSleep replaces the wait between attempts.
func WithSleep(sleep retry.SleepFunc) RetryOption {
	return func(p *retry.Policy) { p.Sleep = sleep }
}

// NewRetrying wraps next so that each Generate makes up to attempts calls,
// waiting baseDelay*k after the k-th failure. All errors are retried alike;
// the last one comes back inside a *retry.ExhaustedError.
func NewRetrying(next Generator, attempts int, baseDelay time.Duration, log logger.Logger, opts ...RetryOption) Generator {
	policy := retry.Policy{
		Attempts:  attempts,
		BaseDelay: baseDelay,
		Backoff:   retry.Linear,
	}
	for _, opt := range opts {
		opt(&policy)
	}

	return &retryingGenerator{
		next:   next,
		policy: policy,
		logger: log,
	}
}

func (r *retryingGenerator) Generate(ctx context.Context, prompt, content string) (string, error) {
	var out string
	err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		text, err := r.next.Generate(ctx, prompt, content)
		if err != nil {
			return err
		}
		out = text
		return nil
	}, func(attempt int, err error) {
		r.logger.Warn(ctx, "[RETRY %d/%d] %v", attempt, r.policy.Attempts, err)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
