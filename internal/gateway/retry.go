package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// retrySleepFunc is the sleep function used between attempts (injectable for tests)
var retrySleepFunc = sleepCtx

// RetryPolicy bounds retries of transient gateway errors
type RetryPolicy struct {
	MaxRetries int           // retries after the first attempt
	BaseDelay  time.Duration // doubled on each retry
}

// DefaultRetryPolicy matches the recommended budget: two retries with
// exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, BaseDelay: 500 * time.Millisecond}
}

type retryVision struct {
	next   VisionGateway
	policy RetryPolicy
}

// WithVisionRetry wraps a vision gateway with retry/backoff. Errors of kind
// invalid_response are deterministic and surface immediately.
func WithVisionRetry(next VisionGateway, policy RetryPolicy) VisionGateway {
	return &retryVision{next: next, policy: policy}
}

func (g *retryVision) Name() string { return g.next.Name() }

func (g *retryVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	var out string
	err := withRetry(ctx, g.policy, func() error {
		var err error
		out, err = g.next.AskVision(ctx, img, prompt)
		return err
	})
	return out, err
}

func (g *retryVision) AskText(ctx context.Context, prompt string) (string, error) {
	var out string
	err := withRetry(ctx, g.policy, func() error {
		var err error
		out, err = g.next.AskText(ctx, prompt)
		return err
	})
	return out, err
}

type retrySearch struct {
	next   SearchGateway
	policy RetryPolicy
}

// WithSearchRetry wraps a search gateway with retry/backoff
func WithSearchRetry(next SearchGateway, policy RetryPolicy) SearchGateway {
	return &retrySearch{next: next, policy: policy}
}

func (g *retrySearch) Name() string { return g.next.Name() }

func (g *retrySearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var out []SearchResult
	err := withRetry(ctx, g.policy, func() error {
		var err error
		out, err = g.next.Search(ctx, query)
		return err
	})
	return out, err
}

// withRetry runs call, retrying transient gateway errors up to the policy
// budget. The last error surfaces once the budget is exhausted.
func withRetry(ctx context.Context, policy RetryPolicy, call func() error) error {
	delay := policy.BaseDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := retrySleepFunc(ctx, delay); err != nil {
				return err
			}
			delay *= 2
		}

		lastErr = call()
		if lastErr == nil {
			return nil
		}

		var gwErr *Error
		if !errors.As(lastErr, &gwErr) || !gwErr.Retryable() {
			return lastErr
		}
	}

	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
