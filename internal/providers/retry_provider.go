package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arnavnair220/nba-cap-optimizer/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DataProvider with retry/backoff behavior.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	recorder    *metrics.Recorder
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, maxAttempts int, backoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		recorder:    recorder,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchRoster(ctx context.Context, season string) ([]RosterRow, error) {
	return fetchWithRetry(ctx, r, "roster", func() ([]RosterRow, error) {
		return r.inner.FetchRoster(ctx, season)
	})
}

func (r *retryingProvider) FetchSalaries(ctx context.Context, season string) ([]SalaryRow, error) {
	return fetchWithRetry(ctx, r, "salaries", func() ([]SalaryRow, error) {
		return r.inner.FetchSalaries(ctx, season)
	})
}

func (r *retryingProvider) FetchStints(ctx context.Context, season string) ([]StintRow, error) {
	return fetchWithRetry(ctx, r, "stints", func() ([]StintRow, error) {
		return r.inner.FetchStints(ctx, season)
	})
}

func (r *retryingProvider) FetchPredictions(ctx context.Context, season string) (map[int64]float64, error) {
	return fetchWithRetry(ctx, r, "predictions", func() (map[int64]float64, error) {
		return r.inner.FetchPredictions(ctx, season)
	})
}

func fetchWithRetry[T any](ctx context.Context, r *retryingProvider, feed string, fetch func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := fetch()
		if err == nil {
			return result, nil
		}
		lastErr = err

		// A structurally unreadable feed will not fix itself on re-read.
		var malformed *MalformedFeedError
		if errors.As(err, &malformed) {
			r.logWarn("provider fetch failed", "feed", feed, "attempts", attempt, "err", err)
			return zero, err
		}

		delay := r.backoffFn(attempt)
		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(feed, rl.RetryAfter)
			if rl.RetryAfter > delay {
				delay = rl.RetryAfter
			}
		}

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn("provider fetch retry", "feed", feed, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		// backoff with context awareness
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn("provider fetch failed", "feed", feed, "attempts", r.maxAttempts, "err", lastErr)
	return zero, lastErr
}

func (r *retryingProvider) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
