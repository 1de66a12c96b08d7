package providers

import (
	"context"
	"log/slog"
	"time"
)

// rateLimitedProvider wraps a DataProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     DataProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next DataProvider, interval time.Duration, logger *slog.Logger) DataProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context, season string) ([]RosterRow, error) {
	if err := p.wait(ctx, "roster"); err != nil {
		return nil, err
	}
	return p.next.FetchRoster(ctx, season)
}

func (p *rateLimitedProvider) FetchSalaries(ctx context.Context, season string) ([]SalaryRow, error) {
	if err := p.wait(ctx, "salaries"); err != nil {
		return nil, err
	}
	return p.next.FetchSalaries(ctx, season)
}

func (p *rateLimitedProvider) FetchStints(ctx context.Context, season string) ([]StintRow, error) {
	if err := p.wait(ctx, "stints"); err != nil {
		return nil, err
	}
	return p.next.FetchStints(ctx, season)
}

func (p *rateLimitedProvider) FetchPredictions(ctx context.Context, season string) (map[int64]float64, error) {
	if err := p.wait(ctx, "predictions"); err != nil {
		return nil, err
	}
	return p.next.FetchPredictions(ctx, season)
}

func (p *rateLimitedProvider) wait(ctx context.Context, feed string) error {
	if p == nil || p.next == nil {
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		if p.logger != nil {
			p.logger.Warn("rate-limited fetch canceled", slog.String("feed", feed))
		}
		return ctx.Err()
	case <-p.ticker.C:
	}
	return nil
}
