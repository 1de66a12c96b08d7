package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnavnair220/nba-cap-optimizer/internal/config"
	"github.com/arnavnair220/nba-cap-optimizer/internal/database"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
	"github.com/arnavnair220/nba-cap-optimizer/internal/logging"
	"github.com/arnavnair220/nba-cap-optimizer/internal/metrics"
	"github.com/arnavnair220/nba-cap-optimizer/internal/pipeline"
	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
	"github.com/arnavnair220/nba-cap-optimizer/internal/providers/fixture"
	"github.com/arnavnair220/nba-cap-optimizer/internal/snapshots"
)

const (
	providerMaxAttempts = 3
	providerBackoff     = time.Second
)

// app wires configuration, telemetry, the provider chain, and the snapshot
// stores for one CLI invocation.
type app struct {
	cfg      config.Config
	sources  config.Sources
	logger   *slog.Logger
	recorder *metrics.Recorder
	publish  metrics.Publish
	shutdown func(context.Context) error
	provider providers.DataProvider
	writer   *snapshots.Writer
	store    *snapshots.FSStore
}

func buildApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	logger := logging.NewLogger()

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	recorder, publish, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:        cfg.Metrics.Enabled,
		ServiceName:    cfg.Metrics.ServiceName,
		OtlpEndpoint:   cfg.Metrics.OtlpEndpoint,
		OtlpInsecure:   cfg.Metrics.OtlpInsecure,
		PushgatewayURL: cfg.Metrics.PushgatewayURL,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}

	var provider providers.DataProvider = fixture.New(cfg.FeedDir)
	if cfg.ProviderRateLimit > 0 {
		provider = providers.NewRateLimitedProvider(provider, cfg.ProviderRateLimit, logger)
	}
	provider = providers.NewRetryingProvider(provider, logger, recorder, providerMaxAttempts, providerBackoff)

	return &app{
		cfg:      cfg,
		sources:  sources,
		logger:   logger,
		recorder: recorder,
		publish:  publish,
		shutdown: shutdown,
		provider: provider,
		writer:   snapshots.NewWriter(cfg.SnapshotDir, cfg.RetentionDays),
		store:    snapshots.NewFSStore(cfg.SnapshotDir),
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		logging.Error(a.logger, "telemetry shutdown failed", err)
	}
}

// runSeasons executes the pipeline for the given seasons and publishes the
// result everywhere configured. Nothing is published when any stage fails.
func (a *app) runSeasons(ctx context.Context, seasons []string) error {
	prior, err := a.priorPlayers()
	if err != nil {
		return err
	}

	pipe := pipeline.New(a.provider, a.sources, a.cfg.Workers, a.logger, a.recorder)
	snap, report, err := pipe.Run(ctx, seasons, prior)
	if err != nil {
		return err
	}

	if err := a.writer.WriteRun(snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if a.cfg.Database.Enabled {
		pool, err := database.Connect(ctx, a.cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
		if err := database.NewSink(pool).PublishRun(ctx, snap); err != nil {
			return fmt.Errorf("publishing to database: %w", err)
		}
	}

	if err := a.publish(ctx); err != nil {
		// Metrics delivery must not fail a run that already published.
		logging.Warn(a.logger, "metrics push failed", "error", err)
	}

	fmt.Printf("run %s complete: %d facts, %d conflicts, %d rows rejected, salary match %.1f%%\n",
		report.RunID, report.FactsBuilt, report.SalaryConflicts, report.RowsRejected, report.SalaryMatchRate*100)
	return nil
}

func (a *app) priorPlayers() ([]players.Player, error) {
	latest, err := a.store.LatestDate()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot manifest: %w", err)
	}
	if latest == "" {
		return nil, nil
	}
	prior, err := a.store.LoadPlayers(latest)
	if err != nil {
		return nil, fmt.Errorf("loading prior players: %w", err)
	}
	return prior, nil
}
