package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.FeedDir != defaultFeedDir {
		t.Fatalf("expected default feed dir %s, got %s", defaultFeedDir, cfg.FeedDir)
	}
	if cfg.SnapshotDir != defaultSnapshotDir {
		t.Fatalf("expected default snapshot dir %s, got %s", defaultSnapshotDir, cfg.SnapshotDir)
	}
	if cfg.RetentionDays != defaultSnapshotDays {
		t.Fatalf("expected default retention %d, got %d", defaultSnapshotDays, cfg.RetentionDays)
	}
	if cfg.Workers != defaultWorkers {
		t.Fatalf("expected default workers %d, got %d", defaultWorkers, cfg.Workers)
	}
	if cfg.ProviderRateLimit != 0 {
		t.Fatalf("expected provider pacing disabled by default, got %v", cfg.ProviderRateLimit)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
	if cfg.Database.Enabled {
		t.Fatalf("expected database disabled by default")
	}
	if cfg.Database.Port != defaultDatabasePort {
		t.Fatalf("expected default database port %d, got %d", defaultDatabasePort, cfg.Database.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envFeedDir, "/data/feeds")
	t.Setenv(envSnapshotDays, "30")
	t.Setenv(envWorkers, "8")
	t.Setenv(envProviderLimit, "60")
	t.Setenv(envDatabaseOn, "true")
	t.Setenv(envDatabaseHost, "db.internal")
	t.Setenv(envPushGateway, "http://push:9091")

	cfg := Load()

	if cfg.FeedDir != "/data/feeds" {
		t.Fatalf("expected feed dir override, got %s", cfg.FeedDir)
	}
	if cfg.RetentionDays != 30 {
		t.Fatalf("expected retention 30, got %d", cfg.RetentionDays)
	}
	if cfg.Workers != 8 {
		t.Fatalf("expected workers 8, got %d", cfg.Workers)
	}
	if cfg.ProviderRateLimit != time.Minute {
		t.Fatalf("expected 1m provider pacing, got %v", cfg.ProviderRateLimit)
	}
	if !cfg.Database.Enabled {
		t.Fatalf("expected database enabled")
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("expected database host override, got %s", cfg.Database.Host)
	}
	if cfg.Metrics.PushgatewayURL != "http://push:9091" {
		t.Fatalf("expected pushgateway override, got %s", cfg.Metrics.PushgatewayURL)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv(envWorkers, "not-a-number")

	cfg := Load()

	if cfg.Workers != defaultWorkers {
		t.Fatalf("expected default workers on invalid value, got %d", cfg.Workers)
	}
}
