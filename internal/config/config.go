package config

import "time"

// Config holds runtime configuration for a pipeline run.
type Config struct {
	FeedDir     string
	SnapshotDir string
	// RetentionDays bounds how many daily snapshot generations are kept.
	RetentionDays int
	// Workers caps fan-out across player/team partitions within a stage.
	Workers     int
	SourcesFile string
	// ProviderRateLimit spaces out provider calls to respect upstream
	// quotas. Zero disables pacing.
	ProviderRateLimit time.Duration
	Metrics           MetricsConfig
	Database          DatabaseConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FeedDir:       envOrDefault(envFeedDir, defaultFeedDir),
		SnapshotDir:   envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
		Workers:       intEnvOrDefault(envWorkers, defaultWorkers),
		SourcesFile:   envOrDefault(envSourcesFile, ""),
		ProviderRateLimit: time.Duration(
			intEnvOrDefault(envProviderLimit, defaultProviderLimitSeconds)) * time.Second,
		Metrics:       loadMetrics(),
		Database:      loadDatabase(),
	}
}
