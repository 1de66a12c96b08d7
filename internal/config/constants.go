package config

const (
	envFeedDir       = "FEED_DIR"
	envSnapshotDir   = "SNAPSHOT_DIR"
	envSnapshotDays  = "SNAPSHOT_RETENTION_DAYS"
	envSourcesFile   = "SOURCES_FILE"
	envWorkers       = "PIPELINE_WORKERS"
	envProviderLimit = "PROVIDER_RATE_LIMIT_SECONDS"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envPushGateway   = "METRICS_PUSHGATEWAY_URL"
	envDatabaseOn    = "DATABASE_ENABLED"
	envDatabaseHost  = "DATABASE_HOST"
	envDatabasePort  = "DATABASE_PORT"
	envDatabaseName  = "DATABASE_NAME"
	envDatabaseUser  = "DATABASE_USER"
	envDatabasePass  = "DATABASE_PASSWORD"
	envDatabaseSSL   = "DATABASE_SSLMODE"
	envDatabaseConns = "DATABASE_MAX_CONNS"

	defaultFeedDir      = "./feeds"
	defaultSnapshotDir  = "./snapshots"
	defaultSnapshotDays = 14
	defaultWorkers      = 4
	// Feeds are local file drops by default, so no pacing between reads.
	defaultProviderLimitSeconds = 0
	defaultServiceName  = "nba-cap-optimizer"
	defaultDatabaseName = "nba_cap_optimizer"
	defaultDatabasePort = 5432
	defaultMaxConns     = 4
)
