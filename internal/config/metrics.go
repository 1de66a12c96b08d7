package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled        bool
	ServiceName    string
	OtlpEndpoint   string
	OtlpInsecure   bool
	PushgatewayURL string
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, true),
		ServiceName:    envOrDefault(envOtelService, defaultServiceName),
		OtlpEndpoint:   envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, true),
		PushgatewayURL: envOrDefault(envPushGateway, ""),
	}
}
