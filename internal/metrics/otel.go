package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
	pushFactory       = buildPusher
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled        bool
	ServiceName    string
	OtlpEndpoint   string
	OtlpInsecure   bool
	PushgatewayURL string
}

// Publish sends the run's metrics to their destination. For a batch process
// this is a Pushgateway push at the end of the run; it is a no-op when no
// gateway is configured.
type Publish func(context.Context) error

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional
// OTLP exporter. It returns a Recorder, a publish function, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, Publish, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return NewRecorder(), noop, noop, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "nba-cap-optimizer"
	}

	promReader, registry, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	publish := noop
	if cfg.PushgatewayURL != "" {
		publish = pushFactory(cfg.PushgatewayURL, cfg.ServiceName, registry)
	}
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, publish, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func buildPusher(url, job string, registry *prometheus.Registry) Publish {
	pusher := push.New(url, job).Gatherer(registry)
	return func(ctx context.Context) error {
		return pusher.PushContext(ctx)
	}
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	stageRuns         metric.Int64Counter
	stageErrors       metric.Int64Counter
	stageLatencyMs    metric.Float64Histogram
	rowsRejected      metric.Int64Counter
	salaryConflicts   metric.Int64Counter
	factsBuilt        metric.Int64Counter
	runCycles         metric.Int64Counter
	runErrors         metric.Int64Counter
	runLatencyMs      metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, reg, nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("nba-cap-optimizer")
	ctx := context.Background()

	providerAttempts, err := meter.Int64Counter("provider_attempts_total")
	if err != nil {
		return nil, err
	}
	providerErrors, err := meter.Int64Counter("provider_errors_total")
	if err != nil {
		return nil, err
	}
	providerLatency, err := meter.Float64Histogram("provider_duration_ms")
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("provider_rate_limit_hits_total")
	if err != nil {
		return nil, err
	}
	retryAfter, err := meter.Float64Histogram("provider_retry_after_ms")
	if err != nil {
		return nil, err
	}
	stageRuns, err := meter.Int64Counter("pipeline_stage_runs_total")
	if err != nil {
		return nil, err
	}
	stageErrors, err := meter.Int64Counter("pipeline_stage_errors_total")
	if err != nil {
		return nil, err
	}
	stageLatency, err := meter.Float64Histogram("pipeline_stage_duration_ms")
	if err != nil {
		return nil, err
	}
	rowsRejected, err := meter.Int64Counter("identity_rows_rejected_total")
	if err != nil {
		return nil, err
	}
	salaryConflicts, err := meter.Int64Counter("salary_conflicts_total")
	if err != nil {
		return nil, err
	}
	factsBuilt, err := meter.Int64Counter("facts_built_total")
	if err != nil {
		return nil, err
	}
	runCycles, err := meter.Int64Counter("pipeline_runs_total")
	if err != nil {
		return nil, err
	}
	runErrors, err := meter.Int64Counter("pipeline_run_errors_total")
	if err != nil {
		return nil, err
	}
	runLatency, err := meter.Float64Histogram("pipeline_run_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:               ctx,
		meter:             meter,
		providerAttempts:  providerAttempts,
		providerErrors:    providerErrors,
		providerLatencyMs: providerLatency,
		rateLimitHits:     rateLimitHits,
		retryAfterMs:      retryAfter,
		stageRuns:         stageRuns,
		stageErrors:       stageErrors,
		stageLatencyMs:    stageLatency,
		rowsRejected:      rowsRejected,
		salaryConflicts:   salaryConflicts,
		factsBuilt:        factsBuilt,
		runCycles:         runCycles,
		runErrors:         runErrors,
		runLatencyMs:      runLatency,
	}, nil
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordStage(stage string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrStage, stage)}
	o.recordCounter(o.stageRuns, 1, attrs...)
	o.recordHistogram(o.stageLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.stageErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRowsRejected(n int) {
	if o == nil {
		return
	}
	o.recordCounter(o.rowsRejected, int64(n))
}

func (o *otelInstruments) recordSalaryConflicts(n int) {
	if o == nil {
		return
	}
	o.recordCounter(o.salaryConflicts, int64(n))
}

func (o *otelInstruments) recordFactsBuilt(n int) {
	if o == nil {
		return
	}
	o.recordCounter(o.factsBuilt, int64(n))
}

func (o *otelInstruments) recordRun(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.runCycles, 1)
	o.recordHistogram(o.runLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.runErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
