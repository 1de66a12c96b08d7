package metrics

import (
	"context"
	"testing"
	"time"
)

func TestSetupDisabledReturnsNoopPublish(t *testing.T) {
	rec, publish, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if publish == nil {
		t.Fatalf("expected publish function")
	}
	if err := publish(context.Background()); err != nil {
		t.Fatalf("expected noop publish to succeed, got %v", err)
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledInitializesRecorder(t *testing.T) {
	rec, publish, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "nba-cap-optimizer",
		// No OTLP endpoint or Pushgateway; uses Prometheus exporter only.
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if publish == nil {
		t.Fatalf("expected publish function")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	}()

	// Exercise otel-backed recorders to ensure no panic.
	rec.RecordProviderAttempt("fixture", time.Millisecond, nil)
	rec.RecordRateLimit("fixture", time.Second)
	rec.RecordStage("resolve", time.Millisecond, nil)
	rec.RecordRowsRejected(1)
	rec.RecordSalaryConflicts(1)
	rec.RecordFactsBuilt(1)
	rec.RecordRun(time.Millisecond, nil)
}
