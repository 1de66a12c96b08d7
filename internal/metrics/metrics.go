package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type stageStats struct {
	runs        int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// pipeline stages. It is intentionally simple so it can be swapped for a real
// backend later.
type Recorder struct {
	mu              sync.Mutex
	providers       map[string]*providerStats
	stages          map[string]*stageStats
	rowsRejected    int
	salaryConflicts int
	factsBuilt      int
	otel            *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		stages:    make(map[string]*stageStats),
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureProvider(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureProvider(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordStage tracks one pipeline stage execution.
func (r *Recorder) RecordStage(stage string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stages[stage]
	if !ok {
		stats = &stageStats{}
		r.stages[stage] = stats
	}
	stats.runs++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStage(stage, duration, err)
	}
}

// RecordRowsRejected counts source rows dropped during identity resolution.
func (r *Recorder) RecordRowsRejected(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.rowsRejected += n
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRowsRejected(n)
	}
}

// RecordSalaryConflicts counts (player, season) salary groups routed to the audit sink.
func (r *Recorder) RecordSalaryConflicts(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.salaryConflicts += n
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSalaryConflicts(n)
	}
}

// RecordFactsBuilt counts player-season facts produced by a run.
func (r *Recorder) RecordFactsBuilt(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.factsBuilt += n
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFactsBuilt(n)
	}
}

// RecordRun tracks one complete pipeline run.
func (r *Recorder) RecordRun(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRun(duration, err)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.ProviderSnapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.ProviderSnapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.ProviderSnapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.ProviderSnapshot(provider).LastRetryAfter
}

// StageRuns returns the number of executions recorded for a stage.
func (r *Recorder) StageRuns(stage string) int {
	return r.StageSnapshot(stage).Runs
}

// StageErrors returns the number of failed executions recorded for a stage.
func (r *Recorder) StageErrors(stage string) int {
	return r.StageSnapshot(stage).Errors
}

// RowsRejected returns the cumulative count of rejected source rows.
func (r *Recorder) RowsRejected() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rowsRejected
}

// SalaryConflicts returns the cumulative count of audited salary conflicts.
func (r *Recorder) SalaryConflicts() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.salaryConflicts
}

// FactsBuilt returns the cumulative count of facts produced.
func (r *Recorder) FactsBuilt() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.factsBuilt
}

// ProviderSnapshot is a copy of the current stats for one provider.
type ProviderSnapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) ProviderSnapshot(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.providers[provider]; ok && stats != nil {
		return ProviderSnapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			RateLimitHits:   stats.rateLimitHits,
			LastRetryAfter:  stats.lastRetryAfter,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return ProviderSnapshot{}
}

// StageSnapshot is a copy of the current stats for one pipeline stage.
type StageSnapshot struct {
	Runs        int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) StageSnapshot(stage string) StageSnapshot {
	if r == nil {
		return StageSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stages[stage]; ok && stats != nil {
		return StageSnapshot{
			Runs:        stats.runs,
			Errors:      stats.errors,
			LastLatency: stats.lastLatency,
		}
	}
	return StageSnapshot{}
}

// ensureProvider must be called with r.mu held.
func (r *Recorder) ensureProvider(provider string) *providerStats {
	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	return stats
}
