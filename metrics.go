package fuzzyc

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIteration is called after each Iterate call.
	// duration covers both phases, err is nil if successful.
	RecordIteration(duration time.Duration, err error)

	// RecordDegenerate is called once per degenerate centroid.
	RecordDegenerate(centroid int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(time.Duration, error) {}
func (NoopMetricsCollector) RecordDegenerate(int)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IterationCount      atomic.Int64
	IterationErrors     atomic.Int64
	IterationTotalNanos atomic.Int64
	DegenerateCount     atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(duration time.Duration, err error) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IterationErrors.Add(1)
	}
}

// RecordDegenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDegenerate(int) {
	b.DegenerateCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IterationCount:    b.IterationCount.Load(),
		IterationErrors:   b.IterationErrors.Load(),
		IterationAvgNanos: b.getAvgIterationNanos(),
		DegenerateCount:   b.DegenerateCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgIterationNanos() int64 {
	count := b.IterationCount.Load()
	if count == 0 {
		return 0
	}
	return b.IterationTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IterationCount    int64
	IterationErrors   int64
	IterationAvgNanos int64
	DegenerateCount   int64
}
