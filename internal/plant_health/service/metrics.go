package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks upstream call counters. Safe for concurrent use.
type Metrics struct {
	upstreamCalls   int64
	upstreamErrors  int64
	upstreamLatency int64 // Total latency in nanoseconds
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Calls     int64
	Errors    int64
	LatencyNs int64
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Calls:     atomic.LoadInt64(&m.upstreamCalls),
		Errors:    atomic.LoadInt64(&m.upstreamErrors),
		LatencyNs: atomic.LoadInt64(&m.upstreamLatency),
	}
}

// recordUpstreamCall records an upstream service call. failed covers both
// transport errors and upstream statuses >= 400.
func (m *Metrics) recordUpstreamCall(duration time.Duration, failed bool) {
	atomic.AddInt64(&m.upstreamCalls, 1)
	atomic.AddInt64(&m.upstreamLatency, duration.Nanoseconds())
	if failed {
		atomic.AddInt64(&m.upstreamErrors, 1)
	}
}

// AverageUpstreamLatency returns the average latency in milliseconds
func (s MetricsSnapshot) AverageUpstreamLatency() float64 {
	if s.Calls == 0 {
		return 0
	}
	avgNs := float64(s.LatencyNs) / float64(s.Calls)
	return avgNs / 1e6
}

// UpstreamErrorRate returns the error rate as a percentage
func (s MetricsSnapshot) UpstreamErrorRate() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Calls) * 100
}
