package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := &Metrics{}
	assert.Equal(t, float64(0), m.Snapshot().AverageUpstreamLatency())
	assert.Equal(t, float64(0), m.Snapshot().UpstreamErrorRate())

	m.recordUpstreamCall(10*time.Millisecond, false)
	m.recordUpstreamCall(30*time.Millisecond, true)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Calls)
	assert.Equal(t, int64(1), snap.Errors)
	assert.InDelta(t, 20.0, snap.AverageUpstreamLatency(), 0.001)
	assert.InDelta(t, 50.0, snap.UpstreamErrorRate(), 0.001)
}
