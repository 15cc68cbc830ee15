package observability

import (
	"sync"

	"go.uber.org/zap"
)

// Metrics provides basic in-memory counters for a generation run.
type Metrics struct {
	mu           sync.Mutex
	generated    map[string]int64
	outliers     int64
	sinkRows     map[string]int64
	sinkFailures map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		generated:    make(map[string]int64),
		sinkRows:     make(map[string]int64),
		sinkFailures: make(map[string]int64),
	}
}

// RecordGenerated counts one synthesized record for region.
func (m *Metrics) RecordGenerated(region string, outlier bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated[region]++
	if outlier {
		m.outliers++
	}
}

// RecordSinkRows adds rows written by a sink (csv, xlsx, postgres, redis).
func (m *Metrics) RecordSinkRows(sink string, rows int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinkRows[sink] += int64(rows)
}

// RecordSinkFailure increments the failure counter for sink.
func (m *Metrics) RecordSinkFailure(sink string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinkFailures[sink]++
}

// Generated returns the number of records counted for region.
func (m *Metrics) Generated(region string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generated[region]
}

// Outliers returns how many records had their resolution time inflated.
func (m *Metrics) Outliers() int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outliers
}

// SinkRows returns rows written by sink.
func (m *Metrics) SinkRows(sink string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sinkRows[sink]
}

// SinkFailures returns the failure count for sink.
func (m *Metrics) SinkFailures(sink string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sinkFailures[sink]
}

// Fields renders the counters as zap fields for the end-of-run log line.
func (m *Metrics) Fields() []zap.Field {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return []zap.Field{
		zap.Any("generated", copyCounts(m.generated)),
		zap.Int64("outliers", m.outliers),
		zap.Any("sink_rows", copyCounts(m.sinkRows)),
		zap.Any("sink_failures", copyCounts(m.sinkFailures)),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
