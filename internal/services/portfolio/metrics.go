package portfolio

import (
	"errors"
	"sync"
	"time"

	domainerrors "cardfolio/internal/errors"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}

// OperationStats is the running total for one operation.
type OperationStats struct {
	Count   int            `json:"count"`
	Results map[string]int `json:"results"`
	Total   time.Duration  `json:"-"`
	AvgMS   float64        `json:"avg_ms"`
}

// CountingMetricsCollector keeps per-operation counts in memory for the
// health endpoint.
type CountingMetricsCollector struct {
	mu  sync.Mutex
	ops map[string]*OperationStats
}

func NewCountingMetricsCollector() *CountingMetricsCollector {
	return &CountingMetricsCollector{ops: make(map[string]*OperationStats)}
}

func (m *CountingMetricsCollector) stats(op string) *OperationStats {
	s, ok := m.ops[op]
	if !ok {
		s = &OperationStats{Results: make(map[string]int)}
		m.ops[op] = s
	}
	return s
}

func (m *CountingMetricsCollector) RecordOperationDuration(op string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats(op)
	s.Count++
	s.Total += d
}

func (m *CountingMetricsCollector) RecordOperationResult(op, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats(op).Results[result]++
}

// Snapshot returns a copy of the current totals.
func (m *CountingMetricsCollector) Snapshot() map[string]OperationStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]OperationStats, len(m.ops))
	for op, s := range m.ops {
		cp := OperationStats{Count: s.Count, Total: s.Total, Results: make(map[string]int, len(s.Results))}
		for k, v := range s.Results {
			cp.Results[k] = v
		}
		if s.Count > 0 {
			cp.AvgMS = float64(s.Total.Microseconds()) / float64(s.Count) / 1000
		}
		out[op] = cp
	}
	return out
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case domainerrors.IsValidation(err):
		return ResultInvalid
	case domainerrors.IsNotFound(err):
		return ResultNotFound
	case errors.Is(err, domainerrors.ErrLockTimeout):
		return ResultLockTimeout
	}
	return ResultIOError
}
