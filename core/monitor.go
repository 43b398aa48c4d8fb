package core

import (
	"math"
	"sort"
	"sync"
	"time"
)

// maxSamplesPerOperation bounds the memory held per operation. Older
// samples are evicted first, trading historical precision for a live
// rolling window.
const maxSamplesPerOperation = 100

// OperationStats summarizes the retained latency samples for one named
// operation. Percentiles are computed over the retained window only; with
// few samples they are necessarily coarse — this is a health signal, not
// an SLA-grade metric.
type OperationStats struct {
	Count   int
	Average float64
	Median  float64
	P95     float64
	P99     float64
	Min     float64
	Max     float64
}

// PerformanceMonitor records per-operation latencies in bounded rolling
// windows. One instance is shared process-wide via the composition root;
// it is safe for concurrent use.
type PerformanceMonitor struct {
	mu      sync.Mutex
	samples map[string][]float64
}

// NewPerformanceMonitor constructs an empty monitor.
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		samples: make(map[string][]float64),
	}
}

// StartTiming begins timing operation and returns a stop function.
// Calling the stop function records the elapsed milliseconds and returns
// the measured duration.
func (m *PerformanceMonitor) StartTiming(operation string) func() float64 {
	start := time.Now()
	return func() float64 {
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		m.Record(operation, elapsed)
		return elapsed
	}
}

// Record appends a duration sample (in milliseconds) to the operation's
// rolling window, evicting the oldest sample once the window is full.
func (m *PerformanceMonitor) Record(operation string, durationMillis float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	window := append(m.samples[operation], durationMillis)
	if len(window) > maxSamplesPerOperation {
		window = window[len(window)-maxSamplesPerOperation:]
	}
	m.samples[operation] = window
}

// Stats computes statistics over the retained samples for one operation.
// The zero value is returned for unknown operations.
func (m *PerformanceMonitor) Stats(operation string) OperationStats {
	m.mu.Lock()
	window := make([]float64, len(m.samples[operation]))
	copy(window, m.samples[operation])
	m.mu.Unlock()

	return computeStats(window)
}

// AllStats computes statistics for every operation with retained samples.
func (m *PerformanceMonitor) AllStats() map[string]OperationStats {
	m.mu.Lock()
	windows := make(map[string][]float64, len(m.samples))
	for op, samples := range m.samples {
		window := make([]float64, len(samples))
		copy(window, samples)
		windows[op] = window
	}
	m.mu.Unlock()

	stats := make(map[string]OperationStats, len(windows))
	for op, window := range windows {
		stats[op] = computeStats(window)
	}
	return stats
}

// Reset clears all recorded samples.
func (m *PerformanceMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = make(map[string][]float64)
}

func computeStats(window []float64) OperationStats {
	if len(window) == 0 {
		return OperationStats{}
	}

	sorted := make([]float64, len(window))
	copy(sorted, window)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return OperationStats{
		Count:   len(sorted),
		Average: sum / float64(len(sorted)),
		Median:  percentile(sorted, 0.5),
		P95:     percentile(sorted, 0.95),
		P99:     percentile(sorted, 0.99),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}
}

// percentile indexes the sorted window at floor(n * p).
func percentile(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
