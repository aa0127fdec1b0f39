package metrics

import (
	"sync"
	"time"
)

// CounterMetrics implements CheckMetrics with in-memory counters.
// Exporting them is left to the host application.
type CounterMetrics struct {
	mu          sync.Mutex
	checks      map[string]int
	assertions  map[string]int
	comparisons int
	diffs       int
	elapsed     time.Duration
	suiteRuns   int
}

// NewCounterMetrics creates a new CounterMetrics instance.
func NewCounterMetrics() *CounterMetrics {
	return &CounterMetrics{
		checks:     make(map[string]int),
		assertions: make(map[string]int),
	}
}

func status(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}

func (m *CounterMetrics) RecordCheck(key string, negated, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if negated {
		key = "!" + key
	}
	m.checks[key+":"+status(passed)]++
}

func (m *CounterMetrics) RecordComparison(diffs int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparisons++
	m.diffs += diffs
	m.elapsed += duration
}

func (m *CounterMetrics) RecordAssertion(target, evaluator string, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertions[target+":"+evaluator+":"+status(passed)]++
}

func (m *CounterMetrics) IncrementSuiteRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suiteRuns++
}

// CheckCount returns the count for a key+negation+outcome
// combination.
func (m *CounterMetrics) CheckCount(key string, negated, passed bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if negated {
		key = "!" + key
	}
	return m.checks[key+":"+status(passed)]
}

// AssertionCount returns the count for a target+evaluator+outcome
// combination.
func (m *CounterMetrics) AssertionCount(target, evaluator string, passed bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assertions[target+":"+evaluator+":"+status(passed)]
}

// Comparisons returns the number of comparisons and the total
// number of differences they reported.
func (m *CounterMetrics) Comparisons() (count, diffs int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.comparisons, m.diffs
}

// ComparisonTime returns the accumulated comparison time.
func (m *CounterMetrics) ComparisonTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// SuiteRuns returns the total number of suite runs.
func (m *CounterMetrics) SuiteRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suiteRuns
}
