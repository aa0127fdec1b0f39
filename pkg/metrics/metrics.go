// Package metrics records counters about evaluated checks,
// declarative assertions and suite runs.
package metrics

import "time"

// CheckMetrics defines the interface for recording check metrics.
type CheckMetrics interface {
	// RecordCheck records one evaluated fluent check.
	RecordCheck(key string, negated, passed bool)
	// RecordComparison records one structural comparison and the
	// number of differences it found.
	RecordComparison(diffs int, duration time.Duration)
	// RecordAssertion records a declarative assertion evaluation.
	RecordAssertion(target, evaluator string, passed bool)
	// IncrementSuiteRuns increments the suite run counter.
	IncrementSuiteRuns()
}

// NoopMetrics is a no-op implementation of CheckMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordCheck(_ string, _, _ bool)         {}
func (NoopMetrics) RecordComparison(_ int, _ time.Duration) {}
func (NoopMetrics) RecordAssertion(_, _ string, _ bool)     {}
func (NoopMetrics) IncrementSuiteRuns()                     {}
