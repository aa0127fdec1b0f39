package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounterMetrics_RecordCheck(t *testing.T) {
	m := NewCounterMetrics()
	m.RecordCheck("not_equal", false, true)
	m.RecordCheck("not_equal", false, true)
	m.RecordCheck("not_equal", true, false)

	assert.Equal(t, 2, m.CheckCount("not_equal", false, true))
	assert.Equal(t, 1, m.CheckCount("not_equal", true, false))
	assert.Equal(t, 0, m.CheckCount("not_equal", false, false))
}

func TestCounterMetrics_RecordAssertion(t *testing.T) {
	m := NewCounterMetrics()
	m.RecordAssertion("response", "not_empty", true)
	m.RecordAssertion("response", "not_empty", false)

	assert.Equal(t, 1, m.AssertionCount("response", "not_empty", true))
	assert.Equal(t, 1, m.AssertionCount("response", "not_empty", false))
}

func TestCounterMetrics_RecordComparison(t *testing.T) {
	m := NewCounterMetrics()
	m.RecordComparison(0, time.Millisecond)
	m.RecordComparison(3, 2*time.Millisecond)

	count, diffs := m.Comparisons()
	assert.Equal(t, 2, count)
	assert.Equal(t, 3, diffs)
	assert.Equal(t, 3*time.Millisecond, m.ComparisonTime())
}

func TestCounterMetrics_SuiteRuns(t *testing.T) {
	m := NewCounterMetrics()
	m.IncrementSuiteRuns()
	m.IncrementSuiteRuns()
	assert.Equal(t, 2, m.SuiteRuns())
}

func TestCounterMetrics_Concurrent(t *testing.T) {
	m := NewCounterMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordCheck("size", false, true)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.CheckCount("size", false, true))
}

func TestMetrics_ImplementInterface(t *testing.T) {
	var _ CheckMetrics = &CounterMetrics{}
	var _ CheckMetrics = &NoopMetrics{}
}

func TestNoopMetrics(t *testing.T) {
	m := &NoopMetrics{}
	// Should not panic
	m.RecordCheck("k", false, true)
	m.RecordComparison(1, time.Second)
	m.RecordAssertion("t", "e", true)
	m.IncrementSuiteRuns()
}
