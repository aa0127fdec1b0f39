package suite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.fluent/pkg/assertion"
	"digital.vasic.fluent/pkg/check"
	"digital.vasic.fluent/pkg/logging"
	"digital.vasic.fluent/pkg/metrics"
)

func statusesOf(results []*CaseResult) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		out[r.CaseID] = r.Status
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	results, err := NewRunner().Run(context.Background(), loadDemo(t))
	require.NoError(t, err)
	require.Len(t, results, 4)

	var ids []string
	for _, r := range results {
		ids = append(ids, r.CaseID)
	}
	assert.Equal(t, []string{"basics", "broken", "after-basics", "after-broken"}, ids)

	assert.Equal(t, map[string]string{
		"basics":       StatusPassed,
		"broken":       StatusFailed,
		"after-basics": StatusPassed,
		"after-broken": StatusSkipped,
	}, statusesOf(results))

	assert.Equal(t, "dependency broken did not pass", results[3].Error)
	assert.Empty(t, results[3].Assertions)
}

func TestRunner_FailureCarriesMessage(t *testing.T) {
	results, err := NewRunner().Run(context.Background(), loadDemo(t))
	require.NoError(t, err)

	broken := results[1]
	require.Len(t, broken.Assertions, 1)
	a := broken.Assertions[0]
	assert.False(t, a.Passed)
	assert.Equal(t, "total", a.Target)
	assert.Contains(t, a.Message, "[total]")
	assert.Contains(t, a.Detail, "The expected value:")
	assert.False(t, broken.EndTime.Before(broken.StartTime))
}

func TestRunner_MetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.NewCounterMetrics()
	r := NewRunner(
		WithLogger(logging.NewConsoleLoggerTo(&buf, false)),
		WithMetrics(m),
	)

	_, err := r.Run(context.Background(), loadDemo(t))
	require.NoError(t, err)

	assert.Equal(t, 1, m.SuiteRuns())
	assert.Equal(t, 1, m.AssertionCount("items", "size", true))
	assert.Equal(t, 1, m.AssertionCount("total", "equal", false))

	out := buf.String()
	assert.Contains(t, out, "case finished")
	assert.Contains(t, out, "case skipped")
	assert.Contains(t, out, "suite finished")
}

func TestRunner_CustomEngine(t *testing.T) {
	e := assertion.NewEngine()
	require.NoError(t, e.Register("even", func(k *check.Check[any], _ assertion.Definition) {
		check.Begin(k).
			Evaluate("even", func(v any) *check.Violation {
				if n, ok := v.(int); ok && n%2 == 0 {
					return nil
				}
				return &check.Violation{Override: "The {checked} is odd."}
			}).
			EndCheck()
	}))
	b := NewBank()
	require.NoError(t, b.LoadFile(writeSuite(t, t.TempDir(), "s.yaml", `
cases:
  - id: even
    values: {n: 4, m: 3}
    expect:
      n: ["even"]
      m: ["!even"]
`)))

	results, err := NewRunner(WithEngine(e)).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, StatusPassed, results[0].Status)
	assert.Equal(t, 2, results[0].Passed())
}

func TestRunner_Concurrency(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("cases:\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "  - id: case-%02d\n    values: {v: %d}\n    expect:\n      v: [\"equal:%d\"]\n", i, i, i)
	}
	b := NewBank()
	require.NoError(t, b.LoadFile(writeSuite(t, t.TempDir(), "many.yaml", sb.String())))

	results, err := NewRunner(WithConcurrency(4)).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("case-%02d", i), r.CaseID)
		assert.Equal(t, StatusPassed, r.Status)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewRunner(WithConcurrency(0)).Run(ctx, loadDemo(t))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"basics":       StatusError,
		"broken":       StatusError,
		"after-basics": StatusSkipped,
		"after-broken": StatusSkipped,
	}, statusesOf(results))
	assert.Equal(t, context.Canceled.Error(), results[0].Error)
}

func TestRunner_CycleIsAnError(t *testing.T) {
	b := NewBank()
	require.NoError(t, b.LoadFile(writeSuite(t, t.TempDir(), "s.yaml", `
cases:
  - id: a
    depends_on: [b]
  - id: b
    depends_on: [a]
`)))
	m := metrics.NewCounterMetrics()

	_, err := NewRunner(WithMetrics(m)).Run(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
	assert.Equal(t, 0, m.SuiteRuns())
}

func TestRunner_RunCaseInvalidExpectation(t *testing.T) {
	c := &Case{ID: "bad", Expect: map[string][]string{"x": {":3"}}}

	r := NewRunner().RunCase(context.Background(), c)

	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, r.Error, "empty assertion type")
}

func TestRunner_RunCaseMissingTarget(t *testing.T) {
	c := &Case{ID: "c", Expect: map[string][]string{"ghost": {"not_null"}}}

	r := NewRunner().RunCase(context.Background(), c)

	assert.Equal(t, StatusFailed, r.Status)
	require.Len(t, r.Assertions, 1)
	assert.Equal(t, "target not found: ghost", r.Assertions[0].Message)
}

func TestRunner_Hooks(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	record := func(stage string) Hook {
		return func(_ context.Context, c *Case) error {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, stage+":"+c.ID)
			return nil
		}
	}
	c := &Case{ID: "c", Values: map[string]any{"x": 1}, Expect: map[string][]string{"x": {"equal:1"}}}

	r := NewRunner(WithPreHook(record("pre")), WithPostHook(record("post")))
	res := r.RunCase(context.Background(), c)

	assert.Equal(t, StatusPassed, res.Status)
	assert.Equal(t, []string{"pre:c", "post:c"}, calls)
}

func TestRunner_PreHookFailure(t *testing.T) {
	checked := false
	c := &Case{ID: "c", Expect: map[string][]string{"x": {"not_null"}}}
	r := NewRunner(
		WithPreHook(func(context.Context, *Case) error { return errors.New("no fixture") }),
		WithPostHook(func(context.Context, *Case) error { checked = true; return nil }),
	)

	res := r.RunCase(context.Background(), c)

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "pre-hook failed: no fixture", res.Error)
	assert.Empty(t, res.Assertions)
	assert.False(t, checked)
}

func TestRunner_PostHookFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	c := &Case{ID: "c", Values: map[string]any{"x": 1}, Expect: map[string][]string{"x": {"not_null"}}}
	r := NewRunner(
		WithLogger(logging.NewConsoleLoggerTo(&buf, false)),
		WithPostHook(func(context.Context, *Case) error { return errors.New("cleanup") }),
	)

	res := r.RunCase(context.Background(), c)

	assert.Equal(t, StatusPassed, res.Status)
	assert.Contains(t, buf.String(), "post-hook failed")
	assert.Contains(t, buf.String(), "error=cleanup")
}
