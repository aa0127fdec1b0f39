package suite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"digital.vasic.fluent/pkg/assertion"
	"digital.vasic.fluent/pkg/logging"
	"digital.vasic.fluent/pkg/metrics"
)

// Hook runs before or after a case.
type Hook func(ctx context.Context, c *Case) error

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithEngine sets the assertion engine cases run through.
func WithEngine(e assertion.Engine) RunnerOption {
	return func(r *Runner) {
		r.engine = e
	}
}

// WithLogger sets the logger for case outcomes.
func WithLogger(l logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithMetrics sets the recorder counting suite runs.
func WithMetrics(m metrics.CheckMetrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithConcurrency sets how many cases of one dependency wave run
// at the same time. Values below 1 mean 1.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithPreHook adds a hook run before each case. A failing pre-hook
// ends the case with StatusError before any check runs.
func WithPreHook(h Hook) RunnerOption {
	return func(r *Runner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a hook run after each case. Post-hook errors
// are logged and do not change the result.
func WithPostHook(h Hook) RunnerOption {
	return func(r *Runner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// Runner runs the cases of a Bank.
type Runner struct {
	engine      assertion.Engine
	logger      logging.Logger
	metrics     metrics.CheckMetrics
	concurrency int
	preHooks    []Hook
	postHooks   []Hook
}

// NewRunner creates a Runner. Without WithEngine it uses a fresh
// assertion engine sharing the runner's logger and metrics.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:      logging.NullLogger{},
		metrics:     metrics.NoopMetrics{},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	if r.engine == nil {
		r.engine = assertion.NewEngine(
			assertion.WithLogger(r.logger),
			assertion.WithMetrics(r.metrics),
		)
	}
	return r
}

// Run runs every case of the bank in dependency order and returns
// the results sorted the same way. A case is skipped when one of
// its dependencies did not pass. Once ctx is done the remaining
// cases end with StatusError.
func (r *Runner) Run(ctx context.Context, bank *Bank) ([]*CaseResult, error) {
	order, err := bank.DependencyOrder()
	if err != nil {
		return nil, err
	}
	r.metrics.IncrementSuiteRuns()

	statuses := make(map[string]string, bank.Count())
	results := make([]*CaseResult, 0, bank.Count())

	for _, wave := range order {
		waveResults := r.runWave(ctx, wave, statuses)
		for _, res := range waveResults {
			statuses[res.CaseID] = res.Status
		}
		results = append(results, waveResults...)
	}

	r.logger.Info("suite finished",
		logging.IntField("cases", len(results)),
		logging.IntField("failed", countNotPassed(results)),
	)
	return results, nil
}

// runWave runs the cases of one wave with at most r.concurrency
// goroutines. Results keep the order of the wave. statuses is
// only read.
func (r *Runner) runWave(
	ctx context.Context,
	wave []*Case,
	statuses map[string]string,
) []*CaseResult {
	sem := make(chan struct{}, r.concurrency)
	results := make([]*CaseResult, len(wave))

	var wg sync.WaitGroup
	for i, c := range wave {
		if dep, ok := blockingDependency(c, statuses); ok {
			results[i] = skipped(c, dep)
			r.logger.Info("case skipped",
				logging.StringField("case", c.ID),
				logging.StringField("dependency", dep),
			)
			continue
		}

		wg.Add(1)
		go func(idx int, c *Case) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = cancelled(c, ctx.Err())
				return
			}
			results[idx] = r.RunCase(ctx, c)
		}(i, c)
	}
	wg.Wait()

	return results
}

// RunCase evaluates the checks of a single case against its
// values.
func (r *Runner) RunCase(ctx context.Context, c *Case) *CaseResult {
	if err := ctx.Err(); err != nil {
		return cancelled(c, err)
	}

	result := &CaseResult{
		CaseID:    c.ID,
		CaseName:  c.Name,
		StartTime: time.Now(),
	}
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
	}()

	for _, hook := range r.preHooks {
		if err := hook(ctx, c); err != nil {
			result.Status = StatusError
			result.Error = "pre-hook failed: " + err.Error()
			return result
		}
	}
	defer r.runPostHooks(ctx, c)

	defs, err := c.Definitions()
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		r.logger.Error("case definitions invalid",
			logging.StringField("case", c.ID),
			logging.ErrorField(err),
		)
		return result
	}

	result.Assertions = r.engine.EvaluateAll(defs, c.Values)
	result.Status = StatusPassed
	if result.Passed() != len(result.Assertions) {
		result.Status = StatusFailed
	}

	r.logger.Info("case finished",
		logging.StringField("case", c.ID),
		logging.StringField("status", result.Status),
		logging.IntField("assertions", len(result.Assertions)),
		logging.IntField("passed", result.Passed()),
		logging.DurationField("duration", time.Since(result.StartTime)),
	)
	return result
}

func (r *Runner) runPostHooks(ctx context.Context, c *Case) {
	for _, hook := range r.postHooks {
		if err := hook(ctx, c); err != nil {
			r.logger.Warn("post-hook failed",
				logging.StringField("case", c.ID),
				logging.ErrorField(err),
			)
		}
	}
}

// blockingDependency returns the first dependency of c that did
// not pass.
func blockingDependency(c *Case, statuses map[string]string) (string, bool) {
	for _, dep := range c.DependsOn {
		if statuses[dep] != StatusPassed {
			return dep, true
		}
	}
	return "", false
}

func skipped(c *Case, dep string) *CaseResult {
	now := time.Now()
	return &CaseResult{
		CaseID:    c.ID,
		CaseName:  c.Name,
		Status:    StatusSkipped,
		StartTime: now,
		EndTime:   now,
		Error:     fmt.Sprintf("dependency %s did not pass", dep),
	}
}

func cancelled(c *Case, err error) *CaseResult {
	now := time.Now()
	return &CaseResult{
		CaseID:    c.ID,
		CaseName:  c.Name,
		Status:    StatusError,
		StartTime: now,
		EndTime:   now,
		Error:     err.Error(),
	}
}

func countNotPassed(results []*CaseResult) int {
	n := 0
	for _, r := range results {
		if r.Status != StatusPassed {
			n++
		}
	}
	return n
}
