package assertion

import (
	"errors"
	"fmt"
	"sync"

	"digital.vasic.fluent/pkg/check"
	"digital.vasic.fluent/pkg/logging"
	"digital.vasic.fluent/pkg/metrics"
)

// Engine defines the interface for assertion evaluation engines.
type Engine interface {
	// Evaluate checks a single assertion against the given
	// value.
	Evaluate(assertion Definition, value any) Result

	// EvaluateAll checks multiple assertions against a map of
	// named values. Each assertion's Target field is used as
	// the key into the values map.
	EvaluateAll(
		assertions []Definition,
		values map[string]any,
	) []Result

	// Register adds a custom evaluator for the given assertion
	// type. Returns an error if the type is already registered.
	Register(assertionType string, evaluator Evaluator) error
}

// Option configures a DefaultEngine.
type Option func(*DefaultEngine)

// WithCheckerOptions configures the checker running assertions.
func WithCheckerOptions(opts ...check.Option) Option {
	return func(e *DefaultEngine) {
		e.checkerOpts = append(e.checkerOpts, opts...)
	}
}

// WithLogger sets the logger for assertion outcomes.
func WithLogger(l logging.Logger) Option {
	return func(e *DefaultEngine) {
		e.logger = l
	}
}

// WithMetrics sets the recorder for assertion outcomes.
func WithMetrics(m metrics.CheckMetrics) Option {
	return func(e *DefaultEngine) {
		e.metrics = m
	}
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu          sync.RWMutex
	evaluators  map[string]Evaluator
	checkerOpts []check.Option
	checker     *check.Checker
	logger      logging.Logger
	metrics     metrics.CheckMetrics
}

// NewEngine creates a DefaultEngine with the built-in evaluators
// pre-registered.
func NewEngine(opts ...Option) *DefaultEngine {
	e := &DefaultEngine{
		evaluators: builtins(),
		logger:     logging.NullLogger{},
		metrics:    metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.checker = check.Panicking(e.checkerOpts...)
	return e
}

// Checker returns the checker evaluators run on.
func (e *DefaultEngine) Checker() *check.Checker {
	return e.checker
}

// Register adds a custom evaluator for the given assertion type.
// Returns an error if the type is already registered.
func (e *DefaultEngine) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}

	e.evaluators[assertionType] = evaluator
	return nil
}

// Evaluate runs a single assertion against the provided value.
func (e *DefaultEngine) Evaluate(
	assertion Definition,
	value any,
) Result {
	e.mu.RLock()
	evaluator, exists := e.evaluators[assertion.Type]
	e.mu.RUnlock()

	result := Result{
		Type:     assertion.Type,
		Target:   assertion.Target,
		Negated:  assertion.Not,
		Expected: expectedOf(assertion),
		Actual:   value,
	}

	if !exists {
		result.Message = fmt.Sprintf(
			"unknown assertion type: %s", assertion.Type,
		)
		e.record(result)
		return result
	}

	k := check.That(e.checker, value)
	if assertion.Target != "" {
		k = k.As(assertion.Target)
	}
	if assertion.Not {
		k = k.Not()
	}

	captured := e.checker.Capture(func() { evaluator(k, assertion) })

	switch {
	case captured.Failure != nil:
		result.Detail = captured.Failure.Message
		result.Diffs = len(captured.Failure.Result.Diffs)
		result.Message = captured.Failure.Lines()[0]
		if assertion.Message != "" {
			result.Message = assertion.Message
		}
	case captured.Panicked:
		result.Message = panicMessage(captured.Value)
	default:
		result.Passed = true
		result.Message = fmt.Sprintf("%s passed", describe(assertion))
	}

	e.record(result)
	return result
}

// EvaluateAll runs multiple assertions against a map of named
// values. Each assertion's Target field is used as the key into
// the values map. If a target is missing, the assertion fails.
func (e *DefaultEngine) EvaluateAll(
	assertions []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(assertions))

	for _, a := range assertions {
		value, exists := values[a.Target]
		if !exists {
			r := Result{
				Type:    a.Type,
				Target:  a.Target,
				Negated: a.Not,
				Passed:  false,
				Message: fmt.Sprintf(
					"target not found: %s", a.Target,
				),
			}
			e.record(r)
			results = append(results, r)
			continue
		}

		results = append(results, e.Evaluate(a, value))
	}

	return results
}

// HasEvaluator returns true if the given assertion type has a
// registered evaluator.
func (e *DefaultEngine) HasEvaluator(
	assertionType string,
) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[assertionType]
	return exists
}

// Types returns the number of registered assertion types.
func (e *DefaultEngine) Types() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.evaluators)
}

func (e *DefaultEngine) record(r Result) {
	e.metrics.RecordAssertion(r.Target, r.Type, r.Passed)

	fields := []logging.Field{
		logging.StringField("type", r.Type),
		logging.StringField("target", r.Target),
		logging.BoolField("negated", r.Negated),
	}
	if r.Passed {
		e.logger.Debug("assertion passed", fields...)
		return
	}
	e.logger.Warn("assertion failed",
		append(fields, logging.StringField("message", r.Message))...)
}

func expectedOf(d Definition) any {
	if len(d.Values) > 0 {
		return d.Values
	}
	return d.Value
}

func describe(d Definition) string {
	if d.Not {
		return "!" + d.Type
	}
	return d.Type
}

func panicMessage(v any) string {
	if err, ok := v.(error); ok {
		if errors.Is(err, ErrInvalidDefinition) || errors.Is(err, check.ErrMisuse) {
			return err.Error()
		}
		return fmt.Sprintf("evaluator panicked: %v", err)
	}
	return fmt.Sprintf("evaluator panicked: %v", v)
}
