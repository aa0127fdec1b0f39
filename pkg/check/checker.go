// Package check is the fluent check engine. A Checker is bound to
// one test; That captures a subject; each check evaluates its
// predicate exactly once, honours negation and, on failure, raises
// a *Failure carrying a rendered message and the structured
// differences behind it.
//
//	c := check.New(t)
//	check.That(c, got).IsEqualTo(want)
//	check.That(c, items).Not().Contains("x").And().HasSize(2)
package check

import (
	"sync/atomic"
	"time"

	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/logging"
	"digital.vasic.fluent/pkg/message"
	"digital.vasic.fluent/pkg/metrics"
)

// TestingT is the part of *testing.T a Checker needs.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// panicT backs checkers that report failures by panicking.
type panicT struct{}

func (panicT) Helper() {}

func (panicT) Fatalf(string, ...any) {}

// Option configures a Checker.
type Option func(*Checker)

// WithFormatter sets the formatter rendering failure messages.
func WithFormatter(f message.Formatter) Option {
	return func(c *Checker) {
		c.formatter = f
	}
}

// WithLogger sets the logger receiving one record per check.
func WithLogger(l logging.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.CheckMetrics) Option {
	return func(c *Checker) {
		c.metrics = m
	}
}

// WithCompareOptions sets the structural comparison options.
func WithCompareOptions(opts ...compare.Option) Option {
	return func(c *Checker) {
		c.compareOpts = append(c.compareOpts, opts...)
	}
}

// Checker runs checks for one test. Like *testing.T it is meant
// to be used from the test's goroutine.
type Checker struct {
	t           TestingT
	panics      bool
	formatter   message.Formatter
	logger      logging.Logger
	metrics     metrics.CheckMetrics
	compareOpts []compare.Option
	comparer    *compare.Comparer
	strict      *compare.Comparer

	// intercepting counts active ThatCode captures. While it is
	// positive failures are panicked so the capture can see them.
	intercepting atomic.Int32
}

// New creates a Checker reporting failures through t. A nil t
// yields a panicking checker.
func New(t TestingT, opts ...Option) *Checker {
	c := &Checker{
		t:         t,
		formatter: message.Default(),
		logger:    logging.NullLogger{},
		metrics:   metrics.NoopMetrics{},
	}
	if t == nil {
		c.t = panicT{}
		c.panics = true
	}
	for _, opt := range opts {
		opt(c)
	}
	c.comparer = compare.New(c.compareOpts...)
	c.strict = compare.New(append(
		append([]compare.Option{}, c.compareOpts...),
		compare.WithMatchStructTypes(true),
	)...)
	return c
}

// Panicking creates a Checker that raises every failure by
// panicking with the *Failure. It suits code outside tests and
// the declarative assertion engine.
func Panicking(opts ...Option) *Checker {
	return New(nil, opts...)
}

// Comparer returns the comparer used by the built-in checks. It
// is meant for custom checks.
func (c *Checker) Comparer() *compare.Comparer {
	return c.comparer
}

// Formatter returns the formatter rendering failure messages.
func (c *Checker) Formatter() message.Formatter {
	return c.formatter
}

func (c *Checker) compare(
	cmp *compare.Comparer,
	run func(*compare.Comparer) compare.Result,
) compare.Result {
	start := time.Now()
	r := run(cmp)
	c.metrics.RecordComparison(len(r.Diffs), time.Since(start))
	return r
}

func (c *Checker) newFailure(
	d message.Description,
	r compare.Result,
) *Failure {
	return &Failure{
		Message:     c.formatter.Format(d),
		Description: d,
		Result:      r,
	}
}

// observe records the outcome of one evaluated check.
func (c *Checker) observe(
	key message.Key,
	subject string,
	negated bool,
	f *Failure,
) {
	passed := f == nil
	c.metrics.RecordCheck(string(key), negated, passed)

	record := logging.CheckRecord{
		Key:     string(key),
		Subject: subject,
		Negated: negated,
		Passed:  passed,
	}
	if f != nil {
		record.Diffs = len(f.Result.Diffs)
		record.Message = f.Message
	}
	c.logger.LogCheck(record)
	c.logger.Debug("check evaluated",
		logging.StringField("key", string(key)),
		logging.BoolField("negated", negated),
		logging.BoolField("passed", passed),
		logging.IntField("diffs", record.Diffs),
	)
}

// raise reports f. Inside ThatCode, or for panicking checkers,
// the failure is panicked; otherwise the test is failed and
// stopped.
func (c *Checker) raise(f *Failure) {
	c.t.Helper()
	if c.panics || c.intercepting.Load() > 0 {
		panic(f)
	}
	c.t.Fatalf("%s", f.Message)
}

// Capture is what running a piece of code under interception
// produced.
type Capture struct {
	// Failure is the failing check the code raised, if any.
	Failure *Failure
	// Panicked is set when the code panicked with anything other
	// than a *Failure. Value holds the panic value.
	Panicked bool
	Value    any
}

// Capture runs fn with failure interception active and reports
// what it raised.
func (c *Checker) Capture(fn func()) (captured Capture) {
	c.intercepting.Add(1)
	defer c.intercepting.Add(-1)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := r.(*Failure); ok {
			captured.Failure = f
			return
		}
		captured.Panicked = true
		captured.Value = r
	}()
	fn()
	return captured
}
