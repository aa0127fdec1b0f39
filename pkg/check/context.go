package check

import (
	"fmt"

	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/message"
)

// Check is an immutable handle on a subject. Modifiers return new
// handles, so a Check can be reused freely.
type Check[T any] struct {
	checker *Checker
	value   T
	negated bool
	label   string
}

// That starts checking v.
func That[T any](c *Checker, v T) *Check[T] {
	return &Check[T]{checker: c, value: v}
}

// Not returns a handle whose next check is inverted.
func (k *Check[T]) Not() *Check[T] {
	n := *k
	n.negated = !k.negated
	return &n
}

// As returns a handle that names the subject in messages:
// "The checked [label] ...".
func (k *Check[T]) As(label string) *Check[T] {
	n := *k
	n.label = label
	return &n
}

// Value returns the subject.
func (k *Check[T]) Value() T {
	return k.value
}

// Negated reports whether the next check is inverted.
func (k *Check[T]) Negated() bool {
	return k.negated
}

// Label returns the custom subject label, if any.
func (k *Check[T]) Label() string {
	return k.label
}

// Checker returns the checker running this check.
func (k *Check[T]) Checker() *Checker {
	return k.checker
}

// Link chains checks on the same subject.
type Link[T any] struct {
	check *Check[T]
}

// And returns a handle for a further check on the same subject.
// The label is kept; negation is reset.
func (l *Link[T]) And() *Check[T] {
	n := *l.check
	n.negated = false
	return &n
}

// Outcome is the state of a check context.
type Outcome int

const (
	// Pending means the context has not been evaluated yet.
	Pending Outcome = iota
	// Passed means the check held.
	Passed
	// Failed means the check did not hold.
	Failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Violation explains why a predicate does not hold. Zero fields
// fall back to what the context already knows.
type Violation struct {
	// Key replaces the message key given to Evaluate.
	Key message.Key
	// Result holds structural differences.
	Result compare.Result
	// Override replaces the message headline.
	Override string
	// Params fill template placeholders.
	Params map[string]string

	// Checked replaces the subject shown in the message.
	Checked    any
	HasChecked bool
	// Expected replaces the expected value shown in the message.
	Expected    any
	HasExpected bool
}

// Violated returns an empty violation.
func Violated() *Violation {
	return &Violation{}
}

// Differs returns a violation carrying r, or nil when r found no
// difference.
func Differs(r compare.Result) *Violation {
	if r.Equal() {
		return nil
	}
	return &Violation{Result: r}
}

// Predicate tests a subject. It returns nil when the condition
// holds and a *Violation describing the discrepancy otherwise.
type Predicate[T any] func(v T) *Violation

// Context evaluates one check. It must be evaluated exactly once
// and then ended.
type Context[T any] struct {
	check   *Check[T]
	outcome Outcome
	failure *Failure
	ended   bool

	expected    any
	hasExpected bool
	hideChecked bool
	params      map[string]string
}

// Begin opens a context for one check on k.
func Begin[T any](k *Check[T]) *Context[T] {
	return &Context[T]{check: k}
}

// Expecting records the reference value shown in messages.
func (c *Context[T]) Expecting(v any) *Context[T] {
	c.expected = v
	c.hasExpected = true
	return c
}

// WithParam sets a template placeholder for both polarities.
func (c *Context[T]) WithParam(name, value string) *Context[T] {
	if c.params == nil {
		c.params = map[string]string{}
	}
	c.params[name] = value
	return c
}

// HideChecked leaves the subject out of the message.
func (c *Context[T]) HideChecked() *Context[T] {
	c.hideChecked = true
	return c
}

// Evaluate runs pred once against the subject. Negation inverts
// the verdict. Evaluating a context twice panics with ErrMisuse.
func (c *Context[T]) Evaluate(
	key message.Key,
	pred Predicate[T],
) *Context[T] {
	if c.outcome != Pending {
		panic(fmt.Errorf("%w: check %q evaluated twice", ErrMisuse, key))
	}

	k := c.check
	v := pred(k.value)
	held := v == nil
	subject := message.LabelFor(k.value)

	if held != k.negated {
		c.outcome = Passed
		k.checker.observe(key, subject, k.negated, nil)
		return c
	}

	c.outcome = Failed
	d := message.Description{
		SubjectLabel: subject,
		CustomLabel:  k.label,
		Key:          key,
		Negated:      k.negated,
		Checked:      any(k.value),
		HasChecked:   !c.hideChecked,
		Expected:     c.expected,
		HasExpected:  c.hasExpected,
		Params:       map[string]string{},
	}
	for name, value := range c.params {
		d.Params[name] = value
	}

	var r compare.Result
	if v != nil {
		r = v.Result
		if v.Key != "" {
			d.Key = v.Key
		}
		d.Diffs = v.Result.Diffs
		d.Override = v.Override
		for name, value := range v.Params {
			d.Params[name] = value
		}
		if v.HasChecked {
			d.Checked = v.Checked
			d.HasChecked = true
		}
		if v.HasExpected {
			d.Expected = v.Expected
			d.HasExpected = true
		}
	}

	c.failure = k.checker.newFailure(d, r)
	k.checker.observe(d.Key, subject, k.negated, c.failure)
	return c
}

// Outcome returns the evaluation state.
func (c *Context[T]) Outcome() Outcome {
	return c.outcome
}

// Failure returns the failure of a failed context, or nil.
func (c *Context[T]) Failure() *Failure {
	return c.failure
}

// EndCheck closes the context. A failed check is raised through
// the checker; ending a pending or already ended context panics
// with ErrMisuse.
func (c *Context[T]) EndCheck() *Link[T] {
	c.check.checker.t.Helper()
	switch {
	case c.outcome == Pending:
		panic(fmt.Errorf("%w: check ended before evaluation", ErrMisuse))
	case c.ended:
		panic(fmt.Errorf("%w: check ended twice", ErrMisuse))
	}
	c.ended = true
	if c.outcome == Failed {
		c.check.checker.raise(c.failure)
	}
	return &Link[T]{check: c.check}
}
