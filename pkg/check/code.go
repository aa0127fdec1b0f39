package check

import (
	"fmt"
	"strings"

	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/message"
)

// CodeCheck checks what a piece of code raised. The code runs
// once, when ThatCode is called, with failure interception
// active so failing checks inside it are captured instead of
// failing the test.
type CodeCheck struct {
	check *Check[Capture]
}

// ThatCode runs fn under interception and returns a handle on
// what it raised.
func (c *Checker) ThatCode(fn func()) *CodeCheck {
	return &CodeCheck{check: That(c, c.Capture(fn))}
}

// Not returns a handle whose next check is inverted.
func (cc *CodeCheck) Not() *CodeCheck {
	return &CodeCheck{check: cc.check.Not()}
}

// As names the code in messages.
func (cc *CodeCheck) As(label string) *CodeCheck {
	return &CodeCheck{check: cc.check.As(label)}
}

// Captured returns what the code raised.
func (cc *CodeCheck) Captured() Capture {
	return cc.check.value
}

// CodeLink chains checks on the same code.
type CodeLink struct {
	check *Check[Capture]
}

// And returns a handle for a further check on the same capture.
// Negation is reset.
func (l *CodeLink) And() *CodeCheck {
	return &CodeCheck{check: (&Link[Capture]{check: l.check}).And()}
}

func (cc *CodeCheck) end(ctx *Context[Capture]) *CodeLink {
	cc.check.checker.t.Helper()
	ctx.EndCheck()
	return &CodeLink{check: cc.check}
}

// raised describes whatever the code raised.
func raised(c Capture) (any, bool) {
	switch {
	case c.Failure != nil:
		return c.Failure.Message, true
	case c.Panicked:
		return c.Value, true
	default:
		return nil, false
	}
}

// DoesNotPanic checks that the code neither panicked nor raised
// a failing check.
func (cc *CodeCheck) DoesNotPanic() *CodeLink {
	cc.check.checker.t.Helper()
	return cc.end(Begin(cc.check).
		HideChecked().
		Evaluate(message.KeyPanicked, func(c Capture) *Violation {
			value, ok := raised(c)
			if !ok {
				return nil
			}
			return &Violation{Checked: value, HasChecked: true}
		}))
}

// Panics checks that the code panicked or raised a failing check.
func (cc *CodeCheck) Panics() *CodeLink {
	cc.check.checker.t.Helper()
	return cc.end(Begin(cc.check).
		HideChecked().
		Evaluate(message.KeyDidNotPanic, func(c Capture) *Violation {
			if _, ok := raised(c); ok {
				return nil
			}
			return Violated()
		}))
}

// PanicsWith checks that the code panicked with a value
// structurally equal to expected.
func (cc *CodeCheck) PanicsWith(expected any) *CodeLink {
	cc.check.checker.t.Helper()
	checker := cc.check.checker
	return cc.end(Begin(cc.check).
		HideChecked().
		Expecting(expected).
		Evaluate(message.KeyPanicValue, func(c Capture) *Violation {
			if !c.Panicked {
				return &Violation{Key: message.KeyDidNotPanic}
			}
			r := checker.compare(checker.comparer,
				func(cmp *compare.Comparer) compare.Result {
					return cmp.Compare(expected, c.Value)
				})
			if r.Equal() {
				return nil
			}
			return &Violation{Result: r, Checked: c.Value, HasChecked: true}
		}))
}

// IsAFailingCheck checks that the code raised a failing check.
func (cc *CodeCheck) IsAFailingCheck() *CodeLink {
	cc.check.checker.t.Helper()
	return cc.end(Begin(cc.check).
		HideChecked().
		Evaluate(message.KeyNotFailing, func(c Capture) *Violation {
			if c.Failure != nil {
				return nil
			}
			if c.Panicked {
				return &Violation{
					Override:   "The checked code panicked instead of raising a failing check.",
					Checked:    c.Value,
					HasChecked: true,
				}
			}
			return Violated()
		}))
}

// IsAFailingCheckWithMessage checks that the code raised a
// failing check whose message is exactly the given lines.
func (cc *CodeCheck) IsAFailingCheckWithMessage(lines ...string) *CodeLink {
	cc.check.checker.t.Helper()
	checker := cc.check.checker
	expected := strings.Join(lines, "\n")
	return cc.end(Begin(cc.check).
		HideChecked().
		Expecting(expected).
		Evaluate(message.KeyFailureMessage, func(c Capture) *Violation {
			if c.Failure == nil {
				v := &Violation{Key: message.KeyNotFailing}
				if c.Panicked {
					v.Override = fmt.Sprintf(
						"The checked code panicked instead of raising a failing check: %v.",
						c.Value)
				}
				return v
			}
			if c.Failure.Message == expected {
				return nil
			}
			return &Violation{
				Result:     checker.comparer.Compare(expected, c.Failure.Message),
				Checked:    c.Failure.Message,
				HasChecked: true,
			}
		}))
}
