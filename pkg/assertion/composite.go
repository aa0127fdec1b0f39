package assertion

import (
	"fmt"

	"digital.vasic.fluent/pkg/check"
	"digital.vasic.fluent/pkg/message"
)

// AllPassComposite evaluates every assertion and reports whether
// all of them passed. The first failure's message is reported.
func AllPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if !r.Passed {
			return Result{
				Type:   "all_pass",
				Passed: false,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' failed: %s",
					r.Type, r.Target, r.Message,
				),
				Detail: r.Detail,
			}
		}
	}

	return Result{
		Type:   "all_pass",
		Passed: true,
		Message: fmt.Sprintf(
			"all %d assertions passed", len(results),
		),
	}
}

// AnyPassComposite evaluates the assertions and reports whether
// at least one of them passed.
func AnyPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if r.Passed {
			return Result{
				Type:   "any_pass",
				Passed: true,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' passed",
					r.Type, r.Target,
				),
			}
		}
	}

	return Result{
		Type:   "any_pass",
		Passed: false,
		Message: fmt.Sprintf(
			"none of %d assertions passed",
			len(results),
		),
	}
}

// CompositeAllPass returns an Evaluator that runs a fixed set of
// sub-assertions against the checked value and requires all to
// pass.
func CompositeAllPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return composite("all_pass", engine, subAssertions, AllPassComposite)
}

// CompositeAnyPass returns an Evaluator that runs a fixed set of
// sub-assertions against the checked value and requires at least
// one to pass.
func CompositeAnyPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return composite("any_pass", engine, subAssertions, AnyPassComposite)
}

func composite(
	key string,
	engine Engine,
	subAssertions []Definition,
	run func(Engine, []Definition, map[string]any) Result,
) Evaluator {
	return func(k *check.Check[any], _ Definition) {
		check.Begin(k).
			Evaluate(message.Key("composite_"+key), func(v any) *check.Violation {
				values := map[string]any{}
				for _, a := range subAssertions {
					values[a.Target] = v
				}
				r := run(engine, subAssertions, values)
				if r.Passed {
					return nil
				}
				return &check.Violation{
					Override: "The {checked} does not satisfy " + key + ": " + r.Message,
				}
			}).
			EndCheck()
	}
}
