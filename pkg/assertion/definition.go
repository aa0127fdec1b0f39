// Package assertion evaluates declarative assertions with the
// check engine. An assertion names a check type, the target value
// it applies to and the expected value(s); the engine looks the
// target up, runs the matching evaluator and reports the rendered
// failure message. New evaluator types can be registered.
package assertion

// Definition describes a single assertion to evaluate against a
// named value.
type Definition struct {
	// Type is the evaluator type (e.g., "equal", "contains",
	// "size").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value to check. It also labels
	// the value in failure messages.
	Target string `json:"target" yaml:"target"`

	// Value is the expected value for single-value assertions.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds expected values for multi-value assertions
	// (e.g., "contains", "contains_exactly").
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Tolerance bounds "close_to" assertions.
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	// Not inverts the assertion.
	Not bool `json:"not,omitempty" yaml:"not,omitempty"`

	// Message is a human-readable description shown on
	// failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Expected returns the expected values of a multi-value
// assertion: Values when set, Value otherwise.
func (d Definition) Expected() []any {
	if len(d.Values) > 0 {
		return d.Values
	}
	if d.Value != nil {
		return []any{d.Value}
	}
	return nil
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	// Type is the assertion type that was evaluated.
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value checked.
	Target string `json:"target" yaml:"target"`

	// Negated is set for inverted assertions.
	Negated bool `json:"negated,omitempty" yaml:"negated,omitempty"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected,omitempty" yaml:"expected,omitempty"`

	// Actual is the value that was observed.
	Actual any `json:"actual,omitempty" yaml:"actual,omitempty"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed" yaml:"passed"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message" yaml:"message"`

	// Detail is the full failure message of a failed check.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// Diffs is the number of structural differences found.
	Diffs int `json:"diffs,omitempty" yaml:"diffs,omitempty"`
}
