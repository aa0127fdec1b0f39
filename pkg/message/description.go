// Package message turns structured check failures into the text
// shown to the user. Checks never write prose themselves: they
// hand a Description carrying a message Key, the diff entries and
// the values involved, and a Formatter renders it.
package message

import "digital.vasic.fluent/pkg/compare"

// Key identifies a message template in a formatter catalog.
type Key string

// Description is everything a formatter needs to explain a failed
// check.
type Description struct {
	// SubjectLabel names the kind of subject ("value", "string",
	// "slice", ...).
	SubjectLabel string `json:"subject_label"`

	// CustomLabel is the user supplied name set with As(). When
	// present it replaces SubjectLabel: "checked [foo]".
	CustomLabel string `json:"custom_label,omitempty"`

	// Key selects the template.
	Key Key `json:"key"`

	// Negated is set when the failure comes from a negated check
	// whose condition held.
	Negated bool `json:"negated"`

	// Override replaces the template headline.
	Override string `json:"override,omitempty"`

	// Diffs are the structured differences, in discovery order.
	Diffs []compare.DiffEntry `json:"-"`

	// Checked is the subject value, shown when HasChecked.
	Checked    any  `json:"-"`
	HasChecked bool `json:"-"`

	// Expected is the reference value, shown when HasExpected.
	Expected    any  `json:"-"`
	HasExpected bool `json:"-"`

	// Params fill named placeholders in templates, e.g.
	// {tolerance} or {type}.
	Params map[string]string `json:"params,omitempty"`
}

// Formatter renders a Description.
type Formatter interface {
	Format(d Description) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(d Description) string

// Format calls f(d).
func (f FormatterFunc) Format(d Description) string {
	return f(d)
}
