package message

// Message keys of the built-in checks.
const (
	KeyNotEqual          Key = "not_equal"
	KeyFieldsDiffer      Key = "fields_differ"
	KeyNotSameValue      Key = "not_same_value"
	KeySameValue         Key = "same_value"
	KeyNotSameReference  Key = "not_same_reference"
	KeyNotDistinct       Key = "not_distinct"
	KeyNotNull           Key = "not_null"
	KeyNull              Key = "null"
	KeyNotCloseTo        Key = "not_close_to"
	KeyNotCloseToBy      Key = "not_close_to_by"
	KeyNotExactly        Key = "not_exactly"
	KeyNotEquivalent     Key = "not_equivalent"
	KeyMissingElements   Key = "missing_elements"
	KeySize              Key = "size"
	KeyNotEmpty          Key = "not_empty"
	KeyMissingKey        Key = "missing_key"
	KeyMissingValue      Key = "missing_value"
	KeyMissingPairKey    Key = "missing_pair_key"
	KeyPairValue         Key = "pair_value"
	KeyNotInstance       Key = "not_instance"
	KeyPanicked          Key = "panicked"
	KeyDidNotPanic       Key = "did_not_panic"
	KeyPanicValue        Key = "panic_value"
	KeyNotFailing        Key = "not_failing"
	KeyFailureMessage    Key = "failure_message"
	KeyCustom            Key = "custom"
)

// Template is the text attached to a message key. {checked} is
// replaced by the subject label ("checked value", "checked
// [foo]"); other placeholders come from Description.Params.
type Template struct {
	// Text is the headline when a check fails.
	Text string
	// Negated is the headline when a negated check fails.
	Negated string
	// ExpectedHeader introduces the expected value block.
	ExpectedHeader string
	// NegatedHeader introduces the expected value block of a
	// negated failure.
	NegatedHeader string
}

const (
	defaultExpectedHeader = "The expected value:"
	defaultNegatedHeader  = "The expected value: different from"
)

// Catalog maps keys to templates.
type Catalog map[Key]Template

// DefaultCatalog returns the templates of the built-in checks.
func DefaultCatalog() Catalog {
	return Catalog{
		KeyNotEqual: {
			Text:    "The {checked} is different from the expected one.",
			Negated: "The {checked} is equal to the expected one whereas it must not.",
		},
		KeyFieldsDiffer: {
			Text:    "The {checked} does not have the same field values as the expected one.",
			Negated: "The {checked} has the same field values as the expected one whereas it must not.",
		},
		KeyNotSameValue: {
			Text:           "The {checked} is different from the expected one.",
			Negated:        "The {checked} is equal to the given one whereas it must not.",
			ExpectedHeader: "The expected value: equals to (using Equal)",
			NegatedHeader:  "The expected value: different from (using Equal)",
		},
		KeySameValue: {
			Text:           "The {checked} is equal to the expected one whereas it must not.",
			Negated:        "The {checked} is different from the given one.",
			ExpectedHeader: "The expected value: different from (using Equal)",
			NegatedHeader:  "The expected value: equals to (using Equal)",
		},
		KeyNotSameReference: {
			Text:           "The {checked} must be the same instance as the given one.",
			Negated:        "The {checked} must be an instance distinct from the given one.",
			ExpectedHeader: "The expected value: same instance as",
			NegatedHeader:  "The expected value: distinct from",
		},
		KeyNotDistinct: {
			Text:           "The {checked} must be an instance distinct from the given one.",
			Negated:        "The {checked} must be the same instance as the given one.",
			ExpectedHeader: "The expected value: distinct from",
			NegatedHeader:  "The expected value: same instance as",
		},
		KeyNull: {
			Text:    "The {checked} must be null.",
			Negated: "The {checked} must not be null.",
		},
		KeyNotNull: {
			Text:    "The {checked} must not be null.",
			Negated: "The {checked} must be null.",
		},
		KeyNotCloseTo: {
			Text:           "The {checked} is not close to the expected one within {tolerance}.",
			Negated:        "The {checked} is close to the expected one within {tolerance} whereas it must not.",
			ExpectedHeader: "The expected value: close to (within {tolerance})",
			NegatedHeader:  "The expected value: far from (by more than {tolerance})",
		},
		KeyNotCloseToBy: {
			Text:           "The {checked} is not close to the expected one within {tolerance}, with a difference of {difference}.",
			Negated:        "The {checked} is close to the expected one within {tolerance} whereas it must not.",
			ExpectedHeader: "The expected value: close to (within {tolerance})",
			NegatedHeader:  "The expected value: far from (by more than {tolerance})",
		},
		KeyNotExactly: {
			Text:           "The {checked} does not contain exactly the expected value(s).",
			Negated:        "The {checked} contains exactly the given value(s) whereas it must not.",
			ExpectedHeader: "The expected value(s):",
		},
		KeyNotEquivalent: {
			Text:           "The {checked} is not equivalent to the expected value(s).",
			Negated:        "The {checked} is equivalent to the expected value(s) whereas it must not.",
			ExpectedHeader: "The expected value(s):",
		},
		KeyMissingElements: {
			Text:           "The {checked} does not contain the expected value(s): {missing}.",
			Negated:        "The {checked} contains all the given value(s) whereas it must not.",
			ExpectedHeader: "The expected value(s):",
			NegatedHeader:  "The forbidden value(s):",
		},
		KeySize: {
			Text:    "The {checked} has {actual_size} instead of {size}.",
			Negated: "The {checked} has {size} whereas it must not.",
		},
		KeyNotEmpty: {
			Text:    "The {checked} is not empty.",
			Negated: "The {checked} is empty whereas it must not.",
		},
		KeyMissingKey: {
			Text:           "The {checked} does not contain the expected key.",
			Negated:        "The {checked} does contain the given key whereas it must not.",
			ExpectedHeader: "Expected key:",
			NegatedHeader:  "Forbidden key:",
		},
		KeyMissingValue: {
			Text:           "The {checked} does not contain the expected value.",
			Negated:        "The {checked} does contain the given value whereas it must not.",
			ExpectedHeader: "Expected value:",
			NegatedHeader:  "Forbidden value:",
		},
		KeyMissingPairKey: {
			Text:           "The {checked} does not contain the expected key-value pair. The given key was not found.",
			Negated:        "The {checked} does contain the given key-value pair whereas it must not.",
			ExpectedHeader: "Expected pair:",
			NegatedHeader:  "Forbidden pair:",
		},
		KeyPairValue: {
			Text:           "The {checked} does not contain the expected value for the given key.",
			Negated:        "The {checked} does contain the given key-value pair whereas it must not.",
			ExpectedHeader: "Expected pair:",
			NegatedHeader:  "Forbidden pair:",
		},
		KeyNotInstance: {
			Text:    "The {checked} is not an instance of [{type}].",
			Negated: "The {checked} is an instance of [{type}] whereas it must not.",
		},
		KeyPanicked: {
			Text:    "The checked code panicked whereas it must not.",
			Negated: "The checked code did not panic whereas it must.",
		},
		KeyDidNotPanic: {
			Text:    "The checked code did not panic whereas it must.",
			Negated: "The checked code panicked whereas it must not.",
		},
		KeyPanicValue: {
			Text:           "The checked code panicked with a different value.",
			Negated:        "The checked code panicked with the given value whereas it must not.",
			ExpectedHeader: "The expected panic value:",
		},
		KeyNotFailing: {
			Text:    "The checked code did not raise a failing check.",
			Negated: "The checked code raised a failing check whereas it must not.",
		},
		KeyFailureMessage: {
			Text:           "The checked code raised a failing check with a different message.",
			Negated:        "The checked code raised a failing check with the given message whereas it must not.",
			ExpectedHeader: "The expected message:",
		},
		KeyCustom: {
			Text:    "The {checked} does not satisfy the check.",
			Negated: "The {checked} satisfies the check whereas it must not.",
		},
	}
}

// Lookup returns the template for k, falling back to KeyCustom's
// template for unknown keys.
func (c Catalog) Lookup(k Key) Template {
	if t, ok := c[k]; ok {
		return t
	}
	return c[KeyCustom]
}
