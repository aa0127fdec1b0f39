package message

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"

	"digital.vasic.fluent/pkg/compare"
)

// FormatConfig tunes the text formatter.
type FormatConfig struct {
	// MaxDiffs caps the number of path-level differences listed.
	// Zero lists them all.
	MaxDiffs int `yaml:"max_diffs" json:"max_diffs"`
	// MaxDepth bounds nested value dumps.
	MaxDepth int `yaml:"max_depth" json:"max_depth"`
	// DiffContext is the number of context lines of unified diffs.
	DiffContext int `yaml:"diff_context" json:"diff_context"`
	// ShowDiff appends a unified diff of the two values when they
	// are multi-line strings or containers of the same type.
	ShowDiff bool `yaml:"show_diff" json:"show_diff"`
}

// DefaultFormatConfig returns the default formatter settings.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		MaxDiffs:    10,
		MaxDepth:    10,
		DiffContext: 1,
		ShowDiff:    true,
	}
}

// FormatterOption configures a TextFormatter.
type FormatterOption func(*TextFormatter)

// WithCatalog overlays the given templates on the defaults.
func WithCatalog(c Catalog) FormatterOption {
	return func(f *TextFormatter) {
		for k, t := range c {
			f.catalog[k] = t
		}
	}
}

// WithTemplate registers a single template.
func WithTemplate(k Key, t Template) FormatterOption {
	return func(f *TextFormatter) {
		f.catalog[k] = t
	}
}

// TextFormatter renders descriptions as the multi-line text shown
// by failing checks.
type TextFormatter struct {
	cfg     FormatConfig
	catalog Catalog
	inline  spew.ConfigState
	dump    spew.ConfigState
}

// NewTextFormatter creates a formatter with the default catalog.
func NewTextFormatter(
	cfg FormatConfig,
	opts ...FormatterOption,
) *TextFormatter {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultFormatConfig().MaxDepth
	}
	if cfg.DiffContext < 0 {
		cfg.DiffContext = 0
	}
	f := &TextFormatter{
		cfg:     cfg,
		catalog: DefaultCatalog(),
		inline:  inlineConfig,
		dump: spew.ConfigState{
			Indent:                  " ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
			DisableMethods:          true,
			MaxDepth:                cfg.MaxDepth,
		},
	}
	f.inline.MaxDepth = cfg.MaxDepth
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Default returns a formatter with default settings.
func Default() *TextFormatter {
	return NewTextFormatter(DefaultFormatConfig())
}

// Config returns the formatter settings.
func (f *TextFormatter) Config() FormatConfig {
	return f.cfg
}

// Format renders d.
func (f *TextFormatter) Format(d Description) string {
	subject := subjectOf(d)
	tmpl := f.catalog.Lookup(d.Key)

	var out []string
	out = append(out, f.headline(d, tmpl, subject))

	if !d.Negated {
		if hasNaN(d.Diffs) {
			out = append(out,
				"NaN is never equal to anything, including itself.")
		}
		out = append(out, f.diffLines(d.Diffs, subject)...)
	}

	if d.HasChecked {
		out = append(out, "The "+subject+":")
		out = append(out, f.block(d.Checked, d.Expected, d.HasExpected))
	}
	if d.HasExpected {
		out = append(out, f.expectedHeader(d, tmpl, subject))
		out = append(out, f.block(d.Expected, d.Checked, d.HasChecked))
	}

	if !d.Negated && f.cfg.ShowDiff && len(d.Diffs) > 0 &&
		d.HasChecked && d.HasExpected {
		if diff := f.unifiedDiff(d.Expected, d.Checked); diff != "" {
			out = append(out, "Diff:")
			out = append(out, diff)
		}
	}

	return strings.Join(out, "\n")
}

func subjectOf(d Description) string {
	if d.CustomLabel != "" {
		return "checked [" + d.CustomLabel + "]"
	}
	label := d.SubjectLabel
	if label == "" {
		label = "value"
	}
	return "checked " + label
}

func (f *TextFormatter) headline(
	d Description,
	tmpl Template,
	subject string,
) string {
	text := tmpl.Text
	if d.Negated {
		text = tmpl.Negated
	}
	if d.Override != "" {
		text = d.Override
	}
	text = expand(text, subject, d.Params)

	if !d.Negated && len(d.Diffs) > 0 && d.Diffs[0].Path.IsRoot() {
		text = withDifference(text, d.Diffs[0])
	}
	return text
}

func (f *TextFormatter) expectedHeader(
	d Description,
	tmpl Template,
	subject string,
) string {
	header := tmpl.ExpectedHeader
	if header == "" {
		header = defaultExpectedHeader
	}
	if d.Negated {
		header = tmpl.NegatedHeader
		if header == "" {
			header = defaultNegatedHeader
		}
	}
	return expand(header, subject, d.Params)
}

func expand(text, subject string, params map[string]string) string {
	pairs := []string{"{checked}", subject}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", params[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func withDifference(text string, e compare.DiffEntry) string {
	if !e.HasDifference {
		return text
	}
	text = strings.TrimSuffix(text, ".") +
		", with a difference of " + Difference(e.Difference) + "."
	if e.SuggestTolerance {
		text += " You may consider using IsCloseTo() for comparison."
	}
	return text
}

func hasNaN(diffs []compare.DiffEntry) bool {
	for _, d := range diffs {
		if d.NaN {
			return true
		}
	}
	return false
}

// diffLines explains each entry the value blocks do not already
// cover: everything below the root plus root type and count
// mismatches.
func (f *TextFormatter) diffLines(
	diffs []compare.DiffEntry,
	subject string,
) []string {
	var out []string
	shown, hidden := 0, 0
	for _, d := range diffs {
		if d.Path.IsRoot() &&
			d.Kind != compare.TypeMismatch && d.Kind != compare.CountMismatch {
			if d.Note != "" {
				out = append(out, "Note: "+d.Note+".")
			}
			continue
		}
		if f.cfg.MaxDiffs > 0 && shown >= f.cfg.MaxDiffs {
			hidden++
			continue
		}
		shown++
		out = append(out, f.entryLines(d, subject)...)
	}
	if hidden > 0 {
		out = append(out, "... and "+Plural(hidden, "more difference")+".")
	}
	return out
}

func (f *TextFormatter) entryLines(
	d compare.DiffEntry,
	subject string,
) []string {
	checked := "The " + subject
	expected := "The expected value"
	if !d.Path.IsRoot() {
		where := " " + stepNoun(d.Path) + " '" + d.Path.String() + "'"
		checked += "'s" + where
		expected += "'s" + where
	}

	switch d.Kind {
	case compare.TypeMismatch:
		return []string{fmt.Sprintf("%s is of type [%s] whereas [%s] is expected.",
			checked, TypeName(d.Actual), TypeName(d.Expected))}
	case compare.CountMismatch:
		return []string{fmt.Sprintf("%s has %s instead of %v.",
			checked, Plural(asInt(d.Actual), "element"), d.Expected)}
	case compare.Missing:
		if d.Expected == nil && (d.Path.IsRoot() || d.Actual != nil) {
			return []string{
				checked + " must be null.",
				checked + ":",
				"\t[" + f.render(d.Actual) + "]",
			}
		}
		return []string{
			checked + " is missing.",
			expected + ":",
			"\t[" + f.render(d.Expected) + "]",
		}
	case compare.Extra:
		return []string{
			checked + " is not expected.",
			checked + ":",
			"\t[" + f.render(d.Actual) + "]",
		}
	default:
		head := checked + " does not have the expected value."
		if d.Note != "" {
			head = checked + " does not have the expected value (" + d.Note + ")."
		}
		return []string{
			withDifference(head, d),
			checked + ":",
			f.block(d.Actual, d.Expected, true),
			expected + ":",
			f.block(d.Expected, d.Actual, true),
		}
	}
}

func stepNoun(p compare.Path) string {
	steps := p.Steps()
	switch steps[len(steps)-1].Kind {
	case compare.StepField:
		return "field"
	case compare.StepIndex:
		return "element"
	default:
		return "entry"
	}
}

func asInt(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint())
	default:
		return 0
	}
}

func (f *TextFormatter) render(v any) string {
	return renderValue(&f.inline, v)
}

// block renders v as an indented value line. When other renders
// identically but has a different type the type is appended.
func (f *TextFormatter) block(v, other any, hasOther bool) string {
	text := f.render(v)
	line := "\t[" + text + "]"
	if hasOther && TypeName(v) != TypeName(other) && f.render(other) == text {
		line += " of type: [" + TypeName(v) + "]"
	}
	return line
}

// unifiedDiff returns a unified diff between the dumps of
// expected and actual, or "" when a diff would not help.
func (f *TextFormatter) unifiedDiff(expected, actual any) string {
	if expected == nil || actual == nil {
		return ""
	}
	et, at := reflect.TypeOf(expected), reflect.TypeOf(actual)
	if et != at {
		return ""
	}

	var e, a string
	switch et.Kind() {
	case reflect.String:
		e = reflect.ValueOf(expected).String()
		a = reflect.ValueOf(actual).String()
		if !strings.Contains(e, "\n") && !strings.Contains(a, "\n") {
			return ""
		}
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr:
		e = f.dump.Sdump(expected)
		a = f.dump.Sdump(actual)
	default:
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(e),
		B:        difflib.SplitLines(a),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  f.cfg.DiffContext,
	})
	if err != nil {
		return ""
	}
	return strings.TrimRight(diff, "\n")
}
