// Package compare walks arbitrary Go values, decides whether two
// of them are equal for test purposes and explains any difference
// as an ordered list of path-qualified diff entries.
//
// Comparison never panics on incomparable shapes and never
// mutates its inputs. Each top-level call owns its own cycle
// guard, so concurrent comparisons need no locking.
package compare

import "fmt"

// DiffKind classifies a discrepancy.
type DiffKind int

const (
	// Missing means the expected side has a value, field, key or
	// element that the actual side lacks.
	Missing DiffKind = iota
	// Mismatch means both sides have a value and they differ.
	Mismatch
	// TypeMismatch means the two shapes cannot be compared.
	// Traversal does not descend below such an entry.
	TypeMismatch
	// CountMismatch means two sequences differ in length.
	// Expected and Actual hold the lengths.
	CountMismatch
	// Extra means the actual side holds a key or element the
	// expected side does not. Only strict equality reports it.
	Extra
)

// String returns the kind name.
func (k DiffKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Mismatch:
		return "mismatch"
	case TypeMismatch:
		return "type_mismatch"
	case CountMismatch:
		return "count_mismatch"
	case Extra:
		return "extra"
	default:
		return "unknown"
	}
}

// DiffEntry is one discrepancy found during a comparison.
type DiffEntry struct {
	Path     Path
	Kind     DiffKind
	Expected any
	Actual   any

	// Magnitude is |actual-expected| for any finite floating point
	// mismatch, including one against a zero expected value. It is
	// zero when no magnitude applies.
	Magnitude float64

	// Difference repeats Magnitude when the gap is small enough
	// relative to the expected value to be worth displaying.
	// HasDifference is the display flag.
	Difference    float64
	HasDifference bool

	// SuggestTolerance is set when the difference is so small
	// that a tolerance-aware check is probably what the caller
	// wanted.
	SuggestTolerance bool

	// NaN is set when either side is NaN.
	NaN bool

	// Note holds extra detail, e.g. a panic raised by a custom
	// equality method.
	Note string
}

// String renders the entry for logs and debugging. Final user
// facing prose is the formatter's job.
func (d DiffEntry) String() string {
	where := d.Path.String()
	if where == "" {
		where = "<root>"
	}
	switch d.Kind {
	case CountMismatch:
		return fmt.Sprintf("%s: %s (expected %v, actual %v)",
			where, d.Kind, d.Expected, d.Actual)
	case Missing:
		return fmt.Sprintf("%s: %s (expected %v)", where, d.Kind, d.Expected)
	case Extra:
		return fmt.Sprintf("%s: %s (actual %v)", where, d.Kind, d.Actual)
	default:
		return fmt.Sprintf("%s: %s (expected %v, actual %v)",
			where, d.Kind, d.Expected, d.Actual)
	}
}

// Result is the outcome of a comparison. The values are equal
// exactly when Diffs is empty.
type Result struct {
	Diffs []DiffEntry
}

// Equal reports whether no difference was found.
func (r Result) Equal() bool {
	return len(r.Diffs) == 0
}

// First returns the first diff entry, if any.
func (r Result) First() (DiffEntry, bool) {
	if len(r.Diffs) == 0 {
		return DiffEntry{}, false
	}
	return r.Diffs[0], true
}

// Merge appends the entries of other in order.
func (r *Result) Merge(other Result) {
	r.Diffs = append(r.Diffs, other.Diffs...)
}

func (r *Result) add(d DiffEntry) {
	r.Diffs = append(r.Diffs, d)
}
