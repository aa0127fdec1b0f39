package compare

import (
	"fmt"
	"reflect"
)

// Comparer performs structural comparisons with a fixed set of
// options. A Comparer holds no per-call state and is safe for
// concurrent use.
type Comparer struct {
	opts Options
}

// New creates a Comparer with the default options adjusted by
// opts.
func New(opts ...Option) *Comparer {
	return &Comparer{opts: buildOptions(DefaultOptions(), opts)}
}

// Options returns the comparer options.
func (c *Comparer) Options() Options {
	return c.opts
}

// Compare is a shorthand for New(opts...).Compare.
func Compare(expected, actual any, opts ...Option) Result {
	return New(opts...).Compare(expected, actual)
}

// Compare walks expected and actual and reports every difference
// in discovery order: depth first, struct fields in declaration
// order, sequences by index, maps by sorted key. Maps and sets
// are compared in both directions, so keys present only in actual
// are reported as Extra.
func (c *Comparer) Compare(expected, actual any) Result {
	w := c.walker(true)
	w.compare(reflect.ValueOf(expected), reflect.ValueOf(actual), Root(), false)
	return w.result
}

// visitKey is a pair of identities already under comparison.
type visitKey struct {
	left, right identity
}

type visited map[visitKey]struct{}

func (v visited) clone() visited {
	out := make(visited, len(v))
	for k := range v {
		out[k] = struct{}{}
	}
	return out
}

// walker is the state of one top-level comparison call.
type walker struct {
	opts    Options
	visited visited
	strict  bool
	result  Result
}

func (c *Comparer) walker(strict bool) *walker {
	return &walker{
		opts:    c.opts,
		visited: make(visited),
		strict:  strict,
	}
}

func (w *walker) add(d DiffEntry) {
	w.result.add(d)
}

// trial reports whether e and a are structurally equal without
// recording anything. It works on a copy of the visited set so a
// failed attempt cannot mark pairs as already compared.
func (w *walker) trial(e, a reflect.Value) bool {
	t := &walker{
		opts:    w.opts,
		visited: w.visited.clone(),
		strict:  true,
	}
	t.compare(e, a, Root(), false)
	return t.result.Equal()
}

// compare is the recursive step. inArray is set while walking the
// elements of a fixed-size array of arrays, so nested indexes
// collapse into one path step.
func (w *walker) compare(ev, av reflect.Value, p Path, inArray bool) {
	w.compareInfo(classify(ev), classify(av), p, inArray)
}

func (w *walker) compareInfo(e, a Info, p Path, inArray bool) {
	if e.Shape == Null && a.Shape == Null {
		return
	}
	if e.Shape == Null || a.Shape == Null {
		w.add(DiffEntry{
			Path:     p,
			Kind:     Missing,
			Expected: e.Interface(),
			Actual:   a.Interface(),
		})
		return
	}

	if e.Shape == CustomEquatable || a.Shape == CustomEquatable {
		if w.compareCustom(e, a, p) {
			return
		}
		// Neither side can take the other as argument: fall
		// back to the structural shapes.
		e = classifyWith(e.Value, false)
		a = classifyWith(a.Value, false)
	}

	if !compatible(e.Shape, a.Shape) {
		w.typeMismatch(e, a, p)
		return
	}

	if descends(e.Shape) && e.id.valid() && a.id.valid() {
		key := visitKey{left: e.id, right: a.id}
		if _, seen := w.visited[key]; seen {
			return
		}
		w.visited[key] = struct{}{}
	}

	switch e.Shape {
	case Scalar:
		w.compareScalar(e, a, p)
	case String:
		if e.Value.String() != a.Value.String() {
			w.mismatch(e, a, p)
		}
	case Composite:
		w.compareStruct(e, a, p)
	case Sequence:
		w.ordered(e, a, p, inArray)
	case Map:
		w.equivalentMap(e, a, p, w.strict)
	case Set:
		w.unordered(e, a, p, w.strict)
	}
}

func compatible(e, a Shape) bool {
	return e == a
}

func descends(s Shape) bool {
	switch s {
	case Composite, Sequence, Map, Set:
		return true
	default:
		return false
	}
}

func (w *walker) typeMismatch(e, a Info, p Path) {
	w.add(DiffEntry{
		Path:     p,
		Kind:     TypeMismatch,
		Expected: e.Interface(),
		Actual:   a.Interface(),
		Note:     fmt.Sprintf("%s vs %s", describe(e), describe(a)),
	})
}

func (w *walker) mismatch(e, a Info, p Path) {
	w.add(DiffEntry{
		Path:     p,
		Kind:     Mismatch,
		Expected: e.Interface(),
		Actual:   a.Interface(),
	})
}

func describe(i Info) string {
	if t := i.Type(); t != nil {
		return t.String()
	}
	return i.Shape.String()
}

func (w *walker) compareScalar(e, a Info, p Path) {
	eq, ok := EqualScalar(e.Value, a.Value)
	if !ok {
		w.typeMismatch(e, a, p)
		return
	}

	if IsNaN(e.Value) || IsNaN(a.Value) {
		w.add(DiffEntry{
			Path:     p,
			Kind:     Mismatch,
			Expected: e.Interface(),
			Actual:   a.Interface(),
			NaN:      true,
		})
		return
	}
	if eq {
		return
	}

	d := DiffEntry{
		Path:     p,
		Kind:     Mismatch,
		Expected: e.Interface(),
		Actual:   a.Interface(),
	}
	if diff, ok := DiffMagnitude(e.Value, a.Value); ok {
		d.Magnitude = diff
		ref, _ := ToFloat64(e.Value)
		if ref < 0 {
			ref = -ref
		}
		if diff < w.opts.DifferenceThreshold*ref {
			d.Difference = diff
			d.HasDifference = true
		}
		if diff < w.opts.ToleranceHintThreshold*ref {
			d.SuggestTolerance = true
		}
	}
	w.add(d)
}

// compareCustom compares through a resolved Equal/Equals method.
// It returns false when neither side's method accepts the other
// side's value.
func (w *walker) compareCustom(e, a Info, p Path) bool {
	var (
		equal bool
		note  string
		ok    bool
	)
	if e.Shape == CustomEquatable {
		equal, note, ok = callEqual(e, a.Value)
	}
	if !ok && a.Shape == CustomEquatable {
		equal, note, ok = callEqual(a, e.Value)
	}
	if !ok {
		return false
	}
	if !equal {
		w.add(DiffEntry{
			Path:     p,
			Kind:     Mismatch,
			Expected: e.Interface(),
			Actual:   a.Interface(),
			Note:     note,
		})
	}
	return true
}

func callEqual(i Info, other reflect.Value) (equal bool, note string, ok bool) {
	arg, accepted := adaptArg(other, i.equalIn)
	if !accepted || !arg.CanInterface() {
		return false, "", false
	}

	defer func() {
		if r := recover(); r != nil {
			equal = false
			note = fmt.Sprintf("equality method panicked: %v", r)
			ok = true
		}
	}()

	out := i.equal.Call([]reflect.Value{arg})
	return out[0].Bool(), "", true
}

func adaptArg(v reflect.Value, in reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	if v.Type().AssignableTo(in) {
		return v, true
	}
	if v.Kind() == reflect.Ptr && !v.IsNil() &&
		v.Elem().Type().AssignableTo(in) {
		return v.Elem(), true
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).AssignableTo(in) {
		return v.Addr(), true
	}
	return reflect.Value{}, false
}

func (w *walker) compareStruct(e, a Info, p Path) {
	et, at := e.Value.Type(), a.Value.Type()
	if w.opts.MatchStructTypes && et != at {
		w.typeMismatch(e, a, p)
		return
	}

	fields := exportedFields(et)
	if len(fields) == 0 {
		w.compareOpaque(e, a, p)
		return
	}

	actualFields := make(map[string]int)
	for _, f := range exportedFields(at) {
		actualFields[f.Name] = f.Index[0]
	}

	for _, f := range fields {
		fp := p.Field(f.Name)
		ev := e.Value.Field(f.Index[0])
		j, ok := actualFields[f.Name]
		if !ok {
			w.add(DiffEntry{
				Path:     fp,
				Kind:     Missing,
				Expected: exposed(ev),
				Note:     fmt.Sprintf("no field %s on %s", f.Name, at),
			})
			continue
		}
		w.compare(ev, a.Value.Field(j), fp, false)
	}
}

// compareOpaque handles structs without exported fields, which
// cannot be walked field by field.
func (w *walker) compareOpaque(e, a Info, p Path) {
	if e.Value.Type() != a.Value.Type() {
		w.typeMismatch(e, a, p)
		return
	}
	if !e.Value.CanInterface() || !a.Value.CanInterface() {
		return
	}
	if !reflect.DeepEqual(e.Value.Interface(), a.Value.Interface()) {
		w.mismatch(e, a, p)
	}
}

func exportedFields(t reflect.Type) []reflect.StructField {
	out := make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() {
			out = append(out, f)
		}
	}
	return out
}
