package compare

import (
	"fmt"
	"reflect"
	"sort"
)

// maxIndirections bounds pointer chasing when ordering keys.
const maxIndirections = 8

// OrderedExact compares two sequences index by index. A length
// difference yields one CountMismatch entry, followed by entries
// for the common prefix only.
func (c *Comparer) OrderedExact(expected, actual any) Result {
	w := c.walker(true)
	e, a := structural(expected), structural(actual)
	switch {
	case e.Shape == Null && a.Shape == Null:
	case e.Shape == Null || a.Shape == Null:
		w.compareInfo(e, a, Root(), false)
	case e.Shape != Sequence || a.Shape != Sequence:
		w.typeMismatch(e, a, Root())
	default:
		w.ordered(e, a, Root(), false)
	}
	return w.result
}

// Equivalent compares expected and actual ignoring order, in one
// direction only: everything in expected must be found in actual,
// extras in actual are not reported.
//
// Maps: each expected key must exist in actual with a
// structurally equal value. Sequences and sets: each expected
// element is matched to the first not yet consumed actual element
// that is structurally equal, in expected's iteration order.
// There is no backtracking, so an ambiguous multiset can report a
// spurious Missing element when an earlier expected element took
// the actual element a later one needed.
func (c *Comparer) Equivalent(expected, actual any) Result {
	w := c.walker(true)
	e, a := structural(expected), structural(actual)
	switch {
	case e.Shape == Map && a.Shape == Map:
		w.equivalentMap(e, a, Root(), false)
	case isBag(e.Shape) && isBag(a.Shape):
		w.unordered(e, a, Root(), false)
	default:
		w.compareInfo(e, a, Root(), false)
	}
	return w.result
}

// ContainsElement reports the index of the first element of
// container structurally equal to v. Sequences are searched by
// index, sets by sorted element, maps by sorted key over their
// values. found is false when nothing matches or container is
// not a collection.
func (c *Comparer) ContainsElement(container, v any) (index int, found bool) {
	w := c.walker(true)
	elems, ok := elements(Classify(container))
	if !ok {
		return -1, false
	}
	target := reflect.ValueOf(v)
	for i, el := range elems {
		if w.trial(target, el) {
			return i, true
		}
	}
	return -1, false
}

// ContainsKey reports whether the map m holds a key structurally
// equal to k.
func (c *Comparer) ContainsKey(m, k any) bool {
	info := Classify(m)
	if info.Shape != Map && info.Shape != Set {
		return false
	}
	_, found := c.walker(true).lookup(info.Value, reflect.ValueOf(k))
	return found
}

// ContainsValue reports whether the map m holds a value
// structurally equal to v.
func (c *Comparer) ContainsValue(m, v any) bool {
	info := Classify(m)
	if info.Shape != Map {
		return false
	}
	_, found := c.ContainsElement(m, v)
	return found
}

// ContainsPair looks k up in m and compares the stored value with
// v.
func (c *Comparer) ContainsPair(m, k, v any) (keyFound, valueMatches bool) {
	info := Classify(m)
	if info.Shape != Map {
		return false, false
	}
	w := c.walker(true)
	stored, found := w.lookup(info.Value, reflect.ValueOf(k))
	if !found {
		return false, false
	}
	return true, w.trial(reflect.ValueOf(v), stored)
}

// Len returns the number of elements of a collection or the byte
// length of a string.
func Len(v any) (int, bool) {
	info := Classify(v)
	switch info.Shape {
	case String, Sequence, Map, Set:
		return info.Value.Len(), true
	case Null:
		rv := reflect.ValueOf(v)
		if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) {
			return 0, true
		}
		return 0, false
	case CustomEquatable:
		s := classifyWith(info.Value, false)
		switch s.Shape {
		case String, Sequence, Map, Set:
			return s.Value.Len(), true
		}
	}
	return 0, false
}

// structural classifies v ignoring equality methods. Collection
// algorithms work on the container even when its type defines
// its own equality.
func structural(v any) Info {
	return classifyWith(reflect.ValueOf(v), false)
}

func isBag(s Shape) bool {
	return s == Sequence || s == Set
}

// ordered is the index-aligned algorithm used for sequences.
func (w *walker) ordered(e, a Info, p Path, inArray bool) {
	el, al := e.Value.Len(), a.Value.Len()
	if el != al {
		w.add(DiffEntry{
			Path:     p,
			Kind:     CountMismatch,
			Expected: el,
			Actual:   al,
		})
	}

	nested := e.Value.Kind() == reflect.Array &&
		e.Value.Type().Elem().Kind() == reflect.Array
	n := min(el, al)
	for i := 0; i < n; i++ {
		ip := p.Index(i)
		if inArray {
			ip = p.Dimension(i)
		}
		w.compare(e.Value.Index(i), a.Value.Index(i), ip, nested)
	}
}

// unordered is the greedy multiset match used for sets and for
// order-insensitive sequences. With extras set, unconsumed actual
// elements are reported too.
func (w *walker) unordered(e, a Info, p Path, extras bool) {
	expected, _ := elements(e)
	actual, _ := elements(a)
	consumed := make([]bool, len(actual))

	for i, ev := range expected {
		matched := false
		for j, av := range actual {
			if consumed[j] {
				continue
			}
			if w.trial(ev, av) {
				consumed[j] = true
				matched = true
				break
			}
		}
		if !matched {
			w.add(DiffEntry{
				Path:     elementPath(e, p, i, ev),
				Kind:     Missing,
				Expected: exposed(ev),
			})
		}
	}

	if !extras {
		return
	}
	for j, av := range actual {
		if !consumed[j] {
			w.add(DiffEntry{
				Path:   elementPath(a, p, j, av),
				Kind:   Extra,
				Actual: exposed(av),
			})
		}
	}
}

func elementPath(i Info, p Path, idx int, v reflect.Value) Path {
	if i.Shape == Set {
		return p.Key(exposed(v))
	}
	return p.Index(idx)
}

// equivalentMap checks every expected key against actual. With
// extras set, keys present only in actual are reported too.
func (w *walker) equivalentMap(e, a Info, p Path, extras bool) {
	for _, k := range sortedKeys(e.Value) {
		kp := p.Key(exposed(k))
		ev := e.Value.MapIndex(k)
		av, found := w.lookup(a.Value, k)
		if !found {
			w.add(DiffEntry{
				Path:     kp,
				Kind:     Missing,
				Expected: exposed(ev),
			})
			continue
		}
		w.compare(ev, av, kp, false)
	}

	if !extras {
		return
	}
	for _, k := range sortedKeys(a.Value) {
		if _, found := w.lookup(e.Value, k); !found {
			w.add(DiffEntry{
				Path:   p.Key(exposed(k)),
				Kind:   Extra,
				Actual: exposed(a.Value.MapIndex(k)),
			})
		}
	}
}

// lookup finds the value stored under a key structurally equal to
// k. A direct map access is tried first when the key types allow
// it; otherwise keys are scanned in sorted order.
func (w *walker) lookup(m, k reflect.Value) (reflect.Value, bool) {
	if !k.IsValid() {
		return reflect.Value{}, false
	}
	kt := m.Type().Key()
	if k.Type().AssignableTo(kt) && k.Type().Comparable() {
		v, hashed := mapIndex(m, k)
		if v.IsValid() {
			return v, true
		}
		if hashed && k.Type() == kt && plainKey(kt) {
			return reflect.Value{}, false
		}
	}
	for _, candidate := range sortedKeys(m) {
		if w.trial(k, candidate) {
			return m.MapIndex(candidate), true
		}
	}
	return reflect.Value{}, false
}

// mapIndex is MapIndex that reports false instead of panicking
// when k holds an unhashable dynamic value, e.g. a struct whose
// interface field stores a slice.
func mapIndex(m, k reflect.Value) (v reflect.Value, hashed bool) {
	defer func() {
		if recover() != nil {
			v, hashed = reflect.Value{}, false
		}
	}()
	return m.MapIndex(k), true
}

// plainKey reports whether Go map equality on keys of type t is
// the same as structural equality.
func plainKey(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Struct, reflect.Array,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	default:
		return true
	}
}

// elements lists the members of a collection in a deterministic
// order: index order for sequences, sorted order for set
// elements, sorted-key order for map values.
func elements(i Info) ([]reflect.Value, bool) {
	if i.Shape == CustomEquatable {
		i = classifyWith(i.Value, false)
	}
	switch i.Shape {
	case Sequence:
		out := make([]reflect.Value, i.Value.Len())
		for j := range out {
			out[j] = i.Value.Index(j)
		}
		return out, true
	case Set:
		return sortedKeys(i.Value), true
	case Map:
		keys := sortedKeys(i.Value)
		out := make([]reflect.Value, len(keys))
		for j, k := range keys {
			out[j] = i.Value.MapIndex(k)
		}
		return out, true
	default:
		return nil, false
	}
}

// sortedKeys returns the keys of m in a stable order so that map
// traversal, and therefore diff order, is deterministic.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return lessValue(keys[i], keys[j])
	})
	return keys
}

// lessValue orders keys by content. Pointers are ordered by what
// they point to so the order does not depend on addresses.
func lessValue(a, b reflect.Value) bool {
	a, b = pointee(a), pointee(b)

	ca, cb := classOf(a.Kind()), classOf(b.Kind())
	if ca != numNone && cb != numNone && ca != numComplex && cb != numComplex {
		fa, _ := ToFloat64(a)
		fb, _ := ToFloat64(b)
		if fa != fb {
			return fa < fb
		}
		return a.Type().String() < b.Type().String()
	}

	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}

	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String()
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	default:
		return fmt.Sprintf("%v", exposed(a)) < fmt.Sprintf("%v", exposed(b))
	}
}

// pointee strips interfaces and non-nil pointers, up to
// maxIndirections levels so self-referencing pointer types end.
func pointee(v reflect.Value) reflect.Value {
	for i := 0; i < maxIndirections; i++ {
		k := v.Kind()
		if (k != reflect.Interface && k != reflect.Ptr) || v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}
