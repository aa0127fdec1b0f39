package check

import (
	"strings"

	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/message"
)

// Pair is a key and value shown in map check messages.
type Pair struct {
	Key   any
	Value any
}

// ContainsExactly checks that the subject holds exactly values,
// in order.
func (k *Check[T]) ContainsExactly(values ...any) *Link[T] {
	k.checker.t.Helper()
	expected := append([]any{}, values...)
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyNotExactly, func(v T) *Violation {
			return Differs(k.checker.compare(k.checker.comparer,
				func(c *compare.Comparer) compare.Result {
					return c.OrderedExact(expected, v)
				}))
		}).
		EndCheck()
}

// IsEquivalentTo checks that everything in expected is found in
// the subject regardless of order: map entries by key, set and
// sequence elements by multiset matching. Extra content in the
// subject is accepted.
func (k *Check[T]) IsEquivalentTo(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyNotEquivalent, func(v T) *Violation {
			return Differs(k.checker.compare(k.checker.comparer,
				func(c *compare.Comparer) compare.Result {
					return c.Equivalent(expected, v)
				}))
		}).
		EndCheck()
}

// Contains checks that every value is an element of the subject.
// For string subjects values are looked up as substrings.
func (k *Check[T]) Contains(values ...any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(append([]any{}, values...)).
		Evaluate(message.KeyMissingElements, func(v T) *Violation {
			var missing []string
			for _, want := range values {
				if !k.contains(v, want) {
					missing = append(missing, message.Value(want))
				}
			}
			if len(missing) == 0 {
				return nil
			}
			return &Violation{Params: map[string]string{
				"missing": strings.Join(missing, ", "),
			}}
		}).
		EndCheck()
}

func (k *Check[T]) contains(subject, want any) bool {
	info := compare.Classify(subject)
	if info.Shape == compare.String {
		s, ok := want.(string)
		return ok && strings.Contains(info.Value.String(), s)
	}
	_, found := k.checker.comparer.ContainsElement(subject, want)
	return found
}

// HasSize checks the number of elements of the subject.
func (k *Check[T]) HasSize(n int) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		WithParam("size", message.Plural(n, "element")).
		Evaluate(message.KeySize, func(v T) *Violation {
			size, ok := compare.Len(v)
			if !ok {
				return &Violation{Override: "The {checked} has no size."}
			}
			if size == n {
				return nil
			}
			return &Violation{Params: map[string]string{
				"actual_size": message.Plural(size, "element"),
			}}
		}).
		EndCheck()
}

// IsEmpty checks that the subject has no elements. Nil slices
// and maps are empty.
func (k *Check[T]) IsEmpty() *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Evaluate(message.KeyNotEmpty, func(v T) *Violation {
			size, ok := compare.Len(v)
			if !ok {
				return &Violation{Override: "The {checked} has no size."}
			}
			if size == 0 {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// ContainsKey checks that the map or set subject has key.
func (k *Check[T]) ContainsKey(key any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(key).
		Evaluate(message.KeyMissingKey, func(v T) *Violation {
			if k.checker.comparer.ContainsKey(v, key) {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// ContainsValue checks that the map subject has value.
func (k *Check[T]) ContainsValue(value any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(value).
		Evaluate(message.KeyMissingValue, func(v T) *Violation {
			if k.checker.comparer.ContainsValue(v, value) {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// ContainsPair checks that the map subject maps key to value.
func (k *Check[T]) ContainsPair(key, value any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(Pair{Key: key, Value: value}).
		Evaluate(message.KeyPairValue, func(v T) *Violation {
			found, matches := k.checker.comparer.ContainsPair(v, key, value)
			switch {
			case !found:
				return &Violation{Key: message.KeyMissingPairKey}
			case !matches:
				return Violated()
			default:
				return nil
			}
		}).
		EndCheck()
}
