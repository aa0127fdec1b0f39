package check

import (
	"math"
	"reflect"
	"strconv"

	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/message"
)

// IsEqualTo checks that the subject is structurally equal to
// expected. Struct types must match.
func (k *Check[T]) IsEqualTo(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyNotEqual, func(v T) *Violation {
			return Differs(k.checker.compare(k.checker.strict,
				func(c *compare.Comparer) compare.Result {
					return c.Compare(expected, v)
				}))
		}).
		EndCheck()
}

// IsNotEqualTo checks that the subject differs from expected.
func (k *Check[T]) IsNotEqualTo(expected any) *Link[T] {
	k.checker.t.Helper()
	return k.Not().IsEqualTo(expected)
}

// HasFieldsWithSameValues checks that every exported field of
// expected exists on the subject with an equal value. The two
// struct types may differ and the subject may have extra fields.
func (k *Check[T]) HasFieldsWithSameValues(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyFieldsDiffer, func(v T) *Violation {
			return Differs(k.checker.compare(k.checker.comparer,
				func(c *compare.Comparer) compare.Result {
					return c.Compare(expected, v)
				}))
		}).
		EndCheck()
}

// HasSameValueAs checks equality the way the subject's type
// defines it: its Equal or Equals method when present, Go
// equality otherwise.
func (k *Check[T]) HasSameValueAs(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyNotSameValue, func(v T) *Violation {
			if sameValue(expected, v) {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// HasDifferentValueThan is the negation of HasSameValueAs.
func (k *Check[T]) HasDifferentValueThan(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeySameValue, func(v T) *Violation {
			if sameValue(expected, v) {
				return Violated()
			}
			return nil
		}).
		EndCheck()
}

// IsSameReferenceAs checks that the subject and expected share
// storage: the same pointer, map, channel or slice window.
func (k *Check[T]) IsSameReferenceAs(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyNotSameReference, func(v T) *Violation {
			if sameReference(expected, v) {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// IsDistinctFrom checks that the subject does not share storage
// with expected.
func (k *Check[T]) IsDistinctFrom(expected any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		Evaluate(message.KeyNotDistinct, func(v T) *Violation {
			if sameReference(expected, v) {
				return Violated()
			}
			return nil
		}).
		EndCheck()
}

// IsNull checks that the subject is nil: untyped nil or a nil
// pointer, interface, map, slice, func or channel.
func (k *Check[T]) IsNull() *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Evaluate(message.KeyNull, func(v T) *Violation {
			if compare.Classify(v).Shape == compare.Null {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// IsNotNull checks that the subject is not nil.
func (k *Check[T]) IsNotNull() *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		HideChecked().
		Evaluate(message.KeyNotNull, func(v T) *Violation {
			if compare.Classify(v).Shape == compare.Null {
				return Violated()
			}
			return nil
		}).
		EndCheck()
}

// IsCloseTo checks that the numeric subject is within tolerance
// of expected.
func (k *Check[T]) IsCloseTo(expected any, tolerance float64) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		Expecting(expected).
		WithParam("tolerance", strconv.FormatFloat(tolerance, 'g', -1, 64)).
		Evaluate(message.KeyNotCloseTo, func(v T) *Violation {
			if compare.CloseTo(expected, v, tolerance) {
				return nil
			}
			return closeToGap(expected, v)
		}).
		EndCheck()
}

// closeToGap reports how far actual is from expected when both
// are finite numbers.
func closeToGap(expected, actual any) *Violation {
	e, ok := compare.ToFloat64(reflect.ValueOf(expected))
	if !ok {
		return Violated()
	}
	a, ok := compare.ToFloat64(reflect.ValueOf(actual))
	if !ok {
		return Violated()
	}
	gap := math.Abs(e - a)
	if math.IsNaN(gap) || math.IsInf(gap, 0) {
		return Violated()
	}
	return &Violation{
		Key:    message.KeyNotCloseToBy,
		Params: map[string]string{"difference": message.Difference(gap)},
	}
}

// IsInstanceOf checks that the subject's dynamic type is the type
// of sample.
func (k *Check[T]) IsInstanceOf(sample any) *Link[T] {
	k.checker.t.Helper()
	return Begin(k).
		WithParam("type", message.TypeName(sample)).
		Evaluate(message.KeyNotInstance, func(v T) *Violation {
			if reflect.TypeOf(any(v)) == reflect.TypeOf(sample) {
				return nil
			}
			return Violated()
		}).
		EndCheck()
}

// sameValue compares with the subject's own equality method when
// it has one, and with == or DeepEqual otherwise.
func sameValue(expected, actual any) bool {
	info := compare.Classify(actual)
	if info.Shape == compare.CustomEquatable {
		return compare.Compare(expected, actual).Equal()
	}
	if info.Shape == compare.Null ||
		compare.Classify(expected).Shape == compare.Null {
		return info.Shape == compare.Null &&
			compare.Classify(expected).Shape == compare.Null
	}
	et, at := reflect.TypeOf(expected), reflect.TypeOf(actual)
	if et != at {
		return false
	}
	if at.Comparable() {
		if eq, ok := safeEqual(expected, actual); ok {
			return eq
		}
	}
	return reflect.DeepEqual(expected, actual)
}

// safeEqual applies ==, which panics when a comparable type holds
// an incomparable dynamic value.
func safeEqual(a, b any) (equal, ok bool) {
	defer func() {
		if recover() != nil {
			equal, ok = false, false
		}
	}()
	return a == b, true
}

func sameReference(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return !ra.IsValid() && !rb.IsValid()
	}
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	default:
		return false
	}
}
