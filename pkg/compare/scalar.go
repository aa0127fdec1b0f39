package compare

import (
	"math"
	"reflect"

	"fortio.org/safecast"
)

type numClass int

const (
	numNone numClass = iota
	numInt
	numUint
	numFloat
	numComplex
)

func classOf(k reflect.Kind) numClass {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return numInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return numUint
	case reflect.Float32, reflect.Float64:
		return numFloat
	case reflect.Complex64, reflect.Complex128:
		return numComplex
	default:
		return numNone
	}
}

// IsNumeric reports whether v holds an integer, float or complex.
func IsNumeric(v reflect.Value) bool {
	return v.IsValid() && classOf(v.Kind()) != numNone
}

// EqualScalar compares two scalar values. Numbers of different
// representations are promoted exactly: there is no approximate
// matching. comparable is false when the two kinds cannot be
// compared at all (e.g. bool against int).
func EqualScalar(a, b reflect.Value) (equal, comparable bool) {
	ca, cb := classOf(a.Kind()), classOf(b.Kind())
	if ca != numNone && cb != numNone {
		return equalNumbers(a, b, ca, cb), true
	}
	if a.Kind() != b.Kind() {
		return false, false
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool(), true
	case reflect.String:
		return a.String() == b.String(), true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Ptr:
		return a.Pointer() == b.Pointer(), true
	default:
		if a.Type().Comparable() && b.Type().Comparable() &&
			a.CanInterface() && b.CanInterface() {
			return a.Interface() == b.Interface(), true
		}
		return false, false
	}
}

func equalNumbers(a, b reflect.Value, ca, cb numClass) bool {
	switch {
	case ca == numComplex && cb == numComplex:
		return a.Complex() == b.Complex()
	case ca == numComplex:
		c := a.Complex()
		return imag(c) == 0 && equalFloatTo(real(c), b, cb)
	case cb == numComplex:
		c := b.Complex()
		return imag(c) == 0 && equalFloatTo(real(c), a, ca)
	case ca == numFloat:
		return equalFloatTo(a.Float(), b, cb)
	case cb == numFloat:
		return equalFloatTo(b.Float(), a, ca)
	case ca == numInt && cb == numInt:
		return a.Int() == b.Int()
	case ca == numUint && cb == numUint:
		return a.Uint() == b.Uint()
	case ca == numInt:
		return intEqualsUint(a.Int(), b.Uint())
	default:
		return intEqualsUint(b.Int(), a.Uint())
	}
}

func intEqualsUint(i int64, u uint64) bool {
	c, err := safecast.Conv[uint64](i)
	if err != nil {
		return false
	}
	return c == u
}

// equalFloatTo compares f with a real number of class c.
func equalFloatTo(f float64, v reflect.Value, c numClass) bool {
	switch c {
	case numFloat:
		return f == v.Float()
	case numComplex:
		x := v.Complex()
		return imag(x) == 0 && f == real(x)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return false
	}
	if c == numInt {
		i, err := safecast.Convert[int64](f)
		return err == nil && i == v.Int()
	}
	u, err := safecast.Convert[uint64](f)
	return err == nil && u == v.Uint()
}

// IsNaN reports whether v is a float NaN or a complex with a NaN
// part.
func IsNaN(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch classOf(v.Kind()) {
	case numFloat:
		return math.IsNaN(v.Float())
	case numComplex:
		c := v.Complex()
		return math.IsNaN(real(c)) || math.IsNaN(imag(c))
	default:
		return false
	}
}

// ToFloat64 converts a real number to float64. Complex values and
// non-numbers report false.
func ToFloat64(v reflect.Value) (float64, bool) {
	if !v.IsValid() {
		return 0, false
	}
	switch classOf(v.Kind()) {
	case numInt:
		return float64(v.Int()), true
	case numUint:
		return float64(v.Uint()), true
	case numFloat:
		return v.Float(), true
	default:
		return 0, false
	}
}

// DiffMagnitude returns |a-b| when at least one side is a float
// and the difference is non-zero and finite.
func DiffMagnitude(a, b reflect.Value) (float64, bool) {
	if classOf(a.Kind()) != numFloat && classOf(b.Kind()) != numFloat {
		return 0, false
	}
	fa, ok := ToFloat64(a)
	if !ok {
		return 0, false
	}
	fb, ok := ToFloat64(b)
	if !ok {
		return 0, false
	}
	d := math.Abs(fa - fb)
	if d == 0 || math.IsInf(d, 0) || math.IsNaN(d) {
		return 0, false
	}
	return d, true
}

// CloseTo is the tolerance-aware numeric predicate: it reports
// whether |expected-actual| <= tolerance. Non-numbers and NaN are
// never close.
func CloseTo(expected, actual any, tolerance float64) bool {
	e, ok := ToFloat64(reflect.ValueOf(expected))
	if !ok {
		return false
	}
	a, ok := ToFloat64(reflect.ValueOf(actual))
	if !ok {
		return false
	}
	d := math.Abs(e - a)
	return !math.IsNaN(d) && d <= math.Abs(tolerance)
}
