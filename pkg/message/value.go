package message

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/davecgh/go-spew/spew"

	"digital.vasic.fluent/pkg/compare"
)

// inlineConfig renders values on a single line inside [ ].
// Stringers are honoured so times and similar types read naturally.
var inlineConfig = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                10,
}

// Value renders v the way failure messages show it: null for nil,
// quoted strings, plain numbers and booleans, and a compact dump
// for everything else. Cyclic values are rendered without looping.
func Value(v any) string {
	return renderValue(&inlineConfig, v)
}

func renderValue(cfg *spew.ConfigState, v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		if _, ok := v.(fmt.Stringer); ok {
			return cfg.Sprintf("%+v", v)
		}
		return fmt.Sprintf("%v", v)
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}
	return cfg.Sprintf("%+v", v)
}

// TypeName returns the dynamic type of v, or null for nil.
func TypeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

// LabelFor returns the subject label used in messages for v.
func LabelFor(v any) string {
	info := compare.Classify(v)
	switch info.Shape {
	case compare.String:
		return "string"
	case compare.Sequence:
		if info.Value.Kind() == reflect.Array {
			return "array"
		}
		return "slice"
	case compare.Map:
		return "map"
	case compare.Set:
		return "set"
	default:
		return "value"
	}
}

// Plural renders a count with its noun, e.g. "1 element" or
// "3 elements".
func Plural(n int, noun string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Difference renders a numeric difference with two significant
// digits.
func Difference(d float64) string {
	return strconv.FormatFloat(d, 'g', 2, 64)
}
