package assertion

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"digital.vasic.fluent/pkg/check"
	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/message"
)

// builtins maps the built-in assertion types to their evaluators.
func builtins() map[string]Evaluator {
	return map[string]Evaluator{
		"equal":            evaluateEqual,
		"fields_equal":     evaluateFieldsEqual,
		"same_value":       evaluateSameValue,
		"null":             evaluateNull,
		"not_null":         evaluateNotNull,
		"close_to":         evaluateCloseTo,
		"instance_of":      evaluateInstanceOf,
		"contains":         evaluateContains,
		"contains_exactly": evaluateContainsExactly,
		"equivalent":       evaluateEquivalent,
		"size":             evaluateSize,
		"empty":            evaluateEmpty,
		"not_empty":        evaluateNotEmpty,
		"contains_key":     evaluateContainsKey,
		"contains_value":   evaluateContainsValue,
		"contains_pair":    evaluateContainsPair,
		"min_size":         evaluateMinSize,
		"matches":          evaluateMatches,
		"no_duplicates":    evaluateNoDuplicates,
	}
}

func evaluateEqual(k *check.Check[any], def Definition) {
	k.IsEqualTo(def.Value)
}

func evaluateFieldsEqual(k *check.Check[any], def Definition) {
	k.HasFieldsWithSameValues(def.Value)
}

func evaluateSameValue(k *check.Check[any], def Definition) {
	k.HasSameValueAs(def.Value)
}

func evaluateNull(k *check.Check[any], _ Definition) {
	k.IsNull()
}

func evaluateNotNull(k *check.Check[any], _ Definition) {
	k.IsNotNull()
}

func evaluateCloseTo(k *check.Check[any], def Definition) {
	k.IsCloseTo(def.Value, def.Tolerance)
}

func evaluateInstanceOf(k *check.Check[any], def Definition) {
	k.IsInstanceOf(def.Value)
}

func evaluateContains(k *check.Check[any], def Definition) {
	k.Contains(def.Expected()...)
}

func evaluateContainsExactly(k *check.Check[any], def Definition) {
	k.ContainsExactly(def.Values...)
}

func evaluateEquivalent(k *check.Check[any], def Definition) {
	k.IsEquivalentTo(def.Value)
}

func evaluateSize(k *check.Check[any], def Definition) {
	k.HasSize(requireInt(def))
}

func evaluateEmpty(k *check.Check[any], _ Definition) {
	k.IsEmpty()
}

func evaluateNotEmpty(k *check.Check[any], _ Definition) {
	k.Not().IsEmpty()
}

func evaluateContainsKey(k *check.Check[any], def Definition) {
	k.ContainsKey(def.Value)
}

func evaluateContainsValue(k *check.Check[any], def Definition) {
	k.ContainsValue(def.Value)
}

// evaluateContainsPair expects Values to hold the key and the
// value.
func evaluateContainsPair(k *check.Check[any], def Definition) {
	if len(def.Values) != 2 {
		panic(fmt.Errorf("%w: contains_pair needs a key and a value, got %d values",
			ErrInvalidDefinition, len(def.Values)))
	}
	k.ContainsPair(def.Values[0], def.Values[1])
}

// evaluateMinSize checks that a string, collection or map holds
// at least Value elements.
func evaluateMinSize(k *check.Check[any], def Definition) {
	n := requireInt(def)
	check.Begin(k).
		WithParam("min", message.Plural(n, "element")).
		Evaluate("min_size", func(v any) *check.Violation {
			size, ok := compare.Len(v)
			if !ok {
				return &check.Violation{Override: "The {checked} has no size."}
			}
			if size >= n {
				return nil
			}
			return &check.Violation{
				Override: "The {checked} has {actual_size} whereas at least {min} are expected.",
				Params:   map[string]string{"actual_size": message.Plural(size, "element")},
			}
		}).
		EndCheck()
}

// evaluateMatches checks a string against the regular expression
// in Value.
func evaluateMatches(k *check.Check[any], def Definition) {
	pattern, ok := def.Value.(string)
	if !ok {
		panic(fmt.Errorf("%w: matches needs a string pattern, got %T",
			ErrInvalidDefinition, def.Value))
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrInvalidDefinition, err))
	}
	check.Begin(k).
		Expecting(pattern).
		WithParam("pattern", pattern).
		Evaluate("matches", func(v any) *check.Violation {
			s, ok := v.(string)
			if !ok {
				return &check.Violation{Override: "The {checked} is not a string."}
			}
			if re.MatchString(s) {
				return nil
			}
			return &check.Violation{Override: "The {checked} does not match the expected pattern."}
		}).
		EndCheck()
}

// evaluateNoDuplicates checks that no two elements of a sequence
// are structurally equal.
func evaluateNoDuplicates(k *check.Check[any], _ Definition) {
	cmp := k.Checker().Comparer()
	check.Begin(k).
		Evaluate("no_duplicates", func(v any) *check.Violation {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
				return &check.Violation{Override: "The {checked} is not a sequence."}
			}
			items := make([]any, rv.Len())
			for i := range items {
				items[i] = rv.Index(i).Interface()
			}
			for i := 1; i < len(items); i++ {
				if j, found := cmp.ContainsElement(items[:i], items[i]); found {
					return &check.Violation{
						Override: "The {checked} holds duplicates at indexes {first} and {second}.",
						Params: map[string]string{
							"first":  strconv.Itoa(j),
							"second": strconv.Itoa(i),
						},
					}
				}
			}
			return nil
		}).
		EndCheck()
}

// requireInt reads the numeric Value of def, accepting integer,
// float and numeric string forms.
func requireInt(def Definition) int {
	n, ok := toInt(def.Value)
	if !ok {
		panic(fmt.Errorf("%w: %s needs an integer value, got %v",
			ErrInvalidDefinition, def.Type, def.Value))
	}
	return n
}

// toInt converts an any value to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		i, err := safecast.Conv[int](n)
		return i, err == nil
	case uint64:
		i, err := safecast.Conv[int](n)
		return i, err == nil
	case float64:
		i, err := safecast.Convert[int](n)
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
