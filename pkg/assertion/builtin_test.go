package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

type labelledPoint struct {
	X, Y  int
	Label string
}

func TestBuiltinEvaluators(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name   string
		def    Definition
		value  any
		passed bool
	}{
		{"equal", Definition{Type: "equal", Value: []int{1, 2}}, []int{1, 2}, true},
		{"equal differs", Definition{Type: "equal", Value: 42}, 41, false},
		{"equal negated", Definition{Type: "equal", Value: 42, Not: true}, 41, true},
		{"fields equal", Definition{Type: "fields_equal", Value: point{1, 2}}, labelledPoint{1, 2, "p"}, true},
		{"fields differ", Definition{Type: "fields_equal", Value: point{1, 2}}, labelledPoint{1, 3, "p"}, false},
		{"same value", Definition{Type: "same_value", Value: "x"}, "x", true},
		{"null", Definition{Type: "null"}, nil, true},
		{"null fails", Definition{Type: "null"}, 0, false},
		{"not null", Definition{Type: "not_null"}, "x", true},
		{"negated null", Definition{Type: "null", Not: true}, "x", true},
		{"close to", Definition{Type: "close_to", Value: 1.0, Tolerance: 0.1}, 1.05, true},
		{"not close", Definition{Type: "close_to", Value: 1.0, Tolerance: 0.01}, 1.05, false},
		{"instance of", Definition{Type: "instance_of", Value: ""}, "text", true},
		{"not instance of", Definition{Type: "instance_of", Value: 0}, "text", false},
		{"contains substring", Definition{Type: "contains", Value: "func"}, "func main()", true},
		{"contains elements", Definition{Type: "contains", Values: []any{1, 3}}, []int{1, 2, 3}, true},
		{"contains missing", Definition{Type: "contains", Values: []any{4}}, []int{1, 2, 3}, false},
		{"contains exactly", Definition{Type: "contains_exactly", Values: []any{1, 2}}, []int{1, 2}, true},
		{"contains exactly order", Definition{Type: "contains_exactly", Values: []any{2, 1}}, []int{1, 2}, false},
		{"equivalent", Definition{Type: "equivalent", Value: []int{2, 1}}, []int{1, 2}, true},
		{"size", Definition{Type: "size", Value: 2}, []string{"a", "b"}, true},
		{"size from string", Definition{Type: "size", Value: "2"}, map[string]int{"a": 1, "b": 2}, true},
		{"wrong size", Definition{Type: "size", Value: 3}, []string{"a"}, false},
		{"empty", Definition{Type: "empty"}, "", true},
		{"not empty", Definition{Type: "not_empty"}, []int{1}, true},
		{"not empty fails", Definition{Type: "not_empty"}, []int{}, false},
		{"contains key", Definition{Type: "contains_key", Value: "a"}, map[string]int{"a": 1}, true},
		{"contains value", Definition{Type: "contains_value", Value: 1}, map[string]int{"a": 1}, true},
		{"contains pair", Definition{Type: "contains_pair", Values: []any{"a", 1}}, map[string]int{"a": 1}, true},
		{"pair mismatch", Definition{Type: "contains_pair", Values: []any{"a", 2}}, map[string]int{"a": 1}, false},
		{"min size", Definition{Type: "min_size", Value: 2}, "abc", true},
		{"min size fails", Definition{Type: "min_size", Value: 5}, "abc", false},
		{"matches", Definition{Type: "matches", Value: `func\s+\w+`}, "func main()", true},
		{"does not match", Definition{Type: "matches", Value: `^class`}, "func main()", false},
		{"no duplicates", Definition{Type: "no_duplicates"}, []int{1, 2, 3}, true},
		{"duplicates", Definition{Type: "no_duplicates"}, []any{1, "a", int64(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.def.Target = "subject"
			r := e.Evaluate(tt.def, tt.value)
			assert.Equal(t, tt.passed, r.Passed, r.Message)
			if !tt.passed {
				assert.NotEmpty(t, r.Detail)
			}
		})
	}
}

func TestBuiltinMessages(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name    string
		def     Definition
		value   any
		message string
	}{
		{
			name:    "labelled with target",
			def:     Definition{Type: "not_null", Target: "user"},
			value:   nil,
			message: "The checked [user] must not be null.",
		},
		{
			name:    "negated",
			def:     Definition{Type: "contains_key", Target: "headers", Value: "auth", Not: true},
			value:   map[string]string{"auth": "x"},
			message: "The checked [headers] does contain the given key whereas it must not.",
		},
		{
			name:    "min size",
			def:     Definition{Type: "min_size", Target: "name", Value: 5},
			value:   "abc",
			message: "The checked [name] has 3 elements whereas at least 5 elements are expected.",
		},
		{
			name:    "duplicates",
			def:     Definition{Type: "no_duplicates", Target: "ids"},
			value:   []int{7, 8, 7},
			message: "The checked [ids] holds duplicates at indexes 0 and 2.",
		},
		{
			name:    "custom message",
			def:     Definition{Type: "equal", Target: "n", Value: 1, Message: "n must be one"},
			value:   2,
			message: "n must be one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Evaluate(tt.def, tt.value)
			require.False(t, r.Passed)
			assert.Equal(t, tt.message, r.Message)
		})
	}
}

func TestBuiltinInvalidDefinitions(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name    string
		def     Definition
		errText string
	}{
		{"size without number", Definition{Type: "size", Value: "many"}, "size needs an integer value"},
		{"pair without value", Definition{Type: "contains_pair", Values: []any{"a"}}, "contains_pair needs a key and a value"},
		{"pattern not a string", Definition{Type: "matches", Value: 3}, "matches needs a string pattern"},
		{"bad pattern", Definition{Type: "matches", Value: "("}, "invalid assertion definition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Evaluate(tt.def, "value")
			assert.False(t, r.Passed)
			assert.Contains(t, r.Message, tt.errText)
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{3, 3, true},
		{int64(4), 4, true},
		{uint64(5), 5, true},
		{6.0, 6, true},
		{2.5, 0, false},
		{1e300, 0, false},
		{" 7 ", 7, true},
		{"x", 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := toInt(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}
