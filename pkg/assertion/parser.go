package assertion

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseAssertionString parses a compact assertion string of the
// form "type:value" into its components. If no colon is present
// the entire string is treated as the type and value is nil. A
// leading "!" negates the assertion.
//
// Examples:
//
//	"contains:func"  -> ("contains", "func", false)
//	"!null"          -> ("null", nil, true)
//	"size:100"       -> ("size", "100", false)
func ParseAssertionString(
	s string,
) (assertionType string, value any, negated bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "!") {
		negated = true
		s = strings.TrimSpace(s[1:])
	}

	parts := strings.SplitN(s, ":", 2)
	assertionType = parts[0]

	if len(parts) > 1 {
		value = parts[1]
	}

	return
}

// ParseDefinition builds a Definition for target from a compact
// assertion string. The value is decoded as a YAML scalar or
// flow collection, so "size:3" expects the integer 3 and
// "contains_exactly:[1, 2]" expects two integers. A sequence
// value fills both Value and Values.
func ParseDefinition(target, s string) (Definition, error) {
	assertionType, raw, negated := ParseAssertionString(s)
	if assertionType == "" {
		return Definition{}, fmt.Errorf("empty assertion type in %q", s)
	}

	def := Definition{
		Type:   assertionType,
		Target: target,
		Not:    negated,
	}
	if raw == nil {
		return def, nil
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw.(string)), &value); err != nil {
		return Definition{}, fmt.Errorf(
			"failed to parse value of %q: %w", s, err,
		)
	}
	if seq, ok := value.([]any); ok {
		def.Values = seq
	}
	def.Value = value
	return def, nil
}
