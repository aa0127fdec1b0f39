package assertion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefinition_JSONOmitEmpty(t *testing.T) {
	def := Definition{
		Type:   "not_empty",
		Target: "response",
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"value", "values", "not", "tolerance", "message"} {
		_, has := raw[key]
		assert.False(t, has, "%s should be omitted when empty", key)
	}
}

func TestDefinition_YAML(t *testing.T) {
	var def Definition
	err := yaml.Unmarshal([]byte(`
type: contains_pair
target: headers
values: [content-type, json]
not: true
message: headers must not be json
`), &def)

	require.NoError(t, err)
	assert.Equal(t, "contains_pair", def.Type)
	assert.Equal(t, "headers", def.Target)
	assert.Equal(t, []any{"content-type", "json"}, def.Values)
	assert.True(t, def.Not)
	assert.Equal(t, "headers must not be json", def.Message)
}

func TestDefinition_Expected(t *testing.T) {
	assert.Equal(t, []any{1, 2}, Definition{Value: 0, Values: []any{1, 2}}.Expected())
	assert.Equal(t, []any{"x"}, Definition{Value: "x"}.Expected())
	assert.Nil(t, Definition{}.Expected())
}

func TestResult_JSON(t *testing.T) {
	r := Result{
		Type:    "equal",
		Target:  "a",
		Passed:  false,
		Message: "The checked [a] is different from the expected one.",
		Diffs:   1,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"passed":false`)
	assert.Contains(t, string(data), `"diffs":1`)
	assert.NotContains(t, string(data), `"detail"`)
}
