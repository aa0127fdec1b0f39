package suite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoSuite = `
version: "1"
name: demo
values:
  greeting: hello world
cases:
  - id: basics
    name: Basics
    tags: [smoke]
    values:
      items: [1, 2, 3]
    expect:
      items: ["size:3", "contains:[1, 3]", "!empty"]
      greeting: ["contains:world"]
  - id: broken
    name: Broken
    values:
      total: 0.30000000000000004
    checks:
      - type: equal
        target: total
        value: 0.3
  - id: after-broken
    name: After broken
    depends_on: [broken]
    values:
      x: 1
    expect:
      x: ["equal:1"]
  - id: after-basics
    name: After basics
    tags: [smoke]
    depends_on: [basics]
    expect:
      greeting: ["not_null"]
`

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadDemo(t *testing.T) *Bank {
	t.Helper()
	b := NewBank()
	require.NoError(t, b.LoadFile(writeSuite(t, t.TempDir(), "demo.yaml", demoSuite)))
	return b
}

func TestCase_Definitions(t *testing.T) {
	c := &Case{
		ID: "c",
		Expect: map[string][]string{
			"b": {"size:2"},
			"a": {"!null", "contains:x"},
		},
	}

	defs, err := c.Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "a", defs[0].Target)
	assert.Equal(t, "null", defs[0].Type)
	assert.True(t, defs[0].Not)
	assert.Equal(t, "contains", defs[1].Type)
	assert.Equal(t, "b", defs[2].Target)
	assert.Equal(t, 2, defs[2].Value)
}

func TestCase_DefinitionsChecksFirst(t *testing.T) {
	b := loadDemo(t)
	c, ok := b.Get("broken")
	require.True(t, ok)

	defs, err := c.Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "equal", defs[0].Type)
	assert.Equal(t, 0.3, defs[0].Value)
}

func TestCase_DefinitionsError(t *testing.T) {
	c := &Case{ID: "bad", Expect: map[string][]string{"x": {":3"}}}

	_, err := c.Definitions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case bad")
	assert.Contains(t, err.Error(), "empty assertion type")
}

func TestCase_HasTag(t *testing.T) {
	c := &Case{Tags: []string{"smoke", "slow"}}

	assert.True(t, c.HasTag("slow"))
	assert.False(t, c.HasTag("fast"))
}

func TestCaseResult_Passed(t *testing.T) {
	b := loadDemo(t)
	results, err := NewRunner().Run(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, 4, results[0].Passed())
	assert.Equal(t, 0, results[1].Passed())
}
