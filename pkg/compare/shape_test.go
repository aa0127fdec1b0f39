package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type point struct {
	X, Y int
}

type sameAlways struct {
	V int
}

func (sameAlways) Equal(sameAlways) bool { return true }

type ptrEquals struct {
	Name string
}

func (p *ptrEquals) Equals(o *ptrEquals) bool { return p.Name == o.Name }

// foreignEqual has an Equal method that does not accept its own
// type, so it is not a custom equality.
type foreignEqual struct {
	V int
}

func (foreignEqual) Equal(int) bool { return true }

func TestClassify(t *testing.T) {
	var nilPtr *point
	var nilMap map[string]int
	var nilSlice []int
	var nilIface error

	tests := []struct {
		name  string
		value any
		shape Shape
	}{
		{"untyped nil", nil, Null},
		{"nil pointer", nilPtr, Null},
		{"nil map", nilMap, Null},
		{"nil slice", nilSlice, Null},
		{"nil interface", nilIface, Null},
		{"int", 42, Scalar},
		{"float", 1.5, Scalar},
		{"bool", true, Scalar},
		{"string", "hello", String},
		{"slice", []int{1}, Sequence},
		{"array", [2]int{1, 2}, Sequence},
		{"map", map[string]int{"a": 1}, Map},
		{"set", map[string]struct{}{"a": {}}, Set},
		{"bool map is a map", map[string]bool{"a": true}, Map},
		{"struct", point{1, 2}, Composite},
		{"pointer to struct", &point{1, 2}, Composite},
		{"custom equal", sameAlways{1}, CustomEquatable},
		{"pointer receiver equals", &ptrEquals{"a"}, CustomEquatable},
		{"time", time.Now(), CustomEquatable},
		{"foreign equal", foreignEqual{1}, Composite},
		{"func", func() {}, Scalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shape, Classify(tt.value).Shape)
		})
	}
}

func TestClassify_PointerRecordsIdentity(t *testing.T) {
	p := &point{1, 2}

	a := Classify(p)
	b := Classify(p)

	assert.True(t, a.id.valid())
	assert.Equal(t, a.id, b.id)
	assert.Equal(t, "compare.point", a.Type().String())
}

func TestClassify_SelfReferentialInterface(t *testing.T) {
	var x any
	x = &x

	info := Classify(x)

	assert.Equal(t, Scalar, info.Shape)
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "sequence", Sequence.String())
	assert.Equal(t, "custom", CustomEquatable.String())
	assert.Equal(t, "unknown", Shape(99).String())
}
