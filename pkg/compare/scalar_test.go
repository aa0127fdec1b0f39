package compare

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualScalar(t *testing.T) {
	negZero := math.Copysign(0, -1)

	tests := []struct {
		name       string
		a, b       any
		equal      bool
		comparable bool
	}{
		{"same ints", 3, 3, true, true},
		{"int vs int64", 3, int64(3), true, true},
		{"int vs uint", 7, uint(7), true, true},
		{"negative int vs uint", -1, uint64(math.MaxUint64), false, true},
		{"max uint vs int", uint64(math.MaxUint64), int64(math.MaxInt64), false, true},
		{"integral float vs int", 2.0, 2, true, true},
		{"fractional float vs int", 2.5, 2, false, true},
		{"float vs uint", 3.0, uint8(3), true, true},
		{"huge float vs int", 1e30, int64(math.MaxInt64), false, true},
		{"float32 vs float64 inexact", float32(0.1), 0.1, false, true},
		{"float32 vs float64 exact", float32(0.5), 0.5, true, true},
		{"signed zeros", negZero, 0.0, true, true},
		{"nan", math.NaN(), math.NaN(), false, true},
		{"complex vs float", complex(2, 0), 2.0, true, true},
		{"complex with imag", complex(2, 1), 2.0, false, true},
		{"bools", true, true, true, true},
		{"bool vs int", true, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq, ok := EqualScalar(reflect.ValueOf(tt.a), reflect.ValueOf(tt.b))
			assert.Equal(t, tt.comparable, ok)
			assert.Equal(t, tt.equal, eq)
		})
	}
}

func TestIsNaN(t *testing.T) {
	assert.True(t, IsNaN(reflect.ValueOf(math.NaN())))
	assert.True(t, IsNaN(reflect.ValueOf(complex(math.NaN(), 0))))
	assert.False(t, IsNaN(reflect.ValueOf(1.0)))
	assert.False(t, IsNaN(reflect.ValueOf("NaN")))
	assert.False(t, IsNaN(reflect.Value{}))
}

func TestDiffMagnitude(t *testing.T) {
	d, ok := DiffMagnitude(reflect.ValueOf(100001.0), reflect.ValueOf(100000.0))
	assert.True(t, ok)
	assert.Equal(t, 1.0, d)

	_, ok = DiffMagnitude(reflect.ValueOf(3), reflect.ValueOf(4))
	assert.False(t, ok, "integers carry no float difference")

	_, ok = DiffMagnitude(reflect.ValueOf(1.0), reflect.ValueOf(1.0))
	assert.False(t, ok, "zero difference is not informative")

	_, ok = DiffMagnitude(reflect.ValueOf(math.Inf(1)), reflect.ValueOf(1.0))
	assert.False(t, ok, "infinite difference is not informative")
}

func TestCloseTo(t *testing.T) {
	a, b := 0.1, 0.2

	assert.True(t, CloseTo(0.3, a+b, 1e-9))
	assert.True(t, CloseTo(10, 10.5, 0.5))
	assert.False(t, CloseTo(10, 10.6, 0.5))
	assert.False(t, CloseTo(math.NaN(), 1.0, 10))
	assert.False(t, CloseTo("1", 1.0, 10))
}
