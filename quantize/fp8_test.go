package quantize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFP8Value(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact multiple", 0.5, 0.5},
		{"rounds up", 0.44, 0.5},
		{"rounds down", 0.31, 0.25},
		{"negative", -0.44, -0.5},
		{"tiny flushes to zero", 1e-11, 0},
		{"negative tiny flushes to zero", -5e-11, 0},
		{"zero", 0, 0},
		{"large", 100.06, 100.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FP8Value(tc.in))
		})
	}
}

func TestFP8Value_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(FP8Value(math.NaN())))
}

func TestFP8Value_InfPassesThrough(t *testing.T) {
	assert.True(t, math.IsInf(FP8Value(math.Inf(1)), 1))
	assert.True(t, math.IsInf(FP8Value(math.Inf(-1)), -1))
}

func TestFP8_Idempotent(t *testing.T) {
	v := []float64{0.13, -2.71, 1e-12, 42.42, 0}
	FP8(v)
	once := append([]float64(nil), v...)
	FP8(v)
	assert.Equal(t, once, v)
}

func TestFP8Copy_LeavesInputUntouched(t *testing.T) {
	in := []float64{0.13, -0.44}
	out := FP8Copy(in)
	assert.Equal(t, []float64{0.13, -0.44}, in)
	assert.Equal(t, []float64{0.125, -0.5}, out)
}

func TestFormat_Bytes(t *testing.T) {
	assert.Equal(t, 1, EmulatedFP8.Bytes())
	assert.Equal(t, 2, Binary16.Bytes())
	assert.Equal(t, 4, Binary32.Bytes())
	assert.Equal(t, 8, Binary64.Bytes())
}

func TestFormat_Round(t *testing.T) {
	third := 1.0 / 3.0

	v16 := []float64{third}
	Binary16.Round(v16)
	assert.NotEqual(t, third, v16[0])
	assert.InDelta(t, third, v16[0], 1e-3)

	v32 := []float64{third}
	Binary32.Round(v32)
	assert.Equal(t, float64(float32(third)), v32[0])

	v64 := []float64{third}
	Binary64.Round(v64)
	assert.Equal(t, third, v64[0])
}

func TestFormat_RoundIdempotent(t *testing.T) {
	for _, f := range []Format{EmulatedFP8, Binary16, Binary32, Binary64} {
		v := []float64{1.0 / 3.0, -2.71828, 1e-11}
		f.Round(v)
		once := append([]float64(nil), v...)
		f.Round(v)
		assert.Equal(t, once, v, f.String())
	}
}

func TestFormat_DType(t *testing.T) {
	assert.Equal(t, "float32", EmulatedFP8.DType())
	assert.Equal(t, "float16", Binary16.DType())
	assert.Equal(t, "float32", Binary32.DType())
	assert.Equal(t, "float64", Binary64.DType())
}
