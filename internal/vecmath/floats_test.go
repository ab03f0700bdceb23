package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Positive values", []float64{1, 2, 3}, []float64{4, 5, 6}, 32.0},
		{"Negative values", []float64{-1, -2, -3}, []float64{-4, -5, -6}, 32.0},
		{"Mixed values", []float64{1, -2, 3}, []float64{-4, 5, -6}, -32.0},
		{"Zero values", []float64{0, 0, 0}, []float64{0, 0, 0}, 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Dot(tc.a, tc.b))
		})
	}
}

func TestNorm(t *testing.T) {
	assert.Equal(t, 5.0, Norm([]float64{3, 4}))
	assert.Equal(t, 0.0, Norm([]float64{0, 0, 0}))
}

func TestScaleInPlace(t *testing.T) {
	v := []float64{1, -2, 4}
	ScaleInPlace(v, 0.5)
	assert.Equal(t, []float64{0.5, -1, 2}, v)
}

func TestMatVec(t *testing.T) {
	// diag(3,2,1) applied to (1,1,1)
	a := []float64{
		3, 0, 0,
		0, 2, 0,
		0, 0, 1,
	}
	dst := make([]float64, 3)
	MatVec(dst, a, []float64{1, 1, 1}, 3)
	assert.Equal(t, []float64{3, 2, 1}, dst)

	// Dense 2x2
	a2 := []float64{1, 2, 3, 4}
	dst2 := make([]float64, 2)
	MatVec(dst2, a2, []float64{5, 6}, 2)
	assert.Equal(t, []float64{17, 39}, dst2)
}

func TestResidualNorm(t *testing.T) {
	// Exact eigenpair: residual must be zero.
	ax := []float64{3, 0, 0}
	x := []float64{1, 0, 0}
	assert.Equal(t, 0.0, ResidualNorm(ax, x, 3.0))

	// ax - λx = (1,1) -> norm sqrt(2)
	got := ResidualNorm([]float64{2, 2}, []float64{1, 1}, 1.0)
	assert.InDelta(t, math.Sqrt2, got, 1e-15)
}
