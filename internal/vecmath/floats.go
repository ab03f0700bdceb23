// Package vecmath provides float64 vector and dense-matrix kernels.
// This is an internal package - external users should go through the
// cascade package's Matrix type.
package vecmath

import "math"

// Dot calculates the dot product of two vectors.
// Vectors must have equal length.
func Dot(a, b []float64) float64 {
	var ret float64
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

// Norm calculates the Euclidean (2-) norm of a vector.
func Norm(a []float64) float64 {
	return math.Sqrt(Dot(a, a))
}

// ScaleInPlace multiplies all elements of a by scalar.
//
// This is primarily used for unit-norm normalization.
func ScaleInPlace(a []float64, scalar float64) {
	for i := range a {
		a[i] *= scalar
	}
}

// MatVec computes dst = A·x for a dense row-major n×n matrix.
// dst must not alias x and must have length n.
func MatVec(dst, a, x []float64, n int) {
	for i := 0; i < n; i++ {
		row := a[i*n : i*n+n]
		var s float64
		for j := range row {
			s += row[j] * x[j]
		}
		dst[i] = s
	}
}

// ResidualNorm computes ‖ax − λ·x‖ where ax is a precomputed A·x.
func ResidualNorm(ax, x []float64, lambda float64) float64 {
	var s float64
	for i := range ax {
		d := ax[i] - lambda*x[i]
		s += d * d
	}

	return math.Sqrt(s)
}
