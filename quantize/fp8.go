package quantize

import "math"

// fp8ZeroCutoff is the magnitude at or below which values flush to zero.
const fp8ZeroCutoff = 1e-10

// FP8Value quantizes a single value to ~3 mantissa bits: magnitudes at or
// below the cutoff flush to exactly zero, the rest snap to the nearest
// multiple of 1/8 with the original sign reapplied.
//
// NaN propagates unchanged. Infinities pass through untouched (the
// underlying wide format's conversion rules apply).
func FP8Value(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}

	abs := math.Abs(v)
	if abs <= fp8ZeroCutoff {
		return 0
	}

	q := math.Round(abs*8) / 8
	if math.Signbit(v) {
		return -q
	}
	return q
}

// FP8 quantizes every element of v in place. Idempotent: a second
// application returns the same values.
func FP8(v []float64) {
	for i := range v {
		v[i] = FP8Value(v[i])
	}
}

// FP8Copy returns a quantized copy of v, leaving v untouched.
func FP8Copy(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = FP8Value(v[i])
	}
	return out
}
