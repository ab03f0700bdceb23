package quantize

import (
	"github.com/precisionlens/cascade/internal/f16"
)

// Format identifies the numeric format a precision tier computes in.
//
// The solver stores everything in float64; a Format defines how state is
// rounded to mimic the narrower representation.
type Format int

const (
	// EmulatedFP8 approximates an 8-bit float via mantissa quantization.
	EmulatedFP8 Format = iota
	// Binary16 is IEEE-754 half precision.
	Binary16
	// Binary32 is IEEE-754 single precision.
	Binary32
	// Binary64 is IEEE-754 double precision, the native working format.
	Binary64
)

// Bytes returns the storage size per element. EmulatedFP8 reports the
// width of the format being emulated, not the wide backing format.
func (f Format) Bytes() int {
	switch f {
	case EmulatedFP8:
		return 1
	case Binary16:
		return 2
	case Binary32:
		return 4
	default:
		return 8
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case EmulatedFP8:
		return "emulated-fp8"
	case Binary16:
		return "binary16"
	case Binary32:
		return "binary32"
	default:
		return "binary64"
	}
}

// DType returns the working element type recorded in traces. The
// emulated FP8 format computes in float32-width values, matching the
// downstream schema.
func (f Format) DType() string {
	switch f {
	case EmulatedFP8:
		return "float32"
	case Binary16:
		return "float16"
	case Binary32:
		return "float32"
	default:
		return "float64"
	}
}

// Emulated reports whether the format requires per-operation mantissa
// quantization on top of the entry cast.
func (f Format) Emulated() bool {
	return f == EmulatedFP8
}

// RoundValue rounds a single value into the format.
func (f Format) RoundValue(v float64) float64 {
	switch f {
	case EmulatedFP8:
		// The emulated format's wide backing is float32.
		return float64(float32(v))
	case Binary16:
		return f16.Round(v)
	case Binary32:
		return float64(float32(v))
	default:
		return v
	}
}

// Round rounds every element of v into the format, in place. Binary64 is
// the identity and leaves v untouched.
func (f Format) Round(v []float64) {
	if f == Binary64 {
		return
	}
	for i := range v {
		v[i] = f.RoundValue(v[i])
	}
}
