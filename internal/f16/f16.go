// Package f16 implements IEEE-754 binary16 (float16) rounding.
//
// This package is internal: it exists so the FP16 precision tier can cast
// float64 state through a true half-precision representation while the
// solver keeps executing in float64.
package f16

import (
	"math"
)

// Bits is the raw IEEE-754 binary16 bit-pattern.
//
// Layout:
//
//	sign: 1 bit
//	exp:  5 bits (bias 15)
//	frac: 10 bits
type Bits uint16

const (
	signMask Bits = 0x8000
	expMask  Bits = 0x7C00
	fracMask Bits = 0x03FF

	f32ExpMask  uint32 = 0x7F800000
	f32FracMask uint32 = 0x007FFFFF
)

// ToFloat64 converts a binary16 bit-pattern to float64.
//
// The conversion is exact: every binary16 value is representable in
// float64.
func ToFloat64(h Bits) float64 {
	sign := uint32(h&signMask) << 16
	exp := uint32(h&expMask) >> 10
	frac := uint32(h & fracMask)

	switch exp {
	case 0:
		if frac == 0 {
			return float64(math.Float32frombits(sign))
		}
		// Subnormal: binary16 subnormals have exponent -14 and no
		// implicit leading 1. Normalize to build a float32 normal.
		e := int32(-14)
		m := frac
		for (m & 0x0400) == 0 {
			m <<= 1
			e--
		}
		m &= 0x03FF // strip leading 1
		f32Exp := uint32(int32(127)+e) << 23
		return float64(math.Float32frombits(sign | f32Exp | m<<13))
	case 0x1F:
		// Inf/NaN
		if frac == 0 {
			return float64(math.Float32frombits(sign | f32ExpMask))
		}
		return float64(math.Float32frombits(sign | f32ExpMask | (frac << 13)))
	default:
		f32Exp := uint32(int32(exp)-15+127) << 23
		return float64(math.Float32frombits(sign | f32Exp | frac<<13))
	}
}

// FromFloat64 converts a float64 into a binary16 bit-pattern.
//
// Rounding mode: round-to-nearest, ties-to-even. The value is narrowed
// through float32 first; the intermediate step cannot move the binary16
// result except on ties far below the quantization step.
func FromFloat64(f float64) Bits {
	bits := math.Float32bits(float32(f))
	sign := Bits((bits >> 16) & uint32(signMask))
	exp := int32((bits & f32ExpMask) >> 23)
	frac := bits & f32FracMask

	// NaN / Inf
	if exp == 0xFF {
		if frac == 0 {
			return sign | expMask // infinity
		}
		// Keep a non-zero quiet payload so NaN-ness survives.
		payload := Bits(frac >> 13)
		if payload == 0 {
			payload = 1
		}
		payload |= 0x0200
		return sign | expMask | (payload & fracMask)
	}

	// Zero, and float32 subnormals which underflow to zero in binary16.
	if exp == 0 {
		return sign
	}

	// Re-bias exponent from float32 (127) to binary16 (15).
	e16 := exp - 127 + 15

	// Overflow -> Inf
	if e16 >= 0x1F {
		return sign | expMask
	}

	// Underflow -> subnormal/zero
	if e16 <= 0 {
		if e16 < -10 {
			return sign
		}
		// Make the implicit leading 1 explicit and shift down to a
		// 10-bit mantissa with round-to-nearest-even.
		mant := frac | 0x00800000
		shift := uint32(1-e16) + 13
		m := mant >> shift
		remainder := mant & ((uint32(1) << shift) - 1)
		half := uint32(1) << (shift - 1)
		if remainder > half || (remainder == half && (m&1) == 1) {
			m++
		}
		return sign | Bits(m)
	}

	// Normal case: fraction 23 bits -> 10 bits with rounding.
	m := frac >> 13
	remainder := frac & 0x1FFF
	if remainder > 0x1000 || (remainder == 0x1000 && (m&1) == 1) {
		m++
		if m == 0x0400 {
			// Mantissa overflow; carry into exponent.
			m = 0
			e16++
			if e16 >= 0x1F {
				return sign | expMask
			}
		}
	}

	return sign | Bits(uint32(e16)<<10) | Bits(m)
}

// Round returns v rounded to the nearest binary16 value, widened back to
// float64. Idempotent: Round(Round(v)) == Round(v).
func Round(v float64) float64 {
	return ToFloat64(FromFloat64(v))
}

// RoundSlice rounds every element of v through binary16, in place.
func RoundSlice(v []float64) {
	for i := range v {
		v[i] = Round(v[i])
	}
}
