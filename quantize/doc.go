// Package quantize provides numeric format descriptors and the
// low-precision emulation used by the precision tiers.
//
// Real FP8 hardware formats (1 sign bit, 4-5 exponent bits, 2-3 mantissa
// bits) are approximated by aggressive mantissa rounding of values that
// remain stored in a wider format. Binary16 and binary32 are emulated by
// rounding float64 state through the genuine narrower representation.
package quantize
