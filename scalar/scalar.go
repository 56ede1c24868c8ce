// Package scalar holds the small scalar helpers the rotation math types are built on -
// the shared near-zero tolerance, approximate equality at that tolerance, and the usual
// clamping / angle-conversion utilities.
package scalar

import "math"

// ZeroTolerance is the threshold under which a scalar is treated as zero by the
// guard branches in the rotation math (normalization, inversion, slerp's linear
// fallback, gimbal-lock detection). Equals uses the same tolerance.
const ZeroTolerance = 1e-6

// Equals returns true if a and b are approximately equal, using ZeroTolerance
// scaled by the larger magnitude of the two values (so large angles and matrix
// entries compare sensibly too).
func Equals(a, b float64) bool {
	return math.Abs(a-b) <= ZeroTolerance*Max(1, Max(math.Abs(a), math.Abs(b)))
}

// IsZero returns true if the value is within ZeroTolerance of zero.
func IsZero(a float64) bool {
	return math.Abs(a) <= ZeroTolerance
}

// ToRadians is a helper function to easily convert degrees to radians (which is what the rotation-oriented functions here use).
func ToRadians(degrees float64) float64 {
	return math.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float64) float64 {
	return radians / math.Pi * 180
}

// Min returns the minimum value out of two provided values.
func Min[number float32 | float64 | int | int32 | int64](x, y number) number {
	if x < y {
		return x
	}
	return y
}

// Max returns the maximum value out of two provided values.
func Max[number float32 | float64 | int | int32 | int64](x, y number) number {
	if x > y {
		return x
	}
	return y
}

// Clamp clamps a value to the minimum and maximum values provided.
func Clamp[number float32 | float64 | int | int32 | int64](value, min, max number) number {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}
