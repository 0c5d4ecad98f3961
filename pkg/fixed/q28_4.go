package fixed

import (
	"math"

	"velo_router/pkg/check"
)

// Q28.4 layout: 28 integer bits including the sign, 4 fractional bits.
const (
	fractionBits = 4

	minOfInt = -1 << 28
	maxOfInt = 1<<28 - 1
)

// OfInt returns the Q28.4 representation of i.
//
// The accepted domain is [-2^28, 2^28-1]. The conversion is the plain
// two's-complement shift, so only |i| < 2^27 survives a round trip through
// AsFloat64; larger magnitudes wrap like any 32-bit shift.
func OfInt(i int32) (int32, error) {
	if err := check.Argument(i >= minOfInt && i <= maxOfInt, "%d outside Q28.4 integer range", i); err != nil {
		return 0, err
	}
	return i << fractionBits, nil
}

// AsFloat64 converts a Q28.4 value to float64.
func AsFloat64(q int32) float64 {
	return math.Ldexp(float64(q), -fractionBits)
}

// AsFloat32 converts a Q28.4 value to float32.
func AsFloat32(q int32) float32 {
	return float32(AsFloat64(q))
}

// CeilDiv returns ceil(x / y) for x >= 0 and y > 0.
func CeilDiv(x, y int) (int, error) {
	if err := check.Argument(x >= 0 && y > 0, "ceilDiv(%d, %d)", x, y); err != nil {
		return 0, err
	}
	return (x + y - 1) / y, nil
}
