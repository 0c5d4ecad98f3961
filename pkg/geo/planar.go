package geo

import "math"

// Clamp returns v limited to [lo, hi]. lo must not exceed hi.
func Clamp(lo, v, hi float64) float64 {
	if v >= hi {
		return hi
	}
	if v <= lo {
		return lo
	}
	return v
}

// ClampInt returns v limited to [lo, hi].
func ClampInt(lo, v, hi int) int {
	return max(lo, min(v, hi))
}

// Interpolate returns the y coordinate at x of the line through (0, y0)
// and (1, y1).
func Interpolate(y0, y1, x float64) float64 {
	return math.FMA(y1-y0, x, y0)
}

// SquaredNorm returns the squared length of (x, y).
func SquaredNorm(x, y float64) float64 {
	return x*x + y*y
}

// Norm returns the length of (x, y).
func Norm(x, y float64) float64 {
	return math.Sqrt(SquaredNorm(x, y))
}

// ProjectionLength returns the signed length of the projection of AP onto
// AB. The result is not clamped to the segment; A and B must differ.
func ProjectionLength(aX, aY, bX, bY, pX, pY float64) float64 {
	uX, uY := pX-aX, pY-aY
	vX, vY := bX-aX, bY-aY
	return (uX*vX + uY*vY) / Norm(vX, vY)
}
