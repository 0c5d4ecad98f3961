package geo

import (
	"math"

	"velo_router/pkg/check"
)

// Func is a real function of one variable, e.g. elevation as a function of
// the position along an edge.
type Func func(x float64) float64

// Constant returns the function whose value is always y.
func Constant(y float64) Func {
	return func(float64) float64 { return y }
}

// Sampled returns the function obtained by linear interpolation between
// samples evenly spaced over [0, xMax]. Outside that range it is constant,
// equal to the nearest end sample. samples is copied.
func Sampled(samples []float32, xMax float64) (Func, error) {
	if err := check.Argument(len(samples) >= 2 && xMax > 0, "%d samples over %f", len(samples), xMax); err != nil {
		return nil, err
	}
	s := append([]float32(nil), samples...)
	last := len(s) - 1
	step := xMax / float64(last)
	return func(x float64) float64 {
		if x <= 0 {
			return float64(s[0])
		}
		if x >= xMax {
			return float64(s[last])
		}
		i := int(math.Floor(x / step))
		if i >= last {
			return float64(s[last])
		}
		return Interpolate(float64(s[i]), float64(s[i+1]), (x-float64(i)*step)/step)
	}, nil
}
