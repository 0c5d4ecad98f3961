package routing

import (
	"math"
	"slices"

	"velo_router/pkg/check"
	"velo_router/pkg/geo"
)

// ElevationProfile is the elevation along a route, sampled at even steps.
type ElevationProfile struct {
	length  float64
	samples []float32
	at      geo.Func

	min, max        float64
	ascent, descent float64
}

// NewElevationProfile returns the profile of a route of the given length
// with samples evenly spaced from 0 to length. samples is copied.
func NewElevationProfile(length float64, samples []float32) (*ElevationProfile, error) {
	if err := check.Argument(length > 0 && len(samples) >= 2, "profile of length %f with %d samples", length, len(samples)); err != nil {
		return nil, err
	}
	s := slices.Clone(samples)
	at, err := geo.Sampled(s, length)
	if err != nil {
		return nil, err
	}

	p := &ElevationProfile{
		length:  length,
		samples: s,
		at:      at,
		min:     float64(slices.Min(s)),
		max:     float64(slices.Max(s)),
	}
	for i := 1; i < len(s); i++ {
		if d := float64(s[i] - s[i-1]); d >= 0 {
			p.ascent += d
		} else {
			p.descent -= d
		}
	}
	return p, nil
}

// Length returns the length of the profiled route.
func (p *ElevationProfile) Length() float64 { return p.length }

// Samples returns a copy of the samples.
func (p *ElevationProfile) Samples() []float32 { return slices.Clone(p.samples) }

// MinElevation returns the lowest sample.
func (p *ElevationProfile) MinElevation() float64 { return p.min }

// MaxElevation returns the highest sample.
func (p *ElevationProfile) MaxElevation() float64 { return p.max }

// TotalAscent returns the sum of the positive differences between
// consecutive samples.
func (p *ElevationProfile) TotalAscent() float64 { return p.ascent }

// TotalDescent returns the sum of the negative differences between
// consecutive samples, as a positive number.
func (p *ElevationProfile) TotalDescent() float64 { return p.descent }

// ElevationAt returns the elevation at position, clamped to the profile.
func (p *ElevationProfile) ElevationAt(position float64) float64 { return p.at(position) }

// ComputeElevationProfile samples the elevation of route at most maxStep
// meters apart. Positions without elevation data are filled from their
// neighbours: leading and trailing gaps copy the nearest known sample,
// interior gaps are interpolated, and a route without any data is flat at 0.
func ComputeElevationProfile(route Route, maxStep float64) (*ElevationProfile, error) {
	if err := check.Argument(maxStep > 0, "max step %f", maxStep); err != nil {
		return nil, err
	}

	length := route.Length()
	if err := check.Argument(length > 0, "profile of empty route"); err != nil {
		return nil, err
	}
	n := int(math.Ceil(length/maxStep)) + 1
	step := length / float64(n-1)
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(route.ElevationAt(float64(i) * step))
	}

	fillGaps(samples)
	return NewElevationProfile(length, samples)
}

func isNaN32(f float32) bool { return f != f }

func fillGaps(s []float32) {
	first := slices.IndexFunc(s, func(f float32) bool { return !isNaN32(f) })
	if first < 0 {
		clear(s)
		return
	}
	for i := range first {
		s[i] = s[first]
	}

	last := len(s) - 1
	for isNaN32(s[last]) {
		last--
	}
	for i := last + 1; i < len(s); i++ {
		s[i] = s[last]
	}

	for i := first; i < last; i++ {
		if !isNaN32(s[i]) {
			continue
		}
		j := i + 1
		for isNaN32(s[j]) {
			j++
		}
		from, to := float64(s[i-1]), float64(s[j])
		span := float64(j - i + 1)
		for k := i; k < j; k++ {
			s[k] = float32(geo.Interpolate(from, to, float64(k-i+1)/span))
		}
		i = j
	}
}
