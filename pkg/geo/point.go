package geo

import (
	"fmt"
	"math"

	"velo_router/pkg/check"
)

// PointCh is a point in the Swiss planar system, always inside the bounds.
type PointCh struct {
	E float64
	N float64
}

// NewPointCh returns the point at (e, n), or an invalid-argument error when
// it falls outside the bounds.
func NewPointCh(e, n float64) (PointCh, error) {
	if err := check.Argument(ContainsEN(e, n), "point (%f, %f) outside bounds", e, n); err != nil {
		return PointCh{}, err
	}
	return PointCh{E: e, N: n}, nil
}

// SquaredDistanceTo returns the squared distance to that, in m².
func (p PointCh) SquaredDistanceTo(that PointCh) float64 {
	return SquaredNorm(p.E-that.E, p.N-that.N)
}

// DistanceTo returns the distance to that, in meters.
func (p PointCh) DistanceTo(that PointCh) float64 {
	return math.Sqrt(p.SquaredDistanceTo(that))
}

// Lon returns the WGS84 longitude in radians.
func (p PointCh) Lon() float64 { return Ch1903Lon(p.E, p.N) }

// Lat returns the WGS84 latitude in radians.
func (p PointCh) Lat() float64 { return Ch1903Lat(p.E, p.N) }

// String returns pretty printed value for PointCh.
func (p PointCh) String() string {
	return fmt.Sprintf("E: %.2f | N: %.2f", p.E, p.N)
}

// PointChOfDegrees converts WGS84 degrees to a PointCh. The second result is
// false when the point lies outside the bounds.
func PointChOfDegrees(lonDeg, latDeg float64) (PointCh, bool) {
	lon, lat := degToRad(lonDeg), degToRad(latDeg)
	e, n := Ch1903E(lon, lat), Ch1903N(lon, lat)
	if !ContainsEN(e, n) {
		return PointCh{}, false
	}
	return PointCh{E: e, N: n}, true
}

// Degrees returns the WGS84 longitude and latitude of p in degrees.
func (p PointCh) Degrees() (lonDeg, latDeg float64) {
	return radToDeg(p.Lon()), radToDeg(p.Lat())
}

// Side of the 256 pixel tile at zoom level 0, as a power of two.
const mapSideExponent = 8

// PointWebMercator is a point in the Web Mercator system at zoom level 0,
// with both coordinates in [0,1].
type PointWebMercator struct {
	X float64
	Y float64
}

// NewPointWebMercator returns the point at (x, y), or an invalid-argument
// error when a coordinate falls outside [0,1].
func NewPointWebMercator(x, y float64) (PointWebMercator, error) {
	if err := check.Argument(x >= 0 && x <= 1 && y >= 0 && y <= 1, "web mercator point (%f, %f) outside [0,1]", x, y); err != nil {
		return PointWebMercator{}, err
	}
	return PointWebMercator{X: x, Y: y}, nil
}

// PointWebMercatorOf returns the point whose pixel coordinates at the given
// zoom level are (x, y).
func PointWebMercatorOf(zoomLevel int, x, y float64) (PointWebMercator, error) {
	shift := -(zoomLevel + mapSideExponent)
	return NewPointWebMercator(math.Ldexp(x, shift), math.Ldexp(y, shift))
}

// PointWebMercatorOfPointCh projects p to Web Mercator.
func PointWebMercatorOfPointCh(p PointCh) PointWebMercator {
	return PointWebMercator{X: WebMercatorX(p.Lon()), Y: WebMercatorY(p.Lat())}
}

// XAtZoomLevel returns the x pixel coordinate at the given zoom level.
func (p PointWebMercator) XAtZoomLevel(zoomLevel int) float64 {
	return math.Ldexp(p.X, zoomLevel+mapSideExponent)
}

// YAtZoomLevel returns the y pixel coordinate at the given zoom level.
func (p PointWebMercator) YAtZoomLevel(zoomLevel int) float64 {
	return math.Ldexp(p.Y, zoomLevel+mapSideExponent)
}

// Lon returns the longitude in radians.
func (p PointWebMercator) Lon() float64 { return WebMercatorLon(p.X) }

// Lat returns the latitude in radians.
func (p PointWebMercator) Lat() float64 { return WebMercatorLat(p.Y) }

// ToPointCh returns the Swiss point at the same position. The second result
// is false when that position lies outside the bounds.
func (p PointWebMercator) ToPointCh() (PointCh, bool) {
	lon, lat := p.Lon(), p.Lat()
	e, n := Ch1903E(lon, lat), Ch1903N(lon, lat)
	if !ContainsEN(e, n) {
		return PointCh{}, false
	}
	return PointCh{E: e, N: n}, true
}
