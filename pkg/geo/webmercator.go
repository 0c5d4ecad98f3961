package geo

import "math"

// WebMercatorX returns the Web Mercator x coordinate (in [0,1]) of lon, in radians.
func WebMercatorX(lon float64) float64 {
	return (lon + math.Pi) / (2 * math.Pi)
}

// WebMercatorY returns the Web Mercator y coordinate (in [0,1]) of lat, in radians.
func WebMercatorY(lat float64) float64 {
	return (math.Pi - math.Asinh(math.Tan(lat))) / (2 * math.Pi)
}

// WebMercatorLon returns the longitude, in radians, of x.
func WebMercatorLon(x float64) float64 {
	return 2*math.Pi*x - math.Pi
}

// WebMercatorLat returns the latitude, in radians, of y.
func WebMercatorLat(y float64) float64 {
	return math.Atan(math.Sinh(math.Pi - 2*math.Pi*y))
}
