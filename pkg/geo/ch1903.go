package geo

import "math"

// Approximate WGS84 ⇄ CH1903+ conversions published by swisstopo.
// Longitudes and latitudes are in radians.

// Ch1903E returns the east coordinate of the point at (lon, lat).
func Ch1903E(lon, lat float64) float64 {
	l := lambda1(lon)
	p := phi1(lat)
	return 2600072.37 +
		211455.93*l -
		10938.51*l*p -
		0.36*l*p*p -
		44.54*l*l*l
}

// Ch1903N returns the north coordinate of the point at (lon, lat).
func Ch1903N(lon, lat float64) float64 {
	l := lambda1(lon)
	p := phi1(lat)
	return 1200147.07 +
		308807.95*p +
		3745.25*l*l +
		76.63*p*p -
		194.56*l*l*p +
		119.79*p*p*p
}

// Ch1903Lon returns the longitude of the point at (e, n).
func Ch1903Lon(e, n float64) float64 {
	x := 1e-6 * (e - 2_600_000)
	y := 1e-6 * (n - 1_200_000)
	l0 := 2.6779094 +
		4.728982*x +
		0.791484*x*y +
		0.1306*x*y*y -
		0.0436*x*x*x
	return degToRad(l0) * 100 / 36
}

// Ch1903Lat returns the latitude of the point at (e, n).
func Ch1903Lat(e, n float64) float64 {
	x := 1e-6 * (e - 2_600_000)
	y := 1e-6 * (n - 1_200_000)
	p0 := 16.9023892 +
		3.238272*y -
		0.270978*x*x -
		0.002528*y*y -
		0.0447*x*x*y -
		0.0140*y*y*y
	return degToRad(p0) * 100 / 36
}

func lambda1(lon float64) float64 {
	return 1e-4 * (3600*radToDeg(lon) - 26782.5)
}

func phi1(lat float64) float64 {
	return 1e-4 * (3600*radToDeg(lat) - 169028.66)
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func radToDeg(r float64) float64 { return r * 180 / math.Pi }
