// Package geo provides the Swiss planar coordinate system (CH1903+), the
// Web Mercator projection and the small amount of planar math shared by the
// graph and routing packages.
package geo

// Bounds of the region covered by graph data, in CH1903+ meters.
const (
	MinE = 2_485_000.0
	MaxE = 2_834_000.0
	MinN = 1_075_000.0
	MaxN = 1_296_000.0

	Width  = MaxE - MinE
	Height = MaxN - MinN
)

// ContainsEN reports whether (e, n) lies inside the bounds, borders included.
func ContainsEN(e, n float64) bool {
	return e >= MinE && e <= MaxE && n >= MinN && n <= MaxN
}
