package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"velo_router/pkg/geo"
	"velo_router/pkg/routing"
)

// LineString returns the route points as a WGS84 line, in degrees.
func LineString(route routing.Route) orb.LineString {
	return lineOf(route.Points())
}

func lineOf(points []geo.PointCh) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		lon, lat := p.Degrees()
		ls[i] = orb.Point{lon, lat}
	}
	return ls
}

// Feature returns the route as a GeoJSON LineString feature. The properties
// hold the length in meters and, with a profile, its elevation summary.
func Feature(route routing.Route, profile *routing.ElevationProfile) *geojson.Feature {
	f := geojson.NewFeature(LineString(route))
	f.Properties["length"] = route.Length()
	if profile != nil {
		f.Properties["min_elevation"] = profile.MinElevation()
		f.Properties["max_elevation"] = profile.MaxElevation()
		f.Properties["total_ascent"] = profile.TotalAscent()
		f.Properties["total_descent"] = profile.TotalDescent()
	}
	return f
}

// SegmentFeatures returns one feature per leg of an itinerary, with the
// leg index and length as properties.
func SegmentFeatures(route routing.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var (
		leg    []routing.Edge
		legIdx = -1
		pos    float64
		start  float64
	)
	flush := func() {
		if len(leg) == 0 {
			return
		}
		points := make([]geo.PointCh, 0, len(leg)+1)
		points = append(points, leg[0].FromPoint)
		for _, e := range leg {
			points = append(points, e.ToPoint)
		}
		f := geojson.NewFeature(lineOf(points))
		f.Properties["segment"] = legIdx
		f.Properties["length"] = pos - start
		fc.Append(f)
	}

	for _, e := range route.Edges() {
		// The middle of an edge lies inside exactly one leg.
		idx := route.IndexOfSegmentAt(pos + e.Length/2)
		if idx != legIdx {
			flush()
			leg, legIdx, start = nil, idx, pos
		}
		leg = append(leg, e)
		pos += e.Length
	}
	flush()
	return fc
}

// GeoJSON returns the encoded feature of route.
func GeoJSON(route routing.Route, profile *routing.ElevationProfile) ([]byte, error) {
	b, err := Feature(route, profile).MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "encode geojson")
	}
	return b, nil
}
