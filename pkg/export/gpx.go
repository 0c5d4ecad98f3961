// Package export encodes planned routes as GPX and GeoJSON documents.
package export

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/tkrajina/gpxgo/gpx"

	"velo_router/pkg/routing"
)

// Creator is written to the creator attribute of GPX documents.
const Creator = "velo_router"

// RouteName names exported GPX documents and their single route.
const RouteName = "velo_router route"

// NewGPX returns a GPX document holding one route with a point per route
// point. Each point carries the profile elevation at its position along the
// route; points where the elevation is unknown carry none.
func NewGPX(route routing.Route, profile *routing.ElevationProfile) *gpx.GPX {
	rte := gpx.GPXRoute{Name: RouteName}

	pos := 0.0
	edges := route.Edges()
	for i, p := range route.Points() {
		if i > 0 {
			pos += edges[i-1].Length
		}
		lon, lat := p.Degrees()
		pt := gpx.GPXPoint{Point: gpx.Point{Latitude: lat, Longitude: lon}}
		if elevation := elevationAt(route, profile, pos); !math.IsNaN(elevation) {
			pt.Elevation.SetValue(elevation)
		}
		rte.Points = append(rte.Points, pt)
	}

	return &gpx.GPX{
		Version: "1.1",
		Creator: Creator,
		Name:    RouteName,
		Routes:  []gpx.GPXRoute{rte},
	}
}

func elevationAt(route routing.Route, profile *routing.ElevationProfile, pos float64) float64 {
	if profile != nil {
		return profile.ElevationAt(pos)
	}
	return route.ElevationAt(pos)
}

// GPX returns the indented GPX 1.1 encoding of route.
func GPX(route routing.Route, profile *routing.ElevationProfile) ([]byte, error) {
	b, err := NewGPX(route, profile).ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, errors.Wrap(err, "encode gpx")
	}
	return b, nil
}

// WriteGPX writes the GPX encoding of route to w.
func WriteGPX(w io.Writer, route routing.Route, profile *routing.ElevationProfile) error {
	b, err := GPX(route, profile)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "write gpx")
	}
	return nil
}
