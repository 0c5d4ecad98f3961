package api

import (
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
)

// RouteRequest is the JSON body for POST /api/v1/route and
// POST /api/v1/route.gpx.
type RouteRequest struct {
	Waypoints []LatLngJSON `json:"waypoints"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	TotalLengthMeters float64           `json:"total_length_meters"`
	Geometry          *geojson.Geometry `json:"geometry"`
	Profile           ProfileJSON       `json:"profile"`
	Segments          []SegmentJSON     `json:"segments"`
}

// ProfileJSON is the elevation profile of a route. Samples are evenly spaced
// StepMeters apart.
type ProfileJSON struct {
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Ascent     float64   `json:"ascent"`
	Descent    float64   `json:"descent"`
	StepMeters float64   `json:"step_meters"`
	Samples    []float32 `json:"samples"`
}

// SegmentJSON is one leg of the route, between two consecutive waypoints.
type SegmentJSON struct {
	LengthMeters float64      `json:"length_meters"`
	Geometry     []LatLngJSON `json:"geometry"`
}

// SnapResponse is the JSON response for POST /api/v1/snap.
type SnapResponse struct {
	Node           uint32     `json:"node"`
	Edge           uint32     `json:"edge"`
	Point          LatLngJSON `json:"point"`
	PositionMeters float64    `json:"position_meters"`
	DistanceMeters float64    `json:"distance_meters"`
	Tags           osm.Tags   `json:"tags"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes         int `json:"num_nodes"`
	NumEdges         int `json:"num_edges"`
	NumComponents    int `json:"num_components"`
	LargestComponent int `json:"largest_component"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
