package routing

import "velo_router/pkg/geo"

// Route is a path through the graph addressed by position, the distance in
// meters from its start. Positions outside [0, Length] are clamped.
// Routes are immutable and safe for concurrent use.
type Route interface {
	// IndexOfSegmentAt returns the index of the innermost single route
	// covering position. A single route has one segment, index 0.
	IndexOfSegmentAt(position float64) int
	Length() float64
	Edges() []Edge
	// Points returns the end points of the edges in order, shared points
	// once.
	Points() []geo.PointCh
	PointAt(position float64) geo.PointCh
	// ElevationAt returns NaN where the edge at position has no profile.
	ElevationAt(position float64) float64
	// NodeClosestTo returns the end of the edge at position nearer to it,
	// the origin on ties.
	NodeClosestTo(position float64) uint32
	PointClosestTo(p geo.PointCh) RoutePoint
}
