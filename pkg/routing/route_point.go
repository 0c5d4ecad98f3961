package routing

import (
	"math"

	"velo_router/pkg/geo"
)

// RoutePoint is the point of a route closest to some reference point.
type RoutePoint struct {
	Point               geo.PointCh
	Position            float64 // along the route, meters
	DistanceToReference float64
}

// NoRoutePoint stands for "no point": it loses every Min comparison.
var NoRoutePoint = RoutePoint{Position: math.NaN(), DistanceToReference: math.Inf(1)}

// WithPositionShiftedBy returns p moved d meters along the route.
func (p RoutePoint) WithPositionShiftedBy(d float64) RoutePoint {
	p.Position += d
	return p
}

// Min returns the point nearer to the reference, p on ties.
func (p RoutePoint) Min(that RoutePoint) RoutePoint {
	if p.DistanceToReference <= that.DistanceToReference {
		return p
	}
	return that
}
