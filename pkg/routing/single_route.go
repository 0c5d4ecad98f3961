package routing

import (
	"slices"

	"velo_router/pkg/check"
	"velo_router/pkg/geo"
)

// SingleRoute is a route made of consecutive edges.
type SingleRoute struct {
	edges []Edge
	// offsets[i] is the position of the start of edges[i]; the last entry
	// is the total length.
	offsets []float64
	points  []geo.PointCh
}

// NewSingleRoute returns the route over edges, which must not be empty.
// edges is copied.
func NewSingleRoute(edges []Edge) (*SingleRoute, error) {
	if err := check.Argument(len(edges) > 0, "single route without edges"); err != nil {
		return nil, err
	}
	r := &SingleRoute{
		edges:   slices.Clone(edges),
		offsets: make([]float64, len(edges)+1),
		points:  make([]geo.PointCh, 0, len(edges)+1),
	}
	r.points = append(r.points, edges[0].FromPoint)
	for i, e := range edges {
		r.offsets[i+1] = r.offsets[i] + e.Length
		r.points = append(r.points, e.ToPoint)
	}
	return r, nil
}

func (r *SingleRoute) IndexOfSegmentAt(float64) int { return 0 }

func (r *SingleRoute) Length() float64 { return r.offsets[len(r.offsets)-1] }

func (r *SingleRoute) Edges() []Edge { return slices.Clone(r.edges) }

func (r *SingleRoute) Points() []geo.PointCh { return slices.Clone(r.points) }

func (r *SingleRoute) PointAt(position float64) geo.PointCh {
	i, pos := r.locate(position)
	return r.edges[i].PointAt(pos)
}

func (r *SingleRoute) ElevationAt(position float64) float64 {
	i, pos := r.locate(position)
	return r.edges[i].ElevationAt(pos)
}

func (r *SingleRoute) NodeClosestTo(position float64) uint32 {
	i, pos := r.locate(position)
	e := r.edges[i]
	if pos <= e.Length-pos {
		return e.FromNode
	}
	return e.ToNode
}

func (r *SingleRoute) PointClosestTo(p geo.PointCh) RoutePoint {
	closest := NoRoutePoint
	for i, e := range r.edges {
		pos := geo.Clamp(0, e.PositionClosestTo(p), e.Length)
		q := e.PointAt(pos)
		closest = closest.Min(RoutePoint{
			Point:               q,
			Position:            r.offsets[i] + pos,
			DistanceToReference: q.DistanceTo(p),
		})
	}
	return closest
}

// locate returns the index of the edge holding position, clamped to the
// route, and the position relative to that edge. A position on the border
// of two edges belongs to the first one.
func (r *SingleRoute) locate(position float64) (int, float64) {
	pos := geo.Clamp(0, position, r.Length())
	i, found := slices.BinarySearch(r.offsets, pos)
	if !found || i > 0 {
		i--
	}
	i = max(i, 0)
	return i, pos - r.offsets[i]
}
