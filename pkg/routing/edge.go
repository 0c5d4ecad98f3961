package routing

import (
	"velo_router/pkg/geo"
	"velo_router/pkg/graph"
)

// Edge is one traversed graph edge, resolved to its end points, length and
// elevation profile.
type Edge struct {
	FromNode  uint32
	ToNode    uint32
	FromPoint geo.PointCh
	ToPoint   geo.PointCh
	Length    float64
	Profile   geo.Func
}

// EdgeOf resolves edge id of g going from node from to node to.
func EdgeOf(g *graph.Graph, id, from, to uint32) Edge {
	return Edge{
		FromNode:  from,
		ToNode:    to,
		FromPoint: g.NodePoint(from),
		ToPoint:   g.NodePoint(to),
		Length:    g.EdgeLength(id),
		Profile:   g.EdgeProfile(id),
	}
}

// PositionClosestTo returns the position along the edge's supporting line
// closest to p. It may fall before 0 or past Length.
func (e Edge) PositionClosestTo(p geo.PointCh) float64 {
	if e.FromPoint == e.ToPoint {
		return 0
	}
	return geo.ProjectionLength(e.FromPoint.E, e.FromPoint.N, e.ToPoint.E, e.ToPoint.N, p.E, p.N)
}

// PointAt returns the point at position meters from the origin, on the
// straight line between the end points.
func (e Edge) PointAt(position float64) geo.PointCh {
	if e.Length == 0 {
		return e.FromPoint
	}
	x := position / e.Length
	return geo.PointCh{
		E: geo.Interpolate(e.FromPoint.E, e.ToPoint.E, x),
		N: geo.Interpolate(e.FromPoint.N, e.ToPoint.N, x),
	}
}

// ElevationAt returns the elevation at position, NaN without a profile.
func (e Edge) ElevationAt(position float64) float64 {
	return e.Profile(position)
}
