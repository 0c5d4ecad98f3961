package routing

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/rtree"

	"velo_router/pkg/geo"
	"velo_router/pkg/graph"
)

// ErrPointTooFar is returned when the query point is too far from any road.
var ErrPointTooFar = errors.New("point too far from road")

// SnapResult represents a point snapped to a road edge.
type SnapResult struct {
	Edge       uint32
	FromNode   uint32
	ToNode     uint32
	Length     float64     // edge length in meters
	Position   float64     // meters from FromNode along the edge
	Point      geo.PointCh // snapped point
	Distance   float64     // meters from the query point to Point
	Attributes graph.AttributeSet
}

// NearestNode returns the end of the snapped edge closer to the snapped
// point, FromNode on ties.
func (r SnapResult) NearestNode() uint32 {
	if r.Position <= r.Length/2 {
		return r.FromNode
	}
	return r.ToNode
}

// Snapper finds the edge nearest to a point, using an R-tree over the
// bounding boxes of all edges.
type Snapper struct {
	g    *graph.Graph
	tree rtree.RTreeG[snapItem]
}

type snapItem struct {
	edge uint32
	from uint32
}

// NewSnapper indexes every edge of g.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}
	for u := range uint32(g.NodeCount()) {
		from := g.NodePoint(u)
		for i := range g.NodeOutDegree(u) {
			e := g.NodeOutEdgeID(u, i)
			to := g.NodePoint(g.EdgeTargetNode(e))
			s.tree.Insert(
				[2]float64{math.Min(from.E, to.E), math.Min(from.N, to.N)},
				[2]float64{math.Max(from.E, to.E), math.Max(from.N, to.N)},
				snapItem{edge: e, from: u},
			)
		}
	}
	return s
}

// Len returns the number of indexed edges.
func (s *Snapper) Len() int { return s.tree.Len() }

// Snap returns the point on the nearest edge within maxDistance meters of
// p. On equal distances the lowest edge id wins.
func (s *Snapper) Snap(p geo.PointCh, maxDistance float64) (SnapResult, error) {
	best := SnapResult{Distance: math.Inf(1)}
	s.tree.Search(
		[2]float64{p.E - maxDistance, p.N - maxDistance},
		[2]float64{p.E + maxDistance, p.N + maxDistance},
		func(_, _ [2]float64, item snapItem) bool {
			to := s.g.EdgeTargetNode(item.edge)
			e := Edge{
				FromNode:  item.from,
				ToNode:    to,
				FromPoint: s.g.NodePoint(item.from),
				ToPoint:   s.g.NodePoint(to),
				Length:    s.g.EdgeLength(item.edge),
			}
			pos := geo.Clamp(0, e.PositionClosestTo(p), e.Length)
			q := e.PointAt(pos)
			d := q.DistanceTo(p)
			if d < best.Distance || (d == best.Distance && item.edge < best.Edge) {
				best = SnapResult{
					Edge:     item.edge,
					FromNode: item.from,
					ToNode:   to,
					Length:   e.Length,
					Position: pos,
					Point:    q,
					Distance: d,
				}
			}
			return true
		},
	)

	if best.Distance > maxDistance {
		return SnapResult{}, ErrPointTooFar
	}
	best.Attributes = s.g.EdgeAttributes(best.Edge)
	return best, nil
}
