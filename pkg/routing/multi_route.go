package routing

import (
	"slices"

	"velo_router/pkg/check"
	"velo_router/pkg/geo"
)

// MultiRoute is a route made of consecutive sub-routes, e.g. one per leg
// between two waypoints.
type MultiRoute struct {
	segments []Route
	offsets  []float64 // start position of each segment
	length   float64
}

// NewMultiRoute returns the route joining segments, which must not be
// empty. Each segment must end where the next one starts.
func NewMultiRoute(segments []Route) (*MultiRoute, error) {
	if err := check.Argument(len(segments) > 0, "multi route without segments"); err != nil {
		return nil, err
	}
	r := &MultiRoute{
		segments: slices.Clone(segments),
		offsets:  make([]float64, len(segments)),
	}
	for i, s := range segments {
		r.offsets[i] = r.length
		r.length += s.Length()
	}
	return r, nil
}

func (r *MultiRoute) IndexOfSegmentAt(position float64) int {
	pos := geo.Clamp(0, position, r.length)
	index := 0
	for _, s := range r.segments {
		if pos > s.Length() {
			index += s.IndexOfSegmentAt(s.Length()) + 1
			pos -= s.Length()
			continue
		}
		return index + s.IndexOfSegmentAt(pos)
	}
	return index
}

func (r *MultiRoute) Length() float64 { return r.length }

func (r *MultiRoute) Edges() []Edge {
	var edges []Edge
	for _, s := range r.segments {
		edges = append(edges, s.Edges()...)
	}
	return edges
}

func (r *MultiRoute) Points() []geo.PointCh {
	var points []geo.PointCh
	for i, s := range r.segments {
		p := s.Points()
		if i > 0 {
			p = p[1:]
		}
		points = append(points, p...)
	}
	return points
}

func (r *MultiRoute) PointAt(position float64) geo.PointCh {
	s, pos := r.locate(position)
	return s.PointAt(pos)
}

func (r *MultiRoute) ElevationAt(position float64) float64 {
	s, pos := r.locate(position)
	return s.ElevationAt(pos)
}

func (r *MultiRoute) NodeClosestTo(position float64) uint32 {
	s, pos := r.locate(position)
	return s.NodeClosestTo(pos)
}

func (r *MultiRoute) PointClosestTo(p geo.PointCh) RoutePoint {
	closest := NoRoutePoint
	for i, s := range r.segments {
		closest = closest.Min(s.PointClosestTo(p).WithPositionShiftedBy(r.offsets[i]))
	}
	return closest
}

// locate returns the segment holding position and the position relative to
// it. A position on the border of two segments belongs to the first one.
func (r *MultiRoute) locate(position float64) (Route, float64) {
	pos := geo.Clamp(0, position, r.length)
	for _, s := range r.segments[:len(r.segments)-1] {
		if pos <= s.Length() {
			return s, pos
		}
		pos -= s.Length()
	}
	return r.segments[len(r.segments)-1], pos
}
