package routing

import (
	"math"
	"slices"

	"github.com/pkg/errors"

	"velo_router/pkg/check"
	"velo_router/pkg/graph"
)

// ErrNoRoute is returned when no route exists between the two points.
var ErrNoRoute = errors.New("no route found")

// Settled nodes have their distance set to this value.
var settled = float32(math.Inf(-1))

// RouteComputer finds least-cost routes in a graph. It keeps no per-query
// state, so one computer may serve concurrent queries.
type RouteComputer struct {
	g  *graph.Graph
	cf CostFunction
}

// NewRouteComputer returns a computer over g weighing edges with cf.
func NewRouteComputer(g *graph.Graph, cf CostFunction) *RouteComputer {
	return &RouteComputer{g: g, cf: cf}
}

// BestRouteBetween returns the least-cost route from start to end, using
// A* with the straight-line distance to end as heuristic. It returns
// ErrNoRoute when end is unreachable.
func (rc *RouteComputer) BestRouteBetween(start, end uint32) (Route, error) {
	if err := check.Argument(start != end, "route from node %d to itself", start); err != nil {
		return nil, err
	}
	n := uint32(rc.g.NodeCount())
	if err := check.Argument(start < n && end < n, "route %d -> %d in graph of %d nodes", start, end, n); err != nil {
		return nil, err
	}

	// via[v] is the edge that reached v at dist[v], pred[v] its origin.
	dist := make([]float32, n)
	pred := make([]uint32, n)
	via := make([]uint32, n)
	for i := range dist {
		dist[i] = float32(math.Inf(1))
		pred[i] = graph.NoNode
	}
	endPoint := rc.g.NodePoint(end)
	heuristic := func(node uint32) float32 {
		return float32(rc.g.NodePoint(node).DistanceTo(endPoint))
	}

	var pq MinHeap
	dist[start] = 0
	pq.Push(start, heuristic(start))

	for pq.Len() > 0 {
		u := pq.Pop().Node
		d := dist[u]
		if d == settled {
			continue // stale entry
		}
		if u == end {
			return rc.buildRoute(start, end, pred, via)
		}
		dist[u] = settled

		for i := range rc.g.NodeOutDegree(u) {
			e := rc.g.NodeOutEdgeID(u, i)
			v := rc.g.EdgeTargetNode(e)
			nd := d + float32(rc.g.EdgeLength(e)*rc.cf.CostFactor(u, e))
			if nd < dist[v] {
				dist[v] = nd
				pred[v] = u
				via[v] = e
				pq.Push(v, nd+heuristic(v))
			}
		}
	}
	return nil, ErrNoRoute
}

// buildRoute walks the predecessors back from end. Of parallel edges
// between two nodes it keeps the one the search settled on.
func (rc *RouteComputer) buildRoute(start, end uint32, pred, via []uint32) (Route, error) {
	var edges []Edge
	for v := end; v != start; v = pred[v] {
		edges = append(edges, EdgeOf(rc.g, via[v], pred[v], v))
	}
	slices.Reverse(edges)
	return NewSingleRoute(edges)
}
