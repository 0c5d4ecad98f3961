package routing

import (
	"cmp"
	"math"
	"slices"
	"testing"

	"velo_router/pkg/geo"
	"velo_router/pkg/graph"
)

var origin = geo.PointCh{E: 2_533_000, N: 1_152_000}

func at(dE, dN float64) geo.PointCh {
	return geo.PointCh{E: origin.E + dE, N: origin.N + dN}
}

type testEdge struct {
	from, to uint32
	length   float64
	attrs    graph.AttributeSet
	inverted bool
	profile  []float32
}

func both(a, b uint32, length float64) []testEdge {
	return []testEdge{{from: a, to: b, length: length}, {from: b, to: a, length: length}}
}

// ramp returns profile samples rising linearly from lo to hi over an edge
// of the given length, one sample every 2 m.
func ramp(length float64, lo, hi float32) []float32 {
	n := 1 + int(math.Ceil(length/2))
	s := make([]float32, n)
	for i := range s {
		s[i] = lo + (hi-lo)*float32(i)/float32(n-1)
	}
	return s
}

// buildGraph writes points and edges into a graph. All points must lie in
// the same sector, which holds for offsets of a few hundred meters from
// origin.
func buildGraph(t testing.TB, points []geo.PointCh, edges []testEdge) *graph.Graph {
	t.Helper()
	edges = slices.Clone(edges)
	slices.SortStableFunc(edges, func(a, b testEdge) int { return cmp.Compare(a.from, b.from) })

	w := graph.NewWriter()
	next := 0
	for id, p := range points {
		first := next
		for next < len(edges) && edges[next].from == uint32(id) {
			next++
		}
		if _, err := w.AddNode(p, next-first, uint32(first)); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}

	sets := map[graph.AttributeSet]uint16{}
	for _, e := range edges {
		idx, ok := sets[e.attrs]
		if !ok {
			var err error
			if idx, err = w.AddAttributeSet(e.attrs); err != nil {
				t.Fatal(err)
			}
			sets[e.attrs] = idx
		}
		rec := graph.EdgeRecord{Target: e.to, Inverted: e.inverted, Length: e.length, AttributesIndex: idx}
		if e.profile != nil {
			slot, err := w.AddProfile(e.profile)
			if err != nil {
				t.Fatal(err)
			}
			rec.ProfileType, rec.FirstSlot = 1, slot
		}
		if _, err := w.AddEdge(rec); err != nil {
			t.Fatalf("AddEdge(%d->%d): %v", e.from, e.to, err)
		}
	}
	if err := w.IndexSectors(); err != nil {
		t.Fatalf("IndexSectors: %v", err)
	}

	g, err := graph.New(w.Buffers())
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}

// buildTestGraph creates a small grid plus an isolated node 6.
//
//	0 ---100--- 1 ---200--- 2
//	|                       |
//	300                    400
//	|                       |
//	3 ---500--- 4 ---600--- 5        6
//
// All edges bidirectional. Lengths in meters; 0->1 climbs from 400 to 410.
func buildTestGraph(t testing.TB) *graph.Graph {
	t.Helper()
	points := []geo.PointCh{
		at(0, 0), at(100, 0), at(300, 0),
		at(0, -300), at(150, -350), at(300, -400),
		at(600, -400),
	}
	var edges []testEdge
	edges = append(edges, both(0, 1, 100)...)
	edges[0].profile = ramp(100, 400, 410)
	edges = append(edges, both(1, 2, 200)...)
	edges = append(edges, both(0, 3, 300)...)
	edges = append(edges, both(2, 5, 400)...)
	edges = append(edges, both(3, 4, 500)...)
	edges = append(edges, both(4, 5, 600)...)
	return buildGraph(t, points, edges)
}

// plainDijkstra runs standard Dijkstra on g with unit cost factors.
func plainDijkstra(g *graph.Graph, source, target uint32) float64 {
	dist := make([]float64, g.NodeCount())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	type item struct {
		node uint32
		dist float64
	}
	pq := []item{{source, 0}}

	for len(pq) > 0 {
		minIdx := 0
		for i := 1; i < len(pq); i++ {
			if pq[i].dist < pq[minIdx].dist {
				minIdx = i
			}
		}
		cur := pq[minIdx]
		pq[minIdx] = pq[len(pq)-1]
		pq = pq[:len(pq)-1]

		if cur.dist > dist[cur.node] {
			continue
		}

		for i := range g.NodeOutDegree(cur.node) {
			e := g.NodeOutEdgeID(cur.node, i)
			v := g.EdgeTargetNode(e)
			if d := cur.dist + g.EdgeLength(e); d < dist[v] {
				dist[v] = d
				pq = append(pq, item{v, d})
			}
		}
	}
	return dist[target]
}

// stubRoute is a straight route whose elevation comes from a function.
type stubRoute struct {
	length    float64
	elevation func(pos float64) float64
}

func (r stubRoute) IndexOfSegmentAt(float64) int { return 0 }
func (r stubRoute) Length() float64 { return r.length }
func (r stubRoute) Edges() []Edge { return nil }
func (r stubRoute) Points() []geo.PointCh { return nil }
func (r stubRoute) PointAt(pos float64) geo.PointCh { return at(pos, 0) }
func (r stubRoute) ElevationAt(pos float64) float64 { return r.elevation(pos) }
func (r stubRoute) NodeClosestTo(float64) uint32 { return 0 }
func (r stubRoute) PointClosestTo(geo.PointCh) RoutePoint { return NoRoutePoint }
