package graph

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte // max rank stays ~30 for realistic graphs
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	for i := range n {
		parent[i] = i
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	// Union by rank.
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Components labels every node with the representative of its weakly
// connected component, treating edges as undirected. Two nodes can only be
// joined by a route if their labels are equal.
func Components(g *Graph) []uint32 {
	n := uint32(g.NodeCount())
	if n == 0 {
		return nil
	}

	uf := NewUnionFind(n)
	for u := range n {
		for i := range g.NodeOutDegree(u) {
			uf.Union(u, g.EdgeTargetNode(g.NodeOutEdgeID(u, i)))
		}
	}

	labels := make([]uint32, n)
	for u := range n {
		labels[u] = uf.Find(u)
	}
	return labels
}

// ComponentCount returns the number of distinct labels in labels.
func ComponentCount(labels []uint32) int {
	count := 0
	for u, l := range labels {
		if uint32(u) == l {
			count++
		}
	}
	return count
}

// LargestComponentSize returns the node count of the largest component.
func LargestComponentSize(labels []uint32) int {
	sizes := make(map[uint32]int)
	best := 0
	for _, l := range labels {
		sizes[l]++
		best = max(best, sizes[l])
	}
	return best
}
