// Package graph reads the binary road graph: nodes, edges with their
// elevation profiles, the spatial sector index and OSM attribute sets.
// A Graph is immutable and safe for concurrent use.
package graph

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"velo_router/pkg/geo"
)

// NoNode is returned by node searches that find nothing.
const NoNode = ^uint32(0)

const attributeSetBytes = 8

// Buffers holds the raw content of the six graph files.
type Buffers struct {
	Nodes      []byte
	Sectors    []byte
	Edges      []byte
	ProfileIDs []byte
	Elevations []byte
	Attributes []byte
}

// Graph is the road network.
type Graph struct {
	nodes         Nodes
	sectors       Sectors
	edges         Edges
	attributeSets []AttributeSet

	release func() error
}

// New builds a graph over b after checking that every buffer holds whole
// records and that every id stored in a record points inside the buffer it
// refers to. The buffers are not copied and must not change afterwards.
func New(b Buffers) (*Graph, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	sets := make([]AttributeSet, len(b.Attributes)/attributeSetBytes)
	for i := range sets {
		bits := binary.BigEndian.Uint64(b.Attributes[i*attributeSetBytes:])
		s, err := NewAttributeSet(bits)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute set %d", i)
		}
		sets[i] = s
	}

	g := &Graph{
		nodes:         NewNodes(b.Nodes),
		sectors:       NewSectors(b.Sectors),
		edges:         NewEdges(b.Edges, b.ProfileIDs, b.Elevations),
		attributeSets: sets,
	}
	if err := g.checkReferences(len(b.Elevations) / elevationBytes); err != nil {
		return nil, err
	}
	return g, nil
}

// checkReferences rejects files cut at a record boundary: such a file still
// has whole records, but ids stored elsewhere point past its end.
func (g *Graph) checkReferences(elevationSlots int) error {
	nodeCount, edgeCount := uint64(g.nodes.Count()), uint64(g.edges.Count())

	for id := range uint32(nodeCount) {
		if end := uint64(g.nodes.FirstEdge(id)) + uint64(g.nodes.OutDegree(id)); end > edgeCount {
			return errors.Errorf("%s: node %d edges end at %d, beyond %d edges", nodesFile, id, end, edgeCount)
		}
	}
	for i := range SectorsPerSide * SectorsPerSide {
		s := g.sectors.sector(i)
		if end := uint64(s.StartNode) + uint64(s.EndNode-s.StartNode); end > nodeCount {
			return errors.Errorf("%s: sector %d nodes end at %d, beyond %d nodes", sectorsFile, i, end, nodeCount)
		}
	}
	for id := range uint32(edgeCount) {
		if t := g.edges.TargetNode(id); uint64(t) >= nodeCount {
			return errors.Errorf("%s: edge %d targets node %d of %d", edgesFile, id, t, nodeCount)
		}
		if a := g.edges.AttributesIndex(id); a >= len(g.attributeSets) {
			return errors.Errorf("%s: edge %d uses attribute set %d of %d", edgesFile, id, a, len(g.attributeSets))
		}
		if end := g.edges.profileEnd(id); end > elevationSlots {
			return errors.Errorf("%s: edge %d profile ends at slot %d, beyond %d", elevationsFile, id, end, elevationSlots)
		}
	}
	return nil
}

func (b Buffers) validate() error {
	sizes := []struct {
		name   string
		buf    []byte
		record int
	}{
		{nodesFile, b.Nodes, nodeBytes},
		{edgesFile, b.Edges, edgeBytes},
		{profileIDsFile, b.ProfileIDs, profileIDBytes},
		{elevationsFile, b.Elevations, elevationBytes},
		{attributesFile, b.Attributes, attributeSetBytes},
	}
	for _, s := range sizes {
		if len(s.buf)%s.record != 0 {
			return errors.Errorf("%s: size %d is not a multiple of %d", s.name, len(s.buf), s.record)
		}
	}
	if len(b.Sectors) != sectorsSize {
		return errors.Errorf("%s: size %d, want %d", sectorsFile, len(b.Sectors), sectorsSize)
	}
	if len(b.ProfileIDs)/profileIDBytes != len(b.Edges)/edgeBytes {
		return errors.Errorf("%s: %d profile ids for %d edges", profileIDsFile,
			len(b.ProfileIDs)/profileIDBytes, len(b.Edges)/edgeBytes)
	}
	return nil
}

// Close releases the memory mappings of a loaded graph. The graph must not
// be used afterwards. Closing a graph built with New is a no-op.
func (g *Graph) Close() error {
	if g.release == nil {
		return nil
	}
	err := g.release()
	g.release = nil
	return err
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return g.nodes.Count() }

// NodePoint returns the position of node id.
func (g *Graph) NodePoint(id uint32) geo.PointCh {
	return geo.PointCh{E: g.nodes.E(id), N: g.nodes.N(id)}
}

// NodeOutDegree returns the number of edges leaving node id.
func (g *Graph) NodeOutDegree(id uint32) int { return g.nodes.OutDegree(id) }

// NodeOutEdgeID returns the id of the index-th edge leaving node id.
func (g *Graph) NodeOutEdgeID(id uint32, index int) uint32 { return g.nodes.EdgeID(id, index) }

// NodeClosestTo returns the node nearest to p within maxDistance meters, or
// NoNode when there is none, maxDistance is negative or p lies outside the
// bounds. On equal distances the first node scanned wins.
func (g *Graph) NodeClosestTo(p geo.PointCh, maxDistance float64) uint32 {
	if maxDistance < 0 {
		return NoNode
	}
	sectors, err := g.sectors.SectorsInArea(p, maxDistance)
	if err != nil {
		return NoNode
	}
	best := NoNode
	bestDist := maxDistance * maxDistance
	for _, s := range sectors {
		for id := s.StartNode; id < s.EndNode; id++ {
			if d := g.NodePoint(id).SquaredDistanceTo(p); d < bestDist {
				best, bestDist = id, d
			}
		}
	}
	return best
}

// SectorsInArea exposes the sector index; see Sectors.SectorsInArea.
func (g *Graph) SectorsInArea(center geo.PointCh, distance float64) ([]Sector, error) {
	return g.sectors.SectorsInArea(center, distance)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges.Count() }

// EdgeTargetNode returns the node edge id leads to.
func (g *Graph) EdgeTargetNode(id uint32) uint32 { return g.edges.TargetNode(id) }

// EdgeIsInverted reports whether edge id runs against its OSM way.
func (g *Graph) EdgeIsInverted(id uint32) bool { return g.edges.IsInverted(id) }

// EdgeAttributes returns the OSM attributes of edge id.
func (g *Graph) EdgeAttributes(id uint32) AttributeSet {
	return g.attributeSets[g.edges.AttributesIndex(id)]
}

// EdgeLength returns the length of edge id in meters.
func (g *Graph) EdgeLength(id uint32) float64 { return g.edges.Length(id) }

// EdgeElevationGain returns the positive elevation gain of edge id.
func (g *Graph) EdgeElevationGain(id uint32) float64 { return g.edges.ElevationGain(id) }

// EdgeHasProfile reports whether edge id has an elevation profile.
func (g *Graph) EdgeHasProfile(id uint32) bool { return g.edges.HasProfile(id) }

// EdgeProfileSamples returns the profile samples of edge id, nil if none.
func (g *Graph) EdgeProfileSamples(id uint32) []float32 { return g.edges.ProfileSamples(id) }

// EdgeProfile returns the elevation along edge id as a function of the
// position on the edge. Without a profile the function is always NaN.
func (g *Graph) EdgeProfile(id uint32) geo.Func {
	samples := g.edges.ProfileSamples(id)
	switch len(samples) {
	case 0:
		return geo.Constant(math.NaN())
	case 1:
		return geo.Constant(float64(samples[0]))
	}
	f, err := geo.Sampled(samples, g.edges.Length(id))
	if err != nil {
		return geo.Constant(float64(samples[0]))
	}
	return f
}
