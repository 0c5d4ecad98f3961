package graph

import (
	"encoding/binary"

	"velo_router/pkg/fixed"
)

// Node record: Q28.4 east, Q28.4 north, then out-degree (bits 28-31) and
// first out-edge id (bits 0-27) packed in one word.
const (
	nodeOffsetE     = 0
	nodeOffsetN     = nodeOffsetE + 4
	nodeOffsetEdges = nodeOffsetN + 4
	nodeBytes       = nodeOffsetEdges + 4

	outDegreeStart  = 28
	outDegreeLength = 4
	firstEdgeLength = 28
)

// Nodes is a read-only view over the nodes file.
type Nodes struct {
	buf []byte
}

// NewNodes wraps buf, which must hold whole node records.
func NewNodes(buf []byte) Nodes { return Nodes{buf: buf} }

// Count returns the number of nodes.
func (n Nodes) Count() int {
	return len(n.buf) / nodeBytes
}

// E returns the east coordinate of node id, in meters.
func (n Nodes) E(id uint32) float64 {
	return fixed.AsFloat64(n.word(id, nodeOffsetE))
}

// N returns the north coordinate of node id, in meters.
func (n Nodes) N(id uint32) float64 {
	return fixed.AsFloat64(n.word(id, nodeOffsetN))
}

// OutDegree returns the number of edges leaving node id.
func (n Nodes) OutDegree(id uint32) int {
	return int(fixed.MustExtractUnsigned(n.word(id, nodeOffsetEdges), outDegreeStart, outDegreeLength))
}

// EdgeID returns the id of the index-th edge leaving node id. Out-edges of
// a node are stored contiguously.
func (n Nodes) EdgeID(id uint32, index int) uint32 {
	return n.FirstEdge(id) + uint32(index)
}

// FirstEdge returns the id of the first edge leaving node id.
func (n Nodes) FirstEdge(id uint32) uint32 {
	return uint32(fixed.MustExtractUnsigned(n.word(id, nodeOffsetEdges), 0, firstEdgeLength))
}

func (n Nodes) word(id uint32, offset int) int32 {
	i := int(id)*nodeBytes + offset
	return int32(binary.BigEndian.Uint32(n.buf[i : i+4]))
}
