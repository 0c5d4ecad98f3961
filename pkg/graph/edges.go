package graph

import (
	"encoding/binary"
	"slices"

	"velo_router/pkg/fixed"
)

// Edge record: target node (inverted edges store its complement), Q12.4
// length, Q12.4 elevation gain and attribute-set index.
const (
	edgeOffsetTarget     = 0
	edgeOffsetLength     = edgeOffsetTarget + 4
	edgeOffsetGain       = edgeOffsetLength + 2
	edgeOffsetAttributes = edgeOffsetGain + 2
	edgeBytes            = edgeOffsetAttributes + 2

	profileIDBytes = 4
	elevationBytes = 2

	profileTypeStart  = 30
	profileTypeLength = 2
	firstSampleLength = 30
)

// Profile types, stored in the two high bits of a profile id.
const (
	profileNone = iota
	profileUncompressed
	profileCompressedQ44
	profileCompressedQ04
)

// Edges is a read-only view over the edges, profile ids and elevations files.
type Edges struct {
	edges      []byte
	profileIDs []byte
	elevations []byte
}

// NewEdges wraps the three buffers describing edges and their profiles.
func NewEdges(edges, profileIDs, elevations []byte) Edges {
	return Edges{edges: edges, profileIDs: profileIDs, elevations: elevations}
}

// Count returns the number of edges.
func (e Edges) Count() int {
	return len(e.edges) / edgeBytes
}

// IsInverted reports whether edge id runs against the OSM way it comes from.
func (e Edges) IsInverted(id uint32) bool {
	return e.rawTarget(id) < 0
}

// TargetNode returns the node edge id leads to.
func (e Edges) TargetNode(id uint32) uint32 {
	t := e.rawTarget(id)
	if t < 0 {
		t = ^t
	}
	return uint32(t)
}

// Length returns the length of edge id in meters.
func (e Edges) Length(id uint32) float64 {
	return fixed.AsFloat64(int32(e.lengthQ(id)))
}

// ElevationGain returns the positive elevation gain of edge id in meters.
func (e Edges) ElevationGain(id uint32) float64 {
	return fixed.AsFloat64(int32(e.uint16At(int(id)*edgeBytes + edgeOffsetGain)))
}

// AttributesIndex returns the index of the attribute set of edge id.
func (e Edges) AttributesIndex(id uint32) int {
	return int(e.uint16At(int(id)*edgeBytes + edgeOffsetAttributes))
}

// HasProfile reports whether edge id has an elevation profile.
func (e Edges) HasProfile(id uint32) bool {
	return e.profileType(id) != profileNone
}

// ProfileSamples returns the elevation samples of edge id, evenly spaced
// along the edge in its own direction, or nil when it has no profile.
func (e Edges) ProfileSamples(id uint32) []float32 {
	kind := e.profileType(id)
	if kind == profileNone {
		return nil
	}

	n := e.sampleCount(id)
	first := e.firstSlot(id)

	samples := make([]float32, n)
	samples[0] = fixed.AsFloat32(int32(e.elevation(first)))

	switch kind {
	case profileUncompressed:
		for i := 1; i < n; i++ {
			samples[i] = fixed.AsFloat32(int32(e.elevation(first + i)))
		}
	default:
		bits := 8
		if kind == profileCompressedQ04 {
			bits = 4
		}
		perSlot := 16 / bits
		k := 1
		for slot := first + 1; k < n; slot++ {
			v := int32(e.elevation(slot))
			for m := 0; m < perSlot && k < n; m++ {
				delta := fixed.MustExtractSigned(v, 16-bits*(m+1), bits)
				samples[k] = samples[k-1] + fixed.AsFloat32(delta)
				k++
			}
		}
	}

	if e.IsInverted(id) {
		slices.Reverse(samples)
	}
	return samples
}

// Profile sample spacing, 2 m in Q28.4.
const profileStepQ = 2 << 4

// sampleCount returns the number of profile samples of edge id: one every
// 2 m, both ends included.
func (e Edges) sampleCount(id uint32) int {
	return 1 + (int(e.lengthQ(id))+profileStepQ-1)/profileStepQ
}

func (e Edges) firstSlot(id uint32) int {
	return int(fixed.MustExtractUnsigned(e.profileID(id), 0, firstSampleLength))
}

// profileEnd returns one past the last elevations slot used by the profile
// of edge id, or 0 when it has none.
func (e Edges) profileEnd(id uint32) int {
	n := e.sampleCount(id)
	var slots int
	switch e.profileType(id) {
	case profileNone:
		return 0
	case profileUncompressed:
		slots = n
	case profileCompressedQ44:
		slots = 1 + (n-1+1)/2
	case profileCompressedQ04:
		slots = 1 + (n-1+3)/4
	}
	return e.firstSlot(id) + slots
}

func (e Edges) rawTarget(id uint32) int32 {
	i := int(id)*edgeBytes + edgeOffsetTarget
	return int32(binary.BigEndian.Uint32(e.edges[i : i+4]))
}

func (e Edges) lengthQ(id uint32) uint16 {
	return e.uint16At(int(id)*edgeBytes + edgeOffsetLength)
}

func (e Edges) uint16At(i int) uint16 {
	return binary.BigEndian.Uint16(e.edges[i : i+2])
}

func (e Edges) profileID(id uint32) int32 {
	i := int(id) * profileIDBytes
	return int32(binary.BigEndian.Uint32(e.profileIDs[i : i+4]))
}

func (e Edges) profileType(id uint32) int {
	return int(fixed.MustExtractUnsigned(e.profileID(id), profileTypeStart, profileTypeLength))
}

func (e Edges) elevation(slot int) uint16 {
	i := slot * elevationBytes
	return binary.BigEndian.Uint16(e.elevations[i : i+2])
}
