package graph

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"velo_router/pkg/check"
	"velo_router/pkg/geo"
)

const (
	maxOutDegree = 1<<outDegreeLength - 1
	maxFirstEdge = 1<<firstEdgeLength - 1
	maxQ12_4     = math.MaxUint16
	maxFirstSlot = 1<<firstSampleLength - 1
)

// EdgeRecord describes one edge for Writer.AddEdge.
type EdgeRecord struct {
	Target          uint32
	Inverted        bool
	Length          float64 // meters, rounded to 1/16
	ElevationGain   float64 // meters, rounded to 1/16
	AttributesIndex uint16

	// ProfileType is 0 (none), 1 (absolute samples), 2 (8-bit deltas) or
	// 3 (4-bit deltas); FirstSlot is the elevations slot of the first sample.
	ProfileType int
	FirstSlot   uint32
}

// Writer assembles graph files record by record. It is used to repack
// graphs and to build fixtures; the query path only reads.
type Writer struct {
	nodes      []byte
	sectors    []byte
	edges      []byte
	profileIDs []byte
	elevations []byte
	attributes []byte
}

// NewWriter returns a writer with an empty sector index.
func NewWriter() *Writer {
	return &Writer{sectors: make([]byte, sectorsSize)}
}

// AddNode appends a node at p whose outDegree out-edges start at
// firstEdge, and returns its id.
func (w *Writer) AddNode(p geo.PointCh, outDegree int, firstEdge uint32) (uint32, error) {
	if err := check.Argument(outDegree >= 0 && outDegree <= maxOutDegree && firstEdge <= maxFirstEdge,
		"node out-degree %d first edge %d", outDegree, firstEdge); err != nil {
		return 0, err
	}
	id := uint32(len(w.nodes) / nodeBytes)
	w.nodes = binary.BigEndian.AppendUint32(w.nodes, uint32(toQ28_4(p.E)))
	w.nodes = binary.BigEndian.AppendUint32(w.nodes, uint32(toQ28_4(p.N)))
	w.nodes = binary.BigEndian.AppendUint32(w.nodes, uint32(outDegree)<<outDegreeStart|firstEdge)
	return id, nil
}

// AddEdge appends an edge and its profile id, and returns the edge id.
func (w *Writer) AddEdge(e EdgeRecord) (uint32, error) {
	length, gain := toQ28_4(e.Length), toQ28_4(e.ElevationGain)
	if err := check.Argument(length >= 0 && length <= maxQ12_4 && gain >= 0 && gain <= maxQ12_4,
		"edge length %f gain %f", e.Length, e.ElevationGain); err != nil {
		return 0, err
	}
	if err := check.Argument(e.Target <= math.MaxInt32, "edge target %d", e.Target); err != nil {
		return 0, err
	}
	if err := check.Argument(e.ProfileType >= profileNone && e.ProfileType <= profileCompressedQ04 && e.FirstSlot <= maxFirstSlot,
		"profile type %d first slot %d", e.ProfileType, e.FirstSlot); err != nil {
		return 0, err
	}

	id := uint32(len(w.edges) / edgeBytes)
	target := int32(e.Target)
	if e.Inverted {
		target = ^target
	}
	w.edges = binary.BigEndian.AppendUint32(w.edges, uint32(target))
	w.edges = binary.BigEndian.AppendUint16(w.edges, uint16(length))
	w.edges = binary.BigEndian.AppendUint16(w.edges, uint16(gain))
	w.edges = binary.BigEndian.AppendUint16(w.edges, e.AttributesIndex)
	w.profileIDs = binary.BigEndian.AppendUint32(w.profileIDs, uint32(e.ProfileType)<<profileTypeStart|e.FirstSlot)
	return id, nil
}

// AddElevations appends raw elevation slots and returns the index of the
// first one.
func (w *Writer) AddElevations(slots ...uint16) uint32 {
	first := uint32(len(w.elevations) / elevationBytes)
	for _, s := range slots {
		w.elevations = binary.BigEndian.AppendUint16(w.elevations, s)
	}
	return first
}

// AddProfile appends samples as an uncompressed profile and returns the
// first slot, to be used with ProfileType 1.
func (w *Writer) AddProfile(samples []float32) (uint32, error) {
	slots := make([]uint16, len(samples))
	for i, s := range samples {
		q := toQ28_4(float64(s))
		if err := check.Argument(q >= 0 && q <= maxQ12_4, "elevation %f", s); err != nil {
			return 0, err
		}
		slots[i] = uint16(q)
	}
	return w.AddElevations(slots...), nil
}

// AddAttributeSet appends s and returns its index.
func (w *Writer) AddAttributeSet(s AttributeSet) (uint16, error) {
	index := len(w.attributes) / attributeSetBytes
	if err := check.Argument(index <= math.MaxUint16, "attribute set table full"); err != nil {
		return 0, err
	}
	w.attributes = binary.BigEndian.AppendUint64(w.attributes, uint64(s))
	return uint16(index), nil
}

// SetSector records that the cell at index holds count nodes from start.
func (w *Writer) SetSector(index int, start uint32, count uint16) error {
	if err := check.Argument(index >= 0 && index < SectorsPerSide*SectorsPerSide, "sector index %d", index); err != nil {
		return err
	}
	i := index * sectorBytes
	binary.BigEndian.PutUint32(w.sectors[i:], start)
	binary.BigEndian.PutUint16(w.sectors[i+4:], count)
	return nil
}

// IndexSectors fills the sector index from the node positions added so far.
// Nodes must already be ordered by cell, row-major.
func (w *Writer) IndexSectors() error {
	nodes := NewNodes(w.nodes)
	clear(w.sectors)

	prev := -1
	var start uint32
	for id := range uint32(nodes.Count()) {
		e, n := nodes.E(id), nodes.N(id)
		if !geo.ContainsEN(e, n) {
			return errors.Wrapf(check.ErrInvalidArgument, "node %d outside bounds", id)
		}
		cell := cellIndex(n, geo.MinN, geo.MaxN, sectorHeight)*SectorsPerSide +
			cellIndex(e, geo.MinE, geo.MaxE, sectorWidth)
		if cell < prev {
			return errors.Wrapf(check.ErrInvalidArgument, "node %d is in sector %d after sector %d", id, cell, prev)
		}
		if cell != prev {
			if prev >= 0 {
				if err := w.setSectorRange(prev, start, id); err != nil {
					return err
				}
			}
			prev, start = cell, id
		}
	}
	if prev >= 0 {
		return w.setSectorRange(prev, start, uint32(nodes.Count()))
	}
	return nil
}

func (w *Writer) setSectorRange(cell int, start, end uint32) error {
	if err := check.Argument(end-start <= math.MaxUint16, "sector %d holds %d nodes", cell, end-start); err != nil {
		return err
	}
	return w.SetSector(cell, start, uint16(end-start))
}

// Buffers returns the assembled files. The slices alias the writer.
func (w *Writer) Buffers() Buffers {
	return Buffers{
		Nodes:      w.nodes,
		Sectors:    w.sectors,
		Edges:      w.edges,
		ProfileIDs: w.profileIDs,
		Elevations: w.elevations,
		Attributes: w.attributes,
	}
}

// WriteDir writes the six graph files into dir, each through a temporary
// file renamed into place.
func (w *Writer) WriteDir(dir string) error {
	b := w.Buffers()
	if err := b.validate(); err != nil {
		return err
	}
	files := []struct {
		name string
		data []byte
	}{
		{nodesFile, b.Nodes},
		{sectorsFile, b.Sectors},
		{edgesFile, b.Edges},
		{profileIDsFile, b.ProfileIDs},
		{elevationsFile, b.Elevations},
		{attributesFile, b.Attributes},
	}
	for _, f := range files {
		if err := writeFileAtomic(filepath.Join(dir, f.name), f.data); err != nil {
			return errors.Wrapf(err, "write %s", f.name)
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "write")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrap(os.Rename(tmpPath, path), "rename")
}

func toQ28_4(v float64) int64 {
	return int64(math.Round(math.Ldexp(v, 4)))
}
