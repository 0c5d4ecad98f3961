package graph

import (
	"encoding/binary"

	"velo_router/pkg/check"
	"velo_router/pkg/geo"
)

// The bounded region is split in a SectorsPerSide×SectorsPerSide grid,
// stored row by row from the south-west corner.
const (
	SectorsPerSide = 128
	sectorBytes    = 6
	sectorsSize    = SectorsPerSide * SectorsPerSide * sectorBytes

	sectorWidth  = geo.Width / SectorsPerSide
	sectorHeight = geo.Height / SectorsPerSide
)

// Sector is the range [StartNode, EndNode) of the nodes lying in one cell.
type Sector struct {
	StartNode uint32
	EndNode   uint32
}

// Sectors is a read-only view over the sectors file.
type Sectors struct {
	buf []byte
}

// NewSectors wraps buf, which must hold exactly SectorsPerSide² records.
func NewSectors(buf []byte) Sectors { return Sectors{buf: buf} }

// SectorsInArea returns every sector whose cell touches the square of
// half-side distance centered on center, in row-major order. The square is
// clamped to the bounded region first. A negative distance may leave no
// sector at all.
func (s Sectors) SectorsInArea(center geo.PointCh, distance float64) ([]Sector, error) {
	if err := check.Argument(geo.ContainsEN(center.E, center.N), "sector query center %v outside bounds", center); err != nil {
		return nil, err
	}

	xMin := cellIndex(center.E-distance, geo.MinE, geo.MaxE, sectorWidth)
	xMax := cellIndex(center.E+distance, geo.MinE, geo.MaxE, sectorWidth)
	yMin := cellIndex(center.N-distance, geo.MinN, geo.MaxN, sectorHeight)
	yMax := cellIndex(center.N+distance, geo.MinN, geo.MaxN, sectorHeight)

	if xMax < xMin || yMax < yMin {
		return []Sector{}, nil
	}
	sectors := make([]Sector, 0, (xMax-xMin+1)*(yMax-yMin+1))
	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			sectors = append(sectors, s.sector(y*SectorsPerSide+x))
		}
	}
	return sectors, nil
}

func (s Sectors) sector(index int) Sector {
	i := index * sectorBytes
	start := binary.BigEndian.Uint32(s.buf[i : i+4])
	count := binary.BigEndian.Uint16(s.buf[i+4 : i+6])
	return Sector{StartNode: start, EndNode: start + uint32(count)}
}

// cellIndex maps a coordinate to its grid cell. The max border belongs to
// the last cell.
func cellIndex(v, lo, hi, size float64) int {
	c := int((geo.Clamp(lo, v, hi) - lo) / size)
	return geo.ClampInt(0, c, SectorsPerSide-1)
}
