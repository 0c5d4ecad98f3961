package graph

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// Graph file names inside a graph directory.
const (
	nodesFile      = "nodes.bin"
	sectorsFile    = "sectors.bin"
	edgesFile      = "edges.bin"
	profileIDsFile = "profile_ids.bin"
	elevationsFile = "elevations.bin"
	attributesFile = "attributes.bin"
)

// Load maps the six graph files of dir read-only and returns the graph over
// them. Any missing, unreadable or malformed file fails the whole load.
// Call Close to release the mappings.
func Load(dir string) (*Graph, error) {
	var mapped [][]byte
	unmapAll := func() error {
		var first error
		for _, m := range mapped {
			if err := unmapFile(m); err != nil && first == nil {
				first = err
			}
		}
		mapped = nil
		return first
	}

	open := func(name string) ([]byte, error) {
		buf, err := mapFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", name)
		}
		mapped = append(mapped, buf)
		return buf, nil
	}

	var b Buffers
	targets := []struct {
		name string
		dst  *[]byte
	}{
		{nodesFile, &b.Nodes},
		{sectorsFile, &b.Sectors},
		{edgesFile, &b.Edges},
		{profileIDsFile, &b.ProfileIDs},
		{elevationsFile, &b.Elevations},
		{attributesFile, &b.Attributes},
	}
	for _, t := range targets {
		buf, err := open(t.name)
		if err != nil {
			unmapAll()
			return nil, err
		}
		*t.dst = buf
	}

	g, err := New(b)
	if err != nil {
		unmapAll()
		return nil, errors.Wrapf(err, "load %s", dir)
	}
	g.release = unmapAll
	return g, nil
}
