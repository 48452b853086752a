package reader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/PcieExplioter/vigilant-disco/asset"
	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
)

type optReader struct {
	logger log.Logger
}

// Create a new .opt geometry reader.
func newOptReader() *optReader {
	return &optReader{
		logger: log.New("opt reader"),
	}
}

// Read mesh geometry from the raw .opt binary format. Short reads and
// malformed counts surface as errors; a partially parsed mesh list is never
// returned.
func (r *optReader) Read(res *asset.Resource) ([]scene.Mesh, error) {
	r.logger.Noticef(`parsing geometry from "%s"`, res.Path())
	start := time.Now()

	br := bufio.NewReader(res)

	var numMeshes uint64
	if err := binary.Read(br, binary.LittleEndian, &numMeshes); err != nil {
		return nil, fmt.Errorf("optReader: failed to read mesh count: %s", err.Error())
	}
	if numMeshes == 0 {
		return nil, fmt.Errorf("optReader: file contains 0 meshes")
	}

	// Counts come from the file, so slices grow as records are read instead
	// of being preallocated; an oversized count ends in a short read error.
	meshes := make([]scene.Mesh, 0)
	for i := uint64(0); i < numMeshes; i++ {
		var numTris uint64
		if err := binary.Read(br, binary.LittleEndian, &numTris); err != nil {
			return nil, fmt.Errorf("optReader: failed to read triangle count for mesh %d: %s", i, err.Error())
		}

		mesh := make(scene.Mesh, 0)
		for j := uint64(0); j < numTris; j++ {
			var tri scene.Triangle
			if err := binary.Read(br, binary.LittleEndian, &tri); err != nil {
				return nil, fmt.Errorf("optReader: failed to read triangle %d of mesh %d: %s", j, i, err.Error())
			}
			mesh = append(mesh, tri)
		}
		meshes = append(meshes, mesh)
	}

	r.logger.Noticef("parsed %d meshes in %d ms", len(meshes), time.Since(start).Nanoseconds()/1e6)
	return meshes, nil
}
