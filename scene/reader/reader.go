// Package reader parses the geometry sources the visibility engine
// understands: wavefront .obj files, the raw binary .opt format and the
// binary BVH cache format. Sources are opened through asset.Resource and may
// therefore also be http/https URLs.
package reader

import (
	"fmt"
	"strings"

	"github.com/PcieExplioter/vigilant-disco/asset"
	"github.com/PcieExplioter/vigilant-disco/scene"
)

// The Reader interface is implemented by all geometry readers.
type Reader interface {
	// Read mesh geometry from a resource.
	Read(*asset.Resource) ([]scene.Mesh, error)
}

// Read mesh geometry from a file or URL. The reader is selected based on the
// file extension.
func ReadGeometry(filename string) ([]scene.Mesh, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var reader Reader
	if strings.HasSuffix(filename, ".obj") {
		reader = newWavefrontReader()
	} else if strings.HasSuffix(filename, ".opt") {
		reader = newOptReader()
	} else {
		return nil, fmt.Errorf("readGeometry: unsupported file format")
	}
	return reader.Read(res)
}
