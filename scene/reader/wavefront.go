package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PcieExplioter/vigilant-disco/asset"
	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
	"github.com/PcieExplioter/vigilant-disco/types"
)

// A minimal wavefront obj reader. Only the geometry statements are handled;
// materials, texture coords and normals are ignored since the visibility
// engine consumes bare triangles.
type wavefrontReader struct {
	logger log.Logger

	// List of parsed vertices.
	vertexList []types.Vec3

	// Parsed meshes; one per 'g'/'o' statement.
	meshes []scene.Mesh
}

// Create a new wavefront geometry reader.
func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger:     log.New("wavefront reader"),
		vertexList: make([]types.Vec3, 0),
		meshes:     make([]scene.Mesh, 0),
	}
}

// Read mesh geometry from a wavefront obj stream.
func (r *wavefrontReader) Read(res *asset.Resource) ([]scene.Mesh, error) {
	r.logger.Noticef(`parsing geometry from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	var numTris int
	for _, mesh := range r.meshes {
		numTris += len(mesh)
	}
	r.logger.Noticef("parsed %d meshes (%d triangles) in %d ms", len(r.meshes), numTris, time.Since(start).Nanoseconds()/1e6)
	return r.meshes, nil
}

// Parse the wavefront object statements.
func (r *wavefrontReader) parse(res *asset.Resource) error {
	var lineNum int

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 {
			continue
		}

		switch lineTokens[0] {
		case "#":
			continue
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, "unsupported syntax for '%s'; expected 1 argument for object name; got %d", lineTokens[0], len(lineTokens)-1)
			}
			r.meshes = append(r.meshes, make(scene.Mesh, 0))
		case "f":
			tri, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}

			// If no object has been defined create a default one
			if len(r.meshes) == 0 {
				r.meshes = append(r.meshes, make(scene.Mesh, 0))
			}

			meshIndex := len(r.meshes) - 1
			r.meshes[meshIndex] = append(r.meshes[meshIndex], tri)
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}
	return nil
}

// Parse a face definition into a triangle. Each of the 3 vertex arguments
// may use any of the vertexIndex[/uvIndex][/normalIndex] forms; only the
// vertex index is kept. Indices start from 1 and may be negative to indicate
// an offset off the end of the vertex list.
//
// This method only works with triangular faces and will return an error if a
// face with more than 3 vertices is encountered.
func (r *wavefrontReader) parseFace(lineTokens []string) (scene.Triangle, error) {
	var tri scene.Triangle
	if len(lineTokens) != 4 {
		return tri, fmt.Errorf("unsupported syntax for 'f'; expected 3 arguments for triangular face; got %d. Select the triangulation option in your exporter.", len(lineTokens)-1)
	}

	var vertices [3]types.Vec3
	for arg := 0; arg < 3; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return tri, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return tri, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]
	}

	tri.V0, tri.V1, tri.V2 = vertices[0], vertices[1], vertices[2]
	return tri, nil
}

// Generate an error message that includes the parse position.
func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return fmt.Errorf("[%s: %d] error: %s", file, line, msg)
}

// Convert a 1-based, possibly negative face coord index to a list offset.
func selectFaceCoordIndex(indexToken string, listSize int) (int, error) {
	index, err := strconv.Atoi(indexToken)
	if err != nil {
		return 0, err
	}

	var offset int
	if index < 0 {
		offset = listSize + index
	} else {
		offset = index - 1
	}

	if offset < 0 || offset >= listSize {
		return 0, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// Parse a Vec3 from the arguments of a statement.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var out types.Vec3
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(lineTokens[i+1], 32)
		if err != nil {
			return types.Vec3{}, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
