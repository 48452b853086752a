package reader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/PcieExplioter/vigilant-disco/asset"
	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
	"github.com/PcieExplioter/vigilant-disco/scene/writer"
)

type cacheReader struct {
	logger log.Logger
}

// Create a new BVH cache reader.
func newCacheReader() *cacheReader {
	return &cacheReader{
		logger: log.New("cache reader"),
	}
}

// Read a BVH cache produced by writer.WriteBVHCache. Returns one tree root
// per mesh together with the triangle counts declared in the header. The
// counts are informational; callers verify them against the extracted leaf
// triangles.
func ReadBVHCache(filename string) ([]*scene.BvhNode, []uint64, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, nil, err
	}
	defer res.Close()

	return newCacheReader().Read(res)
}

// Read the cache format from a resource.
func (r *cacheReader) Read(res *asset.Resource) ([]*scene.BvhNode, []uint64, error) {
	r.logger.Noticef(`parsing BVH cache from "%s"`, res.Path())
	start := time.Now()

	br := bufio.NewReader(res)

	var version uint32
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, nil, fmt.Errorf("cacheReader: failed to read version: %s", err.Error())
	}
	if version != writer.CacheVersion {
		return nil, nil, fmt.Errorf("cacheReader: version mismatch (expected %d; got %d)", writer.CacheVersion, version)
	}

	var numMeshes uint64
	if err := binary.Read(br, binary.LittleEndian, &numMeshes); err != nil {
		return nil, nil, fmt.Errorf("cacheReader: failed to read mesh count: %s", err.Error())
	}
	if numMeshes == 0 {
		return nil, nil, fmt.Errorf("cacheReader: cache contains 0 meshes")
	}

	counts := make([]uint64, numMeshes)
	for i := range counts {
		if err := binary.Read(br, binary.LittleEndian, &counts[i]); err != nil {
			return nil, nil, fmt.Errorf("cacheReader: failed to read triangle count %d: %s", i, err.Error())
		}
	}

	roots := make([]*scene.BvhNode, 0, numMeshes)
	for i := uint64(0); i < numMeshes; i++ {
		root, err := deserializeNode(br)
		if err != nil {
			return nil, nil, fmt.Errorf("cacheReader: failed to deserialize tree %d: %s", i, err.Error())
		}
		if root == nil {
			return nil, nil, fmt.Errorf("cacheReader: tree %d is null", i)
		}
		roots = append(roots, root)
	}

	r.logger.Noticef("parsed %d BVH trees in %d ms", len(roots), time.Since(start).Nanoseconds()/1e6)
	return roots, counts, nil
}

// Deserialize a preorder-serialized subtree.
func deserializeNode(in io.Reader) (*scene.BvhNode, error) {
	isNull, err := readBool(in)
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}

	node := &scene.BvhNode{}
	if err = binary.Read(in, binary.LittleEndian, &node.Bounds.Min); err != nil {
		return nil, err
	}
	if err = binary.Read(in, binary.LittleEndian, &node.Bounds.Max); err != nil {
		return nil, err
	}

	isLeaf, err := readBool(in)
	if err != nil {
		return nil, err
	}

	if isLeaf {
		var numTris uint64
		if err = binary.Read(in, binary.LittleEndian, &numTris); err != nil {
			return nil, err
		}
		node.Triangles = make(scene.Mesh, numTris)
		for i := uint64(0); i < numTris; i++ {
			if err = binary.Read(in, binary.LittleEndian, &node.Triangles[i]); err != nil {
				return nil, err
			}
		}
		return node, nil
	}

	if node.Left, err = deserializeNode(in); err != nil {
		return nil, err
	}
	if node.Right, err = deserializeNode(in); err != nil {
		return nil, err
	}
	return node, nil
}

// Read a bool serialized as a single byte. Only 0 and 1 are well-formed.
func readBool(in io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(in, b[:]); err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool marker 0x%02x", b[0])
	}
}
