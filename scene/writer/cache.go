package writer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
)

// Version tag of the BVH cache format. Readers refuse any other value.
const CacheVersion uint32 = 1

type cacheWriter struct {
	logger   log.Logger
	filename string
}

// Create a new BVH cache writer.
func newCacheWriter(filename string) *cacheWriter {
	return &cacheWriter{
		logger:   log.New("cache writer"),
		filename: filename,
	}
}

// Write the BVH cache format:
//
//	uint32 version
//	uint64 numMeshes
//	numMeshes x uint64 triangle counts
//	per mesh: preorder-serialized tree
//
// Each tree node is serialized as a null marker byte, bounds min/max, a leaf
// marker byte and either the inline leaf triangles or the two child
// subtrees.
func (w *cacheWriter) Write(meshes []scene.Mesh, roots []*scene.BvhNode) error {
	if len(meshes) != len(roots) {
		return fmt.Errorf("cacheWriter: mesh count %d does not match tree count %d", len(meshes), len(roots))
	}

	w.logger.Noticef(`writing BVH cache for %d meshes to "%s"`, len(meshes), w.filename)
	start := time.Now()

	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("cacheWriter: %s", err.Error())
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err = binary.Write(bw, binary.LittleEndian, CacheVersion); err != nil {
		return fmt.Errorf("cacheWriter: %s", err.Error())
	}
	if err = binary.Write(bw, binary.LittleEndian, uint64(len(meshes))); err != nil {
		return fmt.Errorf("cacheWriter: %s", err.Error())
	}
	for _, mesh := range meshes {
		if err = binary.Write(bw, binary.LittleEndian, uint64(len(mesh))); err != nil {
			return fmt.Errorf("cacheWriter: %s", err.Error())
		}
	}

	for _, root := range roots {
		if err = serializeNode(bw, root); err != nil {
			return fmt.Errorf("cacheWriter: %s", err.Error())
		}
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("cacheWriter: %s", err.Error())
	}

	w.logger.Noticef("wrote BVH cache in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Serialize a subtree in preorder.
func serializeNode(out io.Writer, node *scene.BvhNode) error {
	if node == nil {
		return writeBool(out, true)
	}
	if err := writeBool(out, false); err != nil {
		return err
	}

	if err := binary.Write(out, binary.LittleEndian, node.Bounds.Min); err != nil {
		return err
	}
	if err := binary.Write(out, binary.LittleEndian, node.Bounds.Max); err != nil {
		return err
	}

	isLeaf := node.IsLeaf()
	if err := writeBool(out, isLeaf); err != nil {
		return err
	}

	if isLeaf {
		if err := binary.Write(out, binary.LittleEndian, uint64(len(node.Triangles))); err != nil {
			return err
		}
		for _, tri := range node.Triangles {
			if err := binary.Write(out, binary.LittleEndian, tri); err != nil {
				return err
			}
		}
		return nil
	}

	if err := serializeNode(out, node.Left); err != nil {
		return err
	}
	return serializeNode(out, node.Right)
}

// Serialize a bool as a single 0/1 byte.
func writeBool(out io.Writer, v bool) error {
	b := [1]byte{0}
	if v {
		b[0] = 1
	}
	_, err := out.Write(b[:])
	return err
}
