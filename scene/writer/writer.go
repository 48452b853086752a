// Package writer emits the two binary on-disk formats used by the
// visibility engine: the raw geometry (.opt) format and the BVH cache
// format. Both use little-endian encoding with uint64 counts and float32
// vector components regardless of host platform.
package writer

import (
	"github.com/PcieExplioter/vigilant-disco/scene"
)

// Write raw mesh geometry to an .opt file.
func WriteGeometry(meshes []scene.Mesh, filename string) error {
	w := newOptWriter(filename)
	return w.Write(meshes)
}

// Write a pre-built BVH cache. The roots slice must run parallel to meshes,
// one tree per mesh.
func WriteBVHCache(meshes []scene.Mesh, roots []*scene.BvhNode, filename string) error {
	w := newCacheWriter(filename)
	return w.Write(meshes, roots)
}
