// Package vis implements segment visibility queries against a static set of
// triangle meshes. Geometry is loaded once, a BVH is built (or re-hydrated
// from a cache file) per mesh, and IsVisible then answers whether the open
// segment between two points is free of triangle intersections.
package vis

import (
	"math"
	"sync"

	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
	"github.com/PcieExplioter/vigilant-disco/scene/compiler"
	"github.com/PcieExplioter/vigilant-disco/scene/reader"
	"github.com/PcieExplioter/vigilant-disco/scene/writer"
	"github.com/PcieExplioter/vigilant-disco/types"
)

// Two query points closer than this are considered coincident and trivially
// visible to each other.
const coincidentEpsilon float32 = 1e-3

// VisCheck answers line-of-sight queries against a static triangle scene.
//
// After a successful load the mesh and tree state is immutable, so any
// number of IsVisible calls may run concurrently. Loading and querying must
// not overlap; callers serialize that externally.
type VisCheck struct {
	logger log.Logger

	// Loaded meshes and their BVH trees; the slices run parallel.
	meshes   []scene.Mesh
	bvhNodes []*scene.BvhNode

	geometryLoaded bool

	notLoadedWarning sync.Once
}

// Create an empty visibility checker.
func New() *VisCheck {
	return &VisCheck{
		logger: log.New("vis"),
	}
}

// Returns true if geometry has been loaded.
func (vc *VisCheck) IsGeometryLoaded() bool {
	return vc.geometryLoaded
}

// Load geometry from an in-memory mesh list and build one BVH per mesh.
// Empty meshes are skipped with a warning. Returns false if the list is
// empty or all of its meshes are.
func (vc *VisCheck) LoadGeometry(geometryMeshes []scene.Mesh) bool {
	if len(geometryMeshes) == 0 {
		vc.logger.Error("no geometry meshes provided")
		return false
	}

	meshes := make([]scene.Mesh, 0, len(geometryMeshes))
	roots := make([]*scene.BvhNode, 0, len(geometryMeshes))
	for i, mesh := range geometryMeshes {
		if len(mesh) == 0 {
			vc.logger.Warningf("mesh %d is empty, skipping", i)
			continue
		}

		vc.logger.Infof("building BVH for mesh %d with %d triangles", i, len(mesh))
		meshCopy := append(scene.Mesh(nil), mesh...)
		meshes = append(meshes, meshCopy)
		roots = append(roots, compiler.Build(meshCopy))
	}

	if len(meshes) == 0 {
		vc.logger.Error("all provided meshes are empty")
		return false
	}

	vc.meshes = meshes
	vc.bvhNodes = roots
	vc.geometryLoaded = true
	vc.logger.Infof("loaded geometry with %d meshes and %d BVH trees", len(vc.meshes), len(vc.bvhNodes))
	return true
}

// Load geometry from a file (.opt binary or .obj) and build the BVH trees.
// On failure the previous engine state is left untouched.
func (vc *VisCheck) LoadFromOptFile(filePath string) bool {
	meshes, err := reader.ReadGeometry(filePath)
	if err != nil {
		vc.logger.Errorf("failed to load geometry: %s", err.Error())
		return false
	}
	return vc.LoadGeometry(meshes)
}

// Write the current geometry back out as a raw .opt file.
func (vc *VisCheck) SaveGeometryToFile(filePath string) bool {
	if !vc.geometryLoaded {
		vc.logger.Error("cannot save geometry before loading it")
		return false
	}
	if err := writer.WriteGeometry(vc.meshes, filePath); err != nil {
		vc.logger.Errorf("failed to save geometry: %s", err.Error())
		return false
	}
	return true
}

// Save the built BVH trees to a cache file so later runs can skip
// construction.
func (vc *VisCheck) SaveBVHToFile(cachePath string) bool {
	if !vc.geometryLoaded {
		vc.logger.Error("cannot save BVH cache before loading geometry")
		return false
	}
	if err := writer.WriteBVHCache(vc.meshes, vc.bvhNodes, cachePath); err != nil {
		vc.logger.Errorf("failed to save BVH cache: %s", err.Error())
		return false
	}
	return true
}

// Load pre-built BVH trees from a cache file. The cache must describe the
// same scene the engine currently holds: its mesh count has to match the
// loaded mesh count and the per-tree triangle counts have to agree with the
// header. Mesh triangle lists are rebuilt from the tree leaves. On failure
// the previous engine state is left untouched.
func (vc *VisCheck) LoadBVHFromFile(cachePath string) bool {
	roots, counts, err := reader.ReadBVHCache(cachePath)
	if err != nil {
		vc.logger.Errorf("failed to load BVH cache: %s", err.Error())
		return false
	}

	if len(roots) != len(vc.meshes) {
		vc.logger.Warningf("BVH cache mesh count mismatch (cache has %d; engine has %d)", len(roots), len(vc.meshes))
		return false
	}

	meshes := make([]scene.Mesh, len(roots))
	for i, root := range roots {
		meshes[i] = root.ExtractTriangles()
		if uint64(len(meshes[i])) != counts[i] {
			vc.logger.Warningf("BVH cache tree %d holds %d triangles; header declares %d", i, len(meshes[i]), counts[i])
			return false
		}
	}

	vc.meshes = meshes
	vc.bvhNodes = roots
	vc.geometryLoaded = true
	vc.logger.Infof("loaded BVH cache with %d trees", len(roots))
	return true
}

// Check whether the open segment between point1 and point2 is free of any
// triangle intersection. Points closer than 1e-3 are trivially visible. A
// triangle exactly at the far endpoint does not occlude.
func (vc *VisCheck) IsVisible(point1, point2 types.Vec3) bool {
	if !vc.geometryLoaded || len(vc.bvhNodes) == 0 {
		vc.notLoadedWarning.Do(func() {
			vc.logger.Warning("geometry not loaded, returning false for visibility")
		})
		return false
	}

	delta := point2.Sub(point1)
	distance := float32(math.Sqrt(float64(delta.LenSqr())))
	if distance < coincidentEpsilon {
		return true
	}
	rayDir := delta.Mul(1.0 / distance)

	hitDistance := float32(math.MaxFloat32)
	for _, root := range vc.bvhNodes {
		if root.Intersect(point1, rayDir, distance, &hitDistance) && hitDistance < distance {
			return false
		}
	}
	return true
}
