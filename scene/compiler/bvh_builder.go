package compiler

import (
	"sort"
	"time"

	"github.com/PcieExplioter/vigilant-disco/log"
	"github.com/PcieExplioter/vigilant-disco/scene"
)

// The maximum number of triangles stored in a BVH leaf. A mesh with at most
// this many triangles collapses to a single leaf root.
const LeafThreshold = 4

type stats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder struct {
	logger log.Logger
	stats  stats
}

// Construct a BVH over a list of triangles.
//
// Nodes are split along the longest axis of their bounds at the median
// triangle centroid, which keeps both halves non-empty and caps the tree
// depth at O(log N). The partition is determined purely by centroid order,
// so identical input produces an identical tree across runs; the on-disk
// cache format relies on this.
//
// The input must not be empty; callers filter out empty meshes before
// building. Build returns nil for an empty input.
func Build(tris scene.Mesh) *scene.BvhNode {
	b := &builder{
		logger: log.New("bvh builder"),
	}

	if len(tris) == 0 {
		b.logger.Error("cannot build a BVH over an empty triangle list")
		return nil
	}

	start := time.Now()
	root := b.partition(tris, 1)
	b.logger.Debugf(
		"BVH tree build time: %d ms, triangles: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		len(tris), b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return root
}

// Partition a triangle work list into a subtree and return its root.
func (b *builder) partition(workList scene.Mesh, depth int) *scene.BvhNode {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}
	b.stats.nodes++

	// Calculate bounding box for node
	bounds := workList[0].AABB()
	for _, tri := range workList[1:] {
		bounds = bounds.Union(tri.AABB())
	}

	node := &scene.BvhNode{Bounds: bounds}

	if len(workList) <= LeafThreshold {
		node.Triangles = append(scene.Mesh(nil), workList...)
		b.stats.leafs++
		return node
	}

	// Split along the dominant extent of the node bounds; ties fall to the
	// later axis (X only wins outright).
	side := bounds.Max.Sub(bounds.Min)
	axis := 2
	if side[0] > side[1] && side[0] > side[2] {
		axis = 0
	} else if side[1] > side[2] {
		axis = 1
	}

	sorted := append(scene.Mesh(nil), workList...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Centroid(axis) < sorted[j].Centroid(axis)
	})

	mid := len(sorted) / 2
	node.Left = b.partition(sorted[:mid], depth+1)
	node.Right = b.partition(sorted[mid:], depth+1)

	return node
}
