package scene

import (
	"math"
	"reflect"
	"testing"

	"github.com/PcieExplioter/vigilant-disco/types"
)

// Axis-aligned square made of two triangles, facing -z, at the given depth.
func quadAtZ(z float32) []Triangle {
	return []Triangle{
		{
			V0: types.XYZ(-1, -1, z),
			V1: types.XYZ(1, -1, z),
			V2: types.XYZ(1, 1, z),
		},
		{
			V0: types.XYZ(-1, -1, z),
			V1: types.XYZ(1, 1, z),
			V2: types.XYZ(-1, 1, z),
		},
	}
}

func leafNode(tris []Triangle) *BvhNode {
	bounds := tris[0].AABB()
	for _, tri := range tris[1:] {
		bounds = bounds.Union(tri.AABB())
	}
	return &BvhNode{Bounds: bounds, Triangles: tris}
}

func TestBvhNodeIntersect(t *testing.T) {
	near := leafNode(quadAtZ(5))
	far := leafNode(quadAtZ(10))
	root := &BvhNode{
		Bounds: near.Bounds.Union(far.Bounds),
		Left:   far,
		Right:  near,
	}

	origin := types.XYZ(0, 0, 0)
	dir := types.XYZ(0, 0, 1)

	// Both quads lie along the ray; hitDist must settle on the nearer one
	// even though the far child is visited first.
	hitDist := float32(math.MaxFloat32)
	if !root.Intersect(origin, dir, 100, &hitDist) {
		t.Fatal("expected ray to hit the tree")
	}
	var expDist float32 = 5
	if hitDist != expDist {
		t.Fatalf("expected hit distance to be %f; got %f", expDist, hitDist)
	}

	// maxDist cuts off both quads
	hitDist = float32(math.MaxFloat32)
	if root.Intersect(origin, dir, 4, &hitDist) {
		t.Fatal("expected no hit below maxDist")
	}

	// A tighter pre-existing hitDist suppresses farther hits
	hitDist = 3
	if root.Intersect(origin, dir, 100, &hitDist) {
		t.Fatal("expected no hit closer than the current hit distance")
	}

	// Ray missing the tree bounds entirely
	hitDist = float32(math.MaxFloat32)
	if root.Intersect(types.XYZ(50, 50, 0), dir, 100, &hitDist) {
		t.Fatal("expected ray outside the bounds to miss")
	}
}

func TestBvhNodeExtractTriangles(t *testing.T) {
	left := leafNode(quadAtZ(5))
	right := leafNode(quadAtZ(10))
	root := &BvhNode{
		Bounds: left.Bounds.Union(right.Bounds),
		Left:   left,
		Right:  right,
	}

	got := root.ExtractTriangles()
	exp := append(append(Mesh(nil), left.Triangles...), right.Triangles...)
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected extracted triangles to be %v; got %v", exp, got)
	}
}

func TestBvhNodeStats(t *testing.T) {
	left := leafNode(quadAtZ(5))
	right := leafNode(quadAtZ(10))
	root := &BvhNode{
		Bounds: left.Bounds.Union(right.Bounds),
		Left:   left,
		Right:  right,
	}

	st := root.Stats()
	exp := TreeStats{Nodes: 3, Leafs: 2, Triangles: 4, MaxDepth: 2}
	if st != exp {
		t.Fatalf("expected stats to be %+v; got %+v", exp, st)
	}
}
