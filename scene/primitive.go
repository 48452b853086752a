package scene

import (
	"github.com/PcieExplioter/vigilant-disco/types"
)

// The minimum determinant magnitude below which a ray is treated as parallel
// to the triangle plane. Also serves as the lower bound for accepted hit
// distances so that grazing hits at the ray origin are rejected.
const intersectEpsilon float32 = 1e-7

// A triangle primitive defined by its three vertices in world space.
type Triangle struct {
	V0, V1, V2 types.Vec3
}

// A mesh is an ordered list of triangles. The order is preserved across
// persistence but carries no meaning at query time.
type Mesh []Triangle

// Compute the axis-aligned bounding box of the triangle.
func (tri Triangle) AABB() AABB {
	return AABB{
		Min: types.MinVec3(tri.V0, types.MinVec3(tri.V1, tri.V2)),
		Max: types.MaxVec3(tri.V0, types.MaxVec3(tri.V1, tri.V2)),
	}
}

// Get the midpoint of the triangle bounding box projected onto an axis.
func (tri Triangle) Centroid(axis int) float32 {
	bbox := tri.AABB()
	return (bbox.Min[axis] + bbox.Max[axis]) / 2.0
}

// Intersect a ray with the triangle using the Moller-Trumbore algorithm.
// Returns the hit distance t along the ray and true when the ray hits the
// triangle at t > epsilon. Degenerate triangles and rays parallel to the
// triangle plane are rejected by the determinant test.
//
// rayDir does not need to be unit length; t is expressed in units of its
// length.
func (tri Triangle) RayIntersect(rayOrigin, rayDir types.Vec3) (float32, bool) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)

	h := rayDir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -intersectEpsilon && a < intersectEpsilon {
		return 0, false
	}

	f := 1.0 / a
	s := rayOrigin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * rayDir.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > intersectEpsilon
}
