package scene

import (
	"math"

	"github.com/PcieExplioter/vigilant-disco/types"
)

// An axis-aligned bounding box. For a well-formed box Min <= Max holds on
// every axis; boxes inside a built BVH always satisfy this.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Expand the box to also enclose other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Returns true if point lies inside the box (inclusive).
func (b AABB) Contains(p types.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Intersect a semi-infinite ray with the box using the slab method.
//
// Axes where rayDir is zero divide to signed infinities; the min/max updates
// below stay correct under IEEE-754 as long as another axis constrains the
// interval, so all three axes are always processed without early exit.
func (b AABB) RayIntersects(rayOrigin, rayDir types.Vec3) bool {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		invDir := 1.0 / rayDir[i]
		t0 := (b.Min[i] - rayOrigin[i]) * invDir
		t1 := (b.Max[i] - rayOrigin[i]) * invDir

		if invDir < 0.0 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
	}

	return tmax >= tmin && tmax >= 0
}
