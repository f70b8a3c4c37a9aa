package scene

import "github.com/aduvenhage/lostnfound/types"

// A placement of a primitive in the scene. Instances reference their
// primitive and material; the scene owns both for the lifetime of the
// render. The axis places the primitive's local frame in world space.
type PrimitiveInstance struct {
	prim     Primitive
	material Material
	axis     types.Axis
}

func NewPrimitiveInstance(prim Primitive, material Material, axis types.Axis) *PrimitiveInstance {
	return &PrimitiveInstance{
		prim:     prim,
		material: material,
		axis:     axis,
	}
}

func (pi *PrimitiveInstance) Material() Material {
	return pi.material
}

func (pi *PrimitiveInstance) Axis() types.Axis {
	return pi.axis
}

// Test the world-space ray against this instance. The ray is transformed
// into the primitive's local frame before delegating; a successful hit
// records this instance and its axis so the tracer can transform the
// scattered ray back to world space.
func (pi *PrimitiveInstance) Hit(ray Ray, hit *Intersect) bool {
	local := Ray{
		Origin: pi.axis.TransformTo(ray.Origin),
		Dir:    pi.axis.RotateTo(ray.Dir),
	}

	if !pi.prim.Hit(local, hit) {
		return false
	}

	hit.Prim = pi
	hit.Axis = pi.axis
	return true
}

// World-space bounding box: the local box's corners mapped through the
// instance axis.
func (pi *PrimitiveInstance) BBox() [2]types.Vec3 {
	local := pi.prim.BBox()

	min := types.Vec3{maxFloat, maxFloat, maxFloat}
	max := types.Vec3{-maxFloat, -maxFloat, -maxFloat}
	for i := 0; i < 8; i++ {
		corner := types.Vec3{
			local[(i>>0)&1][0],
			local[(i>>1)&1][1],
			local[(i>>2)&1][2],
		}
		world := pi.axis.TransformFrom(corner)
		min = types.MinVec3(min, world)
		max = types.MaxVec3(max, world)
	}

	return [2]types.Vec3{min, max}
}

// Center of the world-space bounding box.
func (pi *PrimitiveInstance) Center() types.Vec3 {
	bbox := pi.BBox()
	return bbox[0].Add(bbox[1]).Mul(0.5)
}
