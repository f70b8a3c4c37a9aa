package scene

import "github.com/aduvenhage/lostnfound/types"

// A ray with an origin and a unit direction. Immutable once constructed.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir.Normalize(),
	}
}

// Point along the ray at distance t from the origin.
func (r Ray) Position(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hits closer than this are considered self re-intersections caused by
// floating point error and are rejected.
const HitEpsilon float32 = 1e-4

// A ray/primitive intersection record. The zero value represents "no hit";
// a candidate hit only replaces the current one if it lies strictly closer
// along the ray.
type Intersect struct {
	// Distance along the world ray.
	PositionOnRay float32

	// Surface position and outward normal in the primitive's local space.
	Position types.Vec3
	Normal   types.Vec3

	// Surface coordinate at the hit.
	UV types.Vec2

	// The incoming ray transformed into the primitive's local space.
	Ray Ray

	// True if the ray origin was inside the surface.
	Inside bool

	// The primitive instance that was hit. Never owned by the record.
	Prim *PrimitiveInstance

	// Local reference frame used to map scattered rays back to world space.
	Axis types.Axis
}

// Returns true if this record holds an actual hit.
func (i *Intersect) Valid() bool {
	return i.Prim != nil
}

// Returns true if candidate t would replace the current hit.
func (i *Intersect) closer(t float32) bool {
	if t <= HitEpsilon {
		return false
	}
	return !i.Valid() || t < i.PositionOnRay
}
