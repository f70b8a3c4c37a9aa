package scene

import (
	"math"

	"github.com/aduvenhage/lostnfound/types"
)

// Extent assigned to unbounded primitives (planes) so that they can still
// participate in BVH partitioning.
const unboundedExtent float32 = 1e5

// The Primitive interface is implemented by all shapes that can be placed
// in a scene. Hit tests the given local-space ray and, if it intersects
// closer than the hit currently held in the record, fills in the local
// parts of the record (distance, position, normal, UV, inside flag and the
// local ray) and returns true.
type Primitive interface {
	Hit(ray Ray, hit *Intersect) bool
	BBox() [2]types.Vec3
}

// A sphere centered on its local origin.
type Sphere struct {
	Radius float32
}

func NewSphere(radius float32) *Sphere {
	return &Sphere{Radius: radius}
}

func (s *Sphere) Hit(ray Ray, hit *Intersect) bool {
	oc := ray.Origin
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc <= 0 {
		return false
	}

	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	inside := false
	if t <= HitEpsilon {
		// Entry point behind the origin; try the exit point.
		t = -b + sq
		inside = c < 0
	}
	if !hit.closer(t) {
		return false
	}

	pos := ray.Position(t)
	normal := pos.Mul(1 / s.Radius)

	hit.PositionOnRay = t
	hit.Position = pos
	hit.Normal = normal
	hit.UV = sphereUV(normal)
	hit.Inside = inside
	hit.Ray = ray
	return true
}

func (s *Sphere) BBox() [2]types.Vec3 {
	r := s.Radius
	return [2]types.Vec3{{-r, -r, -r}, {r, r, r}}
}

func sphereUV(normal types.Vec3) types.Vec2 {
	phi := math.Atan2(float64(normal[0]), float64(normal[2]))
	theta := math.Acos(float64(normal[1]))
	return types.Vec2{
		float32(phi/(2*math.Pi)) + 0.5,
		float32(theta / math.Pi),
	}
}

// An infinite plane through the local origin with normal +Y. The UV scale
// controls how many world units map to one UV unit.
type Plane struct {
	UVScale float32
}

func NewPlane(uvScale float32) *Plane {
	return &Plane{UVScale: uvScale}
}

func (p *Plane) Hit(ray Ray, hit *Intersect) bool {
	return planeHit(ray, hit, p.UVScale, func(pos types.Vec3) bool { return true })
}

func (p *Plane) BBox() [2]types.Vec3 {
	e := unboundedExtent
	return [2]types.Vec3{{-e, -HitEpsilon, -e}, {e, HitEpsilon, e}}
}

// A disc of the given radius on the local Y = 0 plane.
type Disc struct {
	Radius float32
}

func NewDisc(radius float32) *Disc {
	return &Disc{Radius: radius}
}

func (d *Disc) Hit(ray Ray, hit *Intersect) bool {
	r2 := d.Radius * d.Radius
	return planeHit(ray, hit, d.Radius*2, func(pos types.Vec3) bool {
		return pos[0]*pos[0]+pos[2]*pos[2] <= r2
	})
}

func (d *Disc) BBox() [2]types.Vec3 {
	r := d.Radius
	return [2]types.Vec3{{-r, -HitEpsilon, -r}, {r, HitEpsilon, r}}
}

// An axis-aligned rectangle on the local Y = 0 plane.
type Rectangle struct {
	Width float32
	Depth float32
}

func NewRectangle(width, depth float32) *Rectangle {
	return &Rectangle{Width: width, Depth: depth}
}

func (r *Rectangle) Hit(ray Ray, hit *Intersect) bool {
	w2, d2 := r.Width/2, r.Depth/2
	scale := r.Width
	if r.Depth > scale {
		scale = r.Depth
	}
	return planeHit(ray, hit, scale, func(pos types.Vec3) bool {
		return pos[0] >= -w2 && pos[0] <= w2 && pos[2] >= -d2 && pos[2] <= d2
	})
}

func (r *Rectangle) BBox() [2]types.Vec3 {
	w2, d2 := r.Width/2, r.Depth/2
	return [2]types.Vec3{{-w2, -HitEpsilon, -d2}, {w2, HitEpsilon, d2}}
}

// Shared Y = 0 plane intersection. The bounds callback rejects positions
// outside the concrete shape.
func planeHit(ray Ray, hit *Intersect, uvScale float32, bounds func(types.Vec3) bool) bool {
	if ray.Dir[1] == 0 {
		return false
	}

	t := -ray.Origin[1] / ray.Dir[1]
	if !hit.closer(t) {
		return false
	}

	pos := ray.Position(t)
	if !bounds(pos) {
		return false
	}

	if uvScale <= 0 {
		uvScale = 1
	}
	hit.PositionOnRay = t
	hit.Position = pos
	hit.Normal = types.Vec3{0, 1, 0}
	hit.UV = types.Vec2{
		pos[0]/uvScale + 0.5,
		pos[2]/uvScale + 0.5,
	}
	hit.Inside = false
	hit.Ray = ray
	return true
}
