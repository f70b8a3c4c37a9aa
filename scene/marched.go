package scene

import (
	"math"

	"github.com/aduvenhage/lostnfound/types"
)

// A signed distance function: distance from a local-space point to the
// nearest surface, negative inside the surface.
type Sdf func(p types.Vec3) float32

const (
	// Hit when |distance| drops below this.
	marchHitEpsilon float32 = 1e-5

	// Sample offset for the finite difference normal estimate.
	marchNormalEpsilon float32 = 1e-4

	// Give up when the distance sample exceeds this.
	marchMaxRange float32 = 1e4

	// Upper bound on marching cost per ray.
	marchMaxIterations = 1000
)

// A primitive defined by a signed distance function and ray marched rather
// than intersected in closed form. The bounding box must conservatively
// contain the surface.
type MarchedSurface struct {
	sdf       Sdf
	bbox      [2]types.Vec3
	stepScale float32
}

func NewMarchedSurface(sdf Sdf, bbox [2]types.Vec3, stepScale float32) *MarchedSurface {
	if stepScale <= 0 {
		stepScale = 1.0
	}
	return &MarchedSurface{
		sdf:       sdf,
		bbox:      bbox,
		stepScale: stepScale,
	}
}

// A plain sphere as a distance field. Matches the closed-form Sphere
// intersection to within the marching tolerance.
func NewMarchedSphere(radius, stepScale float32) *MarchedSurface {
	r := radius
	return NewMarchedSurface(
		func(p types.Vec3) float32 {
			return p.Len() - r
		},
		[2]types.Vec3{{-r, -r, -r}, {r, r, r}},
		stepScale,
	)
}

// A sphere with a sinusoidal surface wobble. The bound pads the radius by
// the wobble amplitude.
func NewMarchedBubbles(radius, stepScale float32) *MarchedSurface {
	r := radius
	amp := 0.1 * r
	freq := float64(8 / r)
	e := r + amp
	return NewMarchedSurface(
		func(p types.Vec3) float32 {
			wobble := amp *
				float32(math.Sin(float64(p[0])*freq)*
					math.Sin(float64(p[1])*freq)*
					math.Sin(float64(p[2])*freq))
			return p.Len() - r + wobble
		},
		[2]types.Vec3{{-e, -e, -e}, {e, e, e}},
		stepScale,
	)
}

func (m *MarchedSurface) BBox() [2]types.Vec3 {
	return m.bbox
}

// March the local-space ray through the distance field. The ray advances
// by the sampled distance scaled by the step scale; a sign change between
// consecutive samples means the march overshot a thin feature, so the step
// scale is halved to re-converge. Rays that exceed the marching range or
// the iteration budget count as misses.
func (m *MarchedSurface) Hit(ray Ray, hit *Intersect) bool {
	pos := ray.Origin
	var t float32

	// Flip sign conventions when the origin starts inside the surface.
	inside := m.sdf(pos) < 0
	sign := float32(1)
	if inside {
		sign = -1
	}

	stepScale := m.stepScale
	prev := m.sdf(pos) * sign

	for i := 0; i < marchMaxIterations; i++ {
		d := m.sdf(pos) * sign
		if d > marchMaxRange {
			return false
		}
		if float32(math.Abs(float64(d))) <= marchHitEpsilon {
			if t <= HitEpsilon {
				// Origin sits on the surface; step past it.
				t += HitEpsilon
				pos = ray.Position(t)
				continue
			}
			if !hit.closer(t) {
				return false
			}
			hit.PositionOnRay = t
			hit.Position = pos
			hit.Normal = m.normalAt(pos)
			hit.UV = sphereUV(hit.Normal)
			hit.Inside = inside
			hit.Ray = ray
			return true
		}

		// Overshot past the surface: halve the step scale and walk back.
		if (d < 0) != (prev < 0) {
			stepScale *= 0.5
		}
		prev = d

		t += d * stepScale
		pos = ray.Position(t)
	}

	return false
}

// Surface normal estimated with central finite differences of the field.
func (m *MarchedSurface) normalAt(p types.Vec3) types.Vec3 {
	e := marchNormalEpsilon
	return types.Vec3{
		m.sdf(p.Add(types.Vec3{e, 0, 0})) - m.sdf(p.Sub(types.Vec3{e, 0, 0})),
		m.sdf(p.Add(types.Vec3{0, e, 0})) - m.sdf(p.Sub(types.Vec3{0, e, 0})),
		m.sdf(p.Add(types.Vec3{0, 0, e})) - m.sdf(p.Sub(types.Vec3{0, 0, e})),
	}.Normalize()
}
