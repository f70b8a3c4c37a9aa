package scene

import (
	"math"
	"math/rand"

	"github.com/aduvenhage/lostnfound/types"
)

// A scattered ray with the attenuation it applies to recursively traced
// light and the light it emits directly. Both colors default to black.
// The ray is expressed in the local space of the hit primitive.
type ScatteredRay struct {
	Ray         Ray
	Attenuation types.Vec3
	Emitted     types.Vec3
}

// The Material interface is implemented by all surface materials.
// Materials are registered once with a scene, shared by every primitive
// instance that uses them and invoked concurrently by many workers, so
// implementations must be stateless apart from their construction
// parameters and must not mutate the hit record.
type Material interface {
	Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay
}

// Lambertian-ish diffuse material.
type Diffuse struct {
	Color types.Vec3
}

func (m *Diffuse) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	dir := hit.Normal.Add(RandomUnitSphere(rng)).Normalize()
	return ScatteredRay{
		Ray:         Ray{Origin: hit.Position, Dir: dir},
		Attenuation: m.Color,
	}
}

// Diffuse material with a procedural checker pattern over the surface UV.
type DiffuseCheckered struct {
	ColorA    types.Vec3
	ColorB    types.Vec3
	BlockSize int
}

func (m *DiffuseCheckered) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	dir := hit.Normal.Add(RandomUnitSphere(rng)).Normalize()

	// Floor keeps cells the same width across UV zero so the pattern does
	// not mirror on unbounded surfaces.
	cu := int(math.Floor(float64(hit.UV[0]) * float64(m.BlockSize)))
	cv := int(math.Floor(float64(hit.UV[1]) * float64(m.BlockSize)))
	parity := (cu + cv) % 2
	if parity < 0 {
		parity += 2
	}

	c := float32(parity)
	return ScatteredRay{
		Ray:         Ray{Origin: hit.Position, Dir: dir},
		Attenuation: m.ColorA.Mul(c).Add(m.ColorB.Mul(1 - c)),
	}
}

// Diffuse material textured by a mandelbrot field sampled at the surface UV.
type DiffuseMandelbrot struct {
	Field     *MandelbrotField
	BaseColor types.Vec3
}

func NewDiffuseMandelbrot() *DiffuseMandelbrot {
	return &DiffuseMandelbrot{
		Field:     NewMandelbrotField(1, 1),
		BaseColor: types.Vec3{0.4, 0.2, 0.1},
	}
}

func (m *DiffuseMandelbrot) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	dir := hit.Normal.Add(RandomUnitSphere(rng)).Normalize()
	return ScatteredRay{
		Ray:         Ray{Origin: hit.Position, Dir: dir},
		Attenuation: m.BaseColor.Mul(m.Field.Value(hit.UV[0], hit.UV[1])*0.1 + 0.1).Clamp01(),
	}
}

// Reflective metal material. Fuzz perturbs the normal before reflection.
type Metal struct {
	Color types.Vec3
	Fuzz  float32
}

func (m *Metal) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	normal := hit.Normal.Add(RandomUnitSphere(rng).Mul(m.Fuzz)).Normalize()
	return ScatteredRay{
		Ray:         Ray{Origin: hit.Position, Dir: Reflect(hit.Ray.Dir, normal)},
		Attenuation: m.Color,
	}
}

// Refractive glass material.
type Glass struct {
	Color types.Vec3
	Fuzz  float32
	IOR   float32
}

func (m *Glass) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	dir := Refract(hit.Ray.Dir, hit.Normal, m.IOR, hit.Inside, m.Fuzz, rng)
	return ScatteredRay{
		Ray:         Ray{Origin: hit.Position, Dir: dir},
		Attenuation: m.Color,
	}
}

// Light emitting material. The black attenuation terminates the path; the
// emitted color is scaled by the cosine of the incoming angle.
type Light struct {
	Color types.Vec3
}

func (m *Light) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	intensity := float32(math.Abs(float64(hit.Normal.Dot(hit.Ray.Dir))))
	return ScatteredRay{
		Ray:     hit.Ray,
		Emitted: m.Color.Mul(intensity),
	}
}

// Debug material that emits the surface normal as a color.
type SurfaceNormal struct {
	Inside bool
}

func (m *SurfaceNormal) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	if hit.Inside == m.Inside {
		dir := hit.Normal.Add(RandomUnitSphere(rng)).Normalize()
		return ScatteredRay{
			Ray: Ray{Origin: hit.Position, Dir: dir},
			Emitted: types.Vec3{
				(hit.Normal[0] + 1) / 2,
				(hit.Normal[1] + 1) / 2,
				(hit.Normal[2] + 1) / 2,
			},
		}
	}

	// Pass straight through the other side of the surface.
	return ScatteredRay{
		Ray:         Ray{Origin: hit.Position, Dir: hit.Ray.Dir},
		Attenuation: types.Vec3{1, 1, 1},
	}
}

// Debug material that emits the barycentric surface coordinate as a color.
type TriangleRGB struct{}

func (m *TriangleRGB) Scatter(hit *Intersect, rng *rand.Rand) ScatteredRay {
	dir := hit.Normal.Add(RandomUnitSphere(rng)).Normalize()
	u, v := hit.UV[0], hit.UV[1]
	return ScatteredRay{
		Ray: Ray{Origin: hit.Position, Dir: dir},
		Emitted: types.Vec3{1, 0, 0}.Mul(u).
			Add(types.Vec3{0, 1, 0}.Mul(v)).
			Add(types.Vec3{0, 0, 1}.Mul(1 - u - v)),
	}
}
