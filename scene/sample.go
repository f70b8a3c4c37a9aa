package scene

import (
	"math"
	"math/rand"

	"github.com/aduvenhage/lostnfound/types"
)

// Uniform random point inside the unit sphere.
func RandomUnitSphere(rng *rand.Rand) types.Vec3 {
	for {
		p := types.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
		}
		if p.Dot(p) < 1 {
			return p
		}
	}
}

// Uniform random point inside the unit disc (z = 0). Used for thin-lens
// aperture sampling.
func RandomInUnitDisc(rng *rand.Rand) types.Vec3 {
	for {
		p := types.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			0,
		}
		if p.Dot(p) < 1 {
			return p
		}
	}
}

// Reflect direction v about normal n.
func Reflect(v, n types.Vec3) types.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract direction v through a surface with normal n using Snell's law.
// The inside flag selects the side of the interface the ray travels from.
// On total internal reflection, or probabilistically according to the
// Schlick reflectance, the ray is reflected instead. A non-zero fuzz
// perturbs the normal before refraction.
func Refract(v, n types.Vec3, ior float32, inside bool, fuzz float32, rng *rand.Rand) types.Vec3 {
	etaRatio := 1.0 / ior
	if inside {
		etaRatio = ior
		n = n.Mul(-1)
	}

	if fuzz > 0 {
		n = n.Add(RandomUnitSphere(rng).Mul(fuzz)).Normalize()
	}

	cosTheta := -v.Dot(n)
	if cosTheta > 1 {
		cosTheta = 1
	}
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))

	// Fall back to reflection on total internal reflection or a Schlick
	// sample that favours grazing angles.
	if etaRatio*sinTheta > 1.0 || schlick(cosTheta, etaRatio) > rng.Float32() {
		return Reflect(v, n)
	}

	perp := v.Add(n.Mul(cosTheta)).Mul(etaRatio)
	parallel := n.Mul(-float32(math.Sqrt(math.Abs(float64(1 - perp.Dot(perp))))))
	return perp.Add(parallel)
}

// Schlick's reflectance approximation.
func schlick(cosTheta, etaRatio float32) float32 {
	r0 := (1 - etaRatio) / (1 + etaRatio)
	r0 *= r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosTheta), 5))
}
