package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aduvenhage/lostnfound/types"
)

func randomHit(rng *rand.Rand) Intersect {
	normal := types.Vec3{
		rng.Float32()*2 - 1,
		rng.Float32()*2 - 1,
		rng.Float32()*2 - 1,
	}.Normalize()
	if normal.Len() == 0 {
		normal = types.Vec3{0, 1, 0}
	}

	return Intersect{
		PositionOnRay: 1 + rng.Float32()*10,
		Position:      types.Vec3{rng.Float32(), rng.Float32(), rng.Float32()},
		Normal:        normal,
		UV:            types.Vec2{rng.Float32(), rng.Float32()},
		Ray:           NewRay(types.Vec3{0, 5, 5}, normal.Mul(-1)),
		Inside:        rng.Intn(2) == 0,
		Axis:          types.AxisIdentity(),
	}
}

// Every non-emitting material must keep its attenuation channels in [0, 1]
// so that recursion can never amplify energy.
func TestScatterEnergyNonAmplification(t *testing.T) {
	type spec struct {
		name     string
		material Material
	}
	specs := []spec{
		{"diffuse", &Diffuse{Color: types.Vec3{0.9, 0.1, 0.1}}},
		{"checkered", &DiffuseCheckered{ColorA: types.Vec3{1, 1, 1}, ColorB: types.Vec3{1, 0.4, 0.2}, BlockSize: 8}},
		{"mandelbrot", NewDiffuseMandelbrot()},
		{"metal", &Metal{Color: types.Vec3{0.95, 0.95, 0.95}, Fuzz: 0.2}},
		{"glass", &Glass{Color: types.Vec3{0.95, 0.95, 0.95}, Fuzz: 0.05, IOR: 1.5}},
		{"light", &Light{Color: types.Vec3{30, 30, 30}}},
		{"surface-normal", &SurfaceNormal{}},
		{"triangle-rgb", &TriangleRGB{}},
	}

	rng := rand.New(rand.NewSource(1))
	for _, s := range specs {
		for i := 0; i < 200; i++ {
			hit := randomHit(rng)
			scattered := s.material.Scatter(&hit, rng)
			for ch := 0; ch < 3; ch++ {
				if scattered.Attenuation[ch] < 0 || scattered.Attenuation[ch] > 1 {
					t.Fatalf("[%s] attenuation channel %d out of [0,1]: %f", s.name, ch, scattered.Attenuation[ch])
				}
			}
		}
	}
}

func TestLightEmission(t *testing.T) {
	light := &Light{Color: types.Vec3{10, 20, 30}}
	rng := rand.New(rand.NewSource(1))

	hit := Intersect{
		Normal: types.Vec3{0, 1, 0},
		Ray:    NewRay(types.Vec3{0, 5, 0}, types.Vec3{0, -1, 0}),
	}

	scattered := light.Scatter(&hit, rng)
	if !scattered.Attenuation.IsBlack() {
		t.Fatalf("expected light attenuation to be black; got %v", scattered.Attenuation)
	}

	// Head-on hit: cosine falloff is 1, emission equals the light color.
	if scattered.Emitted.Sub(light.Color).Len() > 1e-5 {
		t.Fatalf("expected emission %v; got %v", light.Color, scattered.Emitted)
	}

	// Grazing hit at 60 degrees: emission scaled by cos(60) = 0.5.
	grazing := Intersect{
		Normal: types.Vec3{0, 1, 0},
		Ray:    NewRay(types.Vec3{}, types.Vec3{0, -1, float32(math.Sqrt(3))}),
	}
	scattered = light.Scatter(&grazing, rng)
	if scattered.Emitted.Sub(light.Color.Mul(0.5)).Len() > 1e-4 {
		t.Fatalf("expected emission %v; got %v", light.Color.Mul(0.5), scattered.Emitted)
	}
}

func TestDiffuseScatterStaysAboveSurface(t *testing.T) {
	m := &Diffuse{Color: types.Vec3{0.5, 0.5, 0.5}}
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 200; i++ {
		hit := randomHit(rng)
		scattered := m.Scatter(&hit, rng)
		if scattered.Ray.Dir.Dot(hit.Normal) < -1 {
			t.Fatalf("scattered direction not normalized: %v", scattered.Ray.Dir)
		}
		if d := math.Abs(float64(scattered.Ray.Dir.Len()) - 1); d > 1e-4 {
			t.Fatalf("scattered direction not unit length: %f", scattered.Ray.Dir.Len())
		}
	}
}

func TestCheckeredColorAlternates(t *testing.T) {
	m := &DiffuseCheckered{ColorA: types.Vec3{1, 1, 1}, ColorB: types.Vec3{0, 0, 0}, BlockSize: 2}
	rng := rand.New(rand.NewSource(3))

	hit := randomHit(rng)
	hit.UV = types.Vec2{0.1, 0.1}
	a := m.Scatter(&hit, rng).Attenuation

	hit.UV = types.Vec2{0.6, 0.1}
	b := m.Scatter(&hit, rng).Attenuation

	if a.Sub(b).Len() < 1e-5 {
		t.Fatalf("expected adjacent checker cells to differ; both %v", a)
	}
}

// Cells keep alternating across UV zero instead of mirroring, so the
// pattern stays consistent on unbounded surfaces.
func TestCheckeredParityAcrossZero(t *testing.T) {
	m := &DiffuseCheckered{ColorA: types.Vec3{1, 1, 1}, ColorB: types.Vec3{0, 0, 0}, BlockSize: 2}
	rng := rand.New(rand.NewSource(4))

	hit := randomHit(rng)

	hit.UV = types.Vec2{0.1, 0.1}
	pos := m.Scatter(&hit, rng).Attenuation

	// The neighbouring cell on the negative side takes the other color.
	hit.UV = types.Vec2{-0.1, 0.1}
	neg := m.Scatter(&hit, rng).Attenuation
	if pos.Sub(neg).Len() < 1e-5 {
		t.Fatalf("expected cells on either side of zero to differ; both %v", pos)
	}

	// Two samples inside the same negative cell agree.
	hit.UV = types.Vec2{-0.3, 0.1}
	other := m.Scatter(&hit, rng).Attenuation
	if neg.Sub(other).Len() > 1e-5 {
		t.Fatalf("expected samples in one cell to match; got %v and %v", neg, other)
	}
}
