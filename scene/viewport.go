package scene

import (
	"math"
	"math/rand"

	"github.com/aduvenhage/lostnfound/types"
)

// The Viewport generates world-space primary rays for pixel coordinates.
// Rays are jittered within the pixel and across the lens aperture for
// anti-aliasing and depth of field.
type Viewport struct {
	width  int
	height int
	camera Camera

	// Half extents of the focus plane in camera space.
	halfViewW float32
	halfViewH float32
}

func NewViewport(width, height int, camera Camera) *Viewport {
	halfH := float32(math.Tan(float64(camera.Fov()) * 0.5))
	aspect := float32(width) / float32(height)

	return &Viewport{
		width:     width,
		height:    height,
		camera:    camera,
		halfViewW: halfH * aspect * camera.FocusDistance(),
		halfViewH: halfH * camera.FocusDistance(),
	}
}

func (v *Viewport) Width() int {
	return v.width
}

func (v *Viewport) Height() int {
	return v.height
}

// Generate a world-space ray through pixel (i, j); j = 0 is the top image
// row. Each call jitters the sample position.
func (v *Viewport) Ray(i, j int, rng *rand.Rand) Ray {
	axis := v.camera.Axis()

	// Sub-pixel jitter; map to [-1, 1] with Y up.
	px := (float32(i)+rng.Float32())/float32(v.width)*2 - 1
	py := 1 - (float32(j)+rng.Float32())/float32(v.height)*2

	// Point on the focus plane in camera space. The camera looks down -W.
	target := types.Vec3{
		px * v.halfViewW,
		py * v.halfViewH,
		-v.camera.FocusDistance(),
	}

	// Aperture jitter in the lens plane.
	origin := types.Vec3{}
	if v.camera.Aperture() > 0 {
		lens := RandomInUnitDisc(rng).Mul(v.camera.Aperture() * 0.5)
		origin = types.Vec3{lens[0], lens[1], 0}
	}

	worldOrigin := axis.TransformFrom(origin)
	worldTarget := axis.TransformFrom(target)
	return NewRay(worldOrigin, worldTarget.Sub(worldOrigin))
}
