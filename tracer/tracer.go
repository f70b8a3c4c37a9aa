package tracer

import (
	"math/rand"

	"github.com/aduvenhage/lostnfound/scene"
	"github.com/aduvenhage/lostnfound/types"
)

// Default distance a scattered ray origin is nudged along its own
// direction to avoid re-intersecting the surface it just left.
const selfHitEpsilon float32 = 1e-4

// A Tracer estimates the radiance arriving along rays by recursively
// sampling light transport paths through a scene. Each worker owns its own
// tracer with a private random generator; the scene is shared read-only.
type Tracer struct {
	sc       scene.Scene
	rng      *rand.Rand
	maxDepth int
	epsilon  float32

	// Deepest recursion reached during the current top-level trace.
	// Read by the render scheduler's adaptive sampling heuristic.
	depthReached int
}

func New(sc scene.Scene, rng *rand.Rand, maxDepth int) *Tracer {
	return &Tracer{
		sc:       sc,
		rng:      rng,
		maxDepth: maxDepth,
		epsilon:  selfHitEpsilon,
	}
}

// Override the self-intersection nudge distance.
func (t *Tracer) SetEpsilon(epsilon float32) {
	t.epsilon = epsilon
}

// Deepest recursion depth reached by the most recent Trace call.
func (t *Tracer) DepthReached() int {
	return t.depthReached
}

// Estimate the radiance arriving along the given world-space ray.
func (t *Tracer) Trace(ray scene.Ray) types.Vec3 {
	t.depthReached = 0
	return t.trace(ray, 0)
}

func (t *Tracer) trace(ray scene.Ray, depth int) types.Vec3 {
	if depth > t.depthReached {
		t.depthReached = depth
	}

	hit := t.sc.Hit(ray)
	if !hit.Valid() {
		return t.sc.MissColor(ray)
	}

	scattered := hit.Prim.Material().Scatter(&hit, t.rng)

	// Step off the surface, then map the scattered ray from the hit's
	// local frame back into world space.
	scattered.Ray.Origin = scattered.Ray.Position(t.epsilon)
	scattered.Ray.Dir = hit.Axis.RotateFrom(scattered.Ray.Dir)
	scattered.Ray.Origin = hit.Axis.TransformFrom(scattered.Ray.Origin)

	// Deterministic termination: recursion budget exhausted or no further
	// light can pass.
	if depth+1 >= t.maxDepth || scattered.Attenuation.IsBlack() {
		return scattered.Emitted
	}

	traced := t.trace(scattered.Ray, depth+1)
	return scattered.Emitted.Add(scattered.Attenuation.MulVec3(traced))
}
