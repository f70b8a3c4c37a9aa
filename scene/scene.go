package scene

import "github.com/aduvenhage/lostnfound/types"

// The Scene interface is what the tracer sees: closest intersection for a
// ray and the background color for rays that miss everything. Both are
// called concurrently by many workers, so the scene must be fully
// populated (and any acceleration structure built) before rendering
// starts.
type Scene interface {
	Hit(ray Ray) Intersect
	MissColor(ray Ray) types.Vec3
}

// A scene testing every registered primitive instance per ray. O(n) per
// ray; the correctness baseline for the BVH scene.
type SimpleScene struct {
	materials []Material
	instances []*PrimitiveInstance
	missColor types.Vec3
}

func NewSimpleScene(missColor types.Vec3) *SimpleScene {
	return &SimpleScene{missColor: missColor}
}

// Register a material with the scene. The scene owns the material for the
// lifetime of the render; the returned reference is used when declaring
// instances. Not safe to call once rendering has started.
func (s *SimpleScene) AddMaterial(m Material) Material {
	s.materials = append(s.materials, m)
	return m
}

// Place a primitive in the scene with the given material and world
// transform. Not safe to call once rendering has started.
func (s *SimpleScene) AddInstance(prim Primitive, material Material, axis types.Axis) *PrimitiveInstance {
	inst := NewPrimitiveInstance(prim, material, axis)
	s.instances = append(s.instances, inst)
	return inst
}

func (s *SimpleScene) Instances() []*PrimitiveInstance {
	return s.instances
}

func (s *SimpleScene) Hit(ray Ray) Intersect {
	var hit Intersect
	for _, inst := range s.instances {
		inst.Hit(ray, &hit)
	}
	return hit
}

func (s *SimpleScene) MissColor(ray Ray) types.Vec3 {
	return s.missColor
}

// A scene that routes hit tests through a bounding volume hierarchy.
// Build must be called after the last instance is added and before the
// first Hit.
type BvhScene struct {
	SimpleScene
	root     *BvhNode
	leafSize int
}

func NewBvhScene(missColor types.Vec3, leafSize int) *BvhScene {
	return &BvhScene{
		SimpleScene: SimpleScene{missColor: missColor},
		leafSize:    leafSize,
	}
}

// Build the acceleration structure over the registered instances.
func (s *BvhScene) Build() {
	s.root = BuildBvh(s.instances, s.leafSize)
}

func (s *BvhScene) Root() *BvhNode {
	return s.root
}

func (s *BvhScene) Hit(ray Ray) Intersect {
	var hit Intersect
	s.hitNode(s.root, ray, &hit)
	return hit
}

// Both children are descended whenever the ray intersects their bound:
// either may contain the true closest hit, and every candidate is compared
// against the running closest distance inside the primitive hit tests.
func (s *BvhScene) hitNode(node *BvhNode, ray Ray, hit *Intersect) {
	if node == nil {
		return
	}

	for _, inst := range node.Prims {
		inst.Hit(ray, hit)
	}

	if node.Left != nil && node.Left.IntersectRay(ray) {
		s.hitNode(node.Left, ray, hit)
	}
	if node.Right != nil && node.Right.IntersectRay(ray) {
		s.hitNode(node.Right, ray, hit)
	}
}
