package scene

import (
	"math"
	"sort"
	"time"

	"github.com/aduvenhage/lostnfound/log"
	"github.com/aduvenhage/lostnfound/types"
)

const maxFloat = float32(math.MaxFloat32)

// A node in the bounding volume hierarchy. The bound conservatively
// contains the bounds of every descendant primitive. Leaf nodes hold the
// primitives directly and have no children. Built once before rendering
// starts and immutable afterwards.
type BvhNode struct {
	Min   types.Vec3
	Max   types.Vec3
	Left  *BvhNode
	Right *BvhNode
	Prims []*PrimitiveInstance
}

// Slab test against the node bound.
func (n *BvhNode) IntersectRay(ray Ray) bool {
	tMin := float32(0)
	tMax := maxFloat

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		dir := ray.Dir[axis]

		if float32(math.Abs(float64(dir))) < 1e-8 {
			if origin < n.Min[axis] || origin > n.Max[axis] {
				return false
			}
			continue
		}

		inv := 1.0 / dir
		t1 := (n.Min[axis] - origin) * inv
		t2 := (n.Max[axis] - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false
		}
	}

	return true
}

type bvhStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type bvhBuilder struct {
	logger       log.Logger
	minLeafItems int
	stats        bvhStats
}

// Construct a BVH over the given primitive instances.
//
// Internal nodes split their primitives at the median of the bound's
// longest axis, balancing the primitive count per subtree. Recursion stops
// once a node holds minLeafItems or fewer primitives, which then form a
// leaf.
func BuildBvh(instances []*PrimitiveInstance, minLeafItems int) *BvhNode {
	if len(instances) == 0 {
		return nil
	}
	if minLeafItems < 1 {
		minLeafItems = 1
	}

	b := &bvhBuilder{
		logger:       log.New("bvh"),
		minLeafItems: minLeafItems,
	}

	// Copy so sorting does not disturb the caller's registration order.
	workList := make([]*PrimitiveInstance, len(instances))
	copy(workList, instances)

	start := time.Now()
	root := b.partition(workList, 0)
	b.logger.Debugf(
		"BVH build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return root
}

func (b *bvhBuilder) partition(workList []*PrimitiveInstance, depth int) *BvhNode {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	node := &BvhNode{
		Min: types.Vec3{maxFloat, maxFloat, maxFloat},
		Max: types.Vec3{-maxFloat, -maxFloat, -maxFloat},
	}
	for _, item := range workList {
		bbox := item.BBox()
		node.Min = types.MinVec3(node.Min, bbox[0])
		node.Max = types.MaxVec3(node.Max, bbox[1])
	}
	b.stats.nodes++

	if len(workList) <= b.minLeafItems {
		node.Prims = workList
		b.stats.leafs++
		return node
	}

	// Median split along the longest bound axis for an even tree.
	side := node.Max.Sub(node.Min)
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}

	sort.Slice(workList, func(i, j int) bool {
		return workList[i].Center()[axis] < workList[j].Center()[axis]
	})

	mid := len(workList) / 2
	node.Left = b.partition(workList[:mid], depth+1)
	node.Right = b.partition(workList[mid:], depth+1)
	return node
}

// Count of nodes and leafs plus tree height. Used for scene statistics.
func (n *BvhNode) Stats() (nodes, leafs, maxDepth int) {
	if n == nil {
		return 0, 0, 0
	}

	nodes = 1
	if n.Left == nil && n.Right == nil {
		return 1, 1, 1
	}

	ln, ll, ld := n.Left.Stats()
	rn, rl, rd := n.Right.Stats()
	nodes += ln + rn
	leafs = ll + rl
	maxDepth = ld
	if rd > maxDepth {
		maxDepth = rd
	}
	return nodes, leafs, maxDepth + 1
}
