package scene

import (
	"sort"

	"github.com/mistfall/photonmapper/pkg/core"
)

// bvhNode is a node in the bounding volume hierarchy accelerating Scene.Intersect.
type bvhNode struct {
	boundingBox core.AABB
	left        *bvhNode
	right       *bvhNode
	surfaces    []Surface // leaf-only
}

// bvh is a bounding volume hierarchy over a scene's surfaces.
type bvh struct {
	root   *bvhNode
	center core.Vec3
	radius float64
}

const leafThreshold = 4

// newBVH builds a BVH from surfaces via fast median splitting along the longest axis,
// avoiding the cost of a full SAH build for the small surface counts a hand-authored
// demo scene has.
func newBVH(surfaces []Surface) *bvh {
	if len(surfaces) == 0 {
		return &bvh{radius: 100.0}
	}

	cp := make([]Surface, len(surfaces))
	copy(cp, surfaces)

	root := buildBVH(cp)
	center := root.boundingBox.Center()
	radius := root.boundingBox.Max.Subtract(center).Length()

	return &bvh{root: root, center: center, radius: radius}
}

func buildBVH(surfaces []Surface) *bvhNode {
	var box core.AABB
	if len(surfaces) > 0 {
		box = surfaces[0].BoundingBox()
		for _, s := range surfaces[1:] {
			box = box.Union(s.BoundingBox())
		}
	}

	if len(surfaces) <= leafThreshold {
		return &bvhNode{boundingBox: box, surfaces: surfaces}
	}

	axis := box.LongestAxis()
	sortByAxis(surfaces, axis)

	mid := len(surfaces) / 2
	left := buildBVH(surfaces[:mid])
	right := buildBVH(surfaces[mid:])

	return &bvhNode{boundingBox: box, left: left, right: right}
}

func sortByAxis(surfaces []Surface, axis int) {
	sort.Slice(surfaces, func(i, j int) bool {
		ci := surfaces[i].BoundingBox().Center()
		cj := surfaces[j].BoundingBox().Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})
}

// Intersect finds the closest surface hit along ray in [tMin, tMax].
func (b *bvh) Intersect(ray core.Ray, tMin, tMax float64) (Intersection, bool) {
	if b.root == nil {
		return Intersection{}, false
	}
	return intersectNode(b.root, ray, tMin, tMax)
}

func intersectNode(n *bvhNode, ray core.Ray, tMin, tMax float64) (Intersection, bool) {
	if !n.boundingBox.Hit(ray, tMin, tMax) {
		return Intersection{}, false
	}

	if n.surfaces != nil {
		var closest Intersection
		hitAny := false
		closestT := tMax
		for _, s := range n.surfaces {
			if hit, ok := s.Hit(ray, tMin, closestT); ok {
				closestT = hit.T
				closest = hit
				hitAny = true
			}
		}
		return closest, hitAny
	}

	leftHit, leftOK := intersectNode(n.left, ray, tMin, tMax)
	newTMax := tMax
	if leftOK {
		newTMax = leftHit.T
	}
	rightHit, rightOK := intersectNode(n.right, ray, tMin, newTMax)
	if rightOK {
		return rightHit, true
	}
	return leftHit, leftOK
}
