// Package octree implements a bounded spatial index over point data, used by the photon
// tracer to accumulate photons (mutable Octree) and by the radiance estimator to query
// them (frozen Linear).
package octree

import (
	"container/heap"
	"math"

	"github.com/mistfall/photonmapper/pkg/core"
)

// Positioned is anything an Octree can index: it must expose a stable world-space position.
type Positioned interface {
	Position() core.Vec3
}

// maxDepth bounds recursion when many points share (nearly) the same position, so a
// pathological input cannot recurse forever.
const maxDepth = 24

// Octree is a mutable, bounded octree builder. Insert until done, then call Build to
// obtain a read-only Linear for query-time use. An Octree should not be inserted into
// after Build has consumed it.
type Octree[T Positioned] struct {
	root        *node[T]
	maxLeafData int
}

type node[T Positioned] struct {
	bounds   core.AABB
	data     []T
	children *[8]*node[T]
	depth    int
}

// New creates an empty octree bounded by bounds, subdividing leaves once they hold more
// than maxLeafData points.
func New[T Positioned](bounds core.AABB, maxLeafData int) *Octree[T] {
	if maxLeafData < 1 {
		maxLeafData = 1
	}
	return &Octree[T]{
		root:        &node[T]{bounds: bounds},
		maxLeafData: maxLeafData,
	}
}

// Insert adds item to the tree, subdividing leaves as needed. Points outside the
// octree's bounds are still accepted (clamped to the nearest octant by the same
// comparison used elsewhere) since floating point round-off can occasionally place a
// hit point a hair outside the scene bounding box.
func (o *Octree[T]) Insert(item T) {
	o.root.insert(item, o.maxLeafData)
}

// Len returns the total number of points stored.
func (o *Octree[T]) Len() int {
	return o.root.count()
}

func (n *node[T]) count() int {
	if n.children == nil {
		return len(n.data)
	}
	total := 0
	for _, c := range n.children {
		if c != nil {
			total += c.count()
		}
	}
	return total
}

func (n *node[T]) insert(item T, maxLeafData int) {
	if n.children != nil {
		n.childFor(item.Position()).insert(item, maxLeafData)
		return
	}

	n.data = append(n.data, item)
	if len(n.data) > maxLeafData && n.depth < maxDepth {
		n.subdivide(maxLeafData)
	}
}

func (n *node[T]) childFor(p core.Vec3) *node[T] {
	idx := n.bounds.Octant(p)
	child := n.children[idx]
	if child == nil {
		child = &node[T]{bounds: n.bounds.OctantBounds(idx), depth: n.depth + 1}
		n.children[idx] = child
	}
	return child
}

func (n *node[T]) subdivide(maxLeafData int) {
	data := n.data
	n.data = nil
	n.children = &[8]*node[T]{}
	for _, item := range data {
		n.childFor(item.Position()).insert(item, maxLeafData)
	}
}

// neighbor is one candidate produced by a k-NN search.
type neighbor[T Positioned] struct {
	Item   T
	DistSq float64
}

// neighborHeap is a bounded max-heap on DistSq: the worst candidate currently kept sits
// at the root so it can be evicted in O(log k) when a closer one is found.
type neighborHeap[T Positioned] []neighbor[T]

func (h neighborHeap[T]) Len() int            { return len(h) }
func (h neighborHeap[T]) Less(i, j int) bool  { return h[i].DistSq > h[j].DistSq }
func (h neighborHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap[T]) Push(x any)         { *h = append(*h, x.(neighbor[T])) }
func (h *neighborHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// KNN returns up to k points nearest to q, each within maxRadius, sorted by ascending
// squared distance.
func (o *Octree[T]) KNN(q core.Vec3, k int, maxRadius float64) []neighbor[T] {
	h := &neighborHeap[T]{}
	maxDistSq := maxRadius * maxRadius
	knnVisit(o.root, q, k, &maxDistSq, h)
	return sortedFromHeap(h)
}

func knnVisit[T Positioned](n *node[T], q core.Vec3, k int, maxDistSq *float64, h *neighborHeap[T]) {
	if n == nil || n.bounds.DistanceSquared(q) > *maxDistSq {
		return
	}

	if n.children == nil {
		for _, item := range n.data {
			d := item.Position().Subtract(q).LengthSquared()
			if d > *maxDistSq {
				continue
			}
			heap.Push(h, neighbor[T]{Item: item, DistSq: d})
			if h.Len() > k {
				heap.Pop(h)
				*maxDistSq = (*h)[0].DistSq
			}
		}
		return
	}

	order := childOrder(n, q)
	for _, idx := range order {
		knnVisit(n.children[idx], q, k, maxDistSq, h)
	}
}

// childOrder returns child indices sorted by ascending distance from q to their bounds,
// so the search prunes as much of the tree as possible.
func childOrder[T Positioned](n *node[T], q core.Vec3) [8]int {
	var dist [8]float64
	var order [8]int
	for i := 0; i < 8; i++ {
		order[i] = i
		if n.children[i] != nil {
			dist[i] = n.children[i].bounds.DistanceSquared(q)
		} else {
			dist[i] = math.Inf(1)
		}
	}
	// insertion sort: 8 elements, not worth pulling in sort.Slice
	for i := 1; i < 8; i++ {
		j := i
		for j > 0 && dist[order[j-1]] > dist[order[j]] {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	return order
}

func sortedFromHeap[T Positioned](h *neighborHeap[T]) []neighbor[T] {
	n := h.Len()
	result := make([]neighbor[T], n)
	for i := n - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(neighbor[T])
	}
	return result
}

// RadiusEmpty reports whether no stored point lies within r of q.
func (o *Octree[T]) RadiusEmpty(q core.Vec3, r float64) bool {
	rSq := r * r
	return radiusEmptyVisit(o.root, q, rSq)
}

func radiusEmptyVisit[T Positioned](n *node[T], q core.Vec3, rSq float64) bool {
	if n == nil || n.bounds.DistanceSquared(q) > rSq {
		return true
	}
	if n.children == nil {
		for _, item := range n.data {
			if item.Position().Subtract(q).LengthSquared() <= rSq {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !radiusEmptyVisit(c, q, rSq) {
			return false
		}
	}
	return true
}

// Bounds returns the octree's root bounding box.
func (o *Octree[T]) Bounds() core.AABB {
	return o.root.bounds
}
