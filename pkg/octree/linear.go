package octree

import (
	"container/heap"

	"github.com/mistfall/photonmapper/pkg/core"
)

// linearNode is one entry of a Linear octree's packed array. Leaves carry a
// [dataStart, dataStart+dataCount) slice into the shared payload array; internal nodes
// carry firstChild, the index of the first of eight contiguous children.
type linearNode struct {
	bounds     core.AABB
	dataStart  int
	dataCount  int // -1 for internal nodes
	firstChild int // -1 for leaves
}

// Linear is the read-only, cache-friendly form of an Octree: nodes are packed
// depth-first into a single slice so children of the same parent sit contiguously and
// traversal never chases a pointer outside the two backing arrays.
type Linear[T Positioned] struct {
	nodes   []linearNode
	payload []T
}

// Build packs o into a Linear octree. o should not be inserted into afterward.
func Build[T Positioned](o *Octree[T]) *Linear[T] {
	nodes := make([]linearNode, 1)
	payload := make([]T, 0, o.Len())
	buildLinear(o.root, &nodes, &payload, 0)
	return &Linear[T]{nodes: nodes, payload: payload}
}

func buildLinear[T Positioned](n *node[T], nodes *[]linearNode, payload *[]T, slot int) {
	if n == nil || n.children == nil {
		dataStart := len(*payload)
		count := 0
		if n != nil {
			*payload = append(*payload, n.data...)
			count = len(n.data)
		}
		bounds := core.AABB{}
		if n != nil {
			bounds = n.bounds
		}
		(*nodes)[slot] = linearNode{bounds: bounds, dataStart: dataStart, dataCount: count, firstChild: -1}
		return
	}

	firstChild := len(*nodes)
	for i := 0; i < 8; i++ {
		*nodes = append(*nodes, linearNode{})
	}
	(*nodes)[slot] = linearNode{bounds: n.bounds, dataCount: -1, firstChild: firstChild}
	for i := 0; i < 8; i++ {
		buildLinear(n.children[i], nodes, payload, firstChild+i)
	}
}

// Len returns the number of points stored.
func (l *Linear[T]) Len() int {
	return len(l.payload)
}

// Empty reports whether the map holds no photons at all.
func (l *Linear[T]) Empty() bool {
	return len(l.payload) == 0
}

// KNN returns up to k points nearest to q, each within maxRadius, sorted by ascending
// squared distance. Semantics match Octree.KNN.
func (l *Linear[T]) KNN(q core.Vec3, k int, maxRadius float64) []neighbor[T] {
	h := &neighborHeap[T]{}
	maxDistSq := maxRadius * maxRadius
	l.knnVisit(0, q, k, &maxDistSq, h)
	return sortedFromHeap(h)
}

func (l *Linear[T]) knnVisit(idx int, q core.Vec3, k int, maxDistSq *float64, h *neighborHeap[T]) {
	n := &l.nodes[idx]
	if n.bounds.DistanceSquared(q) > *maxDistSq {
		return
	}

	if n.firstChild < 0 {
		for i := n.dataStart; i < n.dataStart+n.dataCount; i++ {
			item := l.payload[i]
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

	order := l.childOrder(n.firstChild, q)
	for _, childIdx := range order {
		l.knnVisit(childIdx, q, k, maxDistSq, h)
	}
}

func (l *Linear[T]) childOrder(firstChild int, q core.Vec3) [8]int {
	var dist [8]float64
	var order [8]int
	for i := 0; i < 8; i++ {
		order[i] = firstChild + i
		dist[i] = l.nodes[firstChild+i].bounds.DistanceSquared(q)
	}
	for i := 1; i < 8; i++ {
		j := i
		for j > 0 && dist[j-1] > dist[j] {
			dist[j-1], dist[j] = dist[j], dist[j-1]
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	return order
}

// RadiusEmpty reports whether no stored point lies within r of q.
func (l *Linear[T]) RadiusEmpty(q core.Vec3, r float64) bool {
	return l.radiusEmptyVisit(0, q, r*r)
}

func (l *Linear[T]) radiusEmptyVisit(idx int, q core.Vec3, rSq float64) bool {
	n := &l.nodes[idx]
	if n.bounds.DistanceSquared(q) > rSq {
		return true
	}
	if n.firstChild < 0 {
		for i := n.dataStart; i < n.dataStart+n.dataCount; i++ {
			if l.payload[i].Position().Subtract(q).LengthSquared() <= rSq {
				return false
			}
		}
		return true
	}
	for i := 0; i < 8; i++ {
		if !l.radiusEmptyVisit(n.firstChild+i, q, rSq) {
			return false
		}
	}
	return true
}
