package scene

import "github.com/mistfall/photonmapper/pkg/core"

// World is the concrete Scene implementation: a flat list of surfaces accelerated by a
// BVH, plus the ambient medium index every ray starts and returns to.
type World struct {
	Surfaces   []Surface
	AmbientIOR float64

	bvh       *bvh
	emissives []Surface
}

// NewWorld builds a World from surfaces and preprocesses it (BVH + emissive list) so it
// is ready for concurrent use.
func NewWorld(surfaces []Surface, ambientIOR float64) *World {
	w := &World{Surfaces: surfaces, AmbientIOR: ambientIOR}
	w.Preprocess()
	return w
}

// Preprocess (re)builds the BVH and emissive list. Call after mutating Surfaces.
func (w *World) Preprocess() {
	w.bvh = newBVH(w.Surfaces)
	w.emissives = w.emissives[:0]
	for _, s := range w.Surfaces {
		if !s.Material().Emittance.IsZero() {
			w.emissives = append(w.emissives, s)
		}
	}
}

// Intersect implements Scene.
func (w *World) Intersect(ray core.Ray) (Intersection, bool) {
	return w.bvh.Intersect(ray, core.RayEpsilon, 1e30)
}

// BB implements Scene.
func (w *World) BB() core.AABB {
	if w.bvh.root == nil {
		r := w.bvh.radius
		return core.NewAABB(w.bvh.center.Subtract(core.NewVec3(r, r, r)), w.bvh.center.Add(core.NewVec3(r, r, r)))
	}
	return w.bvh.root.boundingBox
}

// Emissives implements Scene.
func (w *World) Emissives() []Surface {
	return w.emissives
}

// IOR implements Scene.
func (w *World) IOR() float64 {
	return w.AmbientIOR
}
