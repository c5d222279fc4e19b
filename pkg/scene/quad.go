package scene

import (
	"math"

	"github.com/mistfall/photonmapper/pkg/core"
)

// Quad is a rectangular planar surface defined by a corner and two edge vectors.
type Quad struct {
	Corner core.Vec3
	U      core.Vec3
	V      core.Vec3
	Normal core.Vec3
	Mat    *Material
	d      float64
	w      core.Vec3
}

// NewQuad creates a new quad from a corner point and two edge vectors.
func NewQuad(corner, u, v core.Vec3, mat *Material) *Quad {
	normal := u.Cross(v).Normalize()
	d := normal.Dot(corner)
	cross := u.Cross(v)
	w := normal.Multiply(1.0 / normal.Dot(cross))

	return &Quad{Corner: corner, U: u, V: v, Normal: normal, Mat: mat, d: d, w: w}
}

// Hit tests if a ray intersects with the quad.
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (Intersection, bool) {
	denom := ray.Direction.Dot(q.Normal)
	if math.Abs(denom) < 1e-8 {
		return Intersection{}, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denom
	if t < tMin || t > tMax {
		return Intersection{}, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	alpha := q.w.Dot(hitVector.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return Intersection{}, false
	}

	return Intersection{
		T:       t,
		Point:   hitPoint,
		Normal:  q.Normal,
		UV:      core.NewVec2(alpha, beta),
		Surface: q,
	}, true
}

// BoundingBox returns the quad's axis-aligned bounding box, padded to avoid degenerate
// zero-thickness boxes for axis-aligned quads.
func (q *Quad) BoundingBox() core.AABB {
	corners := []core.Vec3{
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	}
	box := core.NewAABBFromPoints(corners...)
	return box.Expand(1e-4)
}

// Sample returns a point on the quad for parameters u, v in [0, 1).
func (q *Quad) Sample(u, v float64) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(u)).Add(q.V.Multiply(v))
}

// NormalAt returns the quad's constant normal.
func (q *Quad) NormalAt(p core.Vec3) core.Vec3 {
	return q.Normal
}

// Area returns the quad's surface area.
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// Material returns the quad's material.
func (q *Quad) Material() *Material {
	return q.Mat
}
