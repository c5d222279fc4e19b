package scene

import (
	"math"

	"github.com/mistfall/photonmapper/pkg/core"
)

// Sphere is a solid sphere surface.
type Sphere struct {
	Center core.Vec3
	Radius float64
	Mat    *Material
}

// NewSphere creates a new sphere.
func NewSphere(center core.Vec3, radius float64, mat *Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// Hit tests if a ray intersects with the sphere.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (Intersection, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Intersection{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return Intersection{}, false
		}
	}

	point := ray.At(root)
	return Intersection{
		T:       root,
		Point:   point,
		Normal:  s.NormalAt(point),
		Surface: s,
	}, true
}

// BoundingBox returns the sphere's axis-aligned bounding box.
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Sample returns a uniformly distributed point on the sphere's surface.
func (s *Sphere) Sample(u, v float64) core.Vec3 {
	dir := core.SampleOnUnitSphere(core.NewVec2(u, v))
	return s.Center.Add(dir.Multiply(s.Radius))
}

// NormalAt returns the outward normal at p, assumed to lie on the sphere.
func (s *Sphere) NormalAt(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Normalize()
}

// Area returns the sphere's surface area.
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Material returns the sphere's material.
func (s *Sphere) Material() *Material {
	return s.Mat
}
