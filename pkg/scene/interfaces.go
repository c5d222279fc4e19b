package scene

import "github.com/mistfall/photonmapper/pkg/core"

// Intersection is what a Surface reports back on a hit. Normal is the geometric normal,
// not yet reconciled with the ray direction; pkg/interaction does that reconciliation.
type Intersection struct {
	T       float64
	Point   core.Vec3
	Normal  core.Vec3
	UV      core.Vec2
	Surface Surface
}

// Surface is anything the renderer can intersect, sample as a light emitter, and shade.
type Surface interface {
	Hit(ray core.Ray, tMin, tMax float64) (Intersection, bool)
	BoundingBox() core.AABB
	// Sample returns a world-space point on the surface for parameters u, v in [0, 1).
	Sample(u, v float64) core.Vec3
	NormalAt(p core.Vec3) core.Vec3
	Area() float64
	Material() *Material
}

// Scene is the read-only, thread-safe collaborator the photon tracer and radiance
// estimator query. Scene loading and camera-ray generation live outside this module.
type Scene interface {
	Intersect(ray core.Ray) (Intersection, bool)
	BB() core.AABB
	// Emissives returns every surface with non-zero emittance.
	Emissives() []Surface
	// IOR is the refractive index of the ambient medium the scene is immersed in
	// (normally 1.0, air).
	IOR() float64
}
