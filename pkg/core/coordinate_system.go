package core

import "math"

// CoordinateSystem is an orthonormal basis (tangent, bitangent, normal) used to move
// directions between world space and the local shading frame where Z is aligned with
// the frame's normal.
type CoordinateSystem struct {
	Tangent   Vec3
	Bitangent Vec3
	Normal    Vec3
}

// NewCoordinateSystem builds a basis around a unit normal using Duff et al.'s branchless
// construction, so that the same normal always produces the same tangent frame regardless
// of which octant it falls in.
func NewCoordinateSystem(normal Vec3) CoordinateSystem {
	sign := math.Copysign(1.0, normal.Z)
	a := -1.0 / (sign + normal.Z)
	b := normal.X * normal.Y * a

	tangent := Vec3{
		X: 1.0 + sign*normal.X*normal.X*a,
		Y: sign * b,
		Z: -sign * normal.X,
	}
	bitangent := Vec3{
		X: b,
		Y: sign + normal.Y*normal.Y*a,
		Z: -normal.Y,
	}

	return CoordinateSystem{Tangent: tangent, Bitangent: bitangent, Normal: normal}
}

// ToWorld transforms a direction expressed in the local frame (x=tangent, y=bitangent, z=normal)
// into world space.
func (cs CoordinateSystem) ToWorld(local Vec3) Vec3 {
	return cs.Tangent.Multiply(local.X).
		Add(cs.Bitangent.Multiply(local.Y)).
		Add(cs.Normal.Multiply(local.Z))
}

// ToLocal transforms a world-space direction into the local frame.
func (cs CoordinateSystem) ToLocal(world Vec3) Vec3 {
	return Vec3{
		X: world.Dot(cs.Tangent),
		Y: world.Dot(cs.Bitangent),
		Z: world.Dot(cs.Normal),
	}
}
