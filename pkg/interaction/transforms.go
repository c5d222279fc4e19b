package interaction

import (
	"math"
	"math/rand/v2"

	"github.com/mistfall/photonmapper/pkg/core"
)

// ReflectDiffuse samples a cosine-weighted direction over the shading hemisphere and
// returns the continuation ray, offset along the geometric normal to avoid self-shadowing.
func ReflectDiffuse(ia *Interaction, random *rand.Rand) core.Ray {
	direction := core.RandomCosineDirection(ia.ShadingNormal, random)
	return core.Ray{
		Origin:    core.OffsetPoint(ia.Position, ia.Normal),
		Direction: direction,
		MediumIOR: ia.N1,
		Specular:  false,
	}
}

// ReflectSpecular mirrors `in` about the specular normal. The returned bool reports
// whether the reflected direction stays in the shading-normal upper hemisphere; a false
// result means the microfacet perturbation produced a direction below the surface, and
// the caller should terminate the path rather than trace it.
func ReflectSpecular(ia *Interaction, in core.Vec3) (core.Ray, bool) {
	direction := in.Reflect(ia.SpecularNormal)
	ray := core.Ray{
		Origin:    core.OffsetPoint(ia.Position, ia.Normal),
		Direction: direction,
		MediumIOR: ia.N1,
		Specular:  true,
	}
	return ray, ia.ShadingNormal.Dot(direction) > 0
}

// RefractSpecular transmits `in` through the interface via Snell's law. If the
// discriminant goes negative (total internal reflection) it degrades to a specular
// reflection instead. The returned bool mirrors ReflectSpecular's upper-hemisphere check,
// evaluated on the appropriate side of the surface for whichever branch was taken.
func RefractSpecular(ia *Interaction, in core.Vec3) (core.Ray, bool) {
	iorRatio := ia.N1 / ia.N2
	cosTheta := ia.SpecularNormal.Dot(in)
	k := 1.0 - iorRatio*iorRatio*(1.0-cosTheta*cosTheta)

	if k < 0 {
		direction := in.Subtract(ia.SpecularNormal.Multiply(cosTheta * 2.0))
		ray := core.Ray{
			Origin:    core.OffsetPoint(ia.Position, ia.Normal),
			Direction: direction,
			MediumIOR: ia.N1,
			Specular:  true,
		}
		return ray, ia.ShadingNormal.Dot(direction) > 0
	}

	direction := in.Multiply(iorRatio).Subtract(ia.SpecularNormal.Multiply(iorRatio*cosTheta + math.Sqrt(k)))
	ray := core.Ray{
		Origin:    core.OffsetPoint(ia.Position, ia.Normal.Negate()),
		Direction: direction,
		MediumIOR: ia.N2,
		Specular:  true,
	}
	return ray, ia.ShadingNormal.Dot(direction) < 0
}
