// Package interaction builds the per-hit shading state a photon or camera ray
// interacts with, and evaluates its BRDF along a chosen incoming direction.
package interaction

import (
	"math/rand/v2"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/scene"
)

// Type tags which of the three mutually exclusive scattering branches this Interaction
// selected.
type Type int

const (
	Reflect Type = iota
	Refract
	Diffuse
)

// Interaction is the reconciled shading state at a ray/surface hit: normals facing the
// incoming ray, the medium on either side, and the branch this hit will scatter into.
type Interaction struct {
	T              float64
	Position       core.Vec3
	Normal         core.Vec3 // geometric normal, flipped to face -ray.direction
	ShadingNormal  core.Vec3 // shading normal, flipped to match Normal
	SpecularNormal core.Vec3 // shading normal, or a perturbed microfacet normal for rough specular materials
	Material       *scene.Material
	Out            core.Vec3 // -ray.direction
	N1, N2         float64   // incident / transmitted medium refractive index
	Inside         bool      // true if the ray is exiting a dielectric back into the ambient medium
	Type           Type
	CS             core.CoordinateSystem // frame used for BRDF evaluation and diffuse sampling
}

// New reconciles a scene.Intersection against the ray that produced it and selects a
// scattering branch, consuming one uniform sample from random for branch selection (none
// for perfect mirrors and conductors) and, for rough specular materials, two more to
// perturb the microfacet normal.
func New(isect scene.Intersection, ray core.Ray, random *rand.Rand) *Interaction {
	mat := isect.Surface.Material()
	normal := isect.Normal
	cosTheta := ray.Direction.Dot(normal)

	var inside bool
	var n2 float64
	if cosTheta < 0.0 || mat.Opaque() {
		inside = false
		n2 = mat.IOR
	} else {
		inside = true
		n2 = mat.ExternalIOR
	}

	shadingNormal := normal
	if cosTheta > 0.0 {
		normal = normal.Negate()
		shadingNormal = shadingNormal.Negate()
	}

	ia := &Interaction{
		T:             isect.T,
		Position:      isect.Point,
		Normal:        normal,
		ShadingNormal: shadingNormal,
		Material:      mat,
		Out:           ray.Direction.Negate(),
		N1:            ray.MediumIOR,
		N2:            n2,
		Inside:        inside,
	}

	cs := core.NewCoordinateSystem(shadingNormal)

	if mat.RoughSpecular() {
		localMicroNormal := mat.SpecularMicrofacetNormal(random)
		specularNormal := cs.ToWorld(localMicroNormal)
		ia.SpecularNormal = specularNormal
		ia.selectType(random, specularNormal)
		if ia.Type != Diffuse {
			cs = core.NewCoordinateSystem(specularNormal)
		}
	} else {
		ia.SpecularNormal = shadingNormal
		ia.selectType(random, shadingNormal)
	}

	ia.CS = cs
	return ia
}

// selectType always picks REFLECT for perfect mirrors and conductors without drawing a
// sample. Otherwise it draws one uniform sample and picks REFLECT, REFRACT or DIFFUSE with
// probabilities R, (1-R)*T and (1-R)*(1-T), where R is the dielectric Fresnel
// reflectance evaluated against specularNormal.
func (ia *Interaction) selectType(random *rand.Rand, specularNormal core.Vec3) {
	if ia.Material.PerfectMirror() {
		ia.Type = Reflect
		return
	}

	r := scene.FresnelDielectric(ia.N1, ia.N2, specularNormal.Dot(ia.Out))
	transparency := ia.Material.Transparency
	p := random.Float64()

	switch {
	case r > p:
		ia.Type = Reflect
	case r+(1-r)*transparency > p:
		ia.Type = Refract
	default:
		ia.Type = Diffuse
	}
}

// BRDF evaluates the material's BRDF for incoming direction `in` (world space) against
// this interaction's stored outgoing direction. Returns zero at grazing angles.
func (ia *Interaction) BRDF(in core.Vec3) core.Vec3 {
	localIn := ia.CS.ToLocal(in)
	if localIn.Z == 0.0 {
		return core.Vec3{}
	}

	if ia.Type != Diffuse {
		localOut := ia.CS.ToLocal(ia.Out)
		brdf := ia.Material.SpecularBRDF(localIn, localOut, ia.Inside)
		if ia.Material.Complex != nil {
			brdf = brdf.MultiplyVec(scene.ConductorFresnel(ia.N1, ia.Material.Complex, localOut.Z))
		}
		return brdf
	}

	return ia.Material.DiffuseBRDF(localIn, ia.CS.ToLocal(ia.Out))
}
