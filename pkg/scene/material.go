package scene

import (
	"math"
	"math/rand/v2"

	"github.com/mistfall/photonmapper/pkg/core"
)

// Kind tags the scattering behavior a Material exhibits. The renderer dispatches on
// Kind rather than through virtual methods, since the small closed set of behaviors
// (diffuse, mirror, dielectric, rough dielectric, conductor) doesn't benefit from an
// interface's extensibility and a tagged switch keeps the hot path allocation-free.
type Kind int

const (
	Diffuse Kind = iota
	Mirror
	Dielectric
	RoughDielectric
	Conductor
)

// ComplexIOR is a complex refractive index (n + ik), evaluated per RGB channel, used by
// Conductor materials to produce colored specular highlights (e.g. gold, copper).
type ComplexIOR struct {
	N core.Vec3 // real part (refractive index) per channel
	K core.Vec3 // imaginary part (extinction coefficient) per channel
}

// Material describes how a surface scatters and emits light.
type Material struct {
	Kind Kind

	Albedo    core.Vec3 // diffuse reflectance
	Emittance core.Vec3 // radiant exitance; zero for non-emitters

	IOR         float64 // refractive index of the material's interior
	ExternalIOR float64 // refractive index of the medium outside (usually 1.0, air)

	Transparency       float64 // fraction of non-reflected energy that transmits, for Dielectric/RoughDielectric
	ReflectProbability float64 // Russian-roulette survival probability used by the radiance estimator
	Roughness          float64 // microfacet roughness, RoughDielectric/Conductor only

	Complex *ComplexIOR // non-nil selects the conductor Fresnel path
}

// NewDiffuse creates a Lambertian material.
func NewDiffuse(albedo core.Vec3) *Material {
	return &Material{Kind: Diffuse, Albedo: albedo, IOR: 1.0, ExternalIOR: 1.0, ReflectProbability: 0.8}
}

// NewEmissive creates a black diffuse material that emits light and absorbs everything
// it reflects (it is never itself lit by the estimator's recursive bounce).
func NewEmissive(emittance core.Vec3) *Material {
	return &Material{Kind: Diffuse, Emittance: emittance, IOR: 1.0, ExternalIOR: 1.0, ReflectProbability: 0}
}

// NewMirror creates a perfect specular reflector.
func NewMirror() *Material {
	return &Material{Kind: Mirror, IOR: 1.0, ExternalIOR: 1.0, ReflectProbability: 0.9}
}

// NewDielectric creates a smooth transparent material (glass, water).
func NewDielectric(ior float64) *Material {
	return &Material{Kind: Dielectric, IOR: ior, ExternalIOR: 1.0, Transparency: 1.0, ReflectProbability: 0.9}
}

// NewRoughDielectric creates a frosted-glass material.
func NewRoughDielectric(ior, roughness float64) *Material {
	return &Material{Kind: RoughDielectric, IOR: ior, ExternalIOR: 1.0, Transparency: 1.0, Roughness: roughness, ReflectProbability: 0.9}
}

// NewConductor creates a metallic material with a colored specular response.
func NewConductor(complex ComplexIOR, roughness float64) *Material {
	return &Material{Kind: Conductor, IOR: 1.0, ExternalIOR: 1.0, Roughness: roughness, Complex: &complex, ReflectProbability: 0.9}
}

// Opaque reports whether the material blocks transmission entirely.
func (m *Material) Opaque() bool {
	return m.Kind == Diffuse || m.Kind == Mirror || m.Kind == Conductor
}

// PerfectMirror reports whether the material always reflects, skipping Fresnel sampling.
func (m *Material) PerfectMirror() bool {
	return m.Kind == Mirror || m.Kind == Conductor
}

// RoughSpecular reports whether the specular lobe should be perturbed by a microfacet
// normal rather than treated as an ideal mirror/refraction direction.
func (m *Material) RoughSpecular() bool {
	return (m.Kind == RoughDielectric || m.Kind == Conductor) && m.Roughness > 0
}

// CanDiffuselyReflect reports whether the material has a diffuse lobe, i.e. whether a
// shadow-photon ray passing through this surface stores a shadow photon here.
func (m *Material) CanDiffuselyReflect() bool {
	return m.Kind == Diffuse
}

// DiffuseBRDF evaluates the Lambertian BRDF (constant, independent of direction).
func (m *Material) DiffuseBRDF(localIn, localOut core.Vec3) core.Vec3 {
	return m.Albedo.Multiply(1.0 / math.Pi)
}

// SpecularBRDF evaluates the delta-function throughput of a REFLECT/REFRACT event. The
// Fresnel weighting that decides reflect-vs-refract has already been consumed by branch
// selection, so the ideal specular direction always transmits unit throughput; only a
// Conductor's per-channel tint is applied here, by the caller multiplying in
// ConductorFresnel.
func (m *Material) SpecularBRDF(localIn, localOut core.Vec3, inside bool) core.Vec3 {
	return core.NewVec3(1, 1, 1)
}

// SpecularMicrofacetNormal samples a microfacet normal around local Z, in the local
// shading frame, using roughness as the lobe width. Returns (0,0,1) when the material
// is not rough (verbatim specular direction).
func (m *Material) SpecularMicrofacetNormal(random *rand.Rand) core.Vec3 {
	if m.Roughness <= 0 {
		return core.NewVec3(0, 0, 1)
	}
	alpha := m.Roughness * m.Roughness
	u1, u2 := random.Float64(), random.Float64()
	tan2Theta := alpha * alpha * u1 / (1 - u1)
	cosTheta := 1.0 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u2
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// ConductorFresnel returns the per-channel Fresnel reflectance of a conductor with
// refractive index c illuminated through a medium of index n1, at the given cosine of
// incidence. Uses Schlick's approximation with a normal-incidence reflectance F0 derived
// from the complex index, the standard extension of the dielectric Schlick term to
// absorbing materials.
func ConductorFresnel(n1 float64, c *ComplexIOR, cosTheta float64) core.Vec3 {
	f0 := func(n, k float64) float64 {
		num := (n-n1)*(n-n1) + k*k
		den := (n+n1)*(n+n1) + k*k
		return num / den
	}
	r0 := core.NewVec3(f0(c.N.X, c.K.X), f0(c.N.Y, c.K.Y), f0(c.N.Z, c.K.Z))
	schlick := math.Pow(1-math.Abs(cosTheta), 5)
	return r0.Add(core.NewVec3(1, 1, 1).Subtract(r0).Multiply(schlick))
}

// FresnelDielectric returns the unpolarized Fresnel reflectance at a dielectric boundary
// between media of index n1 (incident side) and n2, using Schlick's approximation.
func FresnelDielectric(n1, n2, cosTheta float64) float64 {
	ratio := n1 / n2
	r0 := (1 - ratio) / (1 + ratio)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-math.Abs(cosTheta), 5)
}
