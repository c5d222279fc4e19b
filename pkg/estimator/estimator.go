// Package estimator implements Pass 2 of photon mapping: it walks a camera ray through
// the scene and estimates outgoing radiance at each diffuse hit by combining next-event
// estimation with density estimates pulled from the four photon maps Pass 1 produced.
package estimator

import (
	"math"
	"math/rand/v2"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/interaction"
	"github.com/mistfall/photonmapper/pkg/octree"
	"github.com/mistfall/photonmapper/pkg/photon"
	"github.com/mistfall/photonmapper/pkg/rlog"
	"github.com/mistfall/photonmapper/pkg/scene"
)

// Config controls the radiance estimator.
type Config struct {
	KNearestPhotons     int
	MaxRadius           float64
	MaxCausticRadius    float64
	MaxRayDepth         int
	MinRayDepth         int // below this depth, Russian roulette always survives
	DirectVisualization bool // if true, never continue past a diffuse hit with NEE; always density-estimate
	ShadowPhotonRadius  float64
}

// DefaultConfig returns the radiance estimator's default settings.
func DefaultConfig() Config {
	return Config{
		KNearestPhotons:     50,
		MaxRadius:           50,
		MaxCausticRadius:    20,
		MaxRayDepth:         64,
		MinRayDepth:         3,
		DirectVisualization: false,
		ShadowPhotonRadius:  10,
	}
}

// Estimator evaluates radiance along camera rays against a scene and its frozen photon maps.
type Estimator struct {
	scene  scene.Scene
	maps   *photon.Frozen
	config Config
	logger rlog.Logger
}

// New creates an Estimator bound to sc and the photon maps Pass 1 produced, logging through logger.
func New(sc scene.Scene, maps *photon.Frozen, config Config, logger rlog.Logger) *Estimator {
	return &Estimator{scene: sc, maps: maps, config: config, logger: logger}
}

// SampleRay estimates the radiance arriving back along ray (a camera ray at depth 0).
func (e *Estimator) SampleRay(ray core.Ray, random *rand.Rand) core.Vec3 {
	return e.estimateRadiance(ray, random)
}

// estimateRadiance implements the recursive radiance estimate. Every call corresponds to
// one ray/surface hit; it returns the outgoing radiance along -ray.Direction at that hit.
func (e *Estimator) estimateRadiance(ray core.Ray, random *rand.Rand) core.Vec3 {
	if ray.Depth == e.config.MaxRayDepth {
		e.logger.Warningf("bias introduced: max ray depth reached in Estimator.estimateRadiance")
		return core.Vec3{}
	}

	isect, hit := e.scene.Intersect(ray)
	if !hit {
		return core.Vec3{}
	}

	ia := interaction.New(isect, ray, random)
	diffuse := ray.Depth != 0 && !ray.Specular

	// a diffuse-spawned REFLECT/REFRACT ray's contribution was already accounted for at
	// the diffuse bounce that spawned it, via NEE plus a recursive indirect term; walking
	// it further here would double count.
	if diffuse && ia.Type != interaction.Diffuse {
		return core.Vec3{}
	}

	var emittance core.Vec3
	if ray.Depth == 0 || ray.Specular {
		emittance = ia.Material.Emittance
	}

	switch ia.Type {
	case interaction.Reflect:
		bounce, ok := interaction.ReflectSpecular(ia, ia.Out.Negate())
		if !ok {
			return emittance
		}
		bounce.Depth = ray.Depth + 1
		return emittance.Add(e.estimateRadiance(bounce, random).MultiplyVec(ia.BRDF(bounce.Direction)))

	case interaction.Refract:
		bounce, ok := interaction.RefractSpecular(ia, ia.Out.Negate())
		if !ok {
			return emittance
		}
		bounce.Depth = ray.Depth + 1
		return emittance.Add(e.estimateRadiance(bounce, random).MultiplyVec(ia.BRDF(bounce.Direction)))
	}

	var absorb float64
	if ray.Depth > e.config.MinRayDepth {
		absorb = 1.0 - ia.Material.ReflectProbability
	}
	if absorb > 0 && random.Float64() < absorb {
		return core.Vec3{}
	}

	caustics := e.estimateCausticRadiance(ia)

	hasShadowPhoton := e.maps.HasShadowPhoton(ia.Position, e.config.ShadowPhotonRadius)
	continueWithNEE := !e.config.DirectVisualization && (ray.Depth == 0 || ray.Specular || hasShadowPhoton)

	var direct, indirect core.Vec3

	if continueWithNEE {
		direct = e.sampleDirect(ia, random)

		bounce := interaction.ReflectDiffuse(ia, random)
		bounce.Depth = ray.Depth + 1
		indirectRadiance := e.estimateRadiance(bounce, random)
		indirect = indirectRadiance.MultiplyVec(ia.BRDF(bounce.Direction)).Multiply(math.Pi)
	} else {
		direct = e.estimateDensity(e.maps.Direct, ia)
		indirect = e.estimateDensity(e.maps.Indirect, ia)
	}

	total := emittance.Add(caustics).Add(direct).Add(indirect)
	if absorb > 0 {
		total = total.Multiply(1.0 / (1.0 - absorb))
	}
	return total
}

// estimateDensity performs straight-from-the-map density estimation: it pulls the k
// nearest photons within MaxRadius and sums flux*BRDF/r^2, skipping photons that arrived
// from the back side of the surface.
func (e *Estimator) estimateDensity(m *octree.Linear[photon.Photon], ia *interaction.Interaction) core.Vec3 {
	neighbors := m.KNN(ia.Position, e.config.KNearestPhotons, e.config.MaxRadius)
	if len(neighbors) == 0 {
		return core.Vec3{}
	}

	maxDistSq := neighbors[len(neighbors)-1].DistSq
	if maxDistSq <= 0 {
		return core.Vec3{}
	}

	sum := core.Vec3{}
	for _, n := range neighbors {
		if n.Item.Dir.Dot(ia.Normal) >= 0 {
			continue
		}
		sum = sum.Add(n.Item.Flux.MultiplyVec(ia.BRDF(n.Item.Dir.Negate())))
	}
	return sum.Multiply(1.0 / maxDistSq)
}

// estimateCausticRadiance performs cone-filtered density estimation against the caustic
// map, weighting each photon by a linear cone falloff instead of treating every photon in
// range equally.
func (e *Estimator) estimateCausticRadiance(ia *interaction.Interaction) core.Vec3 {
	neighbors := e.maps.Caustic.KNN(ia.Position, e.config.KNearestPhotons, e.config.MaxCausticRadius)
	if len(neighbors) == 0 {
		return core.Vec3{}
	}

	maxDistSq := neighbors[len(neighbors)-1].DistSq
	if maxDistSq <= 0 {
		return core.Vec3{}
	}

	sum := core.Vec3{}
	for _, n := range neighbors {
		if n.Item.Dir.Dot(ia.Normal) >= 0 {
			continue
		}
		wp := math.Max(0, 1.0-math.Sqrt(n.DistSq/maxDistSq))
		sum = sum.Add(n.Item.Flux.MultiplyVec(ia.BRDF(n.Item.Dir.Negate())).Multiply(wp))
	}
	return sum.Multiply(1.0 / (maxDistSq / 3.0))
}

// sampleDirect performs next-event estimation: it samples a point on a random emissive
// surface, checks mutual visibility, and returns the direct-lighting contribution if
// visible.
func (e *Estimator) sampleDirect(ia *interaction.Interaction, random *rand.Rand) core.Vec3 {
	emissives := e.scene.Emissives()
	if len(emissives) == 0 {
		return core.Vec3{}
	}

	light := emissives[random.IntN(len(emissives))]
	lightPDF := 1.0 / float64(len(emissives))

	point := light.Sample(random.Float64(), random.Float64())
	toLight := point.Subtract(ia.Position)
	distSq := toLight.LengthSquared()
	if distSq <= 0 {
		return core.Vec3{}
	}
	dist := math.Sqrt(distSq)
	dir := toLight.Multiply(1.0 / dist)

	cosSurface := dir.Dot(ia.Normal)
	if cosSurface <= 0 {
		return core.Vec3{}
	}

	lightNormal := light.NormalAt(point)
	cosLight := -dir.Dot(lightNormal)
	if cosLight <= 0 {
		return core.Vec3{}
	}

	shadowRay := core.Ray{
		Origin:    core.OffsetPoint(ia.Position, ia.Normal),
		Direction: dir,
		MediumIOR: ia.N1,
	}
	shadowIsect, hit := e.scene.Intersect(shadowRay)
	if hit && shadowIsect.T < dist-1e-4 {
		return core.Vec3{}
	}

	solidAnglePDF := (distSq / (cosLight * light.Area())) * lightPDF
	if solidAnglePDF <= 0 {
		return core.Vec3{}
	}

	radiance := light.Material().Emittance.MultiplyVec(ia.BRDF(dir)).Multiply(cosSurface / solidAnglePDF)
	return radiance
}
