// Package tracer implements Pass 1 of photon mapping: it emits photons from every
// emissive surface, follows each through the scene via Russian roulette, and deposits
// it into one of four photon maps depending on the path that led to the deposit.
package tracer

import (
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/interaction"
	"github.com/mistfall/photonmapper/pkg/photon"
	"github.com/mistfall/photonmapper/pkg/rlog"
	"github.com/mistfall/photonmapper/pkg/scene"
)

// Config controls the photon tracer.
type Config struct {
	CausticFactor    float64 // 1/CausticFactor is the probability a direct or indirect hit is stored
	MaxRayDepth      int
	MinRayDepth      int // at or below this depth, the survival probability is not capped at 0.9
	NumThreads       int // 0 selects runtime.NumCPU()
	UseShadowPhotons bool
	MaxLeafPhotons   int // octree leaf subdivision threshold
}

// DefaultConfig returns the photon tracer's default settings.
func DefaultConfig() Config {
	return Config{
		CausticFactor:    10,
		MaxRayDepth:      64,
		MinRayDepth:      3,
		NumThreads:       0,
		UseShadowPhotons: true,
		MaxLeafPhotons:   8,
	}
}

// Tracer runs the emission pass against a scene.
type Tracer struct {
	scene  scene.Scene
	config Config
	logger rlog.Logger
}

// NewTracer creates a Tracer bound to sc, logging through logger.
func NewTracer(sc scene.Scene, config Config, logger rlog.Logger) *Tracer {
	return &Tracer{scene: sc, config: config, logger: logger}
}

// localPhotons accumulates one worker goroutine's emitted photons without any
// synchronization; workers never share these slices while tracing.
type localPhotons struct {
	direct, indirect, caustic []photon.Photon
	shadow                    []photon.ShadowPhoton
}

// drainInto inserts every accumulated photon into maps, draining back to front.
func (l *localPhotons) drainInto(maps *photon.Maps) {
	for i := len(l.direct) - 1; i >= 0; i-- {
		maps.Direct.Insert(l.direct[i])
	}
	for i := len(l.indirect) - 1; i >= 0; i-- {
		maps.Indirect.Insert(l.indirect[i])
	}
	for i := len(l.caustic) - 1; i >= 0; i-- {
		maps.Caustic.Insert(l.caustic[i])
	}
	for i := len(l.shadow) - 1; i >= 0; i-- {
		maps.Shadow.Insert(l.shadow[i])
	}
}

// Trace emits approximately totalPhotons photons (the exact count is rounded per light by
// flux share) and returns the four frozen photon maps the radiance estimator queries.
func (t *Tracer) Trace(totalPhotons int, seed uint64) *photon.Frozen {
	emissives := t.scene.Emissives()
	if len(emissives) == 0 || totalPhotons <= 0 {
		return photon.NewMaps(t.scene.BB(), t.config.MaxLeafPhotons).Freeze()
	}

	planner := rand.New(rand.NewPCG(seed, 1))
	chunks, lightCounts := planEmission(emissives, totalPhotons, planner)
	queue := newWorkQueue(chunks)

	numThreads := t.config.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	results := make([]*localPhotons, numThreads)
	var wg sync.WaitGroup
	for w := 0; w < numThreads; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			local := &localPhotons{}
			random := core.NewPCGRand(seed, uint64(worker)+2)
			for {
				c, ok := queue.next()
				if !ok {
					break
				}
				light := emissives[c.lightIndex]
				flux := photonFlux(light, lightCounts[c.lightIndex])
				for i := 0; i < c.count; i++ {
					t.emitPhoton(light, flux, random, local)
				}
			}
			results[worker] = local
		}(w)
	}
	wg.Wait()

	maps := photon.NewMaps(t.scene.BB(), t.config.MaxLeafPhotons)
	for _, local := range results {
		local.drainInto(maps)
	}
	return maps.Freeze()
}

// emitPhoton samples an emission point and direction on light, then follows the photon
// through the scene, storing it into local's direct, indirect or caustic buffer at each
// diffuse hit and terminating via Russian roulette.
func (t *Tracer) emitPhoton(light scene.Surface, flux core.Vec3, random *rand.Rand, local *localPhotons) {
	point := light.Sample(random.Float64(), random.Float64())
	normal := light.NormalAt(point)
	direction := core.RandomCosineDirection(normal, random)

	ray := core.Ray{
		Origin:    core.OffsetPoint(point, normal),
		Direction: direction,
		MediumIOR: t.scene.IOR(),
	}
	currentFlux := flux

	for depth := 0; ; depth++ {
		if depth == t.config.MaxRayDepth {
			t.logger.Warningf("bias introduced: max ray depth reached in Tracer.emitPhoton")
			return
		}

		isect, hit := t.scene.Intersect(ray)
		if !hit {
			return
		}

		ia := interaction.New(isect, ray, random)
		p := photon.Photon{Pos: ia.Position, Flux: currentFlux, Dir: ray.Direction}
		scaled := photon.Photon{Pos: ia.Position, Flux: currentFlux.Multiply(t.config.CausticFactor), Dir: ray.Direction}

		switch {
		case ia.Type != interaction.Diffuse:
			if ia.Type == interaction.Reflect && depth == 0 && t.config.UseShadowPhotons &&
				random.Float64() < 1.0/t.config.CausticFactor {
				t.createShadowPhotons(ray, ia, local)
			}
		case depth == 0:
			if random.Float64() < 1.0/t.config.CausticFactor {
				local.direct = append(local.direct, scaled)
				if t.config.UseShadowPhotons {
					t.createShadowPhotons(ray, ia, local)
				}
			}
		case ray.Specular:
			local.caustic = append(local.caustic, p)
		default:
			if random.Float64() < 1.0/t.config.CausticFactor {
				local.indirect = append(local.indirect, scaled)
			}
		}

		newRay, throughput, ok := t.scatter(ia, random)
		if !ok {
			return
		}
		newFlux := currentFlux.MultiplyVec(throughput)

		survival := min(1.0, newFlux.MaxChannel()/currentFlux.MaxChannel())
		if depth > t.config.MinRayDepth {
			survival = min(survival, 0.9)
		}
		if random.Float64() >= survival {
			return
		}

		newRay.Depth = depth + 1
		currentFlux = newFlux.Multiply(1.0 / survival)
		ray = newRay
	}
}

// scatter applies ia's selected branch to the incoming direction -ia.Out, returning the
// continuation ray and the per-channel factor the carried flux is multiplied by (the
// albedo for a diffuse bounce, the conductor tint or unity for a specular one). ok is
// false if the path terminates here (a rough-specular bounce perturbed below the surface).
func (t *Tracer) scatter(ia *interaction.Interaction, random *rand.Rand) (core.Ray, core.Vec3, bool) {
	switch ia.Type {
	case interaction.Diffuse:
		newRay := interaction.ReflectDiffuse(ia, random)
		return newRay, ia.Material.Albedo, true

	case interaction.Reflect:
		newRay, ok := interaction.ReflectSpecular(ia, ia.Out.Negate())
		if !ok {
			return core.Ray{}, core.Vec3{}, false
		}
		newRay.Specular = true
		tint := core.NewVec3(1, 1, 1)
		if ia.Material.Complex != nil {
			tint = scene.ConductorFresnel(ia.N1, ia.Material.Complex, ia.SpecularNormal.Dot(ia.Out))
		}
		return newRay, tint, true

	default: // interaction.Refract
		newRay, ok := interaction.RefractSpecular(ia, ia.Out.Negate())
		if !ok {
			return core.Ray{}, core.Vec3{}, false
		}
		newRay.Specular = true
		return newRay, core.NewVec3(1, 1, 1), true
	}
}

// createShadowPhotons pushes a ray through the surface ia was recorded on, in the same
// direction the incident ray was travelling, storing a shadow photon at every diffuse
// surface it passes through on the way out. This lets the radiance estimator later tell
// an occluded diffuse point from a directly-lit one without a full visibility ray.
func (t *Tracer) createShadowPhotons(ray core.Ray, ia *interaction.Interaction, local *localPhotons) {
	current := core.Ray{
		Origin:    ia.Position.Add(ray.Direction.Multiply(core.RayEpsilon)),
		Direction: ray.Direction,
		MediumIOR: ray.MediumIOR,
	}

	for depth := 0; depth < t.config.MaxRayDepth; depth++ {
		isect, hit := t.scene.Intersect(current)
		if !hit {
			return
		}

		if isect.Surface.Material().CanDiffuselyReflect() {
			local.shadow = append(local.shadow, photon.ShadowPhoton{Pos: isect.Point})
		}

		current = core.Ray{
			Origin:    isect.Point.Add(current.Direction.Multiply(core.RayEpsilon)),
			Direction: current.Direction,
			MediumIOR: current.MediumIOR,
		}
	}
}
