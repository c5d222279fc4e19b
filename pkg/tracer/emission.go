package tracer

import (
	"math"
	"math/rand/v2"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/scene"
)

// photonsPerChunk bounds how many photons a single work-queue chunk emits, so a
// light carrying most of a scene's flux still gets spread across many workers.
const photonsPerChunk = 100000

// planEmission splits totalPhotons across emissives proportional to each light's share
// of total radiant flux (the sum of the emittance channels times area, rounded to the
// nearest whole photon), breaks each light's share into
// photonsPerChunk-sized chunks, and shuffles the combined chunk list so no worker goroutine
// draws a long run of chunks against the same light. Returns the shuffled chunks and, per
// light index, the number of photons actually assigned to that light (needed to compute
// the flux each individual photon from that light carries).
func planEmission(emissives []scene.Surface, totalPhotons int, random *rand.Rand) ([]chunk, []int) {
	flux := make([]float64, len(emissives))
	totalFlux := 0.0
	for i, e := range emissives {
		em := e.Material().Emittance
		flux[i] = (math.Abs(em.X) + math.Abs(em.Y) + math.Abs(em.Z)) * e.Area()
		totalFlux += flux[i]
	}

	counts := make([]int, len(emissives))
	var chunks []chunk
	if totalFlux <= 0 {
		return chunks, counts
	}

	for i, f := range flux {
		remaining := int(math.Round(float64(totalPhotons) * f / totalFlux))
		counts[i] = remaining
		for remaining > 0 {
			n := remaining
			if n > photonsPerChunk {
				n = photonsPerChunk
			}
			chunks = append(chunks, chunk{lightIndex: i, count: n})
			remaining -= n
		}
	}

	random.Shuffle(len(chunks), func(a, b int) { chunks[a], chunks[b] = chunks[b], chunks[a] })
	return chunks, counts
}

// photonFlux returns the flux a single photon emitted from light carries, given that
// photonsForLight photons were assigned to it in total. Conserves the light's total
// radiant flux (emittance times area) across however many photons represent it.
func photonFlux(light scene.Surface, photonsForLight int) core.Vec3 {
	if photonsForLight == 0 {
		return core.Vec3{}
	}
	return light.Material().Emittance.Multiply(light.Area() / float64(photonsForLight))
}
