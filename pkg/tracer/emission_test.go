package tracer

import (
	"math/rand/v2"
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/scene"
)

func TestPlanEmissionSplitsByFluxShare(t *testing.T) {
	bright := scene.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), scene.NewEmissive(core.NewVec3(10, 10, 10)))
	dim := scene.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), scene.NewEmissive(core.NewVec3(1, 1, 1)))
	emissives := []scene.Surface{bright, dim}

	random := rand.New(rand.NewPCG(1, 1))
	chunks, counts := planEmission(emissives, 100000, random)

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	if counts[0] <= counts[1] {
		t.Errorf("brighter, larger light should receive more photons: got %v", counts)
	}

	total := 0
	for _, c := range chunks {
		total += c.count
	}
	if total != counts[0]+counts[1] {
		t.Errorf("chunk counts should sum to the per-light totals: chunks sum %d, totals %v", total, counts)
	}
}

func TestPlanEmissionNoEmissivesReturnsNothing(t *testing.T) {
	random := rand.New(rand.NewPCG(2, 2))
	chunks, counts := planEmission(nil, 1000, random)
	if len(chunks) != 0 {
		t.Errorf("expected no chunks with no emissives, got %d", len(chunks))
	}
	if len(counts) != 0 {
		t.Errorf("expected no counts with no emissives, got %v", counts)
	}
}

func TestPhotonFluxConservesTotalFlux(t *testing.T) {
	light := scene.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), scene.NewEmissive(core.NewVec3(4, 4, 4)))
	perPhoton := photonFlux(light, 1000)
	total := perPhoton.Multiply(1000)
	want := light.Material().Emittance.Multiply(light.Area())
	if total != want {
		t.Errorf("total flux across photons = %v, want %v", total, want)
	}
}

func TestPhotonFluxZeroPhotonsIsZero(t *testing.T) {
	light := scene.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), scene.NewEmissive(core.NewVec3(4, 4, 4)))
	if !photonFlux(light, 0).IsZero() {
		t.Error("photonFlux with zero photons assigned should be zero")
	}
}
