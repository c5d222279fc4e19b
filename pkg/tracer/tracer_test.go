package tracer

import (
	"testing"

	"github.com/mistfall/photonmapper/pkg/rlog"
	"github.com/mistfall/photonmapper/pkg/scene"
)

func TestTraceDepositsPhotonsIntoMaps(t *testing.T) {
	world := scene.NewCornellBox()
	world.Preprocess()

	tr := NewTracer(world, Config{
		CausticFactor:    2,
		MaxRayDepth:      8,
		MinRayDepth:      2,
		NumThreads:       2,
		UseShadowPhotons: true,
		MaxLeafPhotons:   8,
	}, rlog.New("test"))

	frozen := tr.Trace(2000, 42)
	counts := frozen.Counts()

	if counts.Direct == 0 && counts.Indirect == 0 && counts.Caustic == 0 {
		t.Errorf("expected at least some photons stored across the three light maps, got %+v", counts)
	}
}

func TestTraceNoEmissivesReturnsEmptyMaps(t *testing.T) {
	world := scene.NewWorld(nil, 1.0)
	world.Preprocess()

	tr := NewTracer(world, DefaultConfig(), rlog.New("test"))
	frozen := tr.Trace(1000, 1)
	counts := frozen.Counts()

	if counts.Direct != 0 || counts.Indirect != 0 || counts.Caustic != 0 || counts.Shadow != 0 {
		t.Errorf("expected empty maps with no emissives, got %+v", counts)
	}
}

func TestTraceZeroPhotonsReturnsEmptyMaps(t *testing.T) {
	world := scene.NewCornellBox()
	world.Preprocess()

	tr := NewTracer(world, DefaultConfig(), rlog.New("test"))
	frozen := tr.Trace(0, 1)
	counts := frozen.Counts()

	if counts.Direct != 0 || counts.Indirect != 0 || counts.Caustic != 0 {
		t.Errorf("expected empty maps with zero requested photons, got %+v", counts)
	}
}
