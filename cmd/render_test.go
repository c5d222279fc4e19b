package cmd

import (
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/estimator"
	"github.com/mistfall/photonmapper/pkg/rlog"
	"github.com/mistfall/photonmapper/pkg/scene"
	"github.com/mistfall/photonmapper/pkg/tracer"
)

func TestRenderFrameProducesNonBlackImage(t *testing.T) {
	world := scene.NewCornellBox()
	tr := tracer.NewTracer(world, tracer.Config{
		CausticFactor:    2,
		MaxRayDepth:      8,
		MinRayDepth:      2,
		NumThreads:       2,
		UseShadowPhotons: true,
		MaxLeafPhotons:   8,
	}, rlog.New("test"))
	maps := tr.Trace(5000, 11)
	est := estimator.New(world, maps, estimator.DefaultConfig(), rlog.New("test"))

	cam := newCamera(
		core.NewVec3(278, 278, -800),
		core.NewVec3(278, 278, 0),
		core.NewVec3(0, 1, 0),
		40,
		1.0,
	)

	img := renderFrame(16, 16, 4, cam, est, 2)

	sawNonBlack := false
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || b != 0 {
				sawNonBlack = true
			}
		}
	}
	if !sawNonBlack {
		t.Error("expected at least one non-black pixel in a rendered Cornell box frame")
	}
}
