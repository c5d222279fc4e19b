package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/mistfall/photonmapper/pkg/config"
	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/estimator"
	"github.com/mistfall/photonmapper/pkg/photon"
	"github.com/mistfall/photonmapper/pkg/scene"
	"github.com/mistfall/photonmapper/pkg/tracer"
)

// RenderFrame loads the photon_map settings from -config, builds the demo Cornell-box
// scene, runs both passes of the integrator, and writes the resulting frame to -out.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	data, err := os.ReadFile(ctx.String("config"))
	if err != nil {
		return err
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return err
	}

	width := ctx.Int("width")
	height := ctx.Int("height")
	spp := ctx.Int("spp")

	world := scene.NewCornellBox()
	cam := newCamera(
		core.NewVec3(278, 278, -800),
		core.NewVec3(278, 278, 0),
		core.NewVec3(0, 1, 0),
		40,
		float64(width)/float64(height),
	)

	numThreads := cfg.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	logger.Noticef("tracing photons: target emissions %d, caustic factor %.1f", cfg.Emissions, cfg.CausticFactor)
	tracerCfg := tracer.Config{
		CausticFactor:    cfg.CausticFactor,
		MaxRayDepth:      cfg.MaxRayDepth,
		MinRayDepth:      cfg.MinRayDepth,
		NumThreads:       numThreads,
		UseShadowPhotons: cfg.ShadowPhotonsEnabled(),
		MaxLeafPhotons:   cfg.MaxPhotonsPerOctreeLeaf,
	}
	tr := tracer.NewTracer(world, tracerCfg, logger)

	start := time.Now()
	maps := tr.Trace(int(float64(cfg.Emissions)*cfg.CausticFactor), uint64(time.Now().UnixNano()))
	traceTime := time.Since(start)
	counts := maps.Counts()

	est := estimator.New(world, maps, estimator.Config{
		KNearestPhotons:     cfg.KNearestPhotons,
		MaxRadius:           cfg.MaxRadius,
		MaxCausticRadius:    cfg.MaxCausticRadius,
		MaxRayDepth:         cfg.MaxRayDepth,
		MinRayDepth:         cfg.MinRayDepth,
		DirectVisualization: cfg.DirectVisualization,
		ShadowPhotonRadius:  cfg.MaxRadius,
	}, logger)

	logger.Notice("rendering frame")
	start = time.Now()
	img := renderFrame(width, height, spp, cam, est, numThreads)
	renderTime := time.Since(start)

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	displayFrameStats(counts, traceTime, renderTime, out)
	return nil
}

// renderFrame splits the image into one row-band per worker and fills it with spp
// samples per pixel, tonemapped with a simple gamma-corrected clamp.
func renderFrame(width, height, spp int, cam *camera, est *estimator.Estimator, numThreads int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowsPerWorker := (height + numThreads - 1) / numThreads
	var wg sync.WaitGroup
	for w := 0; w < numThreads; w++ {
		rowStart := w * rowsPerWorker
		rowEnd := min(rowStart+rowsPerWorker, height)
		if rowStart >= rowEnd {
			continue
		}

		wg.Add(1)
		go func(rowStart, rowEnd, worker int) {
			defer wg.Done()
			random := rand.New(rand.NewPCG(uint64(worker)+1, uint64(worker)+2))

			for j := rowStart; j < rowEnd; j++ {
				for i := 0; i < width; i++ {
					sum := core.Vec3{}
					for s := 0; s < spp; s++ {
						u := (float64(i) + random.Float64()) / float64(width)
						v := (float64(height-1-j) + random.Float64()) / float64(height)
						ray := cam.getRay(u, v)
						sum = sum.Add(est.SampleRay(ray, random))
					}
					avg := sum.Multiply(1.0 / float64(spp))
					img.Set(i, j, toRGBA(avg))
				}
			}
		}(rowStart, rowEnd, w)
	}
	wg.Wait()

	return img
}

func toRGBA(c core.Vec3) color.RGBA {
	gammaCorrected := c.Clamp(0, 1).GammaCorrect(2.2)
	return color.RGBA{
		R: uint8(gammaCorrected.X*255 + 0.5),
		G: uint8(gammaCorrected.Y*255 + 0.5),
		B: uint8(gammaCorrected.Z*255 + 0.5),
		A: 255,
	}
}

func displayFrameStats(counts photon.PhotonCounts, traceTime, renderTime time.Duration, out string) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Map", "Photons"})
	table.Append([]string{"direct", fmt.Sprintf("%d", counts.Direct)})
	table.Append([]string{"indirect", fmt.Sprintf("%d", counts.Indirect)})
	table.Append([]string{"caustic", fmt.Sprintf("%d", counts.Caustic)})
	table.Append([]string{"shadow", fmt.Sprintf("%d", counts.Shadow)})
	table.SetFooter([]string{"trace time", fmt.Sprintf("%s", traceTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
	logger.Noticef("rendered in %s, wrote %s", renderTime, out)
}
