package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/aduvenhage/lostnfound/renderer"
	"github.com/aduvenhage/lostnfound/scene"
	"github.com/aduvenhage/lostnfound/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame of the built-in demo scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:          ctx.Int("width"),
		FrameH:          ctx.Int("height"),
		NumWorkers:      ctx.Int("workers"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxTraceDepth:   ctx.Int("depth"),
		Tolerance:       float32(ctx.Float64("tolerance")),
		Seed:            int64(ctx.Int("seed")),
	}

	sc := buildDemoScene(ctx.Int("bvh-leaf-size"))
	logger.Noticef("scene statistics\n%s", sc.Stats())

	camera := scene.NewSimpleCamera(
		types.Vec3{0, 60, 200},
		types.Vec3{0, 1, 0},
		types.Vec3{0, 5, 0},
		types.Deg2Rad(float32(ctx.Float64("fov"))),
		float32(ctx.Float64("aperture")),
		float32(ctx.Float64("focus-distance")),
	)
	view := scene.NewViewport(opts.FrameW, opts.FrameH, camera)

	start := time.Now()
	frame, err := renderer.NewFrame(view, sc, opts)
	if err != nil {
		return err
	}

	// Poll progress until the workers drain the tile queue.
	done := make(chan struct{})
	go func() {
		frame.Wait()
		close(done)
	}()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		case <-ticker.C:
			stats := frame.Stats()
			logger.Infof(
				"active workers=%d, progress=%.2f, time to finish=%.1fs, rays/s=%.0f",
				stats.ActiveWorkers, stats.Progress, stats.TimeToFinish.Seconds(), stats.RaysPerSecond,
			)
		}
	}
	logger.Noticef("rendered frame in %d ms", time.Since(start).Nanoseconds()/1e6)

	if err := writePng(ctx.String("out"), frame); err != nil {
		return fmt.Errorf("could not write %s: %s", ctx.String("out"), err)
	}
	logger.Noticef("wrote frame to %s", ctx.String("out"))

	displayFrameStats(frame.Stats())
	return nil
}

// The demo scene from the project's reference render: a checkered floor,
// a mirror, an overhead sphere light, a ring of diffuse spheres and a
// ray-marched glass sphere.
func buildDemoScene(bvhLeafSize int) *scene.BvhScene {
	sc := scene.NewBvhScene(types.Vec3{0.2, 0.2, 0.2}, bvhLeafSize)

	floor := sc.AddMaterial(&scene.DiffuseCheckered{
		ColorA:    types.Vec3{1.0, 1.0, 1.0},
		ColorB:    types.Vec3{1.0, 0.4, 0.2},
		BlockSize: 8,
	})
	mirror := sc.AddMaterial(&scene.Metal{Color: types.Vec3{0.95, 0.95, 0.95}, Fuzz: 0.02})
	glass := sc.AddMaterial(&scene.Glass{Color: types.Vec3{0.95, 0.95, 0.95}, Fuzz: 0.01, IOR: 1.8})
	white := sc.AddMaterial(&scene.Light{Color: types.Vec3{30.0, 30.0, 30.0}})
	red := sc.AddMaterial(&scene.Diffuse{Color: types.Vec3{0.9, 0.1, 0.1}})
	green := sc.AddMaterial(&scene.Diffuse{Color: types.Vec3{0.1, 0.9, 0.1}})
	blue := sc.AddMaterial(&scene.Diffuse{Color: types.Vec3{0.1, 0.1, 0.9}})

	sc.AddInstance(scene.NewDisc(500), floor, types.AxisIdentity())
	sc.AddInstance(scene.NewRectangle(200, 200), mirror, types.AxisTranslation(types.Vec3{0, 1, 0}))
	sc.AddInstance(scene.NewSphere(30), white, types.AxisTranslation(types.Vec3{0, 200, 100}))
	sc.AddInstance(scene.NewMarchedSphere(40, 1.0), glass, types.AxisEulerZYX(0, 1, 0, types.Vec3{50, 45, 50}))

	colors := []scene.Material{red, green, blue}
	sphere := scene.NewSphere(4)
	const n = 200
	for i := 0; i < n; i++ {
		x := 100 * float32(math.Sin(float64(i)/n*2*math.Pi))
		y := 20 * float32(math.Cos(float64(i)/n*16*math.Pi)+1)
		z := 100 * float32(math.Cos(float64(i)/n*2*math.Pi))
		sc.AddInstance(sphere, colors[i%len(colors)], types.AxisTranslation(types.Vec3{x, y, z}))
	}

	sc.Build()
	return sc
}

func writePng(path string, frame *renderer.Frame) error {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width(), frame.Height()))
	pix := frame.Image()
	for i := 0; i < frame.Width()*frame.Height(); i++ {
		img.Pix[i*4] = pix[i*3]
		img.Pix[i*4+1] = pix[i*3+1]
		img.Pix[i*4+2] = pix[i*3+2]
		img.Pix[i*4+3] = 255
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tiles", "Workers", "Traced rays", "Rays/s", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalTiles),
		fmt.Sprintf("%d", stats.ActiveWorkers),
		fmt.Sprintf("%d", stats.TracedRays),
		fmt.Sprintf("%.0f", stats.RaysPerSecond),
		stats.Elapsed.String(),
	})
	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
