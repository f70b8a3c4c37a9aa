package renderer

import (
	"bytes"
	"testing"

	"github.com/aduvenhage/lostnfound/scene"
	"github.com/aduvenhage/lostnfound/types"
)

func testViewport(w, h int) *scene.Viewport {
	camera := scene.NewSimpleCamera(
		types.Vec3{0, 0, 50},
		types.Vec3{0, 1, 0},
		types.Vec3{0, 0, 0},
		types.Deg2Rad(60),
		0, // no depth of field jitter
		50,
	)
	return scene.NewViewport(w, h, camera)
}

func testOptions(w, h int) Options {
	return Options{
		FrameW:          w,
		FrameH:          h,
		NumWorkers:      2,
		SamplesPerPixel: 16,
		MaxTraceDepth:   4,
		Tolerance:       0.01,
		TileW:           16,
		TileH:           16,
		Seed:            7,
	}
}

func TestOptionValidation(t *testing.T) {
	type spec struct {
		mutate func(*Options)
		expErr error
	}
	specs := []spec{
		{func(o *Options) { o.FrameW = 0 }, ErrInvalidFrameDims},
		{func(o *Options) { o.FrameH = -1 }, ErrInvalidFrameDims},
		{func(o *Options) { o.SamplesPerPixel = 0 }, ErrInvalidSampleCount},
		{func(o *Options) { o.MaxTraceDepth = 0 }, ErrInvalidTraceDepth},
		{func(o *Options) { o.NumWorkers = -1 }, ErrInvalidWorkerCount},
		{func(o *Options) { o.Tolerance = -0.5 }, ErrInvalidTolerance},
	}

	sc := scene.NewSimpleScene(types.Vec3{})
	view := testViewport(8, 8)

	for index, s := range specs {
		opts := testOptions(8, 8)
		s.mutate(&opts)

		_, err := NewFrame(view, sc, opts)
		if err != s.expErr {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}

	if _, err := NewFrame(view, nil, testOptions(8, 8)); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := NewFrame(nil, sc, testOptions(8, 8)); err != ErrViewportNotDefined {
		t.Fatalf("expected ErrViewportNotDefined; got %v", err)
	}
}

// A zero worker count means "unset": the hardware-derived default pool is
// used and the render completes; only negative counts are rejected.
func TestZeroWorkerCountUsesDefault(t *testing.T) {
	sc := scene.NewSimpleScene(types.Vec3{0.5, 0.5, 0.5})

	opts := testOptions(8, 8)
	opts.NumWorkers = 0

	frame, err := NewFrame(testViewport(8, 8), sc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame.Wait()

	if !frame.IsFinished() {
		t.Fatalf("expected frame to finish with the default worker pool")
	}
}

// An empty scene renders the background color everywhere and completes.
func TestRenderEmptyScene(t *testing.T) {
	miss := types.Vec3{0.1, 0.2, 0.3}
	sc := scene.NewSimpleScene(miss)

	frame, err := NewFrame(testViewport(16, 16), sc, testOptions(16, 16))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame.Wait()

	if !frame.IsFinished() {
		t.Fatalf("expected frame to be finished")
	}
	if p := frame.Progress(); p != 1 {
		t.Fatalf("expected progress 1.0; got %f", p)
	}

	expR := uint8(255*miss[0] + 0.5)
	expG := uint8(255*miss[1] + 0.5)
	expB := uint8(255*miss[2] + 0.5)
	pix := frame.Image()
	for i := 0; i < len(pix); i += 3 {
		if pix[i] != expR || pix[i+1] != expG || pix[i+2] != expB {
			t.Fatalf("pixel %d: expected (%d, %d, %d); got (%d, %d, %d)",
				i/3, expR, expG, expB, pix[i], pix[i+1], pix[i+2])
		}
	}
}

// Converged pixels must not consume the full sample budget.
func TestAdaptiveSamplingEarlyExit(t *testing.T) {
	sc := scene.NewSimpleScene(types.Vec3{0.5, 0.5, 0.5})

	opts := testOptions(16, 16)
	opts.SamplesPerPixel = 1024
	opts.MinSamples = 4

	frame, err := NewFrame(testViewport(16, 16), sc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame.Wait()

	// Every ray misses, so every pixel converges at the minimum sample
	// count; allow one extra sample of slack per pixel.
	maxRays := uint64(16 * 16 * (opts.MinSamples + 1))
	if rays := frame.Stats().TracedRays; rays > maxRays {
		t.Fatalf("expected at most %d rays for a converged frame; traced %d", maxRays, rays)
	}
}

// Worker count must not change the output: tiles own their generators.
func TestWorkerCountInvariance(t *testing.T) {
	sc := scene.NewBvhScene(types.Vec3{0.2, 0.2, 0.2}, 4)
	red := sc.AddMaterial(&scene.Diffuse{Color: types.Vec3{0.9, 0.1, 0.1}})
	light := sc.AddMaterial(&scene.Light{Color: types.Vec3{20, 20, 20}})
	sc.AddInstance(scene.NewSphere(10), red, types.AxisIdentity())
	sc.AddInstance(scene.NewSphere(30), light, types.AxisTranslation(types.Vec3{0, 150, 0}))
	sc.Build()

	render := func(workers int) []uint8 {
		opts := testOptions(32, 32)
		opts.NumWorkers = workers

		frame, err := NewFrame(testViewport(32, 32), sc, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		frame.Wait()
		return frame.Image()
	}

	single := render(1)
	parallel := render(8)

	if !bytes.Equal(single, parallel) {
		t.Fatalf("1-worker and 8-worker renders differ")
	}
}

// A red sphere under an overhead light: sphere pixels are red biased and
// background pixels match the miss color exactly.
func TestRenderRedSphereScene(t *testing.T) {
	miss := types.Vec3{0.1, 0.2, 0.3}
	sc := scene.NewBvhScene(miss, 4)
	red := sc.AddMaterial(&scene.Diffuse{Color: types.Vec3{0.9, 0.1, 0.1}})
	light := sc.AddMaterial(&scene.Light{Color: types.Vec3{30, 30, 30}})
	sc.AddInstance(scene.NewSphere(10), red, types.AxisIdentity())
	sc.AddInstance(scene.NewSphere(40), light, types.AxisTranslation(types.Vec3{0, 200, 0}))
	sc.Build()

	const size = 64
	opts := testOptions(size, size)
	opts.SamplesPerPixel = 32

	frame, err := NewFrame(testViewport(size, size), sc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame.Wait()
	pix := frame.Image()

	// Corner pixels miss everything and must equal the background bytes.
	expR := uint8(255*miss[0] + 0.5)
	expG := uint8(255*miss[1] + 0.5)
	expB := uint8(255*miss[2] + 0.5)
	for _, p := range [][2]int{{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1}} {
		offset := (p[1]*size + p[0]) * 3
		if pix[offset] != expR || pix[offset+1] != expG || pix[offset+2] != expB {
			t.Fatalf("corner (%d, %d): expected background (%d, %d, %d); got (%d, %d, %d)",
				p[0], p[1], expR, expG, expB, pix[offset], pix[offset+1], pix[offset+2])
		}
	}

	// Center pixels land on the sphere; the majority must be red biased.
	redBiased := 0
	total := 0
	for j := size/2 - 4; j < size/2+4; j++ {
		for i := size/2 - 4; i < size/2+4; i++ {
			offset := (j*size + i) * 3
			total++
			if pix[offset] >= pix[offset+1] && pix[offset] >= pix[offset+2] {
				redBiased++
			}
		}
	}
	if redBiased*2 < total {
		t.Fatalf("expected most sphere pixels to be red biased; %d of %d", redBiased, total)
	}
}
