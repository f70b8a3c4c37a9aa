package renderer

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aduvenhage/lostnfound/log"
	"github.com/aduvenhage/lostnfound/scene"
	"github.com/aduvenhage/lostnfound/tracer"
)

// A rectangular block of pixels assigned as a unit of work to one worker.
type tile struct {
	x0, y0 int
	x1, y1 int
}

// A Frame is a render in progress: the target pixel buffer, the partition
// of the image into tiles, the worker pool draining the tile queue and the
// atomic counters behind the progress query surface.
//
// Tiles are disjoint so workers never write to the same pixel; the scene
// and viewport are shared read-only. Each tile derives its own random
// generator from the top-level seed, which makes the output independent of
// the worker count.
type Frame struct {
	view *scene.Viewport
	sc   scene.Scene
	opts Options

	logger log.Logger

	pix    []uint8
	tiles  []tile
	tileCh chan int
	wg     sync.WaitGroup

	activeWorkers  int32
	completedTiles int32
	tracedRays     uint64

	started time.Time
}

// Create a frame and start rendering it. Returns a configuration error
// before any work begins if the options are nonsensical.
func NewFrame(view *scene.Viewport, sc scene.Scene, opts Options) (*Frame, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if view == nil {
		return nil, ErrViewportNotDefined
	}
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f := &Frame{
		view:   view,
		sc:     sc,
		opts:   opts,
		logger: log.New("frame"),
		pix:    make([]uint8, opts.FrameW*opts.FrameH*3),
	}
	f.partition()

	f.tileCh = make(chan int, len(f.tiles))
	for i := range f.tiles {
		f.tileCh <- i
	}
	close(f.tileCh)

	f.started = time.Now()
	for w := 0; w < opts.NumWorkers; w++ {
		f.wg.Add(1)
		go f.worker()
	}

	f.logger.Debugf(
		"render started: %dx%d, %d tiles, %d workers, %d spp",
		opts.FrameW, opts.FrameH, len(f.tiles), opts.NumWorkers, opts.SamplesPerPixel,
	)
	return f, nil
}

// Split the image into disjoint tiles.
func (f *Frame) partition() {
	for y := 0; y < f.opts.FrameH; y += f.opts.TileH {
		for x := 0; x < f.opts.FrameW; x += f.opts.TileW {
			t := tile{x0: x, y0: y, x1: x + f.opts.TileW, y1: y + f.opts.TileH}
			if t.x1 > f.opts.FrameW {
				t.x1 = f.opts.FrameW
			}
			if t.y1 > f.opts.FrameH {
				t.y1 = f.opts.FrameH
			}
			f.tiles = append(f.tiles, t)
		}
	}
}

// Worker loop: pull tiles from the queue until it drains. Each tile gets a
// generator seeded from the top-level seed plus the tile index so results
// do not depend on which worker picks it up.
func (f *Frame) worker() {
	defer f.wg.Done()

	for idx := range f.tileCh {
		atomic.AddInt32(&f.activeWorkers, 1)

		rng := rand.New(rand.NewSource(f.opts.Seed + int64(idx)))
		tr := tracer.New(f.sc, rng, f.opts.MaxTraceDepth)
		if f.opts.SelfHitEpsilon > 0 {
			tr.SetEpsilon(f.opts.SelfHitEpsilon)
		}
		f.renderTile(f.tiles[idx], tr, rng)

		atomic.AddInt32(&f.completedTiles, 1)
		atomic.AddInt32(&f.activeWorkers, -1)
	}
}

func (f *Frame) renderTile(t tile, tr *tracer.Tracer, rng *rand.Rand) {
	var rays uint64

	for j := t.y0; j < t.y1; j++ {
		for i := t.x0; i < t.x1; i++ {
			var stat ColorStat
			depthReached := 0

			for s := 0; s < f.opts.SamplesPerPixel; s++ {
				ray := f.view.Ray(i, j, rng)
				stat.Add(tr.Trace(ray))
				rays++

				if tr.DepthReached() > depthReached {
					depthReached = tr.DepthReached()
				}

				// Stop spending rays on a converged estimate. Noisy
				// pixels (deep recursion) get extra slack.
				if stat.Count() >= f.opts.MinSamples &&
					stat.Count() > depthReached &&
					stat.StdError() < f.opts.Tolerance {
					break
				}
			}

			f.writePixel(i, j, stat)
		}
	}

	atomic.AddUint64(&f.tracedRays, rays)
}

// Write the converged color into the shared buffer. Tiles are disjoint so
// no two workers ever touch the same offset.
func (f *Frame) writePixel(i, j int, stat ColorStat) {
	c := stat.Mean().Clamp01()
	offset := (j*f.opts.FrameW + i) * 3
	f.pix[offset] = uint8(255*c[0] + 0.5)
	f.pix[offset+1] = uint8(255*c[1] + 0.5)
	f.pix[offset+2] = uint8(255*c[2] + 0.5)
}

// Block until every tile has completed.
func (f *Frame) Wait() {
	f.wg.Wait()
}

// Row-major RGB pixel buffer, 3 bytes per pixel. Only stable once the
// render has finished.
func (f *Frame) Image() []uint8 {
	return f.pix
}

func (f *Frame) Width() int {
	return f.opts.FrameW
}

func (f *Frame) Height() int {
	return f.opts.FrameH
}

func (f *Frame) IsFinished() bool {
	return int(atomic.LoadInt32(&f.completedTiles)) == len(f.tiles)
}

// Number of workers currently rendering a tile.
func (f *Frame) ActiveWorkers() int {
	return int(atomic.LoadInt32(&f.activeWorkers))
}

// Completed fraction of the frame in [0, 1].
func (f *Frame) Progress() float32 {
	if len(f.tiles) == 0 {
		return 1
	}
	return float32(atomic.LoadInt32(&f.completedTiles)) / float32(len(f.tiles))
}

// Snapshot of the render's progress counters.
func (f *Frame) Stats() FrameStats {
	completed := int(atomic.LoadInt32(&f.completedTiles))
	rays := atomic.LoadUint64(&f.tracedRays)
	elapsed := time.Since(f.started)
	progress := f.Progress()

	var eta time.Duration
	if progress > 0 && progress < 1 {
		eta = time.Duration(float64(elapsed) * float64(1-progress) / float64(progress))
	}

	var rps float64
	if elapsed > 0 {
		rps = float64(rays) / elapsed.Seconds()
	}

	return FrameStats{
		ActiveWorkers:  f.ActiveWorkers(),
		Progress:       progress,
		Elapsed:        elapsed,
		TimeToFinish:   eta,
		RaysPerSecond:  rps,
		CompletedTiles: completed,
		TotalTiles:     len(f.tiles),
		TracedRays:     rays,
	}
}
