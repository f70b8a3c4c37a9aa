package renderer

import "runtime"

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Size of the worker pool. Defaults to twice the available hardware
	// parallelism.
	NumWorkers int

	// Per pixel ray budget.
	SamplesPerPixel int

	// Samples always taken before the convergence test may stop a pixel.
	MinSamples int

	// Maximum recursion depth per traced ray.
	MaxTraceDepth int

	// Self-intersection nudge distance for scattered rays. Zero selects
	// the tracer's default.
	SelfHitEpsilon float32

	// Adaptive sampling stops once the color statistic's standard error
	// drops below this.
	Tolerance float32

	// Tile dims for work partitioning.
	TileW int
	TileH int

	// Top-level seed; per-tile generators derive from it.
	Seed int64
}

// Fill in defaults for optional settings.
func (o *Options) applyDefaults() {
	if o.NumWorkers == 0 {
		o.NumWorkers = 2 * runtime.NumCPU()
	}
	if o.MinSamples == 0 {
		o.MinSamples = 4
	}
	if o.TileW == 0 {
		o.TileW = 32
	}
	if o.TileH == 0 {
		o.TileH = 32
	}
}

// Reject nonsensical render parameters before any work begins.
func (o Options) Validate() error {
	if o.FrameW <= 0 || o.FrameH <= 0 {
		return ErrInvalidFrameDims
	}
	if o.SamplesPerPixel <= 0 {
		return ErrInvalidSampleCount
	}
	if o.MaxTraceDepth <= 0 {
		return ErrInvalidTraceDepth
	}
	if o.NumWorkers < 0 {
		return ErrInvalidWorkerCount
	}
	if o.Tolerance < 0 {
		return ErrInvalidTolerance
	}
	return nil
}
