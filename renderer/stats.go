package renderer

import "time"

// Point-in-time view of a render in progress. Computed on demand from
// atomic counters updated by the workers.
type FrameStats struct {
	// Number of workers currently rendering a tile.
	ActiveWorkers int

	// Completed fraction of the frame in [0, 1].
	Progress float32

	// Wall time since the render started.
	Elapsed time.Duration

	// Estimated time until the last tile completes.
	TimeToFinish time.Duration

	// Aggregate traced rays per second.
	RaysPerSecond float64

	// Tile accounting.
	CompletedTiles int
	TotalTiles     int

	// Total rays traced so far.
	TracedRays uint64
}
