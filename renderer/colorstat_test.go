package renderer

import (
	"math"
	"testing"

	"github.com/aduvenhage/lostnfound/types"
)

func TestColorStatMean(t *testing.T) {
	var cs ColorStat
	cs.Add(types.Vec3{1, 0, 0})
	cs.Add(types.Vec3{0, 1, 0})
	cs.Add(types.Vec3{0, 0, 1})
	cs.Add(types.Vec3{1, 1, 1})

	mean := cs.Mean()
	if mean.Sub(types.Vec3{0.5, 0.5, 0.5}).Len() > 1e-5 {
		t.Fatalf("expected mean (0.5, 0.5, 0.5); got %v", mean)
	}
	if cs.Count() != 4 {
		t.Fatalf("expected 4 samples; got %d", cs.Count())
	}
}

func TestColorStatConstantSamplesConverge(t *testing.T) {
	var cs ColorStat
	for i := 0; i < 8; i++ {
		cs.Add(types.Vec3{0.25, 0.5, 0.75})
	}

	if cs.Variance() > 1e-10 {
		t.Fatalf("expected zero variance for constant samples; got %g", cs.Variance())
	}
	if cs.StdError() > 1e-6 {
		t.Fatalf("expected zero standard error for constant samples; got %g", cs.StdError())
	}
}

func TestColorStatImmatureIsNotConverged(t *testing.T) {
	var cs ColorStat
	if !math.IsInf(float64(cs.StdError()), 1) {
		t.Fatalf("expected infinite standard error with no samples")
	}
	cs.Add(types.Vec3{1, 1, 1})
	if !math.IsInf(float64(cs.StdError()), 1) {
		t.Fatalf("expected infinite standard error with one sample")
	}
}

func TestColorStatShrinksWithSamples(t *testing.T) {
	var cs ColorStat
	// Alternate two luminance values; the mean stabilises while the
	// standard error shrinks as 1/sqrt(n).
	for i := 0; i < 4; i++ {
		cs.Add(types.Vec3{float32(i % 2), 0, 0})
	}
	early := cs.StdError()

	for i := 0; i < 60; i++ {
		cs.Add(types.Vec3{float32(i % 2), 0, 0})
	}
	late := cs.StdError()

	if late >= early {
		t.Fatalf("expected standard error to shrink: early %g, late %g", early, late)
	}
}
