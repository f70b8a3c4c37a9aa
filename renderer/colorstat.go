package renderer

import (
	"math"

	"github.com/aduvenhage/lostnfound/types"
)

// An online running statistic over the per-ray colors sampled for one
// pixel: the mean color plus a luminance variance (Welford) used as the
// maturity measure for adaptive sampling.
type ColorStat struct {
	colorSum types.Vec3
	count    int

	lumMean float64
	lumM2   float64
}

// Fold one ray color into the statistic.
func (cs *ColorStat) Add(c types.Vec3) {
	cs.colorSum = cs.colorSum.Add(c)
	cs.count++

	lum := float64(c.Luminance())
	delta := lum - cs.lumMean
	cs.lumMean += delta / float64(cs.count)
	cs.lumM2 += delta * (lum - cs.lumMean)
}

func (cs *ColorStat) Count() int {
	return cs.count
}

// Mean color over all samples so far.
func (cs *ColorStat) Mean() types.Vec3 {
	if cs.count == 0 {
		return types.Vec3{}
	}
	return cs.colorSum.Mul(1 / float32(cs.count))
}

// Sample variance of the luminance.
func (cs *ColorStat) Variance() float32 {
	if cs.count < 2 {
		return float32(math.Inf(1))
	}
	return float32(cs.lumM2 / float64(cs.count-1))
}

// Standard error of the luminance mean. Shrinks as the estimate matures;
// the scheduler stops sampling a pixel once it drops below the configured
// tolerance.
func (cs *ColorStat) StdError() float32 {
	if cs.count < 2 {
		return float32(math.Inf(1))
	}
	return float32(math.Sqrt(cs.lumM2 / (float64(cs.count-1) * float64(cs.count))))
}
