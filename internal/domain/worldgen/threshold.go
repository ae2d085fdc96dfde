package worldgen

import (
	"math"

	"civmap/internal/domain/terrain"
)

// ThresholdSearch is the outcome of SearchThreshold.
type ThresholdSearch struct {
	Threshold  float64
	Fraction   float64
	Iterations int
}

// SearchThreshold bisects for a height t such that the share of cells with
// height < t is within tolerance of target. The search stops after
// maxIterations and returns the closest threshold seen.
func SearchThreshold(f *Field, target, tolerance float64, maxIterations int) ThresholdSearch {
	values := f.Values()
	fraction := func(t float64) float64 {
		n := 0
		for _, v := range values {
			if v < t {
				n++
			}
		}
		return float64(n) / float64(len(values))
	}

	// Heights are normalized to [0,1]; nudging hi past 1 lets t cover every cell.
	lo, hi := 0.0, math.Nextafter(1, 2)
	best := ThresholdSearch{Threshold: lo, Fraction: fraction(lo)}
	if math.Abs(best.Fraction-target) <= tolerance {
		return best
	}
	if top := fraction(hi); math.Abs(top-target) <= tolerance {
		return ThresholdSearch{Threshold: hi, Fraction: top}
	}
	for i := 1; i <= maxIterations; i++ {
		t := (lo + hi) / 2
		got := fraction(t)
		if math.Abs(got-target) < math.Abs(best.Fraction-target) {
			best = ThresholdSearch{Threshold: t, Fraction: got}
		}
		best.Iterations = i
		if math.Abs(got-target) <= tolerance {
			break
		}
		if got < target {
			lo = t
		} else {
			hi = t
		}
	}
	return best
}

// ThresholdLand bands a non-water normalized height.
func ThresholdLand(h float64) terrain.Terrain {
	switch {
	case h < 0.3:
		return terrain.Swamp
	case h < 0.4:
		return terrain.Forest
	case h < 0.6:
		return terrain.Hills
	case h < 0.8:
		return terrain.Mountains
	default:
		return terrain.Glacier
	}
}
