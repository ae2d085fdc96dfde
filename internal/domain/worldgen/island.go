package worldgen

import (
	"math"
	"math/rand/v2"

	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
)

const (
	carveLow  = 0.4
	carveHigh = 0.8
)

// CarveWater lowers randomly chosen mid-height cells to zero. The number of
// cells carved is round((1-waterPercentage)*cells), capped at the number of
// cells strictly inside (0.4, 0.8). It returns how many cells were carved.
func CarveWater(f *Field, waterPercentage float64, rng *rand.Rand) int {
	values := f.Values()
	candidates := make([]int, 0, len(values))
	for i, v := range values {
		if v > carveLow && v < carveHigh {
			candidates = append(candidates, i)
		}
	}
	target := int(math.Round((1 - waterPercentage) * float64(len(values))))
	target = min(target, len(candidates))

	// Partial Fisher-Yates: the first target entries end up a uniform sample.
	for i := 0; i < target; i++ {
		j := i + rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		values[candidates[i]] = 0
	}
	return target
}

// IslandTerrain maps a normalized height to a terrain class.
func IslandTerrain(h float64) terrain.Terrain {
	switch {
	case h < 0.1:
		return terrain.Ocean
	case h < 0.2:
		return terrain.Plains
	case h < 0.3:
		return terrain.Grassland
	case h < 0.4:
		return terrain.Hills
	case h < 0.5:
		return terrain.Forest
	case h < 0.6:
		return terrain.Swamp
	case h < 0.7:
		return terrain.Jungle
	case h < 0.8:
		return terrain.Mountains
	default:
		return terrain.Desert
	}
}

func classify(w *world.World, f *Field, band func(float64) terrain.Terrain) {
	w.Each(func(p world.Point, _ *world.Tile) {
		w.SetTerrain(p, band(f.At(p.X, p.Y)))
	})
}
