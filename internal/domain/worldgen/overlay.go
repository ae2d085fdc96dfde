package worldgen

import (
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
)

// ApplyOverlay perturbs terrain using a normalized overlay field. Rules read
// the terrain as it was before the overlay, so the result does not depend on
// scan order. It returns the number of changed cells.
func ApplyOverlay(w *world.World, overlay *Field) int {
	before := w.Clone()
	changed := 0
	w.Each(func(p world.Point, _ *world.Tile) {
		v := overlay.At(p.X, p.Y)
		next, ok := overlayRule(before, p, v)
		if !ok {
			return
		}
		w.SetTerrain(p, next)
		changed++
	})
	return changed
}

func overlayRule(before *world.World, p world.Point, v float64) (terrain.Terrain, bool) {
	switch before.Terrain(p) {
	case terrain.Ocean, terrain.Swamp:
		return terrain.Forest, v > 0.3
	case terrain.Desert, terrain.Plains, terrain.Grassland:
		return terrain.Forest, v > 0.5
	case terrain.Hills, terrain.Jungle, terrain.Mountains:
		return terrain.Forest, v > 0.4
	case terrain.Forest:
		if v <= 0.5 {
			return 0, false
		}
		for _, n := range before.Neighbors4(p) {
			if before.Terrain(n).IsWater() {
				return terrain.Swamp, true
			}
		}
	}
	return 0, false
}
