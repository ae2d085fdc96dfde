package worldgen

import (
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
)

// WaterBody is one 4-connected component of water cells.
type WaterBody struct {
	ID    int
	Cells []world.Point
}

// LabelWater groups water cells into 4-connected components. Connectivity
// follows the world's wrapping rules. Components are numbered in row-major
// order of their first cell.
func LabelWater(w *world.World) []WaterBody {
	width := w.Width()
	label := make([]int, w.Len())
	for i := range label {
		label[i] = -1
	}
	idx := func(p world.Point) int { return p.Y*width + p.X }

	var bodies []WaterBody
	w.Each(func(seed world.Point, t *world.Tile) {
		if !t.IsWater() || label[idx(seed)] >= 0 {
			return
		}
		id := len(bodies)
		label[idx(seed)] = id
		cells := []world.Point{seed}
		for head := 0; head < len(cells); head++ {
			for _, n := range w.Neighbors4(cells[head]) {
				if label[idx(n)] >= 0 || !w.Terrain(n).IsWater() {
					continue
				}
				label[idx(n)] = id
				cells = append(cells, n)
			}
		}
		bodies = append(bodies, WaterBody{ID: id, Cells: cells})
	})
	return bodies
}

// Consolidate removes water pockets smaller than minBody cells by merging each
// into the land terrain that borders it most often. Bodies that are large
// enough, or that touch no land, are rewritten to Ocean. Each decision only
// touches the cells of its own component. It returns the number of merged
// pockets.
func Consolidate(w *world.World, minBody int) int {
	merged := 0
	for _, body := range LabelWater(w) {
		if len(body.Cells) < minBody {
			if land, ok := dominantShore(w, body); ok {
				for _, p := range body.Cells {
					w.SetTerrain(p, land)
				}
				merged++
				continue
			}
		}
		for _, p := range body.Cells {
			w.SetTerrain(p, terrain.Ocean)
		}
	}
	return merged
}

// dominantShore counts land terrain on the orthogonal border of body. Ties go
// to the terrain declared first.
func dominantShore(w *world.World, body WaterBody) (terrain.Terrain, bool) {
	counts := make([]int, len(terrain.All))
	found := false
	for _, p := range body.Cells {
		for _, n := range w.Neighbors4(p) {
			t := w.Terrain(n)
			if t.IsWater() {
				continue
			}
			counts[t]++
			found = true
		}
	}
	if !found {
		return 0, false
	}
	best := terrain.All[0]
	for _, t := range terrain.All {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best, true
}
