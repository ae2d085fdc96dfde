package world

import (
	"errors"
	"fmt"

	"civmap/internal/domain/terrain"
)

var ErrInvalidDimensions = errors.New("invalid world dimensions")

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// World owns a width×height grid of tiles stored row-major. All access goes
// through coordinate resolution, which wraps on wrapping axes and reports
// absence off the edge of non-wrapping ones.
type World struct {
	width  int
	height int
	wrapX  bool
	wrapY  bool
	tiles  []Tile
}

// New allocates a world with every tile set to fill.
func New(width, height int, wrapX, wrapY bool, fill terrain.Terrain) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = NewTile(fill)
	}
	return &World{width: width, height: height, wrapX: wrapX, wrapY: wrapY, tiles: tiles}, nil
}

func (w *World) Width() int      { return w.width }
func (w *World) Height() int     { return w.height }
func (w *World) WrappingX() bool { return w.wrapX }
func (w *World) WrappingY() bool { return w.wrapY }
func (w *World) Len() int        { return len(w.tiles) }

// Resolve maps a coordinate onto the grid.
func (w *World) Resolve(x, y int) (Point, bool) {
	x, ok := resolveAxis(x, w.width, w.wrapX)
	if !ok {
		return Point{}, false
	}
	y, ok = resolveAxis(y, w.height, w.wrapY)
	if !ok {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

func resolveAxis(v, size int, wrap bool) (int, bool) {
	if wrap {
		return (v%size + size) % size, true
	}
	if v < 0 || v >= size {
		return 0, false
	}
	return v, true
}

func (w *World) index(p Point) int { return p.Y*w.width + p.X }

// TileAt returns a copy of the tile at (x, y).
func (w *World) TileAt(x, y int) (Tile, bool) {
	p, ok := w.Resolve(x, y)
	if !ok {
		return Tile{}, false
	}
	return w.tiles[w.index(p)], true
}

// TileRef returns the tile at (x, y) for mutation.
func (w *World) TileRef(x, y int) (*Tile, bool) {
	p, ok := w.Resolve(x, y)
	if !ok {
		return nil, false
	}
	return &w.tiles[w.index(p)], true
}

// Terrain is a shortcut for the terrain at an already resolved point.
func (w *World) Terrain(p Point) terrain.Terrain {
	return w.tiles[w.index(p)].terrain
}

// SetTerrain overwrites the terrain at a resolved point without running the
// change cascade. It is meant for generation, before any tile carries
// specials, flags or transforms.
func (w *World) SetTerrain(p Point, t terrain.Terrain) {
	w.tiles[w.index(p)].terrain = t
}

// Each visits every tile in row-major order.
func (w *World) Each(fn func(p Point, t *Tile)) {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			p := Point{X: x, Y: y}
			fn(p, &w.tiles[w.index(p)])
		}
	}
}

// TickAll advances every ongoing transform by one turn and returns the tiles
// whose transform completed.
func (w *World) TickAll() []Point {
	done := []Point{}
	w.Each(func(p Point, t *Tile) {
		if t.TickTransform() {
			done = append(done, p)
		}
	})
	return done
}

func (w *World) ActiveTransforms() int {
	n := 0
	for i := range w.tiles {
		if w.tiles[i].status.Active {
			n++
		}
	}
	return n
}

func (w *World) TerrainCounts() map[terrain.Terrain]int {
	out := map[terrain.Terrain]int{}
	for i := range w.tiles {
		out[w.tiles[i].terrain]++
	}
	return out
}

func (w *World) WaterFraction() float64 {
	water := 0
	for i := range w.tiles {
		if w.tiles[i].terrain.IsWater() {
			water++
		}
	}
	return float64(water) / float64(len(w.tiles))
}

func (w *World) Clone() *World {
	out := *w
	out.tiles = append([]Tile(nil), w.tiles...)
	return &out
}
