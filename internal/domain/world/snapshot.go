package world

import "civmap/internal/domain/terrain"

// TileView is the read-only projection of a tile handed to renderers. It
// carries no transform status.
type TileView struct {
	X        int             `json:"x"`
	Y        int             `json:"y"`
	Terrain  terrain.Terrain `json:"terrain"`
	Special  terrain.Special `json:"special"`
	Flags    []string        `json:"flags"`
	MoveCost int             `json:"move_cost"`
	Water    bool            `json:"water"`
}

type Snapshot struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	WrappingX    bool       `json:"wrapping_x"`
	WrappingY    bool       `json:"wrapping_y"`
	Center       Point      `json:"center"`
	ViewRadius   int        `json:"view_radius"`
	VisibleTiles []TileView `json:"visible_tiles"`
}

func viewOf(p Point, t Tile) TileView {
	return TileView{
		X:        p.X,
		Y:        p.Y,
		Terrain:  t.terrain,
		Special:  t.special,
		Flags:    t.flags.Names(),
		MoveCost: t.MoveCost(),
		Water:    t.IsWater(),
	}
}

// Window projects the square of tiles within radius of center. Coordinates
// that resolve off a non-wrapping edge are skipped; wrapped ones are
// reported at their resolved position. On a wrapping axis shorter than the
// window, every column or row is reported once.
func (w *World) Window(center Point, radius int) Snapshot {
	if radius < 0 {
		radius = 0
	}
	minX, maxX := windowSpan(center.X, radius, w.width, w.wrapX)
	minY, maxY := windowSpan(center.Y, radius, w.height, w.wrapY)
	tiles := make([]TileView, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p, ok := w.Resolve(x, y)
			if !ok {
				continue
			}
			tiles = append(tiles, viewOf(p, w.tiles[w.index(p)]))
		}
	}
	return Snapshot{
		Width:        w.width,
		Height:       w.height,
		WrappingX:    w.wrapX,
		WrappingY:    w.wrapY,
		Center:       center,
		ViewRadius:   radius,
		VisibleTiles: tiles,
	}
}

func windowSpan(c, radius, size int, wrap bool) (int, int) {
	if wrap && 2*radius+1 > size {
		lo := c - size/2
		return lo, lo + size - 1
	}
	return c - radius, c + radius
}
