package world

type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var (
	Orthogonal = []Direction{North, East, South, West}
	Compass    = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case NorthEast:
		return "north_east"
	case East:
		return "east"
	case SouthEast:
		return "south_east"
	case South:
		return "south"
	case SouthWest:
		return "south_west"
	case West:
		return "west"
	case NorthWest:
		return "north_west"
	}
	return "unknown"
}

// components splits a diagonal into its two orthogonal steps.
func (d Direction) components() (Direction, Direction, bool) {
	switch d {
	case NorthEast:
		return North, East, true
	case SouthEast:
		return South, East, true
	case SouthWest:
		return South, West, true
	case NorthWest:
		return North, West, true
	}
	return d, d, false
}

// Step moves one tile from p. Diagonal steps are two orthogonal steps, so a
// diagonal is absent whenever either leg leaves a non-wrapping edge.
func (w *World) Step(p Point, d Direction) (Point, bool) {
	if a, b, diagonal := d.components(); diagonal {
		mid, ok := w.Step(p, a)
		if !ok {
			return Point{}, false
		}
		return w.Step(mid, b)
	}
	switch d {
	case North:
		return w.Resolve(p.X, p.Y-1)
	case South:
		return w.Resolve(p.X, p.Y+1)
	case East:
		return w.Resolve(p.X+1, p.Y)
	case West:
		return w.Resolve(p.X-1, p.Y)
	}
	return Point{}, false
}

func (w *World) neighbor(x, y int, d Direction) (Tile, bool) {
	p, ok := w.Resolve(x, y)
	if !ok {
		return Tile{}, false
	}
	n, ok := w.Step(p, d)
	if !ok {
		return Tile{}, false
	}
	return w.tiles[w.index(n)], true
}

func (w *World) North(x, y int) (Tile, bool)     { return w.neighbor(x, y, North) }
func (w *World) NorthEast(x, y int) (Tile, bool) { return w.neighbor(x, y, NorthEast) }
func (w *World) East(x, y int) (Tile, bool)      { return w.neighbor(x, y, East) }
func (w *World) SouthEast(x, y int) (Tile, bool) { return w.neighbor(x, y, SouthEast) }
func (w *World) South(x, y int) (Tile, bool)     { return w.neighbor(x, y, South) }
func (w *World) SouthWest(x, y int) (Tile, bool) { return w.neighbor(x, y, SouthWest) }
func (w *World) West(x, y int) (Tile, bool)      { return w.neighbor(x, y, West) }
func (w *World) NorthWest(x, y int) (Tile, bool) { return w.neighbor(x, y, NorthWest) }

// Neighbors4 returns the present orthogonal neighbours of p.
func (w *World) Neighbors4(p Point) []Point {
	return w.neighbors(p, Orthogonal)
}

// Neighbors8 returns the present compass neighbours of p.
func (w *World) Neighbors8(p Point) []Point {
	return w.neighbors(p, Compass)
}

func (w *World) neighbors(p Point, dirs []Direction) []Point {
	out := make([]Point, 0, len(dirs))
	for _, d := range dirs {
		if n, ok := w.Step(p, d); ok {
			out = append(out, n)
		}
	}
	return out
}
