package world

import (
	"errors"
	"fmt"

	"civmap/internal/domain/terrain"
)

var ErrInvalidChunk = errors.New("invalid chunk")

type ChunkCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Chunk holds the records of a size×size block of tiles in row-major order.
// Chunks on the right and bottom edges are cropped to the grid.
type Chunk struct {
	Coord ChunkCoord
	Tiles []TileRecord
}

// Chunks splits the world into square chunks of the given size.
func (w *World) Chunks(size int) []Chunk {
	if size <= 0 {
		size = 1
	}
	cols := (w.width + size - 1) / size
	rows := (w.height + size - 1) / size
	out := make([]Chunk, 0, cols*rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			minX, minY := cx*size, cy*size
			maxX, maxY := min(minX+size, w.width), min(minY+size, w.height)
			tiles := make([]TileRecord, 0, (maxX-minX)*(maxY-minY))
			for y := minY; y < maxY; y++ {
				for x := minX; x < maxX; x++ {
					tiles = append(tiles, w.tiles[w.index(Point{X: x, Y: y})].Record())
				}
			}
			out = append(out, Chunk{Coord: ChunkCoord{X: cx, Y: cy}, Tiles: tiles})
		}
	}
	return out
}

// Assemble rebuilds a world from chunks produced by Chunks with the same
// size. Every chunk must be present exactly once.
func Assemble(width, height int, wrapX, wrapY bool, size int, chunks []Chunk) (*World, error) {
	w, err := New(width, height, wrapX, wrapY, terrain.Ocean)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidChunk, size)
	}
	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	seen := make(map[ChunkCoord]bool, len(chunks))
	for _, c := range chunks {
		if c.Coord.X < 0 || c.Coord.X >= cols || c.Coord.Y < 0 || c.Coord.Y >= rows {
			return nil, fmt.Errorf("%w: coord %+v out of range", ErrInvalidChunk, c.Coord)
		}
		if seen[c.Coord] {
			return nil, fmt.Errorf("%w: duplicate coord %+v", ErrInvalidChunk, c.Coord)
		}
		seen[c.Coord] = true

		minX, minY := c.Coord.X*size, c.Coord.Y*size
		maxX, maxY := min(minX+size, width), min(minY+size, height)
		if len(c.Tiles) != (maxX-minX)*(maxY-minY) {
			return nil, fmt.Errorf("%w: coord %+v has %d tiles", ErrInvalidChunk, c.Coord, len(c.Tiles))
		}
		i := 0
		for y := minY; y < maxY; y++ {
			for x := minX; x < maxX; x++ {
				tile, err := TileFromRecord(c.Tiles[i])
				if err != nil {
					return nil, fmt.Errorf("chunk %+v tile (%d,%d): %w", c.Coord, x, y, err)
				}
				w.tiles[w.index(Point{X: x, Y: y})] = tile
				i++
			}
		}
	}
	if len(seen) != cols*rows {
		return nil, fmt.Errorf("%w: got %d chunks, want %d", ErrInvalidChunk, len(seen), cols*rows)
	}
	return w, nil
}
