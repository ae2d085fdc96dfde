package gormrepo

import (
	"testing"
	"time"

	"civmap/internal/app/ports"
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
	"civmap/internal/domain/worldgen"

	"github.com/google/go-cmp/cmp"
)

func TestChunkTilesCodecKeepsTransforms(t *testing.T) {
	w, _ := world.New(3, 2, false, false, terrain.Grassland)
	ref, _ := w.TileRef(1, 1)
	ref.SetFlag(terrain.HasRiver)
	if _, err := ref.StartTransform(terrain.Road); err != nil {
		t.Fatalf("start: %v", err)
	}
	chunk := w.Chunks(DefaultChunkSize)[0]

	b, err := encodeChunkTiles(chunk.Tiles)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeChunkTiles(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(chunk.Tiles, got); diff != "" {
		t.Fatalf("tiles (-want +got):\n%s", diff)
	}
	if empty, err := decodeChunkTiles(nil); err != nil || len(empty) != 0 {
		t.Fatalf("empty payload should decode to no tiles, got %v %v", empty, err)
	}
}

func TestWorldRowMapping(t *testing.T) {
	w, _ := world.New(5, 4, true, false, terrain.Ocean)
	created := time.Unix(1000, 0).UTC()
	rec := ports.WorldRecord{
		ID: "w-1",
		Params: worldgen.Parameters{
			Width: 5, Height: 4, WrappingX: true, WaterPercentage: 0.4, Seed: 77,
			LandDistribution: worldgen.LandContiguous,
		},
		Strategy:  worldgen.StrategyIsland,
		Turn:      3,
		Version:   4,
		World:     w,
		CreatedAt: created,
	}
	row := toWorldRow(rec, 8)
	if row.ChunkSize != 8 || row.Width != 5 || row.Height != 4 || !row.WrappingX {
		t.Fatalf("unexpected row %+v", row)
	}
	if !row.UpdatedAt.Equal(created) {
		t.Fatalf("updated_at should default to created_at")
	}

	back := fromWorldRow(row, w)
	rec.UpdatedAt = created
	if diff := cmp.Diff(rec, back, cmp.Comparer(func(a, b *world.World) bool { return a == b })); diff != "" {
		t.Fatalf("record (-want +got):\n%s", diff)
	}
}
