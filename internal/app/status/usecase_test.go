package status

import (
	"context"
	"errors"
	"testing"

	"civmap/internal/app/ports"
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
	"civmap/internal/domain/worldgen"

	"github.com/google/go-cmp/cmp"
)

type statusWorldRepo struct {
	rec ports.WorldRecord
}

func (r statusWorldRepo) Create(context.Context, ports.WorldRecord) error { return nil }

func (r statusWorldRepo) Get(_ context.Context, id string) (ports.WorldRecord, error) {
	if id != r.rec.ID {
		return ports.WorldRecord{}, ports.ErrNotFound
	}
	return r.rec, nil
}

func (r statusWorldRepo) SaveWithVersion(context.Context, ports.WorldRecord, int64) error { return nil }

func TestUseCase_SummarizesWorld(t *testing.T) {
	w, _ := world.New(2, 2, false, false, terrain.Hills)
	w.SetTerrain(world.Point{X: 1, Y: 1}, terrain.Ocean)
	ref, _ := w.TileRef(0, 0)
	if _, err := ref.StartTransform(terrain.Mining); err != nil {
		t.Fatalf("start: %v", err)
	}
	repo := statusWorldRepo{rec: ports.WorldRecord{
		ID:       "w-1",
		Params:   worldgen.Parameters{Width: 2, Height: 2, Seed: 9},
		Strategy: worldgen.StrategyIsland,
		Turn:     4,
		Version:  6,
		World:    w,
	}}

	resp, err := UseCase{Repo: repo}.Execute(context.Background(), Request{WorldID: "w-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Turn != 4 || resp.Version != 6 || resp.Params.Seed != 9 || resp.Strategy != worldgen.StrategyIsland {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.WaterFraction != 0.25 || resp.ActiveTransforms != 1 {
		t.Fatalf("water=%v active=%d", resp.WaterFraction, resp.ActiveTransforms)
	}
	want := map[terrain.Terrain]int{terrain.Hills: 3, terrain.Ocean: 1}
	if diff := cmp.Diff(want, resp.TerrainCounts); diff != "" {
		t.Fatalf("counts (-want +got):\n%s", diff)
	}
}

func TestUseCase_RejectsEmptyWorldID(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesNotFound(t *testing.T) {
	uc := UseCase{Repo: statusWorldRepo{}}
	if _, err := uc.Execute(context.Background(), Request{WorldID: "nope"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
