package turn

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

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubWorldRepo struct {
	rec      ports.WorldRecord
	conflict bool
}

func (r *stubWorldRepo) Create(context.Context, ports.WorldRecord) error { return nil }

func (r *stubWorldRepo) Get(_ context.Context, id string) (ports.WorldRecord, error) {
	if id != r.rec.ID {
		return ports.WorldRecord{}, ports.ErrNotFound
	}
	out := r.rec
	out.World = r.rec.World.Clone()
	return out, nil
}

func (r *stubWorldRepo) SaveWithVersion(_ context.Context, rec ports.WorldRecord, expected int64) error {
	if r.conflict || r.rec.Version != expected {
		return ports.ErrConflict
	}
	r.rec = rec
	return nil
}

type stubMetrics struct {
	turns, completed, conflicts, failures int
}

func (m *stubMetrics) RecordGenerated(worldgen.Strategy)             {}
func (m *stubMetrics) RecordTransformStarted(terrain.TransformKind)  {}
func (m *stubMetrics) RecordTransformRejected(terrain.TransformKind) {}
func (m *stubMetrics) RecordTurn(completed int)                      { m.turns++; m.completed += completed }
func (m *stubMetrics) RecordConflict()                               { m.conflicts++ }
func (m *stubMetrics) RecordFailure()                                { m.failures++ }

func TestUseCase_TicksEveryTransformAndAdvancesTurn(t *testing.T) {
	w, _ := world.New(3, 1, false, false, terrain.Desert)
	road, _ := w.TileRef(0, 0)
	if _, err := road.StartTransform(terrain.Road); err != nil {
		t.Fatalf("start road: %v", err)
	}
	mine, _ := w.TileRef(2, 0)
	if _, err := mine.StartTransform(terrain.Mining); err != nil {
		t.Fatalf("start mine: %v", err)
	}
	repo := &stubWorldRepo{rec: ports.WorldRecord{ID: "w-1", Version: 1, World: w}}
	metrics := &stubMetrics{}
	uc := UseCase{TxManager: stubTxManager{}, Repo: repo, Metrics: metrics}

	first, err := uc.Execute(context.Background(), Request{WorldID: "w-1"})
	if err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if first.Turn != 1 || len(first.Completed) != 0 || first.ActiveTransforms != 2 {
		t.Fatalf("unexpected first turn %+v", first)
	}
	second, err := uc.Execute(context.Background(), Request{WorldID: "w-1"})
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if diff := cmp.Diff([]world.Point{{X: 0, Y: 0}}, second.Completed); diff != "" {
		t.Fatalf("completed (-want +got):\n%s", diff)
	}
	if second.Turn != 2 || second.Version != 3 || second.ActiveTransforms != 1 {
		t.Fatalf("unexpected second turn %+v", second)
	}
	tile, _ := repo.rec.World.TileAt(0, 0)
	if !tile.HasFlag(terrain.HasRoad) {
		t.Fatalf("road should be persisted after completion")
	}
	if metrics.turns != 2 || metrics.completed != 1 {
		t.Fatalf("unexpected metrics %+v", metrics)
	}
}

func TestUseCase_ConflictIsReported(t *testing.T) {
	w, _ := world.New(1, 1, false, false, terrain.Plains)
	repo := &stubWorldRepo{rec: ports.WorldRecord{ID: "w-1", World: w}, conflict: true}
	metrics := &stubMetrics{}
	uc := UseCase{TxManager: stubTxManager{}, Repo: repo, Metrics: metrics}
	if _, err := uc.Execute(context.Background(), Request{WorldID: "w-1"}); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if metrics.conflicts != 1 || metrics.turns != 0 {
		t.Fatalf("unexpected metrics %+v", metrics)
	}
	if repo.rec.Turn != 0 {
		t.Fatalf("turn must not advance on conflict")
	}
}

func TestUseCase_RejectsEmptyWorldID(t *testing.T) {
	if _, err := (UseCase{}).Execute(context.Background(), Request{WorldID: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
