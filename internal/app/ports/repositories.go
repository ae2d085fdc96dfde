package ports

import (
	"context"
	"time"

	"civmap/internal/domain/world"
	"civmap/internal/domain/worldgen"
)

type WorldRecord struct {
	ID        string
	Params    worldgen.Parameters
	Strategy  worldgen.Strategy
	Turn      int64
	Version   int64
	World     *world.World
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WorldRepository interface {
	Create(ctx context.Context, rec WorldRecord) error
	Get(ctx context.Context, id string) (WorldRecord, error)
	SaveWithVersion(ctx context.Context, rec WorldRecord, expectedVersion int64) error
}
