package status

import (
	"context"
	"errors"
	"strings"

	"civmap/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Repo ports.WorldRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.WorldID) == "" {
		return Response{}, ErrInvalidRequest
	}
	rec, err := u.Repo.Get(ctx, req.WorldID)
	if err != nil {
		return Response{}, err
	}
	return Response{
		WorldID:          rec.ID,
		Params:           rec.Params,
		Strategy:         rec.Strategy,
		Turn:             rec.Turn,
		Version:          rec.Version,
		WaterFraction:    rec.World.WaterFraction(),
		TerrainCounts:    rec.World.TerrainCounts(),
		ActiveTransforms: rec.World.ActiveTransforms(),
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}, nil
}
