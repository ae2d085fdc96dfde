package observe

import (
	"context"
	"errors"
	"strings"

	"civmap/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const (
	DefaultViewRadius = 5
	MaxViewRadius     = 32
)

type UseCase struct {
	Repo ports.WorldRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.WorldID) == "" || req.Radius < 0 || req.Radius > MaxViewRadius {
		return Response{}, ErrInvalidRequest
	}
	rec, err := u.Repo.Get(ctx, req.WorldID)
	if err != nil {
		return Response{}, err
	}
	center, ok := rec.World.Resolve(req.Center.X, req.Center.Y)
	if !ok {
		return Response{}, ErrInvalidRequest
	}
	radius := req.Radius
	if radius == 0 {
		radius = DefaultViewRadius
	}
	return Response{
		WorldID:  rec.ID,
		Turn:     rec.Turn,
		Snapshot: rec.World.Window(center, radius),
	}, nil
}
