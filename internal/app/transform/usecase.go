package transform

import (
	"context"
	"errors"
	"strings"
	"time"

	"civmap/internal/app/ports"
	"civmap/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid transform request")

type UseCase struct {
	TxManager ports.TxManager
	Repo      ports.WorldRepository
	Metrics   ports.WorldMetrics
	Now       func() time.Time
}

// Execute starts a transform on one tile. An impossible transform is a
// normal outcome and leaves the world untouched; a tile that is already
// transforming fails with world.ErrTransformInProgress.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.WorldID = strings.TrimSpace(req.WorldID)
	if req.WorldID == "" || !req.Kind.Valid() {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := u.Repo.Get(txCtx, req.WorldID)
		if err != nil {
			return err
		}
		p, ok := rec.World.Resolve(req.X, req.Y)
		if !ok {
			return ErrInvalidRequest
		}
		tile, _ := rec.World.TileRef(p.X, p.Y)
		res, err := tile.StartTransform(req.Kind)
		if err != nil {
			return err
		}
		out = Response{
			WorldID:  rec.ID,
			Position: p,
			Kind:     req.Kind,
			Possible: res.Possible,
			Turns:    res.Turns,
			Terrain:  tile.Terrain(),
			Version:  rec.Version,
		}
		if !res.Possible {
			return nil
		}

		expected := rec.Version
		rec.Version++
		rec.UpdatedAt = nowFn()
		if err := u.Repo.SaveWithVersion(txCtx, rec, expected); err != nil {
			return err
		}
		out.Version = rec.Version
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			switch {
			case errors.Is(err, world.ErrTransformInProgress):
				u.Metrics.RecordTransformRejected(req.Kind)
			case errors.Is(err, ports.ErrConflict):
				u.Metrics.RecordConflict()
			default:
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		if out.Possible {
			u.Metrics.RecordTransformStarted(req.Kind)
		} else {
			u.Metrics.RecordTransformRejected(req.Kind)
		}
	}
	return out, nil
}
