package transform

import (
	"context"
	"errors"
	"strings"
	"time"

	"civmap/internal/app/ports"
)

type CancelUseCase struct {
	TxManager ports.TxManager
	Repo      ports.WorldRepository
	Metrics   ports.WorldMetrics
	Now       func() time.Time
}

// Execute drops the transform running on one tile without applying it. An
// idle tile is reported with Cancelled false and the world is not saved.
func (u CancelUseCase) Execute(ctx context.Context, req CancelRequest) (CancelResponse, error) {
	req.WorldID = strings.TrimSpace(req.WorldID)
	if req.WorldID == "" {
		return CancelResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out CancelResponse
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
		out = CancelResponse{WorldID: rec.ID, Position: p, Version: rec.Version}
		if !tile.Transforming() {
			return nil
		}
		kind := tile.Status().Kind
		tile.CancelTransform()

		expected := rec.Version
		rec.Version++
		rec.UpdatedAt = nowFn()
		if err := u.Repo.SaveWithVersion(txCtx, rec, expected); err != nil {
			return err
		}
		out.Cancelled = true
		out.Kind = &kind
		out.Version = rec.Version
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return CancelResponse{}, err
	}
	return out, nil
}
