package turn

import (
	"context"
	"errors"
	"strings"
	"time"

	"civmap/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid turn request")

type UseCase struct {
	TxManager ports.TxManager
	Repo      ports.WorldRepository
	Metrics   ports.WorldMetrics
	Now       func() time.Time
}

// Execute advances the world by one turn, ticking every active transform once.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.WorldID = strings.TrimSpace(req.WorldID)
	if req.WorldID == "" {
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
		completed := rec.World.TickAll()

		expected := rec.Version
		rec.Turn++
		rec.Version++
		rec.UpdatedAt = nowFn()
		if err := u.Repo.SaveWithVersion(txCtx, rec, expected); err != nil {
			return err
		}
		out = Response{
			WorldID:          rec.ID,
			Turn:             rec.Turn,
			Completed:        completed,
			ActiveTransforms: rec.World.ActiveTransforms(),
			Version:          rec.Version,
		}
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
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordTurn(len(out.Completed))
	}
	return out, nil
}
