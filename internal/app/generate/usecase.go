package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civmap/internal/app/ports"
	"civmap/internal/domain/worldgen"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid generate request")

type UseCase struct {
	Repo ports.WorldRepository
	// Generators are tried in order; the first one is the default when the
	// request names no strategy.
	Generators []ports.WorldGenerator
	Metrics    ports.WorldMetrics
	NewID      func() string
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if err := req.Params.Validate(); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	gen, err := u.pick(req.Strategy)
	if err != nil {
		return Response{}, err
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	w, report, err := gen.Generate(req.Params)
	if err != nil {
		u.recordFailure()
		return Response{}, err
	}
	now := nowFn()
	rec := ports.WorldRecord{
		ID:        newID(),
		Params:    req.Params,
		Strategy:  gen.Strategy(),
		Version:   1,
		World:     w,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Repo.Create(ctx, rec); err != nil {
		u.recordFailure()
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordGenerated(rec.Strategy)
	}

	return Response{
		WorldID:       rec.ID,
		Width:         w.Width(),
		Height:        w.Height(),
		WrappingX:     w.WrappingX(),
		WrappingY:     w.WrappingY(),
		Seed:          req.Params.Seed,
		Strategy:      rec.Strategy,
		WaterFraction: report.WaterFraction,
		TerrainCounts: w.TerrainCounts(),
		Report:        report,
	}, nil
}

func (u UseCase) pick(strategy worldgen.Strategy) (ports.WorldGenerator, error) {
	if len(u.Generators) == 0 {
		return nil, fmt.Errorf("%w: no generator configured", ErrInvalidRequest)
	}
	if strategy == "" {
		return u.Generators[0], nil
	}
	for _, g := range u.Generators {
		if g.Strategy() == strategy {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: strategy %q not available", ErrInvalidRequest, strategy)
}

func (u UseCase) recordFailure() {
	if u.Metrics != nil {
		u.Metrics.RecordFailure()
	}
}
