package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"civmap/internal/app/generate"
	"civmap/internal/app/observe"
	"civmap/internal/app/ports"
	"civmap/internal/app/status"
	"civmap/internal/app/transform"
	"civmap/internal/app/turn"
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
	"civmap/internal/domain/worldgen"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	GenerateUC  generate.UseCase
	StatusUC    status.UseCase
	ObserveUC   observe.UseCase
	TransformUC transform.UseCase
	CancelUC    transform.CancelUseCase
	TurnUC      turn.UseCase
	KPI         kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/worlds", h.generate)
	api.GET("/worlds/:id", h.status)
	api.GET("/worlds/:id/view", h.view)
	api.POST("/worlds/:id/transform", h.transform)
	api.POST("/worlds/:id/transform/cancel", h.cancelTransform)
	api.POST("/worlds/:id/turn", h.turn)

	s.GET("/ops/kpi", h.kpi)
}

type generateRequest struct {
	Width            *int     `json:"width"`
	Height           *int     `json:"height"`
	WrappingX        *bool    `json:"wrapping_x"`
	WrappingY        *bool    `json:"wrapping_y"`
	WaterPercentage  *float64 `json:"water_percentage"`
	Seed             *int64   `json:"seed"`
	LandDistribution string   `json:"land_distribution"`
	Strategy         string   `json:"strategy"`
}

type transformRequest struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Kind string `json:"kind"`
}

// params fills omitted fields from worldgen.DefaultParameters.
func (r generateRequest) params() (worldgen.Parameters, error) {
	p := worldgen.DefaultParameters()
	if r.Width != nil {
		p.Width = *r.Width
	}
	if r.Height != nil {
		p.Height = *r.Height
	}
	if r.WrappingX != nil {
		p.WrappingX = *r.WrappingX
	}
	if r.WrappingY != nil {
		p.WrappingY = *r.WrappingY
	}
	if r.WaterPercentage != nil {
		p.WaterPercentage = *r.WaterPercentage
	}
	if r.Seed != nil {
		p.Seed = *r.Seed
	}
	dist, err := worldgen.ParseLandDistribution(r.LandDistribution)
	if err != nil {
		return worldgen.Parameters{}, err
	}
	p.LandDistribution = dist
	return p, nil
}

func (h Handler) generate(c context.Context, ctx *app.RequestContext) {
	var body generateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	params, err := body.params()
	if err != nil {
		writeError(ctx, err)
		return
	}
	var strategy worldgen.Strategy
	if strings.TrimSpace(body.Strategy) != "" {
		if strategy, err = worldgen.ParseStrategy(body.Strategy); err != nil {
			writeError(ctx, err)
			return
		}
	}

	resp, err := h.GenerateUC.Execute(c, generate.Request{Params: params, Strategy: strategy})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{WorldID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) view(c context.Context, ctx *app.RequestContext) {
	x, errX := queryInt(ctx, "x", 0)
	y, errY := queryInt(ctx, "y", 0)
	radius, errR := queryInt(ctx, "radius", 0)
	if err := errors.Join(errX, errY, errR); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{
		WorldID: ctx.Param("id"),
		Center:  world.Point{X: x, Y: y},
		Radius:  radius,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) transform(c context.Context, ctx *app.RequestContext) {
	var body transformRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	kind, err := terrain.ParseTransformKind(body.Kind)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.TransformUC.Execute(c, transform.Request{
		WorldID: ctx.Param("id"),
		X:       body.X,
		Y:       body.Y,
		Kind:    kind,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) cancelTransform(c context.Context, ctx *app.RequestContext) {
	var body transformRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.CancelUC.Execute(c, transform.CancelRequest{
		WorldID: ctx.Param("id"),
		X:       body.X,
		Y:       body.Y,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) turn(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TurnUC.Execute(c, turn.Request{WorldID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("query " + key + " must be an integer")
	}
	return n, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, world.ErrTransformInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "transform_in_progress", err.Error())
	case errors.Is(err, worldgen.ErrInvalidParameters):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_parameters", err.Error())
	case errors.Is(err, terrain.ErrUnknownTransform):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_transform", err.Error())
	case errors.Is(err, generate.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, transform.ErrInvalidRequest),
		errors.Is(err, turn.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		hlog.Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
