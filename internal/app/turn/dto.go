package turn

import "civmap/internal/domain/world"

type Request struct {
	WorldID string
}

type Response struct {
	WorldID          string        `json:"world_id"`
	Turn             int64         `json:"turn"`
	Completed        []world.Point `json:"completed"`
	ActiveTransforms int           `json:"active_transforms"`
	Version          int64         `json:"version"`
}
