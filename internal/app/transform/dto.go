package transform

import (
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
)

type Request struct {
	WorldID string
	X       int
	Y       int
	Kind    terrain.TransformKind
}

type Response struct {
	WorldID  string                `json:"world_id"`
	Position world.Point           `json:"position"`
	Kind     terrain.TransformKind `json:"kind"`
	Possible bool                  `json:"possible"`
	Turns    int                   `json:"turns"`
	Terrain  terrain.Terrain       `json:"terrain"`
	Version  int64                 `json:"version"`
}

type CancelRequest struct {
	WorldID string
	X       int
	Y       int
}

type CancelResponse struct {
	WorldID   string                 `json:"world_id"`
	Position  world.Point            `json:"position"`
	Cancelled bool                   `json:"cancelled"`
	Kind      *terrain.TransformKind `json:"kind,omitempty"`
	Version   int64                  `json:"version"`
}
