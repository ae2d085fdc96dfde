package observe

import "civmap/internal/domain/world"

type Request struct {
	WorldID string
	Center  world.Point
	Radius  int
}

type Response struct {
	WorldID  string         `json:"world_id"`
	Turn     int64          `json:"turn"`
	Snapshot world.Snapshot `json:"snapshot"`
}
