package status

import (
	"time"

	"civmap/internal/domain/terrain"
	"civmap/internal/domain/worldgen"
)

type Request struct {
	WorldID string
}

type Response struct {
	WorldID          string                  `json:"world_id"`
	Params           worldgen.Parameters     `json:"params"`
	Strategy         worldgen.Strategy       `json:"strategy"`
	Turn             int64                   `json:"turn"`
	Version          int64                   `json:"version"`
	WaterFraction    float64                 `json:"water_fraction"`
	TerrainCounts    map[terrain.Terrain]int `json:"terrain_counts"`
	ActiveTransforms int                     `json:"active_transforms"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}
