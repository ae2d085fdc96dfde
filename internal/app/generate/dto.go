package generate

import (
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/worldgen"
)

type Request struct {
	Params   worldgen.Parameters
	Strategy worldgen.Strategy
}

type Response struct {
	WorldID       string                  `json:"world_id"`
	Width         int                     `json:"width"`
	Height        int                     `json:"height"`
	WrappingX     bool                    `json:"wrapping_x"`
	WrappingY     bool                    `json:"wrapping_y"`
	Seed          int64                   `json:"seed"`
	Strategy      worldgen.Strategy       `json:"strategy"`
	WaterFraction float64                 `json:"water_fraction"`
	TerrainCounts map[terrain.Terrain]int `json:"terrain_counts"`
	Report        worldgen.Report         `json:"report"`
}
