package ports

import (
	"civmap/internal/domain/world"
	"civmap/internal/domain/worldgen"
)

type WorldGenerator interface {
	Strategy() worldgen.Strategy
	Generate(params worldgen.Parameters) (*world.World, worldgen.Report, error)
}
