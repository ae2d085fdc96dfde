package ports

import (
	"civmap/internal/domain/terrain"
	"civmap/internal/domain/worldgen"
)

type WorldMetrics interface {
	RecordGenerated(strategy worldgen.Strategy)
	RecordTransformStarted(kind terrain.TransformKind)
	RecordTransformRejected(kind terrain.TransformKind)
	RecordTurn(completed int)
	RecordConflict()
	RecordFailure()
}
