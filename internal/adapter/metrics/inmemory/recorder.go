package inmemory

import (
	"sync"

	"civmap/internal/domain/terrain"
	"civmap/internal/domain/worldgen"
)

type Snapshot struct {
	WorldsGenerated     uint64            `json:"worlds_generated"`
	ByStrategy          map[string]uint64 `json:"by_strategy"`
	TransformsStarted   map[string]uint64 `json:"transforms_started"`
	TransformsRejected  map[string]uint64 `json:"transforms_rejected"`
	TransformsCompleted uint64            `json:"transforms_completed"`
	TurnsAdvanced       uint64            `json:"turns_advanced"`
	Conflicts           uint64            `json:"conflicts"`
	Failures            uint64            `json:"failures"`
}

type Recorder struct {
	mu         sync.Mutex
	byStrategy map[string]uint64
	started    map[string]uint64
	rejected   map[string]uint64
	completed  uint64
	turns      uint64
	conflict   uint64
	failure    uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byStrategy: map[string]uint64{},
		started:    map[string]uint64{},
		rejected:   map[string]uint64{},
	}
}

func (r *Recorder) RecordGenerated(strategy worldgen.Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byStrategy[string(strategy)]++
}

func (r *Recorder) RecordTransformStarted(kind terrain.TransformKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started[kind.String()]++
}

func (r *Recorder) RecordTransformRejected(kind terrain.TransformKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[kind.String()]++
}

func (r *Recorder) RecordTurn(completed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns++
	r.completed += uint64(completed)
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ByStrategy:          copyCounts(r.byStrategy),
		TransformsStarted:   copyCounts(r.started),
		TransformsRejected:  copyCounts(r.rejected),
		TransformsCompleted: r.completed,
		TurnsAdvanced:       r.turns,
		Conflicts:           r.conflict,
		Failures:            r.failure,
	}
	for _, v := range r.byStrategy {
		out.WorldsGenerated += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
