package world

import (
	"errors"
	"fmt"

	"civmap/internal/domain/terrain"
)

var (
	ErrTransformInProgress = errors.New("transform already in progress")
	ErrSpecialNotAllowed   = errors.New("special not allowed on terrain")
	ErrInvalidTileRecord   = errors.New("invalid tile record")
)

// TransformStatus is either idle (Active == false) or an ongoing transform
// with a positive number of turns remaining.
type TransformStatus struct {
	Active         bool
	Kind           terrain.TransformKind
	TurnsRemaining int
}

// TransformResult is the answer to StartTransform: either Possible with the
// number of turns the work takes, or impossible.
type TransformResult struct {
	Possible bool
	Turns    int
}

// Tile is one cell of the map. Its state changes only through the transform
// methods and the terrain change cascade.
type Tile struct {
	terrain terrain.Terrain
	special terrain.Special
	flags   terrain.Flags
	status  TransformStatus
}

func NewTile(t terrain.Terrain) Tile {
	return Tile{terrain: t}
}

func (t Tile) Terrain() terrain.Terrain     { return t.terrain }
func (t Tile) Special() terrain.Special     { return t.special }
func (t Tile) Flags() terrain.Flags         { return t.flags }
func (t Tile) Status() TransformStatus      { return t.status }
func (t Tile) Transforming() bool           { return t.status.Active }
func (t Tile) MoveCost() int                { return t.terrain.MoveCost() }
func (t Tile) IsWater() bool                { return t.terrain.IsWater() }
func (t Tile) HasFlag(f terrain.Flags) bool { return t.flags.Has(f) }

// StartTransform begins work of the given kind. An impossible rule, or a
// flag that is already built, yields an impossible result with no error.
// Starting while another transform runs is rejected with
// ErrTransformInProgress; the running transform is kept.
func (t *Tile) StartTransform(kind terrain.TransformKind) (TransformResult, error) {
	if !kind.Valid() {
		return TransformResult{}, fmt.Errorf("%w: %d", terrain.ErrUnknownTransform, uint8(kind))
	}
	if t.status.Active {
		return TransformResult{}, ErrTransformInProgress
	}
	outcome := t.terrain.Transform(kind)
	switch outcome.Kind {
	case terrain.OutcomeImpossible:
		return TransformResult{}, nil
	case terrain.OutcomeBuildFlag:
		if t.flags.Has(outcome.Flag) {
			return TransformResult{}, nil
		}
	}
	t.status = TransformStatus{Active: true, Kind: kind, TurnsRemaining: outcome.Turns}
	return TransformResult{Possible: true, Turns: outcome.Turns}, nil
}

// TickTransform advances the ongoing transform by one turn and reports
// whether it completed on this tick.
func (t *Tile) TickTransform() bool {
	if !t.status.Active {
		return false
	}
	t.status.TurnsRemaining--
	if t.status.TurnsRemaining > 0 {
		return false
	}

	kind := t.status.Kind
	outcome := t.terrain.Transform(kind)
	t.status = TransformStatus{}
	switch outcome.Kind {
	case terrain.OutcomeBuildFlag:
		t.flags = t.flags.With(outcome.Flag)
	case terrain.OutcomeTransformTo:
		t.ChangeTerrain(outcome.Terrain)
	default:
		// ChangeTerrain clears the status, so a running transform always
		// matches the rule that admitted it.
		panic(fmt.Sprintf("world: transform %s on %s became impossible", kind, t.terrain))
	}
	return true
}

// TickUntilDone ticks until the tile is idle and returns the number of ticks.
func (t *Tile) TickUntilDone() int {
	n := 0
	for t.status.Active {
		t.TickTransform()
		n++
	}
	return n
}

// CancelTransform drops the ongoing transform without applying it.
func (t *Tile) CancelTransform() {
	t.status = TransformStatus{}
}

// ChangeTerrain sets a new terrain and strips whatever the new terrain
// cannot carry: the special always, every flag on ocean, and otherwise the
// irrigation, mine and road the new terrain could not build itself. A
// running transform was admitted by the old terrain's rule and is dropped.
func (t *Tile) ChangeTerrain(next terrain.Terrain) {
	t.status = TransformStatus{}
	t.terrain = next
	t.special = terrain.SpecialNone

	if next == terrain.Ocean {
		t.flags = 0
		return
	}
	for _, kind := range []terrain.TransformKind{terrain.Irrigation, terrain.Mining, terrain.Road} {
		flag, _ := kind.BuiltFlag()
		if !next.Transform(kind).Builds(flag) {
			t.flags = t.flags.Without(flag)
		}
	}
}

func (t *Tile) SetSpecial(s terrain.Special) error {
	if !t.terrain.Allows(s) {
		return fmt.Errorf("%w: %s on %s", ErrSpecialNotAllowed, s, t.terrain)
	}
	t.special = s
	return nil
}

func (t *Tile) SetFlag(f terrain.Flags)   { t.flags = t.flags.With(f) }
func (t *Tile) ClearFlag(f terrain.Flags) { t.flags = t.flags.Without(f) }

type TileRecord struct {
	Terrain        terrain.Terrain        `json:"terrain"`
	Special        terrain.Special        `json:"special"`
	Flags          []string               `json:"flags"`
	Transform      *terrain.TransformKind `json:"transform,omitempty"`
	TurnsRemaining int                    `json:"turns_remaining,omitempty"`
}

func (t Tile) Record() TileRecord {
	rec := TileRecord{
		Terrain: t.terrain,
		Special: t.special,
		Flags:   t.flags.Names(),
	}
	if t.status.Active {
		kind := t.status.Kind
		rec.Transform = &kind
		rec.TurnsRemaining = t.status.TurnsRemaining
	}
	return rec
}

// TileFromRecord rebuilds a tile, rejecting records that break tile
// invariants.
func TileFromRecord(rec TileRecord) (Tile, error) {
	if !rec.Terrain.Valid() {
		return Tile{}, fmt.Errorf("%w: terrain %d", ErrInvalidTileRecord, uint8(rec.Terrain))
	}
	if !rec.Terrain.Allows(rec.Special) {
		return Tile{}, fmt.Errorf("%w: %s on %s", ErrInvalidTileRecord, rec.Special, rec.Terrain)
	}
	flags, err := terrain.ParseFlags(rec.Flags)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %v", ErrInvalidTileRecord, err)
	}
	t := Tile{terrain: rec.Terrain, special: rec.Special, flags: flags}
	if rec.Transform != nil {
		if rec.TurnsRemaining <= 0 {
			return Tile{}, fmt.Errorf("%w: transform with %d turns remaining", ErrInvalidTileRecord, rec.TurnsRemaining)
		}
		outcome := rec.Terrain.Transform(*rec.Transform)
		if !outcome.Possible() {
			return Tile{}, fmt.Errorf("%w: %s impossible on %s", ErrInvalidTileRecord, *rec.Transform, rec.Terrain)
		}
		if outcome.Kind == terrain.OutcomeBuildFlag && flags.Has(outcome.Flag) {
			return Tile{}, fmt.Errorf("%w: %s in progress on a tile that already has it", ErrInvalidTileRecord, *rec.Transform)
		}
		t.status = TransformStatus{Active: true, Kind: *rec.Transform, TurnsRemaining: rec.TurnsRemaining}
	}
	return t, nil
}
