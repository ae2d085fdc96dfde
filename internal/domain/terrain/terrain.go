package terrain

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

var ErrUnknownTerrain = errors.New("unknown terrain")

type Terrain uint8

const (
	DeepOcean Terrain = iota
	Ocean
	Lake
	Desert
	Plains
	Grassland
	Hills
	Forest
	Jungle
	Swamp
	Mountains
	Tundra
	Glacier
)

// All lists every terrain in declaration order.
var All = []Terrain{
	DeepOcean, Ocean, Lake, Desert, Plains, Grassland, Hills,
	Forest, Jungle, Swamp, Mountains, Tundra, Glacier,
}

var terrainNames = [...]string{
	DeepOcean: "deep_ocean",
	Ocean:     "ocean",
	Lake:      "lake",
	Desert:    "desert",
	Plains:    "plains",
	Grassland: "grassland",
	Hills:     "hills",
	Forest:    "forest",
	Jungle:    "jungle",
	Swamp:     "swamp",
	Mountains: "mountains",
	Tundra:    "tundra",
	Glacier:   "glacier",
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

func (t Terrain) Valid() bool { return int(t) < len(terrainNames) }

func ParseTerrain(name string) (Terrain, error) {
	for i, n := range terrainNames {
		if n == name {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, name)
}

func (t Terrain) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTerrain, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Terrain) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MoveCost is the cost for a unit leaving a tile of this terrain.
func (t Terrain) MoveCost() int {
	switch t {
	case Forest, Glacier, Hills, Jungle, Swamp:
		return 2
	case Mountains:
		return 3
	default:
		return 1
	}
}

func (t Terrain) IsWater() bool {
	return t == DeepOcean || t == Ocean || t == Lake
}

var allowedSpecials = map[Terrain]mapset.Set[Special]{
	DeepOcean: mapset.Of(Fish, Whales),
	Ocean:     mapset.Of(Fish, Whales),
	Lake:      mapset.Of(Fish),
	Desert:    mapset.Of(Oasis, Oil),
	Plains:    mapset.Of(Buffalo, Wheat),
	Grassland: mapset.Of(Resources),
	Hills:     mapset.Of(Coal, Wine),
	Forest:    mapset.Of(Pheasant, Silk),
	Jungle:    mapset.Of(Gems, Fruit),
	Swamp:     mapset.Of(Peat, Spice),
	Mountains: mapset.Of(Gold, Iron),
	Tundra:    mapset.Of(Game, Furs),
	Glacier:   mapset.Of(Ivory, Oil),
}

// AllowedSpecials returns the specials that may occupy this terrain, in
// declaration order. SpecialNone is implied and not listed.
func (t Terrain) AllowedSpecials() []Special {
	set, ok := allowedSpecials[t]
	if !ok {
		return nil
	}
	out := make([]Special, 0, set.Size())
	for _, s := range allSpecials {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Allows reports whether s may legally occupy this terrain. SpecialNone is
// always allowed.
func (t Terrain) Allows(s Special) bool {
	if s == SpecialNone {
		return true
	}
	set, ok := allowedSpecials[t]
	return ok && set.Has(s)
}
