package terrain

import (
	"errors"
	"fmt"
)

var ErrUnknownTransform = errors.New("unknown transform")

// TransformKind is one of the four worker actions a tile can undergo.
type TransformKind uint8

const (
	Irrigation TransformKind = iota
	Mining
	Road
	Terraform
)

var TransformKinds = []TransformKind{Irrigation, Mining, Road, Terraform}

var transformNames = [...]string{
	Irrigation: "irrigation",
	Mining:     "mining",
	Road:       "road",
	Terraform:  "terraform",
}

func (k TransformKind) String() string {
	if int(k) < len(transformNames) {
		return transformNames[k]
	}
	return fmt.Sprintf("transform(%d)", uint8(k))
}

func (k TransformKind) Valid() bool { return int(k) < len(transformNames) }

func ParseTransformKind(name string) (TransformKind, error) {
	for i, n := range transformNames {
		if n == name {
			return TransformKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
}

func (k TransformKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTransform, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *TransformKind) UnmarshalText(b []byte) error {
	v, err := ParseTransformKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// BuiltFlag is the flag a BuildFlag outcome of this kind would set. Terraform
// never builds a flag.
func (k TransformKind) BuiltFlag() (Flags, bool) {
	switch k {
	case Irrigation:
		return HasIrrigation, true
	case Mining:
		return HasMine, true
	case Road:
		return HasRoad, true
	default:
		return 0, false
	}
}

type OutcomeKind uint8

const (
	OutcomeImpossible OutcomeKind = iota
	OutcomeBuildFlag
	OutcomeTransformTo
)

// Outcome is one entry of the terrain rule table.
type Outcome struct {
	Kind    OutcomeKind
	Flag    Flags
	Terrain Terrain
	Turns   int
}

func (o Outcome) Possible() bool { return o.Kind != OutcomeImpossible }

// Builds reports whether the outcome is BuildFlag(f, _).
func (o Outcome) Builds(f Flags) bool {
	return o.Kind == OutcomeBuildFlag && o.Flag == f
}

func impossible() Outcome { return Outcome{Kind: OutcomeImpossible} }

func irrigation(turns int) Outcome {
	return Outcome{Kind: OutcomeBuildFlag, Flag: HasIrrigation, Turns: turns}
}

func mine(turns int) Outcome {
	return Outcome{Kind: OutcomeBuildFlag, Flag: HasMine, Turns: turns}
}

func road(turns int) Outcome {
	return Outcome{Kind: OutcomeBuildFlag, Flag: HasRoad, Turns: turns}
}

func to(t Terrain, turns int) Outcome {
	return Outcome{Kind: OutcomeTransformTo, Terrain: t, Turns: turns}
}

// rules is indexed by terrain, then by transform kind.
var rules = [...][4]Outcome{
	DeepOcean: {impossible(), impossible(), impossible(), impossible()},
	Desert:    {irrigation(5), mine(5), road(2), to(Plains, 24)},
	Forest:    {to(Plains, 5), to(Swamp, 15), road(4), to(Grassland, 24)},
	Glacier:   {impossible(), mine(10), road(4), to(Tundra, 24)},
	Grassland: {irrigation(5), to(Forest, 10), road(2), to(Hills, 24)},
	Hills:     {irrigation(10), mine(10), road(4), to(Plains, 24)},
	Jungle:    {to(Grassland, 15), to(Forest, 15), road(4), to(Plains, 24)},
	Lake:      {impossible(), impossible(), impossible(), to(Swamp, 36)},
	Mountains: {impossible(), mine(10), road(6), to(Hills, 24)},
	Ocean:     {impossible(), impossible(), impossible(), to(Swamp, 36)},
	Plains:    {irrigation(5), to(Forest, 15), road(2), to(Grassland, 24)},
	Swamp:     {to(Grassland, 15), to(Forest, 15), road(4), to(Ocean, 36)},
	Tundra:    {irrigation(5), impossible(), road(2), to(Desert, 24)},
}

// Transform looks up the rule table entry for applying k to t.
func (t Terrain) Transform(k TransformKind) Outcome {
	if !t.Valid() || !k.Valid() {
		return impossible()
	}
	return rules[t][k]
}
