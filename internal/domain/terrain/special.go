package terrain

import (
	"errors"
	"fmt"
)

var ErrUnknownSpecial = errors.New("unknown special")

// Special is the optional resource bonus on a tile.
type Special uint8

const (
	SpecialNone Special = iota
	Oasis
	Oil
	Pheasant
	Silk
	Ivory
	Resources
	Coal
	Wine
	Gems
	Fruit
	Fish
	Gold
	Iron
	Whales
	Buffalo
	Wheat
	Peat
	Spice
	Game
	Furs
)

var allSpecials = []Special{
	Oasis, Oil, Pheasant, Silk, Ivory, Resources, Coal, Wine, Gems, Fruit,
	Fish, Gold, Iron, Whales, Buffalo, Wheat, Peat, Spice, Game, Furs,
}

var specialNames = [...]string{
	SpecialNone: "none",
	Oasis:       "oasis",
	Oil:         "oil",
	Pheasant:    "pheasant",
	Silk:        "silk",
	Ivory:       "ivory",
	Resources:   "resources",
	Coal:        "coal",
	Wine:        "wine",
	Gems:        "gems",
	Fruit:       "fruit",
	Fish:        "fish",
	Gold:        "gold",
	Iron:        "iron",
	Whales:      "whales",
	Buffalo:     "buffalo",
	Wheat:       "wheat",
	Peat:        "peat",
	Spice:       "spice",
	Game:        "game",
	Furs:        "furs",
}

func (s Special) String() string {
	if int(s) < len(specialNames) {
		return specialNames[s]
	}
	return fmt.Sprintf("special(%d)", uint8(s))
}

func ParseSpecial(name string) (Special, error) {
	if name == "" {
		return SpecialNone, nil
	}
	for i, n := range specialNames {
		if n == name {
			return Special(i), nil
		}
	}
	return SpecialNone, fmt.Errorf("%w: %q", ErrUnknownSpecial, name)
}

func (s Special) MarshalText() ([]byte, error) {
	if int(s) >= len(specialNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpecial, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Special) UnmarshalText(b []byte) error {
	v, err := ParseSpecial(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
