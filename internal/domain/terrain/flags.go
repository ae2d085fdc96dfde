package terrain

import (
	"errors"
	"fmt"
)

var ErrUnknownFlag = errors.New("unknown flag")

// Flags is the set of player-made and game-made modifications on a tile.
type Flags uint16

const (
	HasRiver Flags = 1 << iota
	HasRoad
	HasIrrigation
	HasMine
	HasRailroad
	HasRuins
	HasPollution
	HasFort
	HasNuclearFallout
	HasHut
	HasFarmland
	HasCity
)

const allFlags = HasCity<<1 - 1

var flagNames = []struct {
	flag Flags
	name string
}{
	{HasRiver, "river"},
	{HasRoad, "road"},
	{HasIrrigation, "irrigation"},
	{HasMine, "mine"},
	{HasRailroad, "railroad"},
	{HasRuins, "ruins"},
	{HasPollution, "pollution"},
	{HasFort, "fort"},
	{HasNuclearFallout, "nuclear_fallout"},
	{HasHut, "hut"},
	{HasFarmland, "farmland"},
	{HasCity, "city"},
}

// Has reports whether every bit of f is set.
func (fs Flags) Has(f Flags) bool { return f != 0 && fs&f == f }

func (fs Flags) With(f Flags) Flags { return fs | f }

func (fs Flags) Without(f Flags) Flags { return fs &^ f }

func (fs Flags) IsEmpty() bool { return fs == 0 }

func (fs Flags) Valid() bool { return fs&^allFlags == 0 }

// Names lists the set flags in bit order.
func (fs Flags) Names() []string {
	out := []string{}
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (fs Flags) String() string {
	return fmt.Sprint(fs.Names())
}

// ParseFlag resolves a single flag name.
func ParseFlag(name string) (Flags, error) {
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
}

func ParseFlags(names []string) (Flags, error) {
	var fs Flags
	for _, n := range names {
		f, err := ParseFlag(n)
		if err != nil {
			return 0, err
		}
		fs |= f
	}
	return fs, nil
}
