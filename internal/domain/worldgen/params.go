package worldgen

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidParameters = errors.New("invalid generation parameters")

type LandDistribution string

const (
	LandSpread     LandDistribution = "spread"
	LandContiguous LandDistribution = "contiguous"
)

func ParseLandDistribution(s string) (LandDistribution, error) {
	switch LandDistribution(strings.ToLower(strings.TrimSpace(s))) {
	case "", LandSpread:
		return LandSpread, nil
	case LandContiguous:
		return LandContiguous, nil
	}
	return "", fmt.Errorf("%w: land distribution %q", ErrInvalidParameters, s)
}

// Parameters is the caller-facing generation configuration.
type Parameters struct {
	Width            int              `json:"width"`
	Height           int              `json:"height"`
	WrappingX        bool             `json:"wrapping_x"`
	WrappingY        bool             `json:"wrapping_y"`
	WaterPercentage  float64          `json:"water_percentage"`
	Seed             int64            `json:"seed"`
	LandDistribution LandDistribution `json:"land_distribution"`
}

// MaxCells bounds width*height. Generation holds the tile grid and two
// float64 fields of that size in memory at once.
const MaxCells = 2048 * 2048

func DefaultParameters() Parameters {
	return Parameters{
		Width:            64,
		Height:           64,
		WrappingX:        true,
		WrappingY:        false,
		WaterPercentage:  0.6,
		Seed:             0,
		LandDistribution: LandSpread,
	}
}

// Validate rejects parameters that generation cannot honour. It runs before
// any synthesis starts.
func (p Parameters) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidParameters, p.Width, p.Height)
	}
	if p.Width > MaxCells/p.Height {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d cells", ErrInvalidParameters, p.Width, p.Height, MaxCells)
	}
	if math.IsNaN(p.WaterPercentage) || p.WaterPercentage < 0 || p.WaterPercentage > 1 {
		return fmt.Errorf("%w: water percentage %v outside [0,1]", ErrInvalidParameters, p.WaterPercentage)
	}
	switch p.LandDistribution {
	case LandSpread, LandContiguous:
	default:
		return fmt.Errorf("%w: land distribution %q", ErrInvalidParameters, p.LandDistribution)
	}
	return nil
}
