package worldgen

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"
)

type Strategy string

const (
	// StrategyIsland carves land seeds into a multi-octave field, then
	// consolidates water pockets and applies the feature overlay. The output
	// is fully determined by the seed.
	StrategyIsland Strategy = "island"
	// StrategyThreshold searches a height cut that realizes the requested
	// water fraction.
	StrategyThreshold Strategy = "threshold"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyIsland:
		return StrategyIsland, nil
	case StrategyThreshold:
		return StrategyThreshold, nil
	}
	return "", fmt.Errorf("%w: strategy %q", ErrInvalidParameters, s)
}

const (
	DefaultScale               = 16.0
	DefaultMinWaterBody        = 3
	DefaultTolerance           = 0.001
	DefaultMaxSearchIterations = 64

	islandOctaves  = 5
	islandBase     = 2.0
	overlayOctaves = 3
	overlayBase    = 8.0
)

type Config struct {
	Strategy            Strategy
	Scale               float64
	MinWaterBody        int
	Tolerance           float64
	MaxSearchIterations int
	NoiseSource         NoiseSource
	// Rand drives cell sampling. When nil each Generate call seeds its own
	// PCG source from Parameters.Seed.
	Rand *rand.Rand
}

type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) Generator {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyIsland
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if cfg.MinWaterBody <= 0 {
		cfg.MinWaterBody = DefaultMinWaterBody
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.MaxSearchIterations <= 0 {
		cfg.MaxSearchIterations = DefaultMaxSearchIterations
	}
	if cfg.NoiseSource == nil {
		cfg.NoiseSource = PerlinSource
	}
	return Generator{cfg: cfg}
}

func (g Generator) Strategy() Strategy { return g.cfg.Strategy }

type Report struct {
	Strategy         Strategy `json:"strategy"`
	WaterFraction    float64  `json:"water_fraction"`
	Carved           int      `json:"carved,omitempty"`
	MergedComponents int      `json:"merged_components,omitempty"`
	OverlayChanges   int      `json:"overlay_changes,omitempty"`
	SearchIterations int      `json:"search_iterations,omitempty"`
	Threshold        float64  `json:"threshold,omitempty"`
}

// Generate builds a world from params. Invalid parameters are rejected
// before any synthesis.
func (g Generator) Generate(params Parameters) (*world.World, Report, error) {
	if err := params.Validate(); err != nil {
		return nil, Report{}, err
	}
	w, err := world.New(params.Width, params.Height, params.WrappingX, params.WrappingY, terrain.Ocean)
	if err != nil {
		return nil, Report{}, err
	}

	var report Report
	switch g.cfg.Strategy {
	case StrategyIsland:
		report, err = g.generateIsland(w, params)
	case StrategyThreshold:
		report, err = g.generateThreshold(w, params)
	default:
		return nil, Report{}, fmt.Errorf("%w: strategy %q", ErrInvalidParameters, g.cfg.Strategy)
	}
	if err != nil {
		return nil, Report{}, fmt.Errorf("%s: %w", g.cfg.Strategy, err)
	}
	report.Strategy = g.cfg.Strategy
	report.WaterFraction = w.WaterFraction()
	return w, report, nil
}

func (g Generator) rng(params Parameters) *rand.Rand {
	if g.cfg.Rand != nil {
		return g.cfg.Rand
	}
	return rand.New(rand.NewPCG(uint64(params.Seed), 0))
}

func (g Generator) generateIsland(w *world.World, params Parameters) (Report, error) {
	scale := g.cfg.Scale
	if params.LandDistribution == LandContiguous {
		scale *= 2
	}
	height, err := Synthesize(g.cfg.NoiseSource(params.Seed), params.Width, params.Height, Sampling{
		Octaves: islandOctaves,
		Base:    islandBase,
		ScaleX:  scale,
		ScaleY:  scale,
	})
	if err != nil {
		return Report{}, err
	}
	height.Normalize()

	report := Report{Carved: CarveWater(height, params.WaterPercentage, g.rng(params))}
	classify(w, height, IslandTerrain)
	report.MergedComponents = Consolidate(w, g.cfg.MinWaterBody)

	overlay, err := Synthesize(g.cfg.NoiseSource(params.Seed+1), params.Width, params.Height, Sampling{
		Octaves: overlayOctaves,
		Base:    overlayBase,
		ScaleX:  g.cfg.Scale,
		ScaleY:  g.cfg.Scale,
	})
	if err != nil {
		return Report{}, err
	}
	overlay.Normalize()
	report.OverlayChanges = ApplyOverlay(w, overlay)
	return report, nil
}

func (g Generator) generateThreshold(w *world.World, params Parameters) (Report, error) {
	// Four noise periods across each axis.
	sx := float64(params.Width) / 4
	sy := float64(params.Height) / 4
	if params.LandDistribution == LandContiguous {
		sx, sy = sx*2, sy*2
	}
	height, err := Synthesize(g.cfg.NoiseSource(params.Seed), params.Width, params.Height, Sampling{
		Octaves: 1,
		Base:    islandBase,
		ScaleX:  sx,
		ScaleY:  sy,
	})
	if err != nil {
		return Report{}, err
	}
	height.Normalize()

	search := SearchThreshold(height, params.WaterPercentage, g.cfg.Tolerance, g.cfg.MaxSearchIterations)
	classify(w, height, func(h float64) terrain.Terrain {
		if h < search.Threshold {
			return terrain.Ocean
		}
		return ThresholdLand(h)
	})
	return Report{SearchIterations: search.Iterations, Threshold: search.Threshold}, nil
}
