package worldgen

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"civmap/internal/domain/terrain"
	"civmap/internal/domain/world"

	"github.com/google/go-cmp/cmp"
)

type noiseFunc func(x, y float64) float64

func (f noiseFunc) Noise2D(x, y float64) float64 { return f(x, y) }

func fieldOf(w, h int, values ...float64) *Field {
	f := NewField(w, h)
	copy(f.data, values)
	return f
}

func rowWorld(t *testing.T, wrapX bool, ters ...terrain.Terrain) *world.World {
	t.Helper()
	w, err := world.New(len(ters), 1, wrapX, false, terrain.Ocean)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for x, ter := range ters {
		w.SetTerrain(world.Point{X: x}, ter)
	}
	return w
}

func TestNormalizeMapsObservedExtremes(t *testing.T) {
	f := fieldOf(3, 1, -3, 1, 5)
	f.Normalize()
	if diff := cmp.Diff([]float64{0, 0.5, 1}, f.Values()); diff != "" {
		t.Fatalf("normalized (-want +got):\n%s", diff)
	}
}

func TestNormalizeConstantFieldBecomesZero(t *testing.T) {
	f := fieldOf(2, 2, 7, 7, 7, 7)
	f.Normalize()
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, f.Values()); diff != "" {
		t.Fatalf("normalized (-want +got):\n%s", diff)
	}
}

func TestSynthesizeWeightsOctaves(t *testing.T) {
	one := noiseFunc(func(float64, float64) float64 { return 1 })
	f, err := Synthesize(one, 4, 3, Sampling{Octaves: 3, Base: 2, ScaleX: 1, ScaleY: 1})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for _, v := range f.Values() {
		if v != 1.75 {
			t.Fatalf("three octaves of 1 should sum to 1.75, got %v", v)
		}
	}

	xs := noiseFunc(func(x, _ float64) float64 { return x })
	f, err = Synthesize(xs, 4, 1, Sampling{Octaves: 1, Base: 2, ScaleX: 2, ScaleY: 2})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if got := f.At(3, 0); got != 1.75 {
		t.Fatalf("cell 3 samples x=(3+0.5)/2, got %v", got)
	}
}

func TestPerlinFieldNormalizesToUnitRange(t *testing.T) {
	f, err := Synthesize(PerlinSource(11), 32, 32, Sampling{Octaves: 5, Base: 2, ScaleX: 16, ScaleY: 16})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	lo, hi := f.MinMax()
	if lo == hi {
		t.Fatalf("perlin field should not be constant")
	}
	f.Normalize()
	lo, hi = f.MinMax()
	if lo != 0 || hi != 1 {
		t.Fatalf("normalized range=[%v,%v] want [0,1]", lo, hi)
	}
}

func TestSynthesizeFailsOnNonFiniteNoise(t *testing.T) {
	hole := noiseFunc(func(x, y float64) float64 {
		if x > 2 && y > 1 {
			return math.NaN()
		}
		return 0.5
	})
	if _, err := Synthesize(hole, 4, 3, Sampling{Octaves: 1, Base: 2, ScaleX: 1, ScaleY: 1}); !errors.Is(err, ErrNonFiniteNoise) {
		t.Fatalf("expected ErrNonFiniteNoise, got %v", err)
	}

	for _, s := range []Strategy{StrategyIsland, StrategyThreshold} {
		g := NewGenerator(Config{
			Strategy:    s,
			NoiseSource: func(int64) Noise { return hole },
			Scale:       1,
		})
		w, _, err := g.Generate(Parameters{Width: 4, Height: 4, WaterPercentage: 0.5, LandDistribution: LandSpread})
		if !errors.Is(err, ErrNonFiniteNoise) || w != nil {
			t.Fatalf("%s: expected ErrNonFiniteNoise and no world, got %v", s, err)
		}
	}
}

func TestCarveWaterIsCappedByBand(t *testing.T) {
	f := fieldOf(4, 1, 0.5, 0.1, 0.9, 0.45)
	if got := CarveWater(f, 0, rand.New(rand.NewPCG(1, 0))); got != 2 {
		t.Fatalf("carved=%d want 2 band cells", got)
	}
	if diff := cmp.Diff([]float64{0, 0.1, 0.9, 0}, f.Values()); diff != "" {
		t.Fatalf("field after carve (-want +got):\n%s", diff)
	}

	// Band edges are excluded.
	edges := fieldOf(2, 1, 0.4, 0.8)
	if got := CarveWater(edges, 0, rand.New(rand.NewPCG(1, 0))); got != 0 {
		t.Fatalf("band is open, carved=%d", got)
	}
}

func TestCarveWaterIsReproducible(t *testing.T) {
	base := make([]float64, 100)
	for i := range base {
		base[i] = 0.5
	}
	a, b := fieldOf(10, 10, base...), fieldOf(10, 10, base...)
	if got := CarveWater(a, 0.7, rand.New(rand.NewPCG(9, 0))); got != 30 {
		t.Fatalf("carved=%d want 30", got)
	}
	CarveWater(b, 0.7, rand.New(rand.NewPCG(9, 0)))
	if diff := cmp.Diff(a.Values(), b.Values()); diff != "" {
		t.Fatalf("same rng seed carved different cells:\n%s", diff)
	}
}

func TestIslandTerrainBands(t *testing.T) {
	cases := map[float64]terrain.Terrain{
		0: terrain.Ocean, 0.1: terrain.Plains, 0.25: terrain.Grassland, 0.3: terrain.Hills,
		0.45: terrain.Forest, 0.5: terrain.Swamp, 0.65: terrain.Jungle, 0.79: terrain.Mountains,
		0.8: terrain.Desert, 1: terrain.Desert,
	}
	for h, want := range cases {
		if got := IslandTerrain(h); got != want {
			t.Fatalf("IslandTerrain(%v)=%s want %s", h, got, want)
		}
	}
}

func TestThresholdLandBands(t *testing.T) {
	cases := map[float64]terrain.Terrain{
		0.1: terrain.Swamp, 0.3: terrain.Forest, 0.5: terrain.Hills, 0.6: terrain.Mountains, 0.95: terrain.Glacier,
	}
	for h, want := range cases {
		if got := ThresholdLand(h); got != want {
			t.Fatalf("ThresholdLand(%v)=%s want %s", h, got, want)
		}
	}
}

func TestLabelWaterFollowsWrapping(t *testing.T) {
	ters := []terrain.Terrain{terrain.Ocean, terrain.Plains, terrain.Plains, terrain.Lake}
	if got := len(LabelWater(rowWorld(t, true, ters...))); got != 1 {
		t.Fatalf("wrapped seam should join water, got %d bodies", got)
	}
	bodies := LabelWater(rowWorld(t, false, ters...))
	if len(bodies) != 2 {
		t.Fatalf("flat row should hold 2 bodies, got %d", len(bodies))
	}
	if bodies[0].Cells[0] != (world.Point{}) || bodies[1].Cells[0] != (world.Point{X: 3}) {
		t.Fatalf("bodies must be ordered by first cell: %+v", bodies)
	}
}

func TestConsolidateMergesSmallPocketsIntoShore(t *testing.T) {
	w, _ := world.New(5, 5, false, false, terrain.Hills)
	for x := 0; x < 5; x++ {
		w.SetTerrain(world.Point{X: x, Y: 0}, terrain.Lake)
	}
	w.SetTerrain(world.Point{X: 2, Y: 2}, terrain.Ocean)
	for _, p := range []world.Point{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: 3, Y: 2}} {
		w.SetTerrain(p, terrain.Forest)
	}

	if merged := Consolidate(w, 3); merged != 1 {
		t.Fatalf("merged=%d want 1", merged)
	}
	if got := w.Terrain(world.Point{X: 2, Y: 2}); got != terrain.Forest {
		t.Fatalf("pocket should take the dominant shore terrain, got %s", got)
	}
	for x := 0; x < 5; x++ {
		if got := w.Terrain(world.Point{X: x, Y: 0}); got != terrain.Ocean {
			t.Fatalf("large body cell %d should be ocean, got %s", x, got)
		}
	}
	if got := w.Terrain(world.Point{X: 2, Y: 1}); got != terrain.Forest {
		t.Fatalf("land outside components must be untouched, got %s", got)
	}
}

func TestConsolidateKeepsLandlessWater(t *testing.T) {
	w, _ := world.New(2, 1, false, false, terrain.Lake)
	if merged := Consolidate(w, 5); merged != 0 {
		t.Fatalf("no shore to merge into, merged=%d", merged)
	}
	if w.WaterFraction() != 1 {
		t.Fatalf("water must survive")
	}
}

func TestApplyOverlayThresholds(t *testing.T) {
	w := rowWorld(t, false, terrain.Ocean, terrain.Desert, terrain.Hills, terrain.Forest, terrain.Swamp)
	changed := ApplyOverlay(w, fieldOf(5, 1, 0.31, 0.5, 0.41, 0.9, 0.2))
	want := []terrain.Terrain{terrain.Forest, terrain.Desert, terrain.Forest, terrain.Forest, terrain.Swamp}
	for x, ter := range want {
		if got := w.Terrain(world.Point{X: x}); got != ter {
			t.Fatalf("cell %d=%s want %s", x, got, ter)
		}
	}
	if changed != 2 {
		t.Fatalf("changed=%d want 2", changed)
	}
}

func TestApplyOverlayReadsPreOverlayTerrain(t *testing.T) {
	// The ocean turns to forest, but the forest still saw water next to it.
	w := rowWorld(t, false, terrain.Ocean, terrain.Forest)
	ApplyOverlay(w, fieldOf(2, 1, 0.9, 0.9))
	if got := w.Terrain(world.Point{X: 0}); got != terrain.Forest {
		t.Fatalf("ocean cell=%s want forest", got)
	}
	if got := w.Terrain(world.Point{X: 1}); got != terrain.Swamp {
		t.Fatalf("forest cell=%s want swamp", got)
	}
}

func TestSearchThresholdIsBounded(t *testing.T) {
	flat := fieldOf(2, 2, 0, 0, 0, 0)
	got := SearchThreshold(flat, 0.5, 0.001, 20)
	if got.Iterations != 20 {
		t.Fatalf("unreachable target should exhaust iterations, got %d", got.Iterations)
	}
	if math.Abs(got.Fraction-0.5) != 0.5 {
		t.Fatalf("fraction=%v", got.Fraction)
	}
}

func TestThresholdStrategyHitsWaterFraction(t *testing.T) {
	g := NewGenerator(Config{Strategy: StrategyThreshold})
	for _, wp := range []float64{0.05, 0.3, 0.5, 0.77, 0.95} {
		params := DefaultParameters()
		params.WaterPercentage = wp
		params.Seed = 42
		w, report, err := g.Generate(params)
		if err != nil {
			t.Fatalf("Generate(%v): %v", wp, err)
		}
		if math.Abs(w.WaterFraction()-wp) > DefaultTolerance {
			t.Fatalf("water=%v want %v±%v (iterations=%d)", w.WaterFraction(), wp, DefaultTolerance, report.SearchIterations)
		}
		if report.WaterFraction != w.WaterFraction() {
			t.Fatalf("report water=%v world water=%v", report.WaterFraction, w.WaterFraction())
		}
	}
}

func TestThresholdStrategyExtremes(t *testing.T) {
	g := NewGenerator(Config{Strategy: StrategyThreshold})
	for _, wp := range []float64{0, 1} {
		params := DefaultParameters()
		params.Width, params.Height = 16, 16
		params.WaterPercentage = wp
		w, _, err := g.Generate(params)
		if err != nil {
			t.Fatalf("Generate(%v): %v", wp, err)
		}
		if w.WaterFraction() != wp {
			t.Fatalf("water=%v want %v", w.WaterFraction(), wp)
		}
	}
}

func TestIslandStrategyIsDeterministic(t *testing.T) {
	params := DefaultParameters()
	params.Width, params.Height = 48, 32
	params.Seed = 7

	a, ra, err := NewGenerator(Config{}).Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, rb, err := NewGenerator(Config{}).Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff(ra, rb); diff != "" {
		t.Fatalf("reports differ:\n%s", diff)
	}
	if diff := cmp.Diff(a.Chunks(16), b.Chunks(16)); diff != "" {
		t.Fatalf("same seed produced different worlds:\n%s", diff)
	}

	params.Seed = 8
	c, _, _ := NewGenerator(Config{}).Generate(params)
	if cmp.Equal(a.Chunks(16), c.Chunks(16)) {
		t.Fatalf("different seeds should produce different worlds")
	}
}

func TestIslandStrategyWithFlatNoise(t *testing.T) {
	flat := func(int64) Noise { return noiseFunc(func(float64, float64) float64 { return 0.3 }) }
	params := DefaultParameters()
	params.Width, params.Height = 10, 6
	w, report, err := NewGenerator(Config{NoiseSource: flat}).Generate(params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// A flat field normalizes to zero: nothing is in the carve band, every
	// cell is ocean and the overlay has nothing above its thresholds.
	if report.Carved != 0 || report.OverlayChanges != 0 || report.MergedComponents != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if w.WaterFraction() != 1 {
		t.Fatalf("water=%v want 1", w.WaterFraction())
	}
}

func TestGenerateShapeAndCleanTiles(t *testing.T) {
	params := Parameters{Width: 40, Height: 24, WrappingY: true, WaterPercentage: 0.4, Seed: 3, LandDistribution: LandContiguous}
	for _, s := range []Strategy{StrategyIsland, StrategyThreshold} {
		w, report, err := NewGenerator(Config{Strategy: s}).Generate(params)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if w.Width() != 40 || w.Height() != 24 || w.WrappingX() || !w.WrappingY() {
			t.Fatalf("%s: shape %dx%d wrap=%v/%v", s, w.Width(), w.Height(), w.WrappingX(), w.WrappingY())
		}
		if report.Strategy != s {
			t.Fatalf("report strategy=%s want %s", report.Strategy, s)
		}
		w.Each(func(p world.Point, tile *world.Tile) {
			if tile.Special() != terrain.SpecialNone || !tile.Flags().IsEmpty() || tile.Transforming() {
				t.Fatalf("%s: generated tile %+v is not clean", s, p)
			}
		})
	}
}

func TestGenerateRejectsInvalidParameters(t *testing.T) {
	bad := []Parameters{
		{Width: 0, Height: 4, LandDistribution: LandSpread},
		{Width: 4, Height: -1, LandDistribution: LandSpread},
		{Width: 4, Height: 4, WaterPercentage: 1.5, LandDistribution: LandSpread},
		{Width: 4, Height: 4, WaterPercentage: math.NaN(), LandDistribution: LandSpread},
		{Width: 4, Height: 4, LandDistribution: "archipelago"},
		{Width: 46000, Height: 46000, LandDistribution: LandSpread},
		{Width: MaxCells/2 + 1, Height: 2, LandDistribution: LandSpread},
	}
	g := NewGenerator(Config{})
	for _, p := range bad {
		if _, _, err := g.Generate(p); !errors.Is(err, ErrInvalidParameters) {
			t.Fatalf("%+v: expected ErrInvalidParameters, got %v", p, err)
		}
	}
	if err := (Parameters{Width: MaxCells, Height: 1, LandDistribution: LandSpread}).Validate(); err != nil {
		t.Fatalf("a world of exactly MaxCells cells is valid, got %v", err)
	}
}

func TestParseStrategyAndDistribution(t *testing.T) {
	if s, err := ParseStrategy(" Threshold "); err != nil || s != StrategyThreshold {
		t.Fatalf("ParseStrategy=%q,%v", s, err)
	}
	if _, err := ParseStrategy("fractal"); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
	if d, err := ParseLandDistribution(""); err != nil || d != LandSpread {
		t.Fatalf("ParseLandDistribution=%q,%v", d, err)
	}
}
