package worldgen

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/aquilax/go-perlin"
	"golang.org/x/sync/errgroup"
)

var ErrNonFiniteNoise = errors.New("noise produced a non-finite sample")

// Noise is a coherent 2-D noise function. Implementations must be safe for
// concurrent calls; synthesis samples rows in parallel.
type Noise interface {
	Noise2D(x, y float64) float64
}

// NoiseSource builds a seeded noise instance.
type NoiseSource func(seed int64) Noise

// PerlinSource returns single-octave Perlin noise. Octaves are summed by
// Synthesize, not by the noise function.
func PerlinSource(seed int64) Noise {
	return perlin.NewPerlin(2, 2, 1, seed)
}

// Sampling describes how a field is built from noise: Octaves layers, layer
// i weighted 0.5^i at frequency Base^i, over cell coordinates divided by
// ScaleX/ScaleY.
type Sampling struct {
	Octaves int
	Base    float64
	ScaleX  float64
	ScaleY  float64
}

// octaveShift keeps successive octaves off the integer lattice, where
// gradient noise is always zero.
const octaveShift = 0.6180339887

// Field is a scalar value per cell, stored row-major.
type Field struct {
	W, H int
	data []float64
}

func NewField(w, h int) *Field {
	return &Field{W: w, H: h, data: make([]float64, w*h)}
}

func (f *Field) Index(x, y int) int      { return y*f.W + x }
func (f *Field) At(x, y int) float64     { return f.data[f.Index(x, y)] }
func (f *Field) Set(x, y int, v float64) { f.data[f.Index(x, y)] = v }
func (f *Field) Values() []float64       { return f.data }

func (f *Field) MinMax() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Normalize rescales the field so its observed minimum becomes 0 and its
// maximum 1. A constant field becomes all zeros.
func (f *Field) Normalize() {
	lo, hi := f.MinMax()
	span := hi - lo
	for i, v := range f.data {
		if span == 0 {
			f.data[i] = 0
			continue
		}
		f.data[i] = (v - lo) / span
	}
}

// Synthesize sums octaves of noise over a w×h grid. Rows are independent and
// are computed concurrently. A NaN or infinite sum fails the whole field
// with ErrNonFiniteNoise.
func Synthesize(noise Noise, w, h int, s Sampling) (*Field, error) {
	f := NewField(w, h)
	if s.ScaleX <= 0 {
		s.ScaleX = 1
	}
	if s.ScaleY <= 0 {
		s.ScaleY = 1
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		g.Go(func() error {
			for x := 0; x < w; x++ {
				sum := 0.0
				for i := 0; i < s.Octaves; i++ {
					freq := math.Pow(s.Base, float64(i))
					amp := math.Pow(0.5, float64(i))
					shift := octaveShift * float64(i)
					nx := (float64(x)+0.5)/s.ScaleX*freq + shift
					ny := (float64(y)+0.5)/s.ScaleY*freq + shift
					sum += noise.Noise2D(nx, ny) * amp
				}
				if math.IsNaN(sum) || math.IsInf(sum, 0) {
					return fmt.Errorf("%w at (%d,%d)", ErrNonFiniteNoise, x, y)
				}
				f.data[f.Index(x, y)] = sum
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}
