package noise

import (
	"github.com/aquilax/go-perlin"
)

// GeneratorInterface defines the interface for noise generation operations.
// The partitioner uses it to warp cell coordinates before measuring distances.
type GeneratorInterface interface {
	GetNoise(x, y float64) float64
	GetScaledNoise(x, y float64, scale float64) float64
	GetSeed() int64
}

// Generator implements the GeneratorInterface using Perlin noise.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a new noise generator with the given seed.
func NewGenerator(seed int64) GeneratorInterface {
	// alpha=2, beta=2, n=3 gives smooth, low-frequency borders
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// GetNoise returns a noise value roughly between -1 and 1 for the given coordinates
func (g *Generator) GetNoise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// GetScaledNoise samples the noise field with coordinates divided by scale.
// Larger scales give broader, smoother features.
func (g *Generator) GetScaledNoise(x, y float64, scale float64) float64 {
	if scale == 0 {
		scale = 1
	}
	return g.GetNoise(x/scale, y/scale)
}

// GetSeed returns the current seed
func (g *Generator) GetSeed() int64 {
	return g.seed
}
