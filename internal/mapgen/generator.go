package mapgen

import (
	"context"
	"fmt"
	"time"

	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/noise"
	"github.com/VoidMesh/tilegen/internal/random"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

// Options tune the partition stage.
type Options struct {
	Selection    Selection
	WarpStrength float64
	WarpScale    float64
}

// Generation holds the outputs of one pass through the pipeline.
type Generation struct {
	Layout *Layout
	Map    *TileMap
}

// Generator runs sampling, biome assignment and partitioning in order.
type Generator struct {
	rnd      random.Source
	noiseGen noise.GeneratorInterface
	logger   logging.LoggerInterface
	opts     Options
}

// NewGenerator creates a new map generator with dependency injection.
func NewGenerator(rnd random.Source, noiseGen noise.GeneratorInterface, logger logging.LoggerInterface, opts Options) *Generator {
	componentLogger := logger.With("component", "map-generator")
	componentLogger.Debug("Creating new map generator", "seed", rnd.Seed(), "selection", opts.Selection)

	return &Generator{
		rnd:      rnd,
		noiseGen: noiseGen,
		logger:   componentLogger,
		opts:     opts,
	}
}

// NewGeneratorWithSeed creates a generator with concrete implementations
// (convenience constructor for production use). Noise shares the seed.
func NewGeneratorWithSeed(seed int64, opts Options) *Generator {
	return NewGenerator(
		random.NewGenerator(seed),
		noise.NewGenerator(seed),
		logging.NewDefaultLoggerWrapper(),
		opts,
	)
}

// Seed returns the seed of the generator's random source.
func (g *Generator) Seed() int64 {
	return g.rnd.Seed()
}

// NextSeed draws a seed for a follow-up run from the generator's own source,
// so a chain of regenerations is reproducible from the first seed.
func (g *Generator) NextSeed() int64 {
	return g.rnd.Int63()
}

// Generate produces a complete tile map for spec.
func (g *Generator) Generate(ctx context.Context, spec MapSpec, tiles []tileset.TileDef, catalog *tileset.Catalog) (*Generation, error) {
	start := time.Now()
	logger := g.logger.With("width", spec.Width(), "height", spec.Height(), "biomes", spec.BiomeCount())

	logger.Debug("Sampling biome points")
	seeds, err := NewSampler(g.rnd).Generate(spec.BiomeCount(), spec.Width(), spec.Height())
	if err != nil {
		return nil, fmt.Errorf("failed to sample biome points: %w", err)
	}

	logger.Debug("Assigning tiles to biome points", "tiles", len(tiles))
	layout, err := AssignBiomes(spec, seeds, tiles, catalog, g.rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to assign biomes: %w", err)
	}

	partitioner := Partitioner{Selection: g.opts.Selection}
	if g.opts.WarpStrength != 0 {
		partitioner.Warp = &Warp{Noise: g.noiseGen, Strength: g.opts.WarpStrength, Scale: g.opts.WarpScale}
	}

	logger.Debug("Partitioning map", "selection", g.opts.Selection, "warp", g.opts.WarpStrength)
	tileMap, err := partitioner.Partition(ctx, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to partition map: %w", err)
	}

	hist := tileMap.Histogram()
	logger.Debug("Tile distribution", "distinct_tiles", len(hist), "distribution", hist)
	logger.Info("Tile map generated", "duration", time.Since(start))

	return &Generation{Layout: layout, Map: tileMap}, nil
}
