// Package tilegen runs the complete map pipeline: tileset catalog, seed
// sampling, biome assignment, partitioning and TMX encoding.
package tilegen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/noise"
	"github.com/VoidMesh/tilegen/internal/random"
	"github.com/VoidMesh/tilegen/internal/tileset"
	"github.com/VoidMesh/tilegen/internal/tmx"
)

// Options are applied to every run of a Service.
type Options struct {
	Selection    mapgen.Selection
	WarpStrength float64
	WarpScale    float64
}

// Request describes one run.
type Request struct {
	Config *tileset.Config
	Params mapgen.Params
	// Seed of the run's random source; 0 picks a time-based seed.
	Seed int64
}

// Result is everything a finished run produced. It is never modified after
// Run returns.
type Result struct {
	RunID     uuid.UUID
	Seed      int64
	NextSeed  int64
	Selection mapgen.Selection
	Spec      mapgen.MapSpec
	Catalog   *tileset.Catalog
	Layout    *mapgen.Layout
	Map       *mapgen.TileMap
	TMX       []byte
	CreatedAt time.Time
	Duration  time.Duration
}

// Service executes generation runs.
type Service struct {
	prober tileset.ImageProber
	base   logging.LoggerInterface
	logger logging.LoggerInterface
	opts   Options
	now    func() time.Time
}

// NewService creates a new generation service with dependency injection.
func NewService(prober tileset.ImageProber, logger logging.LoggerInterface, opts Options) *Service {
	componentLogger := logger.With("component", "tilegen-service")
	componentLogger.Debug("Creating new tilegen service", "selection", opts.Selection, "warp_strength", opts.WarpStrength)

	return &Service{
		prober: prober,
		base:   logger,
		logger: componentLogger,
		opts:   opts,
		now:    time.Now,
	}
}

// NewDefaultService creates a service reading tileset images from disk and
// logging through the global logger (convenience constructor for production use).
func NewDefaultService(opts Options) *Service {
	return NewService(tileset.NewFileProber(), logging.NewDefaultLoggerWrapper(), opts)
}

// Run executes one complete run. Nothing is written anywhere; persisting
// the result is up to the caller.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := s.now()

	spec, err := mapgen.NewMapSpec(req.Params)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}
	runID := uuid.New()
	runFields := []interface{}{"run_id", runID.String(), "seed", seed}
	logger := s.logger.With(runFields...)
	logger.Debug("Starting run", "width", spec.Width(), "height", spec.Height(), "biomes", spec.BiomeCount())

	logger.Debug("Loading tilesets")
	catalog, err := tileset.Build(req.Config, s.prober, spec.TileWidth(), spec.TileHeight())
	if err != nil {
		return nil, fmt.Errorf("failed to load tilesets: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generator := mapgen.NewGenerator(
		random.NewGenerator(seed),
		noise.NewGenerator(seed),
		s.base.With(runFields...),
		mapgen.Options{
			Selection:    s.opts.Selection,
			WarpStrength: s.opts.WarpStrength,
			WarpScale:    s.opts.WarpScale,
		},
	)
	gen, err := generator.Generate(ctx, spec, req.Config.TileDefs(), catalog)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := tmx.Marshal(gen.Map, catalog, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode map: %w", err)
	}

	result := &Result{
		RunID:     runID,
		Seed:      seed,
		NextSeed:  generator.NextSeed(),
		Selection: s.opts.Selection,
		Spec:      spec,
		Catalog:   catalog,
		Layout:    gen.Layout,
		Map:       gen.Map,
		TMX:       data,
		CreatedAt: start.UTC(),
		Duration:  s.now().Sub(start),
	}
	logger.Info("Run completed", "tilesets", len(catalog.Definitions()), "bytes", len(data), "duration", result.Duration)
	return result, nil
}
