package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/tilegen/internal/archive"
	"github.com/VoidMesh/tilegen/internal/config"
	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/prompt"
	"github.com/VoidMesh/tilegen/internal/tilegen"
	"github.com/VoidMesh/tilegen/internal/tileset"
	"github.com/VoidMesh/tilegen/internal/tmx"
)

func main() {
	cfg := config.Load()
	defaults := mapgen.DefaultParams()

	configFile := flag.String("config", cfg.Generator.ConfigFile, "Path to the tileset configuration (JSON or YAML)")
	output := flag.String("output", cfg.Generator.Output, "Path of the TMX file to write")
	seed := flag.Int64("seed", cfg.Generator.Seed, "Random seed (0 picks a time-based seed)")
	selection := flag.String("selection", cfg.Generator.Selection, "Biome selection (nearest, legacy)")
	warpStrength := flag.Float64("warp-strength", cfg.Generator.WarpStrength, "Domain warp strength in cells (0 disables)")
	warpScale := flag.Float64("warp-scale", cfg.Generator.WarpScale, "Domain warp noise scale in cells")
	interactive := flag.Bool("interactive", true, "Ask for map parameters and offer to regenerate")
	archivePath := flag.String("archive", cfg.Archive.Path, "SQLite file to archive runs in (empty disables)")
	logLevel := flag.String("log", cfg.Logging.Level, "Log level (debug, info, warn, error)")

	mapType := flag.String("type", string(defaults.Type), "Map type (plain)")
	drawStyle := flag.String("draw", string(defaults.DrawStyle), "Draw style (orthogonal, isometric)")
	width := flag.Int("width", defaults.Width, "Map width in tiles")
	height := flag.Int("height", defaults.Height, "Map height in tiles")
	tileWidth := flag.Int("tile-width", defaults.TileWidth, "Tile width in pixels")
	tileHeight := flag.Int("tile-height", defaults.TileHeight, "Tile height in pixels")
	biomes := flag.Int("biomes", defaults.BiomeCount, "Number of biome points")
	layer := flag.String("layer", defaults.LayerName, "Name of the tile layer")
	flag.Parse()

	// Setup logging
	cfg.Logging.Level = *logLevel
	logging.Configure(cfg.Logging.Options("[tilegen] "))
	log.SetDefault(logging.GetLogger())
	log.Debug("Configuration loaded", "config_file", *configFile, "output", *output, "seed", *seed)

	sel, err := mapgen.ParseSelection(*selection)
	if err != nil {
		log.Fatal("Invalid selection", "error", err)
	}

	tilesets, err := tileset.LoadConfig(*configFile)
	if err != nil {
		log.Fatal("Failed to load tileset configuration", "error", err, "path", *configFile)
	}

	params := mapgen.Params{
		Type:       mapgen.MapType(*mapType),
		DrawStyle:  mapgen.DrawStyle(*drawStyle),
		Width:      *width,
		Height:     *height,
		TileWidth:  *tileWidth,
		TileHeight: *tileHeight,
		BiomeCount: *biomes,
		LayerName:  *layer,
	}
	if *interactive {
		params, err = prompt.RunForm(params)
		if errors.Is(err, prompt.ErrCanceled) {
			log.Info("Canceled")
			return
		}
		if err != nil {
			log.Fatal("Failed to read map parameters", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *archive.Store
	if *archivePath != "" {
		cfg.Archive.Path = *archivePath
		store, err = archive.Open(ctx, cfg.Archive.Store(), logging.NewDefaultLoggerWrapper())
		if err != nil {
			log.Fatal("Failed to open run archive", "error", err, "path", *archivePath)
		}
		defer store.Close()
	}

	svc := tilegen.NewDefaultService(tilegen.Options{
		Selection:    sel,
		WarpStrength: *warpStrength,
		WarpScale:    *warpScale,
	})

	runSeed := *seed
	for {
		res, err := svc.Run(ctx, tilegen.Request{Config: tilesets, Params: params, Seed: runSeed})
		if err != nil {
			log.Fatal("Failed to generate tile map", "error", err)
		}

		if err := tmx.WriteFile(*output, res.TMX); err != nil {
			log.Fatal("Failed to save tile map", "error", err, "path", *output)
		}
		if store != nil {
			if err := store.SaveRun(ctx, archive.RunFromResult(res)); err != nil {
				log.Error("Failed to archive run", "error", err, "run_id", res.RunID)
			}
		}

		fmt.Println(summary(res, *output))

		if !*interactive {
			return
		}
		again, err := prompt.Confirm("Regenerate the tile map?")
		if err != nil {
			log.Fatal("Failed to read answer", "error", err)
		}
		if !again {
			return
		}
		runSeed = res.NextSeed
	}
}

func summary(res *tilegen.Result, path string) string {
	return prompt.RenderSummary("Tile map saved", []prompt.Row{
		{Label: "File", Value: path},
		{Label: "Run", Value: res.RunID},
		{Label: "Seed", Value: res.Seed},
		{Label: "Size", Value: fmt.Sprintf("%dx%d", res.Spec.Width(), res.Spec.Height())},
		{Label: "Biomes", Value: len(res.Layout.Points())},
		{Label: "Tilesets", Value: len(res.Catalog.Definitions())},
		{Label: "Selection", Value: res.Selection},
		{Label: "Duration", Value: res.Duration},
	})
}
