package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/tilegen/internal/api"
	"github.com/VoidMesh/tilegen/internal/archive"
	"github.com/VoidMesh/tilegen/internal/config"
	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/tilegen"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	logging.Configure(cfg.Logging.Options("[tilegen-api] "))
	log.SetDefault(logging.GetLogger())
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "config_file", cfg.Generator.ConfigFile, "archive", cfg.Archive.Path, "log_level", cfg.Logging.Level)

	// Tileset configuration is loaded once and shared by every request
	log.Debug("Loading tileset configuration", "path", cfg.Generator.ConfigFile)
	tilesets, err := tileset.LoadConfig(cfg.Generator.ConfigFile)
	if err != nil {
		log.Fatal("Failed to load tileset configuration", "error", err)
	}
	log.Debug("Tileset configuration loaded", "tilesets", len(tilesets.Tilesets), "tiles", len(tilesets.Tiles))

	selection, err := mapgen.ParseSelection(cfg.Generator.Selection)
	if err != nil {
		log.Fatal("Invalid selection", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize run archive
	var store api.RunStore
	if cfg.Archive.Enabled() {
		log.Debug("Opening run archive", "path", cfg.Archive.Path)
		s, err := archive.Open(ctx, cfg.Archive.Store(), logging.NewDefaultLoggerWrapper())
		if err != nil {
			log.Fatal("Failed to open run archive", "error", err)
		}
		defer s.Close()
		store = s
	} else {
		log.Debug("Run archive disabled")
	}

	// Initialize API handlers
	svc := tilegen.NewDefaultService(tilegen.Options{
		Selection:    selection,
		WarpStrength: cfg.Generator.WarpStrength,
		WarpScale:    cfg.Generator.WarpScale,
	})
	limits := api.Limits{MaxCells: cfg.Server.MaxMapCells, MaxBiomes: cfg.Server.MaxMapBiomes}
	handler := api.NewHandler(svc, tilesets, store, limits, logging.NewDefaultLoggerWrapper())
	router := api.SetupRoutes(handler, api.RouteOptions{
		RequestTimeout: cfg.Server.WriteTimeout,
		MaxConcurrent:  cfg.Server.MaxConcurrent,
	})
	log.Debug("API routes configured")

	// Create HTTP server
	log.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting tilegen API server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	log.Info("Server exited")
}
