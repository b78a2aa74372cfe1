// Package archive keeps finished runs in SQLite so maps can be listed and
// downloaded again. Only final artifacts are stored.
package archive

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/tilegen/internal/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned by GetRun for an unknown id.
var ErrNotFound = errors.New("run not found")

// Config holds database settings.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is a run archive backed by SQLite.
type Store struct {
	db     *sql.DB
	logger logging.LoggerInterface
}

// Open connects to the database at cfg.Path and applies pending migrations.
func Open(ctx context.Context, cfg Config, logger logging.LoggerInterface) (*Store, error) {
	logger = logger.With("component", "run-archive")

	logger.Debug("Opening database connection", "path", cfg.Path)
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.Debug("Configuring database connection pool", "max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns, "conn_max_lifetime", cfg.ConnMaxLifetime)
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Run archive initialized", "path", cfg.Path)
	return &Store{db: db, logger: logger}, nil
}

func runMigrations(db *sql.DB, logger logging.LoggerInterface) error {
	logger.Debug("Creating migration driver")
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	// m.Close would also close db, which is still needed.
	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Debug("Successfully applied migrations")
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// logQuery records the outcome of one statement at debug level.
func (s *Store) logQuery(query string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)
	if err != nil {
		s.logger.Debug("Database query failed", "query", query, "duration", duration, "error", err, "args", args)
		return
	}
	s.logger.Debug("Database query executed", "query", query, "duration", duration, "args", args)
}

const insertRun = `
INSERT INTO runs (
    id, seed, selection, map_type, draw_style, width, height,
    tile_width, tile_height, biome_count, layer_name, tileset_count,
    duration_ms, created_at, tmx
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveRun stores a finished run. Saving the same id twice is an error.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	start := time.Now()
	p := run.Params
	_, err := s.db.ExecContext(ctx, insertRun,
		run.ID, run.Seed, run.Selection, string(p.Type), string(p.DrawStyle), p.Width, p.Height,
		p.TileWidth, p.TileHeight, p.BiomeCount, p.LayerName, run.TilesetCount,
		run.Duration.Milliseconds(), run.CreatedAt.UnixNano(), run.TMX,
	)
	s.logQuery("SaveRun", start, err, run.ID)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

const summaryColumns = `
    id, seed, selection, map_type, draw_style, width, height,
    tile_width, tile_height, biome_count, layer_name, tileset_count,
    duration_ms, created_at, length(tmx)`

// ListRuns returns the newest runs first, without their TMX documents.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+summaryColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		s.logQuery("ListRuns", start, err, limit)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		runs = append(runs, run)
	}
	err = rows.Err()
	s.logQuery("ListRuns", start, err, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run including its TMX document.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	start := time.Now()
	row := s.db.QueryRowContext(ctx, `SELECT`+summaryColumns+`, tmx FROM runs WHERE id = ?`, id)

	run, err := scanRun(row, true)
	s.logQuery("GetRun", start, err, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}
