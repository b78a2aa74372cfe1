package config

import (
	"os"
	"strconv"
	"time"

	"github.com/VoidMesh/tilegen/internal/archive"
	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/tmx"
)

type Config struct {
	Generator GeneratorConfig
	Server    ServerConfig
	Archive   ArchiveConfig
	Logging   LoggingConfig
}

type GeneratorConfig struct {
	ConfigFile   string
	Output       string
	Seed         int64
	Selection    string
	WarpStrength float64
	WarpScale    float64
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxMapCells     int
	MaxMapBiomes    int
	MaxConcurrent   int
}

// ArchiveConfig configures the run archive. An empty Path disables it.
type ArchiveConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

func Load() *Config {
	return &Config{
		Generator: GeneratorConfig{
			ConfigFile:   getEnvStr("TILEGEN_CONFIG_FILE", "config.json"),
			Output:       getEnvStr("TILEGEN_OUTPUT", tmx.DefaultFileName),
			Seed:         getEnvInt64("TILEGEN_SEED", 0),
			Selection:    getEnvStr("TILEGEN_SELECTION", "nearest"),
			WarpStrength: getEnvFloat("TILEGEN_WARP_STRENGTH", 0),
			WarpScale:    getEnvFloat("TILEGEN_WARP_SCALE", 16),
		},
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			MaxMapCells:     getEnvInt("MAX_MAP_CELLS", 1<<20),
			MaxMapBiomes:    getEnvInt("MAX_MAP_BIOMES", 4096),
			MaxConcurrent:   getEnvInt("MAX_CONCURRENT_RUNS", 4),
		},
		Archive: ArchiveConfig{
			Path:            getEnvStr("ARCHIVE_PATH", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "text"),
			Structured: getEnvBool("LOG_STRUCTURED", false),
		},
	}
}

// Enabled reports whether runs should be archived.
func (c ArchiveConfig) Enabled() bool {
	return c.Path != ""
}

// Store returns the settings for archive.Open.
func (c ArchiveConfig) Store() archive.Config {
	return archive.Config{
		Path:            c.Path,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

// Options returns the settings for logging.Configure.
func (c LoggingConfig) Options(prefix string) logging.Options {
	return logging.Options{
		Level:      c.Level,
		Format:     c.Format,
		Structured: c.Structured,
		Prefix:     prefix,
	}
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
