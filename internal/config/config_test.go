package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"TILEGEN_CONFIG_FILE", "TILEGEN_OUTPUT", "TILEGEN_SEED", "TILEGEN_SELECTION",
		"TILEGEN_WARP_STRENGTH", "TILEGEN_WARP_SCALE", "PORT", "MAX_MAP_CELLS", "MAX_MAP_BIOMES", "MAX_CONCURRENT_RUNS",
		"ARCHIVE_PATH", "LOG_LEVEL", "LOG_FORMAT", "LOG_STRUCTURED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "config.json", cfg.Generator.ConfigFile)
	assert.Equal(t, "tg_map_data.tmx", cfg.Generator.Output)
	assert.Equal(t, int64(0), cfg.Generator.Seed)
	assert.Equal(t, "nearest", cfg.Generator.Selection)
	assert.Equal(t, 0.0, cfg.Generator.WarpStrength)
	assert.Equal(t, 16.0, cfg.Generator.WarpScale)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1<<20, cfg.Server.MaxMapCells)
	assert.Equal(t, 4096, cfg.Server.MaxMapBiomes)
	assert.Equal(t, 4, cfg.Server.MaxConcurrent)
	assert.False(t, cfg.Archive.Enabled())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TILEGEN_CONFIG_FILE", "tiles.yaml")
	t.Setenv("TILEGEN_SEED", "-9000000000")
	t.Setenv("TILEGEN_SELECTION", "legacy")
	t.Setenv("TILEGEN_WARP_STRENGTH", "2.5")
	t.Setenv("PORT", "9090")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("ARCHIVE_PATH", "/tmp/runs.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("LOG_STRUCTURED", "true")

	cfg := Load()

	assert.Equal(t, "tiles.yaml", cfg.Generator.ConfigFile)
	assert.Equal(t, int64(-9000000000), cfg.Generator.Seed)
	assert.Equal(t, "legacy", cfg.Generator.Selection)
	assert.Equal(t, 2.5, cfg.Generator.WarpStrength)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Archive.Enabled())
	assert.Equal(t, "/tmp/runs.db", cfg.Archive.Store().Path)
	assert.Equal(t, 4, cfg.Archive.Store().MaxOpenConns)
	assert.True(t, cfg.Logging.Options("[tilegen] ").Structured)
	assert.Equal(t, "[tilegen] ", cfg.Logging.Options("[tilegen] ").Prefix)
}

func TestGetEnv_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(t *testing.T)
	}{
		{
			name:  "int",
			value: "many",
			check: func(t *testing.T) { assert.Equal(t, 7, getEnvInt("TILEGEN_TEST_VALUE", 7)) },
		},
		{
			name:  "int64",
			value: "1.5",
			check: func(t *testing.T) { assert.Equal(t, int64(7), getEnvInt64("TILEGEN_TEST_VALUE", 7)) },
		},
		{
			name:  "float",
			value: "wide",
			check: func(t *testing.T) { assert.Equal(t, 1.25, getEnvFloat("TILEGEN_TEST_VALUE", 1.25)) },
		},
		{
			name:  "bool",
			value: "sometimes",
			check: func(t *testing.T) { assert.True(t, getEnvBool("TILEGEN_TEST_VALUE", true)) },
		},
		{
			name:  "duration",
			value: "soon",
			check: func(t *testing.T) { assert.Equal(t, time.Minute, getEnvDuration("TILEGEN_TEST_VALUE", time.Minute)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TILEGEN_TEST_VALUE", tt.value)
			tt.check(t)
		})
	}
}
