package mapgen

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

// MockRandomGenerator implements random.Source with a fixed Intn sequence.
type MockRandomGenerator struct {
	mock.Mock
	intValues   []int
	intIndex    int
	shuffleFunc func(n int, swap func(i, j int))
}

func NewMockRandomGenerator() *MockRandomGenerator {
	return &MockRandomGenerator{
		intValues: []int{0, 1, 2, 3, 4}, // Default sequence
	}
}

func (m *MockRandomGenerator) SetIntSequence(values []int) {
	m.intValues = values
	m.intIndex = 0
}

func (m *MockRandomGenerator) SetShuffleFunc(fn func(n int, swap func(i, j int))) {
	m.shuffleFunc = fn
}

func (m *MockRandomGenerator) Intn(n int) int {
	if m.intIndex >= len(m.intValues) {
		m.intIndex = 0 // Wrap around
	}
	value := m.intValues[m.intIndex] % n
	m.intIndex++
	return value
}

func (m *MockRandomGenerator) Int63() int64 { return 42 }

func (m *MockRandomGenerator) Seed() int64 { return 0 }

func (m *MockRandomGenerator) Shuffle(n int, swap func(i, j int)) {
	if m.shuffleFunc != nil {
		m.shuffleFunc(n, swap)
	}
	// Default shuffle is no-op for deterministic testing
}

// MockLogger implements logging.LoggerInterface for testing
type MockLogger struct {
	logs *[]LogEntry
}

type LogEntry struct {
	Level   string
	Message string
	Fields  []interface{}
}

func NewMockLogger() *MockLogger {
	logs := make([]LogEntry, 0)
	return &MockLogger{logs: &logs}
}

func (m *MockLogger) record(level, msg string, keysAndValues []interface{}) {
	*m.logs = append(*m.logs, LogEntry{Level: level, Message: msg, Fields: keysAndValues})
}

func (m *MockLogger) Debug(msg string, keysAndValues ...interface{}) { m.record("debug", msg, keysAndValues) }
func (m *MockLogger) Info(msg string, keysAndValues ...interface{})  { m.record("info", msg, keysAndValues) }
func (m *MockLogger) Warn(msg string, keysAndValues ...interface{})  { m.record("warn", msg, keysAndValues) }
func (m *MockLogger) Error(msg string, keysAndValues ...interface{}) { m.record("error", msg, keysAndValues) }

// With shares the log buffer so messages from derived loggers are visible.
func (m *MockLogger) With(keysAndValues ...interface{}) logging.LoggerInterface {
	return m
}

func (m *MockLogger) Messages(level string) []string {
	var out []string
	for _, entry := range *m.logs {
		if entry.Level == level {
			out = append(out, entry.Message)
		}
	}
	return out
}

// fixedProber reports the same size for every image.
type fixedProber tileset.ImageSize

func (p fixedProber) Probe(string) (tileset.ImageSize, error) {
	return tileset.ImageSize(p), nil
}

// testCatalog builds a catalog of 256x256 sheets of 32x32 tiles, 64 gids each.
func testCatalog(t *testing.T, names ...string) *tileset.Catalog {
	t.Helper()
	cfg := &tileset.Config{TilesetLocation: "assets"}
	for _, name := range names {
		cfg.Tilesets = append(cfg.Tilesets, tileset.TilesetEntry{Name: name, Src: name + ".png"})
		cfg.Tiles = append(cfg.Tiles, tileset.TileEntry{Tileset: name})
	}
	catalog, err := tileset.Build(cfg, fixedProber{Width: 256, Height: 256}, 32, 32)
	require.NoError(t, err)
	return catalog
}

func mustSpec(t *testing.T, mutate func(p *Params)) MapSpec {
	t.Helper()
	p := DefaultParams()
	if mutate != nil {
		mutate(&p)
	}
	spec, err := NewMapSpec(p)
	require.NoError(t, err)
	return spec
}

// rowTiles returns n tiles from the first row of the named sheet; their gids
// are firstGid..firstGid+n-1.
func rowTiles(name string, n int) []tileset.TileDef {
	tiles := make([]tileset.TileDef, n)
	for i := range tiles {
		tiles[i] = tileset.TileDef{Tileset: name, X: i * 32, Y: 0}
	}
	return tiles
}

// layoutAt builds a layout whose points sit exactly at the given positions,
// bypassing the sampler. Point i gets gid i+1.
func layoutAt(t *testing.T, width, height int, positions ...[2]int) *Layout {
	t.Helper()
	spec := mustSpec(t, func(p *Params) {
		p.Width, p.Height, p.BiomeCount = width, height, len(positions)
	})
	layout := &Layout{
		spec:    spec,
		catalog: testCatalog(t, "ground"),
		grid:    newGrid(width, height),
	}
	for i, pos := range positions {
		bp := BiomePoint{
			Tile:    tileset.TileDef{Tileset: "ground", X: i * 32},
			TileGid: i + 1,
		}
		bp.Position.X, bp.Position.Y = pos[0], pos[1]
		layout.grid.set(pos[0], pos[1], bp.TileGid)
		layout.points = append(layout.points, bp)
	}
	return layout
}
