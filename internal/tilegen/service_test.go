package tilegen

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/tilegen/internal/errdefs"
	"github.com/VoidMesh/tilegen/internal/logging"
	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/testmocks"
	mocktileset "github.com/VoidMesh/tilegen/internal/testmocks/tileset"
	"github.com/VoidMesh/tilegen/internal/testutil"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

func testConfig() *tileset.Config {
	return &tileset.Config{
		TilesetLocation: "assets",
		Tilesets: []tileset.TilesetEntry{
			{Name: "ground", Src: "ground.png"},
			{Name: "water", Src: "water.png"},
		},
		Tiles: []tileset.TileEntry{
			{Tileset: "ground", Position: tileset.Position{X: 0, Y: 0}},
			{Tileset: "ground", Position: tileset.Position{X: 32, Y: 0}},
			{Tileset: "water", Position: tileset.Position{X: 0, Y: 32}},
		},
	}
}

func testParams() mapgen.Params {
	p := mapgen.DefaultParams()
	p.Width, p.Height, p.BiomeCount = 16, 12, 6
	return p
}

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	ctrl := testmocks.NewMockController(t)
	prober := mocktileset.NewMockImageProber(ctrl.Controller)
	prober.EXPECT().Probe(gomock.Any()).Return(tileset.ImageSize{Width: 128, Height: 128}, nil).AnyTimes()
	return NewService(prober, logging.NewDefaultLoggerWrapper(), opts)
}

func TestService_Run(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	svc := newTestService(t, Options{})
	res, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: 42})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, int64(42), res.Seed)
	assert.Equal(t, mapgen.SelectionNearest, res.Selection)
	assert.Equal(t, 16, res.Map.Width())
	assert.Equal(t, 12, res.Map.Height())
	assert.Len(t, res.Layout.Points(), 6)
	require.Len(t, res.Catalog.Definitions(), 2)
	assert.Equal(t, 17, res.Catalog.Definitions()[1].FirstGid)

	for _, gid := range res.Map.Values() {
		assert.True(t, res.Catalog.Contains(gid))
	}

	doc := string(res.TMX)
	assert.True(t, strings.HasPrefix(doc, "<?xml version='1.0' encoding='UTF-8'?>\n"))
	assert.Contains(t, doc, "<layer name='ground' width='16' height='12'>")
	assert.False(t, res.CreatedAt.IsZero())
}

func TestService_RunIsReproducible(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	for _, opts := range []Options{{}, {Selection: mapgen.SelectionLegacy}, {WarpStrength: 2, WarpScale: 5}} {
		t.Run(opts.Selection.String(), func(t *testing.T) {
			svc := newTestService(t, opts)
			a, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: 9})
			require.NoError(t, err)
			b, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: 9})
			require.NoError(t, err)

			assert.Equal(t, a.TMX, b.TMX)
			assert.Equal(t, a.NextSeed, b.NextSeed)
			assert.NotEqual(t, a.RunID, b.RunID)
		})
	}
}

func TestService_RegenerateChain(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	svc := newTestService(t, Options{})
	first, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: 5})
	require.NoError(t, err)

	second, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: first.NextSeed})
	require.NoError(t, err)
	assert.Equal(t, first.NextSeed, second.Seed)
	assert.NotEqual(t, first.Seed, second.Seed)
}

func TestService_TimeBasedSeed(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	svc := newTestService(t, Options{})
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams()})
	require.NoError(t, err)
	assert.Equal(t, fixed.UnixNano(), res.Seed)
	assert.Equal(t, fixed, res.CreatedAt)
}

func TestService_RunErrors(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		config    func() *tileset.Config
		params    func() mapgen.Params
		expectErr error
	}{
		{
			name:   "too many biomes",
			ctx:    context.Background(),
			config: testConfig,
			params: func() mapgen.Params {
				p := testParams()
				p.BiomeCount = p.Width*p.Height + 1
				return p
			},
			expectErr: errdefs.ErrNonTermination,
		},
		{
			name:      "missing config",
			ctx:       context.Background(),
			config:    func() *tileset.Config { return nil },
			params:    testParams,
			expectErr: errdefs.ErrConfiguration,
		},
		{
			name: "unknown tileset",
			ctx:  context.Background(),
			config: func() *tileset.Config {
				cfg := testConfig()
				cfg.Tiles[0].Tileset = "lava"
				return cfg
			},
			params:    testParams,
			expectErr: errdefs.ErrLookup,
		},
		{
			name:      "canceled",
			ctx:       canceled,
			config:    testConfig,
			params:    testParams,
			expectErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, Options{})
			res, err := svc.Run(tt.ctx, Request{Config: tt.config(), Params: tt.params(), Seed: 1})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestService_ProbeFailure(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := testmocks.NewMockController(t)
	prober := mocktileset.NewMockImageProber(ctrl.Controller)
	prober.EXPECT().Probe("assets/ground.png").Return(tileset.ImageSize{}, assert.AnError)

	svc := NewService(prober, logging.NewDefaultLoggerWrapper(), Options{})
	_, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: 1})
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, errdefs.IsClientError(err))
}

func TestService_RunStopsAtDeadline(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// Partitioning this map measures close to a billion distances
	params := testParams()
	params.Width, params.Height, params.BiomeCount = 300, 300, 10000

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	svc := newTestService(t, Options{})
	start := time.Now()
	res, err := svc.Run(ctx, Request{Config: testConfig(), Params: params, Seed: 1})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, res)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestService_RunLogsOneComponentPerLine(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	var buf bytes.Buffer
	logging.Logger = log.New(&buf)
	logging.Logger.SetLevel(log.DebugLevel)
	logging.Logger.SetFormatter(log.LogfmtFormatter)

	svc := newTestService(t, Options{})
	res, err := svc.Run(context.Background(), Request{Config: testConfig(), Params: testParams(), Seed: 42})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	components := map[string]bool{}
	for _, line := range lines {
		require.Equal(t, 1, strings.Count(line, "component="), line)
		for _, name := range []string{"tilegen-service", "map-generator"} {
			if strings.Contains(line, "component="+name) {
				components[name] = true
			}
		}
	}
	assert.True(t, components["tilegen-service"])
	assert.True(t, components["map-generator"])
	assert.Contains(t, buf.String(), "run_id="+res.RunID.String())
}
