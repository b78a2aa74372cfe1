// Package testutil provides common testing utilities and setup functions for tilegen tests.
// It contains log capture, temporary tileset fixtures and golden-file helpers.
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/tilegen/internal/logging"
)

// TestConfig holds configuration for test setup
type TestConfig struct {
	// EnableLogCapture controls whether log output should be captured for testing
	EnableLogCapture bool
	// TestDataDir is the directory for test data files
	TestDataDir string
}

// DefaultTestConfig returns a default test configuration suitable for most tests
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		EnableLogCapture: false, // Disable by default for cleaner test output
		TestDataDir:      getTestDataDir(),
	}
}

// SetupTest initializes the test environment with the provided configuration.
// This should be called at the beginning of test functions.
//
// Usage:
//
//	func TestMyFunction(t *testing.T) {
//	    cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	    defer cleanup()
//	    // ... test code
//	}
func SetupTest(t *testing.T, config *TestConfig) func() {
	t.Helper()

	originalLogger := logging.Logger

	if config.EnableLogCapture {
		// Create test logger that outputs to testing.T
		testLogger := log.New(testWriter{t: t})
		testLogger.SetLevel(log.DebugLevel)
		logging.Logger = testLogger
	} else {
		// Disable logging output during tests to reduce noise
		logging.Logger = log.New(io.Discard)
	}

	return func() {
		logging.Logger = originalLogger
	}
}

// testWriter adapts testing.T to implement io.Writer for log output
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}

// getTestDataDir returns the path to the testdata directory at the project root
func getTestDataDir() string {
	return filepath.Join(GetProjectRoot(), "testdata")
}

// GetProjectRoot returns the absolute path to the project root directory.
func GetProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to get caller information")
	}

	// Navigate up from internal/testutil/setup.go to the module root
	return filepath.Dir(filepath.Dir(filepath.Dir(filename)))
}

// SkipIfShort skips the test if testing.Short() is true.
// This should be used for tests that are slow.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()

	if testing.Short() {
		if reason == "" {
			reason = "skipping test in short mode"
		}
		t.Skip(reason)
	}
}

// WriteTilesetImage writes a blank PNG of the given pixel size into dir and
// returns its path. Tileset images only need correct dimensions for generation.
func WriteTilesetImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 255})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err, "Failed to create tileset image %s", path)
	defer f.Close()

	require.NoError(t, png.Encode(f, img), "Failed to encode tileset image %s", path)
	return path
}
