package testutil

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flag to update golden files during test runs
var updateGolden = flag.Bool("update-golden", false, "Update golden files")

// GoldenConfig holds configuration for golden file operations
type GoldenConfig struct {
	// Dir is the directory where golden files are stored
	Dir string
	// FileExtension is the extension for golden files (default: .golden)
	FileExtension string
}

// DefaultGoldenConfig returns a default configuration for golden files
func DefaultGoldenConfig() *GoldenConfig {
	return &GoldenConfig{
		Dir:           filepath.Join(GetProjectRoot(), "testdata", "golden"),
		FileExtension: ".golden",
	}
}

// GoldenTester provides methods for golden file testing
type GoldenTester struct {
	config *GoldenConfig
}

// NewGoldenTester creates a new golden file tester with the provided configuration
func NewGoldenTester(config *GoldenConfig) *GoldenTester {
	if config == nil {
		config = DefaultGoldenConfig()
	}
	return &GoldenTester{config: config}
}

// AssertBytes compares byte data against a golden file
func (gt *GoldenTester) AssertBytes(t *testing.T, name string, actual []byte) {
	t.Helper()

	goldenPath := gt.getGoldenPath(name)

	if *updateGolden {
		require.NoError(t, os.MkdirAll(gt.config.Dir, 0o755), "Failed to create golden directory")
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o644), "Failed to write golden file: %s", goldenPath)
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "Failed to read golden file: %s (run with -update-golden to create it)", goldenPath)

	if !bytes.Equal(expected, actual) {
		gt.logDifference(t, name, expected, actual)
		assert.Equal(t, string(expected), string(actual),
			"Golden file mismatch for %s. Use -update-golden to update the golden file.", name)
	}
}

// AssertString compares string data against a golden file
func (gt *GoldenTester) AssertString(t *testing.T, name string, data string) {
	t.Helper()
	gt.AssertBytes(t, name, []byte(data))
}

// getGoldenPath constructs the full path to a golden file
func (gt *GoldenTester) getGoldenPath(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return filepath.Join(gt.config.Dir, replacer.Replace(name)+gt.config.FileExtension)
}

// logDifference logs the first differing lines when golden files don't match
func (gt *GoldenTester) logDifference(t *testing.T, name string, expected, actual []byte) {
	t.Helper()

	t.Logf("Golden file mismatch for %s (expected %d bytes, got %d)", name, len(expected), len(actual))

	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(string(actual), "\n")

	maxLines := len(expectedLines)
	if len(actualLines) > maxLines {
		maxLines = len(actualLines)
	}
	if maxLines > 10 {
		maxLines = 10
	}

	for i := 0; i < maxLines; i++ {
		var expectedLine, actualLine string
		if i < len(expectedLines) {
			expectedLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actualLine = actualLines[i]
		}
		if expectedLine != actualLine {
			t.Logf("Line %d differs:", i+1)
			t.Logf("  Expected: %q", expectedLine)
			t.Logf("  Actual:   %q", actualLine)
		}
	}
}

// AssertGoldenString compares string data against a golden file using default configuration
func AssertGoldenString(t *testing.T, name string, data string) {
	t.Helper()
	NewGoldenTester(nil).AssertString(t, name, data)
}
