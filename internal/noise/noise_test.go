package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/tilegen/internal/testutil"
)

func TestNewGenerator(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		seed int64
	}{
		{name: "positive seed", seed: 12345},
		{name: "zero seed", seed: 0},
		{name: "negative seed", seed: -9876},
		{name: "max int64 seed", seed: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := NewGenerator(tt.seed)
			require.NotNil(t, generator)
			assert.Equal(t, tt.seed, generator.GetSeed())
		})
	}
}

func TestGenerator_GetNoise(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	generator := NewGenerator(12345)
	coordinates := []struct{ x, y float64 }{
		{0, 0},
		{10.5, 20.7},
		{-15.3, -8.9},
		{0.123456, 0.789012},
	}

	for _, c := range coordinates {
		result := generator.GetNoise(c.x, c.y)
		assert.False(t, math.IsNaN(result), "noise at (%f, %f) should not be NaN", c.x, c.y)
		assert.GreaterOrEqual(t, result, -1.0)
		assert.LessOrEqual(t, result, 1.0)
	}
}

func TestGenerator_GetScaledNoise(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	generator := NewGenerator(12345)

	tests := []struct {
		name  string
		x, y  float64
		scale float64
	}{
		{name: "standard scale", x: 10, y: 20, scale: 16},
		{name: "unit scale", x: 10, y: 20, scale: 1},
		{name: "zero scale falls back to unit", x: 10, y: 20, scale: 0},
		{name: "large scale", x: 10, y: 20, scale: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := generator.GetScaledNoise(tt.x, tt.y, tt.scale)
			assert.False(t, math.IsNaN(result))
			assert.False(t, math.IsInf(result, 0))
		})
	}

	assert.Equal(t, generator.GetNoise(10, 20), generator.GetScaledNoise(10, 20, 0))
	assert.Equal(t, generator.GetNoise(0.5, 1.0), generator.GetScaledNoise(8, 16, 16))
}

func TestNoiseDeterminism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	first := NewGenerator(99)
	second := NewGenerator(99)

	for i := 0; i < 20; i++ {
		x, y := float64(i)*1.37, float64(i)*0.73
		assert.Equal(t, first.GetNoise(x, y), second.GetNoise(x, y),
			"noise should be deterministic for the same seed at (%.2f, %.2f)", x, y)
	}
}

func BenchmarkGenerator_GetScaledNoise(b *testing.B) {
	generator := NewGenerator(12345)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		generator.GetScaledNoise(float64(i%1000), float64(i%1000), 16)
	}
}
