package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
	}{
		{name: "same point", a: Point{3, 3}, b: Point{3, 3}, expected: 0},
		{name: "3-4-5 triangle", a: Point{0, 0}, b: Point{3, 4}, expected: 5},
		{name: "horizontal", a: Point{2, 7}, b: Point{9, 7}, expected: 7},
		{name: "symmetric", a: Point{3, 4}, b: Point{0, 0}, expected: 5},
		{name: "diagonal", a: Point{0, 0}, b: Point{1, 1}, expected: math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestDistanceF(t *testing.T) {
	assert.InDelta(t, 2.5, DistanceF(0.5, 2, Point{X: 3, Y: 2}), 1e-12)
	assert.InDelta(t, Distance(Point{1, 2}, Point{4, 6}), DistanceF(1, 2, Point{4, 6}), 1e-12)
}

func TestParsePoint(t *testing.T) {
	const w, h = 20, 10

	tests := []struct {
		name     string
		in       Point
		expected Point
	}{
		{name: "last column and row", in: Point{-1, -1}, expected: Point{w - 1, h - 1}},
		{name: "legacy second to last column", in: Point{-2, -2}, expected: Point{w - 2, h - 2}},
		{name: "full wrap reaches origin", in: Point{-w, -h}, expected: Point{0, 0}},
		{name: "non-negative is unchanged", in: Point{2, 3}, expected: Point{2, 3}},
		{name: "origin is unchanged", in: Point{0, 0}, expected: Point{0, 0}},
		{name: "only x negative", in: Point{-5, 4}, expected: Point{w - 5, 4}},
		{name: "only y negative", in: Point{7, -3}, expected: Point{7, h - 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePoint(tt.in, w, h)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, ParsePoint(got, w, h), "second application must be a no-op")
		})
	}
}

func TestPointIn(t *testing.T) {
	assert.True(t, Point{0, 0}.In(1, 1))
	assert.True(t, Point{4, 2}.In(5, 3))
	assert.False(t, Point{5, 2}.In(5, 3))
	assert.False(t, Point{-1, 0}.In(5, 3))
	assert.False(t, Point{0, 3}.In(5, 3))
}

func TestParsePoint_LastCellIsInBounds(t *testing.T) {
	const w, h = 20, 10

	last := ParsePoint(Point{-1, -1}, w, h)
	assert.True(t, last.In(w, h))
	assert.NotEqual(t, Point{w - 2, h - 2}, last, "-1 must not land on the legacy second to last cell")
}
