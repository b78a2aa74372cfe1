package geometry

import (
	"fmt"
	"math"
)

// Point is a cell coordinate on the map grid.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// In reports whether p lies inside a width x height grid.
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return DistanceF(float64(a.X), float64(a.Y), b)
}

// DistanceF is Distance for a fractional origin, used when the origin has been warped.
func DistanceF(x, y float64, b Point) float64 {
	dx := float64(b.X) - x
	dy := float64(b.Y) - y
	return math.Sqrt(dx*dx + dy*dy)
}

// ParsePoint resolves coordinates given relative to the far edge of the map.
// A negative X counts back from the last column (-1 is the last column) and a
// negative Y counts back from the last row. Non-negative coordinates are
// returned unchanged, so applying it twice is the same as applying it once.
//
// Legacy map files computed (width-1)+x, which puts -1 on the second to last
// column. Configurations written against that rule need -1 shifted to -2.
func ParsePoint(p Point, width, height int) Point {
	if p.X < 0 {
		p.X = width + p.X
	}
	if p.Y < 0 {
		p.Y = height + p.Y
	}
	return p
}
