package mapgen

import (
	"fmt"
	"math"

	"github.com/VoidMesh/tilegen/internal/errdefs"
	"github.com/VoidMesh/tilegen/internal/geometry"
	"github.com/VoidMesh/tilegen/internal/random"
)

// Seeds is an ordered set of distinct seed points. Only a Sampler creates
// non-empty Seeds.
type Seeds struct {
	points []geometry.Point
	width  int
	height int
}

// Len returns the number of seed points.
func (s Seeds) Len() int { return len(s.points) }

// Points returns a copy of the points in the order they were accepted.
func (s Seeds) Points() []geometry.Point {
	out := make([]geometry.Point, len(s.points))
	copy(out, s.points)
	return out
}

// Sampler draws seed points from an injected random source.
type Sampler struct {
	rnd random.Source
}

// NewSampler creates a sampler over rnd.
func NewSampler(rnd random.Source) *Sampler {
	return &Sampler{rnd: rnd}
}

// Generate draws count distinct points uniformly from [0,width-1]x[0,height-1],
// redrawing on collision. Points keep their acceptance order.
func (s *Sampler) Generate(count, width, height int) (Seeds, error) {
	if width <= 0 || height <= 0 {
		return Seeds{}, fmt.Errorf("%w: map size must be positive, got %dx%d", errdefs.ErrConfiguration, width, height)
	}
	if count <= 0 {
		return Seeds{}, fmt.Errorf("%w: seed count must be positive, got %d", errdefs.ErrConfiguration, count)
	}
	if width > math.MaxInt/height {
		return Seeds{}, fmt.Errorf("%w: map of %dx%d cells is too large", errdefs.ErrConfiguration, width, height)
	}
	if count > width*height {
		return Seeds{}, fmt.Errorf("%w: cannot draw %d distinct points from %d cells",
			errdefs.ErrNonTermination, count, width*height)
	}

	taken := make(map[geometry.Point]struct{}, count)
	points := make([]geometry.Point, 0, count)
	for len(points) < count {
		p := geometry.Point{X: s.rnd.Intn(width), Y: s.rnd.Intn(height)}
		if _, dup := taken[p]; dup {
			continue
		}
		taken[p] = struct{}{}
		points = append(points, p)
	}

	return Seeds{points: points, width: width, height: height}, nil
}
