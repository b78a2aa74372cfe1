package mapgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/VoidMesh/tilegen/internal/errdefs"
	"github.com/VoidMesh/tilegen/internal/geometry"
	"github.com/VoidMesh/tilegen/internal/noise"
)

// Selection decides which biome point wins a cell.
type Selection int

const (
	// SelectionNearest picks the closest point. Ties keep the earliest point.
	SelectionNearest Selection = iota

	// SelectionLegacy scans points in order and moves to a candidate only when
	// it is strictly farther than the current best. Maps generated this way
	// match files produced by the original tool, which are not true Voronoi
	// partitions.
	SelectionLegacy
)

func (s Selection) String() string {
	switch s {
	case SelectionNearest:
		return "nearest"
	case SelectionLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("selection(%d)", int(s))
	}
}

// ParseSelection converts "nearest" or "legacy" into a Selection. The empty
// string selects SelectionNearest.
func ParseSelection(s string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return SelectionNearest, nil
	case "legacy":
		return SelectionLegacy, nil
	default:
		return 0, fmt.Errorf("%w: unknown selection %q (want nearest or legacy)", errdefs.ErrConfiguration, s)
	}
}

// Warp displaces cell coordinates with noise before distances are measured,
// which roughens the straight Voronoi borders. A nil Warp, nil Noise or zero
// Strength leaves coordinates untouched.
type Warp struct {
	Noise    noise.GeneratorInterface
	Strength float64 // maximum displacement in cells
	Scale    float64 // noise feature size in cells
}

// Offset of the dy noise sample, in units of Scale.
const warpOffsetX, warpOffsetY = 5.2, 1.3

func (w *Warp) enabled() bool {
	return w != nil && w.Noise != nil && w.Strength != 0
}

func (w *Warp) displace(x, y int) (float64, float64) {
	fx, fy := float64(x), float64(y)
	if !w.enabled() {
		return fx, fy
	}
	scale := w.Scale
	if scale <= 0 {
		scale = 1
	}
	dx := w.Noise.GetScaledNoise(fx, fy, scale) * w.Strength
	dy := w.Noise.GetScaledNoise(fx+warpOffsetX*scale, fy+warpOffsetY*scale, scale) * w.Strength
	return fx + dx, fy + dy
}

// Partitioner assigns every cell the gid of the biome point selected for it.
type Partitioner struct {
	Selection Selection
	Warp      *Warp
}

// Partition scans all cells row-major and measures the distance to every
// biome point. Cells seeded during assignment are overwritten like any other.
// ctx is checked once per row.
func (p Partitioner) Partition(ctx context.Context, layout *Layout) (*TileMap, error) {
	if layout == nil || len(layout.points) == 0 || layout.grid == nil {
		return nil, fmt.Errorf("%w: biomes have not been assigned", errdefs.ErrPrecondition)
	}

	grid := layout.grid.clone()
	for y := 0; y < grid.height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < grid.width; x++ {
			ox, oy := p.Warp.displace(x, y)
			site := p.selectSite(ox, oy, layout.points)
			grid.set(x, y, layout.points[site].TileGid)
		}
	}

	if pt, empty := grid.firstEmpty(); empty {
		return nil, fmt.Errorf("%w: cell %s is empty after partitioning", errdefs.ErrConfiguration, pt)
	}
	tm := &TileMap{grid: grid}
	for gid := range tm.Histogram() {
		if !layout.catalog.Contains(gid) {
			return nil, fmt.Errorf("%w: gid %d is outside every loaded tileset", errdefs.ErrConfiguration, gid)
		}
	}
	return tm, nil
}

// selectSite returns the index of the winning point for origin (x, y).
func (p Partitioner) selectSite(x, y float64, points []BiomePoint) int {
	best := 0
	bestDist := geometry.DistanceF(x, y, points[0].Position)

	for i := 1; i < len(points); i++ {
		d := geometry.DistanceF(x, y, points[i].Position)
		if p.Selection == SelectionLegacy {
			if bestDist < d {
				best, bestDist = i, d
			}
		} else if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
