package mapgen

import (
	"fmt"

	"github.com/VoidMesh/tilegen/internal/errdefs"
	"github.com/VoidMesh/tilegen/internal/geometry"
	"github.com/VoidMesh/tilegen/internal/random"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

// BiomePoint is a Voronoi site: a normalized seed position and the tile drawn
// for its region.
type BiomePoint struct {
	Position geometry.Point  `json:"position"`
	Tile     tileset.TileDef `json:"tile"`
	TileGid  int             `json:"tile_gid"`
}

// Layout is the result of biome assignment: the sites in seed order and a
// grid pre-seeded with each site's gid.
type Layout struct {
	spec    MapSpec
	catalog *tileset.Catalog
	points  []BiomePoint
	grid    *Grid
}

// AssignBiomes binds every seed to a tile. The tile list is copied and
// shuffled once; seed i takes shuffled tile i while tiles remain and a
// uniformly random tile afterwards.
func AssignBiomes(spec MapSpec, seeds Seeds, tiles []tileset.TileDef, catalog *tileset.Catalog, rnd random.Source) (*Layout, error) {
	switch {
	case spec.IsZero():
		return nil, fmt.Errorf("%w: map spec was not built with NewMapSpec", errdefs.ErrPrecondition)
	case seeds.Len() == 0:
		return nil, fmt.Errorf("%w: no seed points have been sampled", errdefs.ErrPrecondition)
	case catalog == nil:
		return nil, fmt.Errorf("%w: tileset catalog is not loaded", errdefs.ErrPrecondition)
	case seeds.width != spec.Width() || seeds.height != spec.Height():
		return nil, fmt.Errorf("%w: seeds sampled for a %dx%d map, spec is %dx%d",
			errdefs.ErrPrecondition, seeds.width, seeds.height, spec.Width(), spec.Height())
	case seeds.Len() < spec.BiomeCount():
		return nil, fmt.Errorf("%w: %d seed points sampled, %d biomes requested",
			errdefs.ErrPrecondition, seeds.Len(), spec.BiomeCount())
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: couldn't find any tile in config", errdefs.ErrConfiguration)
	}

	shuffled := make([]tileset.TileDef, len(tiles))
	copy(shuffled, tiles)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	layout := &Layout{
		spec:    spec,
		catalog: catalog,
		points:  make([]BiomePoint, 0, spec.BiomeCount()),
		grid:    newGrid(spec.Width(), spec.Height()),
	}

	for i := 0; i < spec.BiomeCount(); i++ {
		var tile tileset.TileDef
		if i < len(shuffled) {
			tile = shuffled[i]
		} else {
			tile = shuffled[rnd.Intn(len(shuffled))]
		}

		gid, err := catalog.ResolveTile(tile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tile for biome %d: %w", i, err)
		}

		pos := geometry.ParsePoint(seeds.points[i], spec.Width(), spec.Height())
		layout.grid.set(pos.X, pos.Y, gid)
		layout.points = append(layout.points, BiomePoint{Position: pos, Tile: tile, TileGid: gid})
	}

	return layout, nil
}

// Spec returns the map spec the layout was built for.
func (l *Layout) Spec() MapSpec { return l.spec }

// Catalog returns the catalog the layout's gids were resolved against.
func (l *Layout) Catalog() *tileset.Catalog { return l.catalog }

// Points returns a copy of the biome points in seed order.
func (l *Layout) Points() []BiomePoint {
	out := make([]BiomePoint, len(l.points))
	copy(out, l.points)
	return out
}

// FirstEmpty returns the first cell in row-major order that no biome point
// has seeded yet.
func (l *Layout) FirstEmpty() (geometry.Point, bool) {
	return l.grid.firstEmpty()
}
