package tileset

import (
	"fmt"
	"math"

	"github.com/VoidMesh/tilegen/internal/errdefs"
)

// Definition is the addressing metadata of one loaded tileset.
// Its gids cover [FirstGid, FirstGid+TotalTiles-1].
type Definition struct {
	Name        string `json:"name"`
	ImagePath   string `json:"image_path"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
	FirstGid    int    `json:"first_gid"`
	Columns     int    `json:"columns"`
	TotalTiles  int    `json:"total_tiles"`
}

// LastGid returns the highest gid owned by the tileset.
func (d Definition) LastGid() int {
	return d.FirstGid + d.TotalTiles - 1
}

// Contains reports whether gid falls inside the tileset's range.
func (d Definition) Contains(gid int) bool {
	return gid >= d.FirstGid && gid <= d.LastGid()
}

// TileGid converts a tile's pixel position into a global tile id.
//
// The image is treated as a row-major grid of tileWidth x tileHeight cells.
// Divisions are real-valued and only the final sum is floored, so a position
// that is not aligned to the tile grid resolves the same way Tiled exports
// from the legacy generator did.
func (d Definition) TileGid(tile TileDef, tileWidth, tileHeight int) int {
	tw := float64(tileWidth)
	th := float64(tileHeight)

	column := float64(tile.X) / tw
	row := float64(tile.Y) / th
	perRow := float64(d.ImageWidth) / tw

	return int(math.Floor(column + float64(d.FirstGid) + perRow*row))
}

// TileDef is one source tile: a pixel position inside a named tileset.
type TileDef struct {
	Tileset string `json:"tileset"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// Catalog is the ordered, immutable list of tilesets loaded for one run.
type Catalog struct {
	definitions []Definition
	byName      map[string]int
	tileWidth   int
	tileHeight  int
}

// Build probes every configured tileset image and assigns gid ranges by
// running sum, starting at 1, in declaration order.
func Build(cfg *Config, prober ImageProber, tileWidth, tileHeight int) (*Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: missing tileset config", errdefs.ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size must be positive, got %dx%d", errdefs.ErrConfiguration, tileWidth, tileHeight)
	}

	catalog := &Catalog{
		definitions: make([]Definition, 0, len(cfg.Tilesets)),
		byName:      make(map[string]int, len(cfg.Tilesets)),
		tileWidth:   tileWidth,
		tileHeight:  tileHeight,
	}

	lastGid := 0
	for _, entry := range cfg.Tilesets {
		path := cfg.ImagePath(entry)
		size, err := prober.Probe(path)
		if err != nil {
			return nil, fmt.Errorf("failed to probe tileset %q: %w", entry.Name, err)
		}

		columns := size.Width / tileWidth
		rows := size.Height / tileHeight
		total := columns * rows
		if total == 0 {
			return nil, fmt.Errorf("%w: tileset %q (%dx%d) holds no %dx%d tiles",
				errdefs.ErrConfiguration, entry.Name, size.Width, size.Height, tileWidth, tileHeight)
		}

		def := Definition{
			Name:        entry.Name,
			ImagePath:   path,
			ImageWidth:  size.Width,
			ImageHeight: size.Height,
			FirstGid:    lastGid + 1,
			Columns:     columns,
			TotalTiles:  total,
		}
		catalog.byName[def.Name] = len(catalog.definitions)
		catalog.definitions = append(catalog.definitions, def)
		lastGid += total
	}

	return catalog, nil
}

// Lookup returns the tileset with the given name.
func (c *Catalog) Lookup(name string) (Definition, error) {
	idx, ok := c.byName[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: tileset %q is not loaded", errdefs.ErrLookup, name)
	}
	return c.definitions[idx], nil
}

// ResolveTile returns the global id of a configured tile. Tiles whose pixel
// position lies outside their tileset image are rejected.
func (c *Catalog) ResolveTile(tile TileDef) (int, error) {
	def, err := c.Lookup(tile.Tileset)
	if err != nil {
		return 0, err
	}

	if tile.X < 0 || tile.Y < 0 || tile.X >= def.ImageWidth || tile.Y >= def.ImageHeight {
		return 0, fmt.Errorf("%w: tile position (%d, %d) is outside tileset %q (%dx%d)",
			errdefs.ErrConfiguration, tile.X, tile.Y, def.Name, def.ImageWidth, def.ImageHeight)
	}

	gid := def.TileGid(tile, c.tileWidth, c.tileHeight)
	if !def.Contains(gid) {
		return 0, fmt.Errorf("%w: tile position (%d, %d) resolves to gid %d outside tileset %q range [%d, %d]",
			errdefs.ErrConfiguration, tile.X, tile.Y, gid, def.Name, def.FirstGid, def.LastGid())
	}
	return gid, nil
}

// Definitions returns the loaded tilesets in declaration order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.definitions))
	copy(out, c.definitions)
	return out
}

// Contains reports whether gid belongs to any loaded tileset.
func (c *Catalog) Contains(gid int) bool {
	for _, def := range c.definitions {
		if def.Contains(gid) {
			return true
		}
	}
	return false
}

// TileWidth returns the tile width the catalog was built for.
func (c *Catalog) TileWidth() int { return c.tileWidth }

// TileHeight returns the tile height the catalog was built for.
func (c *Catalog) TileHeight() int { return c.tileHeight }
