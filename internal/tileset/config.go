package tileset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/tilegen/internal/errdefs"
)

// Config is the tileset configuration record:
//
//	{
//	  "tileset_location": "assets/",
//	  "tilesets": [{"name": "ground", "src": "ground.png"}],
//	  "tiles": [{"tileset": "ground", "position": {"x": 0, "y": 32}}]
//	}
type Config struct {
	TilesetLocation string         `json:"tileset_location" yaml:"tileset_location"`
	Tilesets        []TilesetEntry `json:"tilesets" yaml:"tilesets"`
	Tiles           []TileEntry    `json:"tiles" yaml:"tiles"`
}

// TilesetEntry names one tileset image relative to TilesetLocation.
type TilesetEntry struct {
	Name string `json:"name" yaml:"name"`
	Src  string `json:"src" yaml:"src"`
}

// TileEntry selects one tile by its pixel position inside a tileset image.
type TileEntry struct {
	Tileset  string   `json:"tileset" yaml:"tileset"`
	Position Position `json:"position" yaml:"position"`
}

// Position is a pixel offset inside a tileset image.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// LoadConfig reads a configuration record from a JSON or YAML file. The format
// is chosen by extension; anything other than .yaml/.yml is parsed as JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tileset config %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", errdefs.ErrConfiguration, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the record once at load time.
func (c *Config) Validate() error {
	if len(c.Tilesets) == 0 {
		return fmt.Errorf("%w: couldn't find any tileset in config", errdefs.ErrConfiguration)
	}
	if len(c.Tiles) == 0 {
		return fmt.Errorf("%w: couldn't find any tile in config", errdefs.ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(c.Tilesets))
	for i, ts := range c.Tilesets {
		if ts.Name == "" {
			return fmt.Errorf("%w: tileset #%d has no name", errdefs.ErrConfiguration, i)
		}
		if ts.Src == "" {
			return fmt.Errorf("%w: tileset %q has no src", errdefs.ErrConfiguration, ts.Name)
		}
		if _, dup := seen[ts.Name]; dup {
			return fmt.Errorf("%w: duplicate tileset name %q", errdefs.ErrConfiguration, ts.Name)
		}
		seen[ts.Name] = struct{}{}
	}

	for i, tile := range c.Tiles {
		if tile.Position.X < 0 || tile.Position.Y < 0 {
			return fmt.Errorf("%w: tile #%d has a negative pixel position", errdefs.ErrConfiguration, i)
		}
	}
	return nil
}

// ImagePath returns the on-disk path of a tileset image.
func (c *Config) ImagePath(entry TilesetEntry) string {
	return filepath.Join(c.TilesetLocation, entry.Src)
}

// TileDefs converts the configured tiles into TileDefs in declaration order.
func (c *Config) TileDefs() []TileDef {
	defs := make([]TileDef, len(c.Tiles))
	for i, tile := range c.Tiles {
		defs[i] = TileDef{Tileset: tile.Tileset, X: tile.Position.X, Y: tile.Position.Y}
	}
	return defs
}
