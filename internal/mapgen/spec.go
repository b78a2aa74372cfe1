package mapgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/VoidMesh/tilegen/internal/errdefs"
)

// MapType selects the partition scheme. Only flat maps exist.
type MapType string

const (
	MapTypePlain MapType = "plain"
)

// MapTypes lists the supported map types in prompt order.
var MapTypes = []MapType{MapTypePlain}

// DrawStyle is the orientation written to the map file.
type DrawStyle string

const (
	DrawOrthogonal DrawStyle = "orthogonal"
	DrawIsometric  DrawStyle = "isometric"
)

// DrawStyles lists the supported draw styles in prompt order.
var DrawStyles = []DrawStyle{DrawOrthogonal, DrawIsometric}

// ParseMapType converts user input into a MapType.
func ParseMapType(s string) (MapType, error) {
	for _, t := range MapTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown map type %q", errdefs.ErrConfiguration, s)
}

// ParseDrawStyle converts user input into a DrawStyle.
func ParseDrawStyle(s string) (DrawStyle, error) {
	for _, d := range DrawStyles {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown draw style %q", errdefs.ErrConfiguration, s)
}

// Params are the raw run parameters as collected from flags, the prompt or an
// HTTP request. They become a MapSpec once validated by NewMapSpec.
type Params struct {
	Type       MapType   `json:"type" yaml:"type"`
	DrawStyle  DrawStyle `json:"draw_style" yaml:"draw_style"`
	Width      int       `json:"width" yaml:"width"`
	Height     int       `json:"height" yaml:"height"`
	TileWidth  int       `json:"tile_width" yaml:"tile_width"`
	TileHeight int       `json:"tile_height" yaml:"tile_height"`
	BiomeCount int       `json:"biome_count" yaml:"biome_count"`
	LayerName  string    `json:"layer_name" yaml:"layer_name"`
}

// DefaultParams returns parameters for a small orthogonal map.
func DefaultParams() Params {
	return Params{
		Type:       MapTypePlain,
		DrawStyle:  DrawOrthogonal,
		Width:      64,
		Height:     64,
		TileWidth:  32,
		TileHeight: 32,
		BiomeCount: 12,
		LayerName:  "ground",
	}
}

// MapSpec is a validated, immutable set of run parameters.
type MapSpec struct {
	mapType    MapType
	drawStyle  DrawStyle
	width      int
	height     int
	tileWidth  int
	tileHeight int
	biomeCount int
	layerName  string
}

// NewMapSpec validates p. A biome count larger than the number of cells is
// reported as ErrNonTermination since distinct seeds could never be drawn.
func NewMapSpec(p Params) (MapSpec, error) {
	if p.Type != MapTypePlain {
		return MapSpec{}, fmt.Errorf("%w: unsupported map type %q", errdefs.ErrConfiguration, p.Type)
	}
	if p.DrawStyle != DrawOrthogonal && p.DrawStyle != DrawIsometric {
		return MapSpec{}, fmt.Errorf("%w: unsupported draw style %q", errdefs.ErrConfiguration, p.DrawStyle)
	}

	positive := []struct {
		name  string
		value int
	}{
		{"width", p.Width},
		{"height", p.Height},
		{"tile width", p.TileWidth},
		{"tile height", p.TileHeight},
		{"biome count", p.BiomeCount},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return MapSpec{}, fmt.Errorf("%w: %s must be greater than 0, got %d", errdefs.ErrConfiguration, f.name, f.value)
		}
	}

	if p.Width > math.MaxInt/p.Height {
		return MapSpec{}, fmt.Errorf("%w: map of %dx%d cells is too large", errdefs.ErrConfiguration, p.Width, p.Height)
	}
	if cells := p.Width * p.Height; p.BiomeCount > cells {
		return MapSpec{}, fmt.Errorf("%w: %d biome points requested for a map of %d cells",
			errdefs.ErrNonTermination, p.BiomeCount, cells)
	}

	return MapSpec{
		mapType:    p.Type,
		drawStyle:  p.DrawStyle,
		width:      p.Width,
		height:     p.Height,
		tileWidth:  p.TileWidth,
		tileHeight: p.TileHeight,
		biomeCount: p.BiomeCount,
		layerName:  p.LayerName,
	}, nil
}

func (s MapSpec) Type() MapType        { return s.mapType }
func (s MapSpec) DrawStyle() DrawStyle { return s.drawStyle }
func (s MapSpec) Width() int           { return s.width }
func (s MapSpec) Height() int          { return s.height }
func (s MapSpec) TileWidth() int       { return s.tileWidth }
func (s MapSpec) TileHeight() int      { return s.tileHeight }
func (s MapSpec) BiomeCount() int      { return s.biomeCount }
func (s MapSpec) LayerName() string    { return s.layerName }

// Cells returns width*height.
func (s MapSpec) Cells() int { return s.width * s.height }

// IsZero reports whether s was not produced by NewMapSpec.
func (s MapSpec) IsZero() bool { return s.width == 0 }

// Params returns the parameters s was built from.
func (s MapSpec) Params() Params {
	return Params{
		Type:       s.mapType,
		DrawStyle:  s.drawStyle,
		Width:      s.width,
		Height:     s.height,
		TileWidth:  s.tileWidth,
		TileHeight: s.tileHeight,
		BiomeCount: s.biomeCount,
		LayerName:  s.layerName,
	}
}
