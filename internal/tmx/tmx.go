// Package tmx writes generated maps in the Tiled TMX format.
package tmx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/VoidMesh/tilegen/internal/errdefs"
	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/tileset"
)

const (
	// DefaultFileName is where the CLI saves maps unless told otherwise.
	DefaultFileName = "tg_map_data.tmx"

	// TiledVersion is the editor version stamped into every file.
	TiledVersion = "2018.04.18"

	formatVersion = "1.0"
	renderOrder   = "left-up"
	transparent   = "ff00ff"
)

// Encode writes the map, one tileset block per catalog entry in gid order,
// and a single CSV layer. Output is deterministic for identical inputs.
func Encode(out io.Writer, m *mapgen.TileMap, catalog *tileset.Catalog, spec mapgen.MapSpec) error {
	switch {
	case spec.IsZero():
		return fmt.Errorf("%w: map spec was not built with NewMapSpec", errdefs.ErrPrecondition)
	case m == nil:
		return fmt.Errorf("%w: map has not been generated", errdefs.ErrPrecondition)
	case catalog == nil:
		return fmt.Errorf("%w: tileset catalog is not loaded", errdefs.ErrPrecondition)
	case m.Width() != spec.Width() || m.Height() != spec.Height():
		return fmt.Errorf("%w: map is %dx%d, spec is %dx%d",
			errdefs.ErrPrecondition, m.Width(), m.Height(), spec.Width(), spec.Height())
	}

	w := &writer{w: bufio.NewWriter(out)}

	w.raw("<?xml version='1.0' encoding='UTF-8'?>\n")
	w.open(newElement("map").
		str("version", formatVersion).
		str("tiledversion", TiledVersion).
		str("orientation", string(spec.DrawStyle())).
		str("renderorder", renderOrder).
		num("width", spec.Width()).
		num("height", spec.Height()).
		num("tilewidth", spec.TileWidth()).
		num("tileheight", spec.TileHeight()).
		num("infinite", 0).
		num("nextobjectid", 1))

	for _, def := range catalog.Definitions() {
		w.open(newElement("tileset").
			num("firstgid", def.FirstGid).
			str("name", def.Name).
			num("tilewidth", spec.TileWidth()).
			num("tileheight", spec.TileHeight()).
			num("tilecount", def.TotalTiles).
			num("columns", def.Columns))
		w.empty(newElement("image").
			str("source", filepath.ToSlash(def.ImagePath)).
			str("trans", transparent).
			num("width", def.ImageWidth).
			num("height", def.ImageHeight))
		w.close("tileset")
	}

	w.open(newElement("layer").
		str("name", spec.LayerName()).
		num("width", spec.Width()).
		num("height", spec.Height()))
	w.open(newElement("data").str("encoding", "csv"))
	w.csv(m.Values())
	w.close("data")
	w.close("layer")
	w.close("map")

	if err := w.flush(); err != nil {
		return fmt.Errorf("failed to write tmx: %w", err)
	}
	return nil
}

// Marshal returns the encoded map.
func Marshal(m *mapgen.TileMap, catalog *tileset.Catalog, spec mapgen.MapSpec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, catalog, spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile replaces path with data. The bytes go to a temporary file in the
// same directory first, so a failed write leaves any previous map intact.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary map file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write map file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write map file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set map file permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to save map file %s: %w", path, err)
	}
	return nil
}
