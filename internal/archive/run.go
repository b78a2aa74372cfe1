package archive

import (
	"time"

	"github.com/VoidMesh/tilegen/internal/mapgen"
	"github.com/VoidMesh/tilegen/internal/tilegen"
)

// Run is one archived generation run.
type Run struct {
	ID           string        `json:"id"`
	Seed         int64         `json:"seed"`
	Selection    string        `json:"selection"`
	Params       mapgen.Params `json:"params"`
	TilesetCount int           `json:"tileset_count"`
	Duration     time.Duration `json:"duration_ns"`
	CreatedAt    time.Time     `json:"created_at"`
	Size         int           `json:"size_bytes"`
	TMX          []byte        `json:"-"`
}

// RunFromResult converts a finished run for storage.
func RunFromResult(res *tilegen.Result) Run {
	return Run{
		ID:           res.RunID.String(),
		Seed:         res.Seed,
		Selection:    res.Selection.String(),
		Params:       res.Spec.Params(),
		TilesetCount: len(res.Catalog.Definitions()),
		Duration:     res.Duration,
		CreatedAt:    res.CreatedAt,
		Size:         len(res.TMX),
		TMX:          res.TMX,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRun reads the summary columns and, when withTMX is set, a trailing tmx column.
func scanRun(row rowScanner, withTMX bool) (Run, error) {
	var (
		run        Run
		mapType    string
		drawStyle  string
		durationMS int64
		createdAt  int64
	)
	dest := []interface{}{
		&run.ID, &run.Seed, &run.Selection, &mapType, &drawStyle,
		&run.Params.Width, &run.Params.Height, &run.Params.TileWidth, &run.Params.TileHeight,
		&run.Params.BiomeCount, &run.Params.LayerName, &run.TilesetCount,
		&durationMS, &createdAt, &run.Size,
	}
	if withTMX {
		dest = append(dest, &run.TMX)
	}
	if err := row.Scan(dest...); err != nil {
		return Run{}, err
	}

	run.Params.Type = mapgen.MapType(mapType)
	run.Params.DrawStyle = mapgen.DrawStyle(drawStyle)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt = time.Unix(0, createdAt).UTC()
	return run, nil
}
