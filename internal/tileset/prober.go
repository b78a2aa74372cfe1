package tileset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

//go:generate mockgen -source=prober.go -destination=../testmocks/tileset/mock_prober.go -package=mocktileset

// ImageSize is the pixel size of a tileset image.
type ImageSize struct {
	Width  int
	Height int
}

// ImageProber reports the pixel dimensions of a tileset image.
type ImageProber interface {
	Probe(path string) (ImageSize, error)
}

// FileProber reads image headers from the local file system.
type FileProber struct{}

// NewFileProber creates a prober for images on disk.
func NewFileProber() ImageProber {
	return FileProber{}
}

// Probe decodes only the image header, not the pixel data.
func (FileProber) Probe(path string) (ImageSize, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageSize{}, fmt.Errorf("failed to open tileset image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return ImageSize{}, fmt.Errorf("failed to read tileset image %s: %w", path, err)
	}
	return ImageSize{Width: cfg.Width, Height: cfg.Height}, nil
}
