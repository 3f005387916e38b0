// Package export renders charts to PNG files without a terminal.
package export

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/frame"
	"github.com/wandb/tschart/internal/surface"
)

// WritePNG encodes img to path, creating parent directories.
func WritePNG(fs afero.Fs, path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create %s: %w", dir, err)
		}
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

// Render paints ds once and returns the surface.
//
// If hoverX is set, the pointer is placed at that logical x before a
// second frame is painted, so the guide line and highlights show.
func Render(ds *dataset.Dataset, hoverX *float64, opts ...chart.Option) (*surface.Raster, error) {
	raster := surface.NewRaster(1, 1)
	queue := frame.NewQueue()

	r, err := chart.New(raster, ds, append(slices.Clone(opts), chart.WithScheduler(queue))...)
	if err != nil {
		return nil, err
	}
	defer r.Destroy()

	r.Init()
	if hoverX != nil {
		raster.DispatchPointerMove(*hoverX, 0)
		queue.Flush(epoch)
	}
	return raster, nil
}
