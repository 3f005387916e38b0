package surface

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// faceCache keeps one face per pixel size.
type faceCache struct {
	faces map[float64]font.Face
}

func (c *faceCache) face(px float64) (font.Face, error) {
	if f, ok := c.faces[px]; ok {
		return f, nil
	}

	otf, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("surface: parse font: %w", err)
	}
	// At 72 DPI one point is one pixel.
	f, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("surface: font face %vpx: %w", px, err)
	}

	if c.faces == nil {
		c.faces = make(map[float64]font.Face)
	}
	c.faces[px] = f
	return f, nil
}
