package viewer

import (
	"image"
	"image/color"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/tschart/internal/surface"
)

// maxColorDistance is the squared RGB distance under which a pixel counts
// as a layer's color. Antialiased edges stay well inside it.
const maxColorDistance = 3 * 64 * 64

// brailleLayer is one color of the raster drawn as braille dots.
type brailleLayer struct {
	color color.NRGBA
	style lipgloss.Style
}

func newBrailleLayer(hex string) (brailleLayer, error) {
	c, err := surface.ParseColor(hex)
	if err != nil {
		return brailleLayer{}, err
	}
	return brailleLayer{
		color: c,
		style: lipgloss.NewStyle().Foreground(lipgloss.Color(hex)),
	}, nil
}

// renderBraille downsamples img into cols x rows braille cells.
//
// Each opaque pixel is assigned to the layer with the closest color, and
// layers are drawn in order so later ones win shared cells.
func renderBraille(img *image.RGBA, cols, rows int, layers []brailleLayer) string {
	grids := make([]*graph.BrailleGrid, len(layers))
	for i := range grids {
		grids[i] = graph.NewBrailleGrid(cols, rows, 0, 1, 0, 1)
	}

	b := img.Bounds()
	dotsW, dotsH := cols*2, rows*4
	if b.Dx() > 0 && b.Dy() > 0 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			gy := (y - b.Min.Y) * dotsH / b.Dy()
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.RGBAAt(x, y)
				if c.A < 0x80 {
					continue
				}
				if i := nearestLayer(c, layers); i >= 0 {
					gx := (x - b.Min.X) * dotsW / b.Dx()
					grids[i].Set(canvas.Point{X: gx, Y: gy})
				}
			}
		}
	}

	cv := canvas.New(cols, rows)
	for i, g := range grids {
		graph.DrawBraillePatterns(&cv, canvas.Point{}, g.BraillePatterns(), layers[i].style)
	}
	return cv.View()
}

// nearestLayer returns the index of the layer closest to the premultiplied
// pixel c, or -1 if none is close enough.
func nearestLayer(c color.RGBA, layers []brailleLayer) int {
	r := int(c.R) * 0xff / int(c.A)
	g := int(c.G) * 0xff / int(c.A)
	bl := int(c.B) * 0xff / int(c.A)

	best, bestDist := -1, maxColorDistance+1
	for i, l := range layers {
		dr := r - int(l.color.R)
		dg := g - int(l.color.G)
		db := bl - int(l.color.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
